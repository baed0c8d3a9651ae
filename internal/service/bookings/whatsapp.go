package bookings

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
)

const (
	whatsAppBaseURL = "https://wa.me/"

	// DefaultCancellationReason подставляется, когда администратор не указал причину
	DefaultCancellationReason = "Inconveniente con el horario"

	localPhoneDigits = 10
)

// CancellationMessage текст сообщения клиенту об отмене записи
func CancellationMessage(apt *domain.Appointment, reason string) string {
	return fmt.Sprintf("Hola %s, tu cita para %s el día %s ha sido cancelada. Motivo: %s.",
		apt.ClientName, apt.PetName, apt.Date.Format(domain.DateFormat), reason)
}

// WhatsAppURL ссылка wa.me с готовым текстом.
// Из телефона остаются только цифры; к 10-значному местному номеру добавляется код страны.
func WhatsAppURL(phone, countryCode, message string) string {
	digits := digitsOnly(phone)
	if len(digits) == localPhoneDigits && countryCode != "" {
		digits = digitsOnly(countryCode) + digits
	}

	// пробел кодируется как %20, а не "+"
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")

	return whatsAppBaseURL + digits + "?text=" + text
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
