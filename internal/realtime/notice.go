package realtime

import (
	"fmt"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
)

// AdminNotice текст уведомления для панели администратора.
// Второе значение false, если изменение не требует уведомления.
func AdminNotice(change *domain.AppointmentChange) (string, bool) {
	switch {
	case change.Type == domain.ChangeInsert && change.New != nil:
		return fmt.Sprintf("NUEVA RESERVA: %s (%s)", change.New.PetName, change.New.ServiceName), true
	case change.StatusChangedTo(domain.StatusCancelled):
		return fmt.Sprintf("¡ALERTA! El cliente %s ha cancelado la cita de %s.", change.New.ClientName, change.New.PetName), true
	default:
		return "", false
	}
}

// ClientNotice текст уведомления для клиента о его записи
func ClientNotice(change *domain.AppointmentChange) (string, bool) {
	switch {
	case change.StatusChangedTo(domain.StatusConfirmed):
		return fmt.Sprintf("¡Buenas noticias! Tu reserva para %s ha sido CONFIRMADA.", change.New.PetName), true
	case change.StatusChangedTo(domain.StatusCancelled):
		return fmt.Sprintf("Tu reserva para %s ha sido cancelada.", change.New.PetName), true
	default:
		return "", false
	}
}
