package stream_appointments

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	"github.com/m04kA/PawsBubbles-BookingService/internal/realtime"
)

const (
	msgMissingEmail       = "el correo electrónico es obligatorio"
	msgStreamNotSupported = "el servidor no soporta eventos en tiempo real"

	eventName        = "appointment"
	defaultHeartbeat = 25 * time.Second
)

type noticeFunc func(change *domain.AppointmentChange) (string, bool)

type Handler struct {
	hub       Hub
	heartbeat time.Duration
	now       func() time.Time
	logger    Logger
}

func NewHandler(hub Hub, heartbeat time.Duration, logger Logger) *Handler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &Handler{
		hub:       hub,
		heartbeat: heartbeat,
		now:       time.Now,
		logger:    logger,
	}
}

// HandleAdmin GET /api/v1/admin/appointments/stream
// Все изменения таблицы записей
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, "GET /admin/appointments/stream", nil, realtime.AdminNotice)
}

// HandleClient GET /api/v1/bookings/stream?email=
// Только записи клиента с данным email
func (h *Handler) HandleClient(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		h.logger.Warn("GET /bookings/stream - Missing email")
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}
	h.stream(w, r, "GET /bookings/stream", realtime.ClientFilter(email), realtime.ClientNotice)
}

func (h *Handler) stream(w http.ResponseWriter, r *http.Request, route string, filter realtime.Filter, notice noticeFunc) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("%s - ResponseWriter does not support flushing", route)
		handlers.RespondInternalError(w)
		return
	}

	// поток живёт дольше WriteTimeout сервера
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Warn("%s - Failed to clear write deadline: %v", route, err)
	}

	changes, cancel := h.hub.Subscribe(filter)
	defer cancel()

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "retry: 3000\n\n")
	flusher.Flush()

	h.logger.Info("%s - Subscriber connected", route)
	defer h.logger.Info("%s - Subscriber disconnected", route)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	var seq uint64
	for {
		select {
		case <-r.Context().Done():
			return

		case change, open := <-changes:
			if !open {
				return
			}
			text, _ := notice(change)
			payload, err := json.Marshal(realtime.NewEvent(change, text, h.now()))
			if err != nil {
				h.logger.Error("%s - Failed to marshal event: %v", route, err)
				continue
			}
			seq++
			if _, err := fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", seq, eventName, payload); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
