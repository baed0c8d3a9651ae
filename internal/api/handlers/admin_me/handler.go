package admin_me

import (
	"net/http"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
	"github.com/m04kA/PawsBubbles-BookingService/internal/api/middleware"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/auth/models"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/authtoken"
)

const msgUnauthorized = "sesión inválida o expirada, inicia sesión nuevamente"

type SessionService interface {
	Me(claims *authtoken.Claims) *models.SessionResponse
}

type Handler struct {
	service SessionService
}

func NewHandler(service SessionService) *Handler {
	return &Handler{service: service}
}

// Handle GET /api/v1/admin/me
// Страница входа проверяет сохранённый токен и сразу уходит в панель
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.service.Me(claims))
}
