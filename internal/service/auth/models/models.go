package models

import (
	"time"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/authtoken"
)

// LoginRequest DTO для входа администратора
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminResponse DTO учётной записи администратора
type AdminResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// LoginResponse DTO ответа на вход
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Admin     AdminResponse `json:"admin"`
}

// SessionResponse DTO текущей сессии (GET /admin/me)
type SessionResponse struct {
	Admin     AdminResponse `json:"admin"`
	ExpiresAt time.Time     `json:"expiresAt"`
}

// FromDomainAdmin конвертирует доменную модель в DTO
func FromDomainAdmin(admin *domain.Admin) AdminResponse {
	return AdminResponse{
		ID:    admin.ID.String(),
		Email: admin.Email,
	}
}

// FromClaims собирает ответ о сессии из проверенного токена
func FromClaims(claims *authtoken.Claims) *SessionResponse {
	return &SessionResponse{
		Admin: AdminResponse{
			ID:    claims.Sub,
			Email: claims.Email,
		},
		ExpiresAt: claims.ExpiresAt(),
	}
}
