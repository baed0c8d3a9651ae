package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	adminRepo "github.com/m04kA/PawsBubbles-BookingService/internal/infra/storage/admin"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/auth/models"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/authtoken"
)

const roleAdmin = "admin"

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Service сервис аутентификации администраторов
type Service struct {
	adminRepo    AdminRepository
	secret       string
	tokenTTL     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(adminRepo AdminRepository, secret string, tokenTTL time.Duration, timeProvider TimeProvider, logger Logger) *Service {
	if timeProvider == nil {
		timeProvider = realTimeProvider{}
	}
	return &Service{
		adminRepo:    adminRepo,
		secret:       secret,
		tokenTTL:     tokenTTL,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Login проверяет пароль и выдаёт подписанный токен.
// Неизвестный email и неверный пароль возвращают одну и ту же ошибку.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, adminRepo.ErrAdminNotFound) {
			s.logger.Warn("Login: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for email=%s", email)
		return nil, ErrInvalidCredentials
	}

	now := s.timeProvider.Now()
	claims := authtoken.Claims{
		Sub:   admin.ID.String(),
		Email: admin.Email,
		Role:  roleAdmin,
		Iat:   now.Unix(),
		Exp:   now.Add(s.tokenTTL).Unix(),
	}

	token, err := authtoken.SignHS256(claims, s.secret)
	if err != nil {
		s.logger.Error("Login: failed to sign token: %v", err)
		return nil, fmt.Errorf("%w: Login - sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: admin id=%s logged in", admin.ID)
	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt(),
		Admin:     models.FromDomainAdmin(admin),
	}, nil
}

// VerifyToken проверяет подпись и срок действия токена
func (s *Service) VerifyToken(token string) (*authtoken.Claims, error) {
	claims, err := authtoken.ParseAndVerifyHS256(token, s.secret, s.timeProvider.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Role != roleAdmin || claims.Sub == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Me возвращает данные текущей сессии по проверенному токену
func (s *Service) Me(claims *authtoken.Claims) *models.SessionResponse {
	return models.FromClaims(claims)
}

// EnsureAdmin создаёт учётную запись администратора при первом запуске
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		s.logger.Warn("EnsureAdmin: bootstrap admin is not configured, skipping")
		return nil
	}

	_, err := s.adminRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, adminRepo.ErrAdminNotFound) {
		return fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: EnsureAdmin - hash password: %v", ErrInternal, err)
	}

	created, err := s.adminRepo.Create(ctx, &domain.Admin{Email: email, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, adminRepo.ErrAdminExists) {
			return nil
		}
		return fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("EnsureAdmin: created admin id=%s email=%s", created.ID, email)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
