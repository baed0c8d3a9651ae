package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/PawsBubbles-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/bookings/models"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/ptr"
)

const (
	actorClient = "client"
	actorAdmin  = "admin"
)

type realTimeProvider struct {
	location *time.Location
}

func (p realTimeProvider) Now() time.Time { return time.Now().In(p.location) }

// Config правила работы с записями
type Config struct {
	Location            *time.Location // часовой пояс салона
	CancellationLead    time.Duration  // клиент не может отменить запись позже чем за это время до начала
	WhatsAppCountryCode string         // код страны для 10-значных номеров
}

// Service сервис для работы с записями: история и отмена клиентом, панель администратора
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	cfg             Config
	timeProvider    TimeProvider
	metrics         MetricsRecorder
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	cfg Config,
	timeProvider TimeProvider,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.CancellationLead <= 0 {
		cfg.CancellationLead = domain.DefaultCancellationLeadHours * time.Hour
	}
	if timeProvider == nil {
		timeProvider = realTimeProvider{location: cfg.Location}
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		cfg:             cfg,
		timeProvider:    timeProvider,
		metrics:         metrics,
		logger:          logger,
	}
}

// GetClientBookings возвращает записи клиента по email, новые сверху.
// activeOnly исключает отменённые записи.
func (s *Service) GetClientBookings(ctx context.Context, email string, activeOnly bool) (*models.AppointmentListResponse, error) {
	normalized := domain.NormalizeEmail(email)
	if normalized == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	s.logger.Info("GetClientBookings: fetching bookings for email=%s, activeOnly=%t", normalized, activeOnly)

	appointments, err := s.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		ClientEmail:     ptr.Ptr(normalized),
		IncludeInactive: !activeOnly,
		NewestFirst:     true,
	})
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for email=%s: %v", normalized, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	resp := models.FromDomainAppointmentList(appointments)
	for i, apt := range appointments {
		canCancel := apt.IsActive() && s.cancellationAllowed(apt, now)
		resp.Appointments[i].CanCancel = &canCancel
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for email=%s", len(appointments), normalized)
	return resp, nil
}

// CancelByClient отменяет запись по запросу клиента.
// Email должен совпадать с email записи; позже чем за CancellationLead до начала отмена запрещена,
// и в этом случае в хранилище ничего не пишется.
func (s *Service) CancelByClient(ctx context.Context, id uuid.UUID, email string) (*models.AppointmentResponse, error) {
	normalized := domain.NormalizeEmail(email)
	s.logger.Info("CancelByClient: cancelling booking id=%s by email=%s", id, normalized)

	if normalized == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	var result *domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		apt, err := s.getAppointment(txCtx, "CancelByClient", id)
		if err != nil {
			return err
		}

		if apt.ClientEmail != normalized {
			s.logger.Warn("CancelByClient: email=%s does not own booking id=%s", normalized, id)
			return ErrAccessDenied
		}

		if apt.IsCancelled() {
			s.logger.Warn("CancelByClient: booking id=%s is already cancelled", id)
			return ErrAlreadyCancelled
		}

		if !s.cancellationAllowed(apt, s.timeProvider.Now()) {
			s.logger.Warn("CancelByClient: booking id=%s starts at %s, less than %s ahead",
				id, apt.StartsAt(s.cfg.Location).Format(time.RFC3339), s.cfg.CancellationLead)
			return ErrTooLateToCancel
		}

		if err := s.updateStatus(txCtx, "CancelByClient", id, domain.StatusCancelled); err != nil {
			return err
		}

		apt.Status = domain.StatusCancelled
		result = apt
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncBookingsCancelled(actorClient)
	}

	s.logger.Info("CancelByClient: successfully cancelled booking id=%s", id)
	return models.FromDomainAppointment(result), nil
}

// ListAll возвращает все записи для панели администратора, по дате и времени по возрастанию
func (s *Service) ListAll(ctx context.Context) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListAll: fetching all bookings")

	appointments, err := s.appointmentRepo.List(ctx, domain.AppointmentsFilter{IncludeInactive: true})
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAll: successfully fetched %d bookings", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus меняет статус записи из панели администратора.
// Отменить можно запись в любом статусе, подтвердить - ожидающую или ранее отменённую,
// если её время ещё свободно. Вернуть запись в ожидание нельзя.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s", id, req.Status)

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, id)
		return nil, ErrInvalidStatus
	}

	var result *domain.Appointment

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		apt, err := s.getAppointment(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		if apt.Status == newStatus {
			result = apt
			return nil
		}

		if newStatus == domain.StatusPending {
			s.logger.Warn("UpdateStatus: booking id=%s cannot go back to pending from %s", id, apt.Status)
			return ErrInvalidTransition
		}

		if err := s.updateStatus(txCtx, "UpdateStatus", id, newStatus); err != nil {
			return err
		}

		apt.Status = newStatus
		result = apt
		return nil
	})
	if err != nil {
		return nil, err
	}

	if newStatus == domain.StatusCancelled && s.metrics != nil {
		s.metrics.IncBookingsCancelled(actorAdmin)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", id, newStatus)
	return models.FromDomainAppointment(result), nil
}

// DeleteByAdmin удаляет запись и готовит ссылку WhatsApp с сообщением клиенту о причине
func (s *Service) DeleteByAdmin(ctx context.Context, id uuid.UUID, reason string) (*models.DeleteBookingResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultCancellationReason
	}
	if len([]rune(reason)) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	s.logger.Info("DeleteByAdmin: deleting booking id=%s", id)

	var deleted *domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		apt, err := s.getAppointment(txCtx, "DeleteByAdmin", id)
		if err != nil {
			return err
		}

		if err := s.appointmentRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("DeleteByAdmin: booking id=%s not found during delete", id)
				return ErrBookingNotFound
			}
			s.logger.Error("DeleteByAdmin: repository error for booking id=%s: %v", id, err)
			return fmt.Errorf("%w: DeleteByAdmin - repository error: %v", ErrInternal, err)
		}

		deleted = apt
		return nil
	})
	if err != nil {
		return nil, err
	}

	if deleted.IsActive() && s.metrics != nil {
		s.metrics.IncBookingsCancelled(actorAdmin)
	}

	message := CancellationMessage(deleted, reason)

	s.logger.Info("DeleteByAdmin: successfully deleted booking id=%s", id)
	return &models.DeleteBookingResponse{
		ID:          id.String(),
		Message:     message,
		WhatsAppURL: WhatsAppURL(deleted.ClientPhone, s.cfg.WhatsAppCountryCode, message),
	}, nil
}

// Вспомогательные методы

// cancellationAllowed true, если до начала записи больше CancellationLead
func (s *Service) cancellationAllowed(apt *domain.Appointment, now time.Time) bool {
	deadline := apt.StartsAt(s.cfg.Location).Add(-s.cfg.CancellationLead)
	return !now.After(deadline)
}

func (s *Service) getAppointment(ctx context.Context, op string, id uuid.UUID) (*domain.Appointment, error) {
	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return apt, nil
}

func (s *Service) updateStatus(ctx context.Context, op string, id uuid.UUID, status domain.AppointmentStatus) error {
	if err := s.appointmentRepo.UpdateStatus(ctx, id, status); err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			s.logger.Warn("%s: booking id=%s not found during update", op, id)
			return ErrBookingNotFound
		case errors.Is(err, appointmentRepo.ErrSlotTaken):
			s.logger.Warn("%s: booking id=%s cannot be restored, slot is taken", op, id)
			return ErrSlotTaken
		default:
			s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
	}
	return nil
}
