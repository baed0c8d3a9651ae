package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/PawsBubbles-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/schedule/models"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/types"
)

// Часы по умолчанию для закрытого дня, у которого ещё нет строки в расписании
const (
	defaultOpenTime  types.TimeString = "08:00"
	defaultCloseTime types.TimeString = "17:00"
)

// Service сервис расписания: часы работы по дням недели и нерабочие даты
type Service struct {
	scheduleRepo ScheduleRepository
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.Local
	}
	return &Service{
		scheduleRepo: scheduleRepo,
		location:     location,
		logger:       logger,
	}
}

// ListBusinessHours возвращает недельное расписание по порядку дней (0 = воскресенье)
func (s *Service) ListBusinessHours(ctx context.Context) (*models.BusinessHoursResponse, error) {
	hours, err := s.scheduleRepo.ListBusinessHours(ctx)
	if err != nil {
		s.logger.Error("ListBusinessHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBusinessHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBusinessHours(hours), nil
}

// UpdateBusinessHour задаёт часы работы для дня недели.
// Для рабочего дня open должно быть раньше close; для закрытого дня время можно не передавать.
func (s *Service) UpdateBusinessHour(ctx context.Context, dayOfWeek int, req *models.UpdateBusinessHourRequest) (*models.BusinessHourResponse, error) {
	s.logger.Info("UpdateBusinessHour: day=%d, open=%s, close=%s, closed=%t",
		dayOfWeek, req.OpenTime, req.CloseTime, req.IsClosed)

	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}

	hour := &domain.BusinessHour{DayOfWeek: dayOfWeek, IsClosed: req.IsClosed}

	if req.OpenTime == "" || req.CloseTime == "" {
		if !req.IsClosed {
			return nil, fmt.Errorf("%w: openTime and closeTime are required for an open day", ErrInvalidInput)
		}
		current, err := s.currentHour(ctx, dayOfWeek)
		if err != nil {
			return nil, err
		}
		hour.OpenTime, hour.CloseTime = defaultOpenTime, defaultCloseTime
		if current != nil {
			hour.OpenTime, hour.CloseTime = current.OpenTime, current.CloseTime
		}
	} else {
		open, err := types.NewTimeStringFromString(req.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
		}
		closeTime, err := types.NewTimeStringFromString(req.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
		}
		if !open.IsBefore(closeTime) && !req.IsClosed {
			return nil, fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
		}
		hour.OpenTime, hour.CloseTime = open, closeTime
	}

	saved, err := s.scheduleRepo.UpsertBusinessHour(ctx, hour)
	if err != nil {
		s.logger.Error("UpdateBusinessHour: repository error for day=%d: %v", dayOfWeek, err)
		return nil, fmt.Errorf("%w: UpdateBusinessHour - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateBusinessHour: successfully saved day=%d", dayOfWeek)
	return models.FromDomainBusinessHour(saved), nil
}

// ListClosedDays возвращает нерабочие даты начиная с from (nil - все)
func (s *Service) ListClosedDays(ctx context.Context, from *time.Time) (*models.ClosedDaysResponse, error) {
	days, err := s.scheduleRepo.ListClosedDays(ctx, from)
	if err != nil {
		s.logger.Error("ListClosedDays: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListClosedDays - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainClosedDays(days), nil
}

// AddClosedDay закрывает дату целиком
func (s *Service) AddClosedDay(ctx context.Context, req *models.CreateClosedDayRequest) (*models.ClosedDayResponse, error) {
	s.logger.Info("AddClosedDay: closing date=%s", req.Date)

	date, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(req.Date), s.location)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}

	var reason *string
	if req.Reason != nil {
		if trimmed := strings.TrimSpace(*req.Reason); trimmed != "" {
			if len([]rune(trimmed)) > domain.MaxReasonLength {
				return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
			}
			reason = &trimmed
		}
	}

	created, err := s.scheduleRepo.CreateClosedDay(ctx, &domain.ClosedDay{Date: date, Reason: reason})
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateClosedDay) {
			s.logger.Warn("AddClosedDay: date=%s is already closed", req.Date)
			return nil, ErrClosedDayExists
		}
		s.logger.Error("AddClosedDay: repository error for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: AddClosedDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddClosedDay: successfully closed date=%s, id=%s", req.Date, created.ID)
	return models.FromDomainClosedDay(created), nil
}

// DeleteClosedDay снова открывает дату
func (s *Service) DeleteClosedDay(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("DeleteClosedDay: deleting closed day id=%s", id)

	if err := s.scheduleRepo.DeleteClosedDay(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrClosedDayNotFound) {
			s.logger.Warn("DeleteClosedDay: closed day id=%s not found", id)
			return ErrClosedDayNotFound
		}
		s.logger.Error("DeleteClosedDay: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteClosedDay - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) currentHour(ctx context.Context, dayOfWeek int) (*domain.BusinessHour, error) {
	hours, err := s.scheduleRepo.ListBusinessHours(ctx)
	if err != nil {
		s.logger.Error("UpdateBusinessHour: failed to read current hours: %v", err)
		return nil, fmt.Errorf("%w: UpdateBusinessHour - repository error: %v", ErrInternal, err)
	}
	for _, h := range hours {
		if h.DayOfWeek == dayOfWeek {
			return h, nil
		}
	}
	return nil, nil
}
