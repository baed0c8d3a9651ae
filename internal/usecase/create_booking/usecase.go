package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/PawsBubbles-BookingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/PawsBubbles-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/PawsBubbles-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/types"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	scheduleRepo    ScheduleRepository
	txManager       TransactionManager
	rules           get_available_slots.Rules
	initialStatus   domain.AppointmentStatus
	timeProvider    TimeProvider
	metrics         MetricsRecorder
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	rules get_available_slots.Rules,
	initialStatus domain.AppointmentStatus,
	timeProvider TimeProvider,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if !initialStatus.Valid() || initialStatus == domain.StatusCancelled {
		initialStatus = domain.StatusConfirmed
	}
	if timeProvider == nil {
		timeProvider = &get_available_slots.RealTimeProvider{}
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		scheduleRepo:    scheduleRepo,
		txManager:       txManager,
		rules:           rules,
		initialStatus:   initialStatus,
		timeProvider:    timeProvider,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка слота и вставка идут в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%s, date=%s, time=%s, email=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, domain.NormalizeEmail(req.ClientEmail))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(string(req.StartTime))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	now := uc.timeProvider.Now()

	var result *domain.Appointment

	// 2. Все чтения и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Услуга
		service, err := uc.serviceRepo.GetByID(txCtx, req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}

		// 2.2. Расписание дня; записи читаются с блокировкой (FOR UPDATE)
		day, err := get_available_slots.LoadDaySchedule(txCtx, uc.scheduleRepo, uc.appointmentRepo, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to load schedule: %v", err)
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}

		// 2.3. Пересчитываем сетку тем же калькулятором, что и для мастера
		slots := get_available_slots.CalculateSlots(day, service.DurationMinutes, now, uc.rules)
		if len(slots) == 0 {
			uc.logger.Warn("CreateBooking: no slots on %s", req.Date.Format(domain.DateFormat))
			return ErrDayClosed
		}

		slot, ok := domain.FindSlot(slots, startTime)
		if !ok {
			uc.logger.Warn("CreateBooking: time %s is not on the grid for %s", startTime, req.Date.Format(domain.DateFormat))
			return ErrInvalidTimeSlot
		}
		if !slot.IsAvailable {
			uc.logger.Warn("CreateBooking: slot %s %s is not available", req.Date.Format(domain.DateFormat), startTime)
			return ErrSlotNotAvailable
		}

		// 2.4. Создаём запись с денормализацией данных услуги
		apt := &domain.Appointment{
			PetName:         strings.TrimSpace(req.PetName),
			PetType:         service.PetSize,
			ServiceName:     service.Name,
			DurationMinutes: service.DurationMinutes,
			Price:           service.Price,
			Date:            req.Date,
			StartTime:       startTime,
			ClientName:      strings.TrimSpace(req.ClientName),
			ClientEmail:     domain.NormalizeEmail(req.ClientEmail),
			ClientPhone:     strings.TrimSpace(req.ClientPhone),
			Status:          uc.initialStatus,
		}

		created, err := uc.appointmentRepo.Create(txCtx, apt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s %s taken concurrently", req.Date.Format(domain.DateFormat), startTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingsCreated()
	}

	uc.logger.Info("CreateBooking: successfully created appointment id=%s", result.ID)

	return &Response{Appointment: result}, nil
}
