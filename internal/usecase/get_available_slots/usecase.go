package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/PawsBubbles-BookingService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/PawsBubbles-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/ptr"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	serviceRepo     ServiceRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	rules           Rules
	timeProvider    TimeProvider
	metrics         MetricsRecorder
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	rules Rules,
	timeProvider TimeProvider,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		serviceRepo:     serviceRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		rules:           rules,
		timeProvider:    timeProvider,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем услугу (длительность)
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Расписание дня и активные записи
	day, err := LoadDaySchedule(ctx, uc.scheduleRepo, uc.appointmentRepo, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load schedule for %s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Сетка слотов
	slots := CalculateSlots(day, service.DurationMinutes, now, uc.rules)

	result := "open"
	if day.IsClosed() {
		result = "closed"
	} else if domain.CountAvailable(slots) == 0 {
		result = "full"
	}
	if uc.metrics != nil {
		uc.metrics.IncSlotComputations(result)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots (%d available) for service=%s, date=%s",
		len(slots), domain.CountAvailable(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		IsClosed:        day.IsClosed(),
		Slots:           slots,
	}, nil
}

// MinBookingDate возвращает минимальную дату, доступную для выбора в мастере записи
func (uc *UseCase) MinBookingDate(ctx context.Context) (*MinDateResponse, error) {
	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	day, err := LoadDaySchedule(ctx, uc.scheduleRepo, nil, today)
	if err != nil {
		uc.logger.Error("MinBookingDate: failed to load schedule for today: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	minDate := MinBookingDate(day, now, uc.rules)

	return &MinDateResponse{
		Date:       minDate,
		TodayOpen:  minDate.Equal(today),
		ComputedAt: now,
	}, nil
}

// LoadDaySchedule собирает расписание на дату: часы работы дня недели, нерабочий день
// и активные записи. appointments может быть nil, тогда записи не загружаются.
func LoadDaySchedule(
	ctx context.Context,
	schedules ScheduleRepository,
	appointments AppointmentRepository,
	date time.Time,
) (*domain.DaySchedule, error) {
	day := &domain.DaySchedule{Date: date}

	hours, err := schedules.GetBusinessHour(ctx, weekdayIndex(date))
	switch {
	case err == nil:
		day.Hours = hours
	case errors.Is(err, scheduleRepo.ErrBusinessHourNotFound):
	default:
		return nil, fmt.Errorf("failed to get business hours: %w", err)
	}

	closed, err := schedules.GetClosedDay(ctx, date)
	switch {
	case err == nil:
		day.ClosedDay = closed
	case errors.Is(err, scheduleRepo.ErrClosedDayNotFound):
	default:
		return nil, fmt.Errorf("failed to get closed day: %w", err)
	}

	if day.IsClosed() || appointments == nil {
		return day, nil
	}

	active, err := appointments.List(ctx, domain.AppointmentsFilter{
		Date:            ptr.Ptr(date),
		IncludeInactive: false, // только активные записи занимают время
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get appointments: %w", err)
	}
	day.Appointments = active

	return day, nil
}

