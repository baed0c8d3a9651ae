package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/PawsBubbles-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/schedule/models"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/ptr"
)

type mockScheduleRepo struct{ mock.Mock }

func (m *mockScheduleRepo) ListBusinessHours(ctx context.Context) ([]*domain.BusinessHour, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*domain.BusinessHour)
	return list, args.Error(1)
}

func (m *mockScheduleRepo) UpsertBusinessHour(ctx context.Context, hour *domain.BusinessHour) (*domain.BusinessHour, error) {
	args := m.Called(ctx, hour)
	saved, _ := args.Get(0).(*domain.BusinessHour)
	return saved, args.Error(1)
}

func (m *mockScheduleRepo) ListClosedDays(ctx context.Context, from *time.Time) ([]*domain.ClosedDay, error) {
	args := m.Called(ctx, from)
	list, _ := args.Get(0).([]*domain.ClosedDay)
	return list, args.Error(1)
}

func (m *mockScheduleRepo) CreateClosedDay(ctx context.Context, day *domain.ClosedDay) (*domain.ClosedDay, error) {
	args := m.Called(ctx, day)
	created, _ := args.Get(0).(*domain.ClosedDay)
	return created, args.Error(1)
}

func (m *mockScheduleRepo) DeleteClosedDay(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var bogota = time.FixedZone("COT", -5*60*60)

func TestUpdateBusinessHour(t *testing.T) {
	ctx := context.Background()

	t.Run("open day", func(t *testing.T) {
		repo := &mockScheduleRepo{}
		repo.On("UpsertBusinessHour", ctx, mock.MatchedBy(func(h *domain.BusinessHour) bool {
			return h.DayOfWeek == 6 && h.OpenTime == "09:00" && h.CloseTime == "14:00" && !h.IsClosed
		})).Return(&domain.BusinessHour{ID: 7, DayOfWeek: 6, OpenTime: "09:00", CloseTime: "14:00"}, nil)

		resp, err := NewService(repo, bogota, nopLogger{}).
			UpdateBusinessHour(ctx, 6, &models.UpdateBusinessHourRequest{OpenTime: "09:00:00", CloseTime: "14:00"})
		require.NoError(t, err)
		assert.Equal(t, "09:00", resp.OpenTime)
	})

	t.Run("close keeps stored times", func(t *testing.T) {
		repo := &mockScheduleRepo{}
		repo.On("ListBusinessHours", ctx).Return([]*domain.BusinessHour{
			{ID: 1, DayOfWeek: 1, OpenTime: "07:30", CloseTime: "16:00"},
		}, nil)
		repo.On("UpsertBusinessHour", ctx, mock.MatchedBy(func(h *domain.BusinessHour) bool {
			return h.IsClosed && h.OpenTime == "07:30" && h.CloseTime == "16:00"
		})).Return(&domain.BusinessHour{ID: 1, DayOfWeek: 1, OpenTime: "07:30", CloseTime: "16:00", IsClosed: true}, nil)

		resp, err := NewService(repo, bogota, nopLogger{}).
			UpdateBusinessHour(ctx, 1, &models.UpdateBusinessHourRequest{IsClosed: true})
		require.NoError(t, err)
		assert.True(t, resp.IsClosed)
	})

	t.Run("open after close", func(t *testing.T) {
		repo := &mockScheduleRepo{}
		_, err := NewService(repo, bogota, nopLogger{}).
			UpdateBusinessHour(ctx, 2, &models.UpdateBusinessHourRequest{OpenTime: "17:00", CloseTime: "08:00"})
		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "UpsertBusinessHour", mock.Anything, mock.Anything)
	})

	t.Run("open day without times", func(t *testing.T) {
		_, err := NewService(&mockScheduleRepo{}, bogota, nopLogger{}).
			UpdateBusinessHour(ctx, 2, &models.UpdateBusinessHourRequest{OpenTime: "08:00"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("bad weekday", func(t *testing.T) {
		_, err := NewService(&mockScheduleRepo{}, bogota, nopLogger{}).
			UpdateBusinessHour(ctx, 7, &models.UpdateBusinessHourRequest{OpenTime: "08:00", CloseTime: "17:00"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestAddClosedDay(t *testing.T) {
	ctx := context.Background()

	t.Run("created", func(t *testing.T) {
		repo := &mockScheduleRepo{}
		id := uuid.New()
		repo.On("CreateClosedDay", ctx, mock.MatchedBy(func(d *domain.ClosedDay) bool {
			return d.Date.Equal(time.Date(2026, 12, 25, 0, 0, 0, 0, bogota)) && d.Reason != nil && *d.Reason == "Navidad"
		})).Return(&domain.ClosedDay{ID: id, Date: time.Date(2026, 12, 25, 0, 0, 0, 0, bogota), Reason: ptr.Ptr("Navidad")}, nil)

		resp, err := NewService(repo, bogota, nopLogger{}).
			AddClosedDay(ctx, &models.CreateClosedDayRequest{Date: "2026-12-25", Reason: ptr.Ptr(" Navidad ")})
		require.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
		assert.Equal(t, "2026-12-25", resp.Date)
	})

	t.Run("duplicate", func(t *testing.T) {
		repo := &mockScheduleRepo{}
		repo.On("CreateClosedDay", ctx, mock.Anything).Return(nil, scheduleRepo.ErrDuplicateClosedDay)

		_, err := NewService(repo, bogota, nopLogger{}).
			AddClosedDay(ctx, &models.CreateClosedDayRequest{Date: "2026-12-25"})
		assert.ErrorIs(t, err, ErrClosedDayExists)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := NewService(&mockScheduleRepo{}, bogota, nopLogger{}).
			AddClosedDay(ctx, &models.CreateClosedDayRequest{Date: "25/12/2026"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestDeleteClosedDay_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mockScheduleRepo{}
	id := uuid.New()
	repo.On("DeleteClosedDay", ctx, id).Return(scheduleRepo.ErrClosedDayNotFound)

	err := NewService(repo, bogota, nopLogger{}).DeleteClosedDay(ctx, id)
	assert.ErrorIs(t, err, ErrClosedDayNotFound)
}

func TestListClosedDays(t *testing.T) {
	ctx := context.Background()
	repo := &mockScheduleRepo{}
	from := time.Date(2026, 10, 19, 0, 0, 0, 0, bogota)
	repo.On("ListClosedDays", ctx, &from).Return(nil, nil)

	resp, err := NewService(repo, bogota, nopLogger{}).ListClosedDays(ctx, &from)
	require.NoError(t, err)
	assert.NotNil(t, resp.ClosedDays)
}
