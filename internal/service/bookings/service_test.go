package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/PawsBubbles-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/PawsBubbles-BookingService/internal/service/bookings/models"
)

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	apt, _ := args.Get(0).(*domain.Appointment)
	return apt, args.Error(1)
}

func (m *mockAppointmentRepo) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*domain.Appointment)
	return list, args.Error(1)
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type cancelCounter struct{ byActor map[string]int }

func (c *cancelCounter) IncBookingsCancelled(actor string) {
	if c.byActor == nil {
		c.byActor = map[string]int{}
	}
	c.byActor[actor]++
}

var bogota = time.FixedZone("COT", -5*60*60)

func newService(repo *mockAppointmentRepo, now time.Time, metrics *cancelCounter) *Service {
	return NewService(repo, inlineTx{}, Config{
		Location:            bogota,
		CancellationLead:    3 * time.Hour,
		WhatsAppCountryCode: "57",
	}, fixedClock{now: now}, metrics, nopLogger{})
}

// запись на 2026-10-20 14:00
func sampleAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              uuid.New(),
		PetName:         "Luna",
		PetType:         domain.PetSizeSmall,
		ServiceName:     "Baño",
		DurationMinutes: 60,
		Price:           30000,
		Date:            time.Date(2026, 10, 20, 0, 0, 0, 0, bogota),
		StartTime:       "14:00",
		ClientName:      "Ana",
		ClientEmail:     "ana@example.com",
		ClientPhone:     "300 123 4567",
		Status:          status,
	}
}

func TestCancelByClient(t *testing.T) {
	ctx := context.Background()

	t.Run("more than three hours ahead", func(t *testing.T) {
		repo := &mockAppointmentRepo{}
		metrics := &cancelCounter{}
		apt := sampleAppointment(domain.StatusConfirmed)
		svc := newService(repo, time.Date(2026, 10, 20, 10, 59, 0, 0, bogota), metrics)

		repo.On("GetByID", ctx, apt.ID).Return(apt, nil)
		repo.On("UpdateStatus", ctx, apt.ID, domain.StatusCancelled).Return(nil)

		resp, err := svc.CancelByClient(ctx, apt.ID, " ANA@example.com ")
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, 1, metrics.byActor[actorClient])
		repo.AssertExpectations(t)
	})

	t.Run("exactly three hours ahead", func(t *testing.T) {
		repo := &mockAppointmentRepo{}
		apt := sampleAppointment(domain.StatusConfirmed)
		svc := newService(repo, time.Date(2026, 10, 20, 11, 0, 0, 0, bogota), &cancelCounter{})

		repo.On("GetByID", ctx, apt.ID).Return(apt, nil)
		repo.On("UpdateStatus", ctx, apt.ID, domain.StatusCancelled).Return(nil)

		_, err := svc.CancelByClient(ctx, apt.ID, apt.ClientEmail)
		require.NoError(t, err)
	})

	t.Run("less than three hours ahead does not write", func(t *testing.T) {
		repo := &mockAppointmentRepo{}
		metrics := &cancelCounter{}
		apt := sampleAppointment(domain.StatusConfirmed)
		svc := newService(repo, time.Date(2026, 10, 20, 11, 1, 0, 0, bogota), metrics)

		repo.On("GetByID", ctx, apt.ID).Return(apt, nil)

		_, err := svc.CancelByClient(ctx, apt.ID, apt.ClientEmail)
		assert.ErrorIs(t, err, ErrTooLateToCancel)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, metrics.byActor)
	})

	t.Run("other email", func(t *testing.T) {
		repo := &mockAppointmentRepo{}
		apt := sampleAppointment(domain.StatusConfirmed)
		svc := newService(repo, time.Date(2026, 10, 19, 9, 0, 0, 0, bogota), &cancelCounter{})

		repo.On("GetByID", ctx, apt.ID).Return(apt, nil)

		_, err := svc.CancelByClient(ctx, apt.ID, "otro@example.com")
		assert.ErrorIs(t, err, ErrAccessDenied)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already cancelled", func(t *testing.T) {
		repo := &mockAppointmentRepo{}
		apt := sampleAppointment(domain.StatusCancelled)
		svc := newService(repo, time.Date(2026, 10, 19, 9, 0, 0, 0, bogota), &cancelCounter{})

		repo.On("GetByID", ctx, apt.ID).Return(apt, nil)

		_, err := svc.CancelByClient(ctx, apt.ID, apt.ClientEmail)
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockAppointmentRepo{}
		id := uuid.New()
		svc := newService(repo, time.Date(2026, 10, 19, 9, 0, 0, 0, bogota), &cancelCounter{})

		repo.On("GetByID", ctx, id).Return(nil, appointmentRepo.ErrAppointmentNotFound)

		_, err := svc.CancelByClient(ctx, id, "ana@example.com")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetClientBookings(t *testing.T) {
	ctx := context.Background()
	repo := &mockAppointmentRepo{}
	svc := newService(repo, time.Date(2026, 10, 20, 12, 0, 0, 0, bogota), &cancelCounter{})

	later := sampleAppointment(domain.StatusConfirmed)
	later.Date = time.Date(2026, 10, 22, 0, 0, 0, 0, bogota)
	soon := sampleAppointment(domain.StatusConfirmed)

	repo.On("List", ctx, mock.MatchedBy(func(f domain.AppointmentsFilter) bool {
		return f.ClientEmail != nil && *f.ClientEmail == "ana@example.com" && f.NewestFirst && !f.IncludeInactive
	})).Return([]*domain.Appointment{later, soon}, nil)

	resp, err := svc.GetClientBookings(ctx, "  Ana@Example.com", true)
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 2)

	require.NotNil(t, resp.Appointments[0].CanCancel)
	assert.True(t, *resp.Appointments[0].CanCancel)
	assert.False(t, *resp.Appointments[1].CanCancel) // 14:00 today, now 12:00
}

func TestGetClientBookings_EmptyEmail(t *testing.T) {
	svc := newService(&mockAppointmentRepo{}, time.Now(), &cancelCounter{})

	_, err := svc.GetClientBookings(context.Background(), "   ", false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListAll(t *testing.T) {
	ctx := context.Background()
	repo := &mockAppointmentRepo{}
	svc := newService(repo, time.Now(), &cancelCounter{})

	repo.On("List", ctx, domain.AppointmentsFilter{IncludeInactive: true}).Return(nil, nil)

	resp, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, resp.Appointments)
	assert.Empty(t, resp.Appointments)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, bogota)

	t.Run("confirm pending", func(t *testing.T) {
		repo := &mockAppointmentRepo{}
		apt := sampleAppointment(domain.StatusPending)
		repo.On("GetByID", ctx, apt.ID).Return(apt, nil)
		repo.On("UpdateStatus", ctx, apt.ID, domain.StatusConfirmed).Return(nil)

		resp, err := newService(repo, now, &cancelCounter{}).
			UpdateStatus(ctx, apt.ID, &models.UpdateStatusRequest{Status: "confirmed"})
		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
	})

	t.Run("cancel counts admin cancellation", func(t *testing.T) {
		repo := &mockAppointmentRepo{}
		metrics := &cancelCounter{}
		apt := sampleAppointment(domain.StatusConfirmed)
		repo.On("GetByID", ctx, apt.ID).Return(apt, nil)
		repo.On("UpdateStatus", ctx, apt.ID, domain.StatusCancelled).Return(nil)

		_, err := newService(repo, now, metrics).
			UpdateStatus(ctx, apt.ID, &models.UpdateStatusRequest{Status: "cancelled"})
		require.NoError(t, err)
		assert.Equal(t, 1, metrics.byActor[actorAdmin])
	})

	t.Run("back to pending", func(t *testing.T) {
		repo := &mockAppointmentRepo{}
		apt := sampleAppointment(domain.StatusConfirmed)
		repo.On("GetByID", ctx, apt.ID).Return(apt, nil)

		_, err := newService(repo, now, &cancelCounter{}).
			UpdateStatus(ctx, apt.ID, &models.UpdateStatusRequest{Status: "pending"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("restore onto a taken slot", func(t *testing.T) {
		repo := &mockAppointmentRepo{}
		apt := sampleAppointment(domain.StatusCancelled)
		repo.On("GetByID", ctx, apt.ID).Return(apt, nil)
		repo.On("UpdateStatus", ctx, apt.ID, domain.StatusConfirmed).Return(appointmentRepo.ErrSlotTaken)

		_, err := newService(repo, now, &cancelCounter{}).
			UpdateStatus(ctx, apt.ID, &models.UpdateStatusRequest{Status: "confirmed"})
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := newService(&mockAppointmentRepo{}, now, &cancelCounter{}).
			UpdateStatus(ctx, uuid.New(), &models.UpdateStatusRequest{Status: "done"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := &mockAppointmentRepo{}
		id := uuid.New()
		repo.On("GetByID", ctx, id).Return(nil, appointmentRepo.ErrAppointmentNotFound)

		_, err := newService(repo, now, &cancelCounter{}).
			UpdateStatus(ctx, id, &models.UpdateStatusRequest{Status: "cancelled"})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestDeleteByAdmin(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, bogota)

	t.Run("builds whatsapp link", func(t *testing.T) {
		repo := &mockAppointmentRepo{}
		apt := sampleAppointment(domain.StatusConfirmed)
		repo.On("GetByID", ctx, apt.ID).Return(apt, nil)
		repo.On("Delete", ctx, apt.ID).Return(nil)

		resp, err := newService(repo, now, &cancelCounter{}).DeleteByAdmin(ctx, apt.ID, "Lluvia")
		require.NoError(t, err)

		assert.Equal(t, "Hola Ana, tu cita para Luna el día 2026-10-20 ha sido cancelada. Motivo: Lluvia.", resp.Message)
		assert.Equal(t,
			"https://wa.me/573001234567?text=Hola%20Ana%2C%20tu%20cita%20para%20Luna%20el%20d%C3%ADa%202026-10-20%20ha%20sido%20cancelada.%20Motivo%3A%20Lluvia.",
			resp.WhatsAppURL)
	})

	t.Run("default reason", func(t *testing.T) {
		repo := &mockAppointmentRepo{}
		apt := sampleAppointment(domain.StatusConfirmed)
		repo.On("GetByID", ctx, apt.ID).Return(apt, nil)
		repo.On("Delete", ctx, apt.ID).Return(nil)

		resp, err := newService(repo, now, &cancelCounter{}).DeleteByAdmin(ctx, apt.ID, "  ")
		require.NoError(t, err)
		assert.Contains(t, resp.Message, "Motivo: "+DefaultCancellationReason+".")
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &mockAppointmentRepo{}
		apt := sampleAppointment(domain.StatusConfirmed)
		repo.On("GetByID", ctx, apt.ID).Return(apt, nil)
		repo.On("Delete", ctx, apt.ID).Return(errors.New("boom"))

		_, err := newService(repo, now, &cancelCounter{}).DeleteByAdmin(ctx, apt.ID, "x")
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestWhatsAppURL(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{name: "local number gets country code", phone: "(300) 123-4567", want: "https://wa.me/573001234567?text=hola"},
		{name: "already international", phone: "+57 300 123 4567", want: "https://wa.me/573001234567?text=hola"},
		{name: "other length untouched", phone: "1234567", want: "https://wa.me/1234567?text=hola"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WhatsAppURL(tt.phone, "57", "hola"))
		})
	}
}
