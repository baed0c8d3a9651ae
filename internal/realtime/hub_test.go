package realtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countingMetrics struct {
	subscribers float64
	events      map[string]int
}

func (m *countingMetrics) AddRealtimeSubscribers(delta float64) { m.subscribers += delta }
func (m *countingMetrics) IncRealtimeEvents(eventType string) {
	if m.events == nil {
		m.events = make(map[string]int)
	}
	m.events[eventType]++
}

func appointment(email string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:          uuid.New(),
		PetName:     "Luna",
		ServiceName: "Baño",
		ClientName:  "Ana",
		ClientEmail: email,
		Status:      status,
	}
}

func insert(a *domain.Appointment) *domain.AppointmentChange {
	return &domain.AppointmentChange{Type: domain.ChangeInsert, New: a}
}

func update(old *domain.Appointment, status domain.AppointmentStatus) *domain.AppointmentChange {
	next := *old
	next.Status = status
	return &domain.AppointmentChange{Type: domain.ChangeUpdate, Old: old, New: &next}
}

func TestHub_DeliversByFilter(t *testing.T) {
	ctx := context.Background()
	metrics := &countingMetrics{}
	hub := NewHub(4, metrics, nopLogger{})

	all, cancelAll := hub.Subscribe(nil)
	defer cancelAll()
	ana, cancelAna := hub.Subscribe(ClientFilter(" ANA@example.com "))
	defer cancelAna()

	assert.Equal(t, float64(2), metrics.subscribers)

	anaChange := insert(appointment("ana@example.com", domain.StatusConfirmed))
	otherChange := insert(appointment("luis@example.com", domain.StatusConfirmed))
	require.NoError(t, hub.Publish(ctx, anaChange))
	require.NoError(t, hub.Publish(ctx, otherChange))

	assert.Same(t, anaChange, <-all)
	assert.Same(t, otherChange, <-all)
	assert.Same(t, anaChange, <-ana)

	select {
	case got := <-ana:
		t.Fatalf("unexpected change for another client: %v", got)
	default:
	}

	assert.Equal(t, 2, metrics.events[domain.ChangeInsert])
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(1, nil, nopLogger{})

	ch, cancel := hub.Subscribe(nil)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			_ = hub.Publish(ctx, insert(appointment("a@example.com", domain.StatusConfirmed)))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}
	assert.Len(t, ch, 1)
}

func TestHub_CancelAndClose(t *testing.T) {
	metrics := &countingMetrics{}
	hub := NewHub(1, metrics, nopLogger{})

	first, cancelFirst := hub.Subscribe(nil)
	second, _ := hub.Subscribe(nil)

	cancelFirst()
	cancelFirst()
	_, open := <-first
	assert.False(t, open)
	assert.Equal(t, 1, hub.Subscribers())

	hub.Close()
	_, open = <-second
	assert.False(t, open)
	assert.Equal(t, float64(0), metrics.subscribers)

	late, _ := hub.Subscribe(nil)
	_, open = <-late
	assert.False(t, open)
}

type failingPublisher struct{ calls int }

func (p *failingPublisher) Publish(context.Context, *domain.AppointmentChange) error {
	p.calls++
	return errors.New("broker down")
}

func TestFanout_DeliversToEveryone(t *testing.T) {
	hub := NewHub(1, nil, nopLogger{})
	ch, cancel := hub.Subscribe(nil)
	defer cancel()

	broken := &failingPublisher{}
	err := Fanout{broken, hub}.Publish(context.Background(), insert(appointment("a@example.com", domain.StatusConfirmed)))

	assert.Error(t, err)
	assert.Equal(t, 1, broken.calls)
	assert.Len(t, ch, 1)
}
