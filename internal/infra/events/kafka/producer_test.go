package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	"github.com/m04kA/PawsBubbles-BookingService/internal/realtime"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

// stuckWriter держит запись до release или до отмены контекста
type stuckWriter struct {
	release chan struct{}
	started chan struct{}
	once    sync.Once

	mu       sync.Mutex
	written  int
	timedOut int
}

func newStuckWriter() *stuckWriter {
	return &stuckWriter{release: make(chan struct{}), started: make(chan struct{})}
}

func (w *stuckWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.once.Do(func() { close(w.started) })
	select {
	case <-w.release:
		w.mu.Lock()
		w.written += len(msgs)
		w.mu.Unlock()
		return nil
	case <-ctx.Done():
		w.mu.Lock()
		w.timedOut++
		w.mu.Unlock()
		return ctx.Err()
	}
}

func (w *stuckWriter) Close() error { return nil }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newChange() *domain.AppointmentChange {
	return &domain.AppointmentChange{
		Type: domain.ChangeInsert,
		New: &domain.Appointment{
			ID:          uuid.New(),
			PetName:     "Luna",
			ServiceName: "Baño",
			Status:      domain.StatusConfirmed,
		},
	}
}

func TestProducer_Publish(t *testing.T) {
	writer := &fakeWriter{}
	producer := NewProducerWithWriter(writer, DefaultTopic, nopLogger{})
	producer.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }

	change := newChange()
	require.NoError(t, producer.Publish(context.Background(), change))
	require.NoError(t, producer.Close())
	require.Len(t, writer.messages, 1)
	assert.True(t, writer.closed)

	msg := writer.messages[0]
	assert.Equal(t, change.New.ID.String(), string(msg.Key))
	assert.Equal(t, "appointment.insert", headerValue(msg, headerEventType))
	assert.NotEmpty(t, headerValue(msg, headerEventID))

	var event realtime.Event
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "NUEVA RESERVA: Luna (Baño)", event.Notice)
	assert.Equal(t, change.New.ID.String(), event.AppointmentID)
}

func TestProducer_Closed(t *testing.T) {
	writer := &fakeWriter{}
	producer := NewProducerWithWriter(writer, DefaultTopic, nopLogger{})

	require.NoError(t, producer.Close())
	require.NoError(t, producer.Close())
	assert.True(t, writer.closed)

	assert.ErrorIs(t, producer.Publish(context.Background(), newChange()), ErrProducerClosed)
}

func TestNewProducer_NoBrokers(t *testing.T) {
	_, err := NewProducer(nil, "", nopLogger{})
	assert.ErrorIs(t, err, ErrNoBrokers)
}

func TestProducer_StuckBrokerDoesNotDelayHub(t *testing.T) {
	writer := newStuckWriter()
	producer := NewProducerWithWriter(writer, DefaultTopic, nopLogger{})
	hub := realtime.NewHub(4, nil, nopLogger{})
	defer hub.Close()

	events, cancel := hub.Subscribe(nil)
	defer cancel()

	publishers := realtime.Fanout{producer, hub}
	first, second := newChange(), newChange()

	require.NoError(t, publishers.Publish(context.Background(), first))
	<-writer.started

	done := make(chan error, 1)
	go func() { done <- publishers.Publish(context.Background(), second) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("publish waited for kafka")
	}

	for _, want := range []*domain.AppointmentChange{first, second} {
		select {
		case got := <-events:
			assert.Equal(t, want.AppointmentID(), got.AppointmentID())
		case <-time.After(200 * time.Millisecond):
			t.Fatal("hub did not receive change while kafka was stuck")
		}
	}

	close(writer.release)
	require.NoError(t, producer.Close())
	assert.Equal(t, 2, writer.written)
}

func TestProducer_WriteTimeout(t *testing.T) {
	writer := newStuckWriter()
	producer := newProducer(writer, DefaultTopic, 4, 20*time.Millisecond, nopLogger{})

	require.NoError(t, producer.Publish(context.Background(), newChange()))
	require.NoError(t, producer.Close())

	assert.Equal(t, 1, writer.timedOut)
	assert.Zero(t, writer.written)
}

func TestProducer_QueueFull(t *testing.T) {
	writer := newStuckWriter()
	producer := newProducer(writer, DefaultTopic, 1, time.Second, nopLogger{})

	require.NoError(t, producer.Publish(context.Background(), newChange()))
	<-writer.started
	require.NoError(t, producer.Publish(context.Background(), newChange()))

	assert.ErrorIs(t, producer.Publish(context.Background(), newChange()), ErrQueueFull)

	close(writer.release)
	require.NoError(t, producer.Close())
	assert.Equal(t, 2, writer.written)
}
