package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	"github.com/m04kA/PawsBubbles-BookingService/internal/realtime"
)

// DefaultTopic топик изменений записей
const DefaultTopic = "appointments.changes.v1"

const (
	headerEventID   = "event_id"
	headerEventType = "event_type"

	defaultQueueSize    = 256
	defaultWriteTimeout = 10 * time.Second
)

var (
	// ErrProducerClosed публикация после Close
	ErrProducerClosed = errors.New("kafka: producer closed")

	// ErrNoBrokers не задан ни один брокер
	ErrNoBrokers = errors.New("kafka: at least one broker is required")

	// ErrQueueFull очередь отправки переполнена, событие не попадёт в Kafka
	ErrQueueFull = errors.New("kafka: publish queue is full")
)

// MessageWriter часть kafka.Writer, нужная продюсеру
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Producer публикует изменения записей в Kafka.
// Publish только ставит сообщение в очередь, запись в брокер идёт в фоновом воркере,
// поэтому медленная Kafka не задерживает остальных получателей изменений.
type Producer struct {
	writer       MessageWriter
	topic        string
	writeTimeout time.Duration
	now          func() time.Time
	logger       Logger

	queue chan kafka.Message
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewProducer создает продюсер с kafka.Writer, ключ сообщения - id записи
func NewProducer(brokers []string, topic string, logger Logger) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if topic == "" {
		topic = DefaultTopic
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // порядок изменений одной записи
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  5,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger:  kafka.LoggerFunc(func(msg string, args ...any) { logger.Error("kafka: "+msg, args...) }),
	}

	return NewProducerWithWriter(writer, topic, logger), nil
}

// NewProducerWithWriter создает продюсер поверх готового writer и запускает воркер отправки
func NewProducerWithWriter(writer MessageWriter, topic string, logger Logger) *Producer {
	return newProducer(writer, topic, defaultQueueSize, defaultWriteTimeout, logger)
}

func newProducer(writer MessageWriter, topic string, queueSize int, writeTimeout time.Duration, logger Logger) *Producer {
	p := &Producer{
		writer:       writer,
		topic:        topic,
		writeTimeout: writeTimeout,
		now:          time.Now,
		logger:       logger,
		queue:        make(chan kafka.Message, queueSize),
		done:         make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish ставит изменение в очередь отправки и не ждёт брокер
func (p *Producer) Publish(_ context.Context, change *domain.AppointmentChange) error {
	msg, err := buildMessage(change, uuid.NewString(), p.now())
	if err != nil {
		return err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrProducerClosed
	}

	select {
	case p.queue <- msg:
		return nil
	default:
		p.logger.Error("Producer: queue is full, dropping %s for appointment id=%s", change.Type, change.AppointmentID())
		return fmt.Errorf("%w: %s for appointment id=%s", ErrQueueFull, change.Type, change.AppointmentID())
	}
}

// Close дожидается отправки очереди и закрывает writer
func (p *Producer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.writer.Close()
}

func (p *Producer) run() {
	defer close(p.done)

	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.logger.Error("Producer: failed to write %s for appointment id=%s: %v",
				headerValue(msg, headerEventType), msg.Key, err)
		}
		cancel()
	}
}

// EventType тип события для заголовка event_type
func EventType(change *domain.AppointmentChange) string {
	return "appointment." + strings.ToLower(change.Type)
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func buildMessage(change *domain.AppointmentChange, eventID string, at time.Time) (kafka.Message, error) {
	notice, _ := realtime.AdminNotice(change)
	value, err := json.Marshal(realtime.NewEvent(change, notice, at))
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: marshal event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(change.AppointmentID().String()),
		Value: value,
		Time:  at,
		Headers: []kafka.Header{
			{Key: headerEventID, Value: []byte(eventID)},
			{Key: headerEventType, Value: []byte(EventType(change))},
		},
	}, nil
}
