package realtime

import (
	"context"
	"sync"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
)

const defaultBufferSize = 16

// Filter отбирает изменения для подписчика. nil пропускает всё.
type Filter func(change *domain.AppointmentChange) bool

// ClientFilter пропускает только изменения записей клиента с данным email
func ClientFilter(email string) Filter {
	email = domain.NormalizeEmail(email)
	return func(change *domain.AppointmentChange) bool {
		cur := change.Current()
		return cur != nil && domain.NormalizeEmail(cur.ClientEmail) == email
	}
}

type subscriber struct {
	ch     chan *domain.AppointmentChange
	filter Filter
}

// Hub рассылает изменения записей подписчикам внутри процесса.
// Медленный подписчик теряет события, издатель не блокируется.
type Hub struct {
	mu         sync.RWMutex
	subs       map[uint64]*subscriber
	nextID     uint64
	bufferSize int
	closed     bool

	metrics MetricsRecorder
	logger  Logger
}

// NewHub создает хаб. metrics может быть nil.
func NewHub(bufferSize int, metrics MetricsRecorder, logger Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &Hub{
		subs:       make(map[uint64]*subscriber),
		bufferSize: bufferSize,
		metrics:    metrics,
		logger:     logger,
	}
}

// Subscribe регистрирует подписчика. Канал закрывается вызовом cancel или Close хаба.
func (h *Hub) Subscribe(filter Filter) (<-chan *domain.AppointmentChange, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan *domain.AppointmentChange, h.bufferSize)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = &subscriber{ch: ch, filter: filter}
	if h.metrics != nil {
		h.metrics.AddRealtimeSubscribers(1)
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() { h.unsubscribe(id) })
	}
	return ch, cancel
}

func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub, ok := h.subs[id]
	if !ok {
		return
	}
	delete(h.subs, id)
	close(sub.ch)
	if h.metrics != nil {
		h.metrics.AddRealtimeSubscribers(-1)
	}
}

// Publish раздаёт изменение всем подходящим подписчикам
func (h *Hub) Publish(_ context.Context, change *domain.AppointmentChange) error {
	if change == nil {
		return nil
	}

	if h.metrics != nil {
		h.metrics.IncRealtimeEvents(change.Type)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, sub := range h.subs {
		if sub.filter != nil && !sub.filter(change) {
			continue
		}
		select {
		case sub.ch <- change:
		default:
			h.logger.Warn("Hub: subscriber %d is too slow, dropping %s for appointment id=%s",
				id, change.Type, change.AppointmentID())
		}
	}
	return nil
}

// Subscribers количество активных подписчиков
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close закрывает каналы всех подписчиков
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subs {
		delete(h.subs, id)
		close(sub.ch)
		if h.metrics != nil {
			h.metrics.AddRealtimeSubscribers(-1)
		}
	}
}

// Fanout передаёт изменение нескольким получателям по очереди
type Fanout []Publisher

// Publish возвращает первую ошибку, но доставляет изменение всем получателям
func (f Fanout) Publish(ctx context.Context, change *domain.AppointmentChange) error {
	var firstErr error
	for _, p := range f {
		if err := p.Publish(ctx, change); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
