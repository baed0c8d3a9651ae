package pgnotify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
)

const (
	// DefaultChannel канал, в который пишет триггер appointments_notify
	DefaultChannel = "appointment_changes"

	pingInterval = 90 * time.Second
)

// Publisher получатель разобранных изменений
type Publisher interface {
	Publish(ctx context.Context, change *domain.AppointmentChange) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры подключения слушателя
type Config struct {
	DSN                  string
	Channel              string
	MinReconnectInterval time.Duration
	MaxReconnectInterval time.Duration
	Location             *time.Location
}

// Listener слушает LISTEN/NOTIFY Postgres и передаёт изменения записей дальше
type Listener struct {
	cfg       Config
	publisher Publisher
	logger    Logger
}

// NewListener создает слушатель изменений таблицы appointments
func NewListener(cfg Config, publisher Publisher, logger Logger) *Listener {
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	if cfg.MinReconnectInterval <= 0 {
		cfg.MinReconnectInterval = time.Second
	}
	if cfg.MaxReconnectInterval < cfg.MinReconnectInterval {
		cfg.MaxReconnectInterval = time.Minute
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Listener{cfg: cfg, publisher: publisher, logger: logger}
}

// Run блокируется до отмены ctx
func (l *Listener) Run(ctx context.Context) error {
	listener := pq.NewListener(l.cfg.DSN, l.cfg.MinReconnectInterval, l.cfg.MaxReconnectInterval, l.onEvent)
	defer listener.Close()

	if err := listener.Listen(l.cfg.Channel); err != nil {
		return fmt.Errorf("pgnotify: listen %s: %w", l.cfg.Channel, err)
	}
	l.logger.Info("Listener: listening on channel=%s", l.cfg.Channel)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Listener: stopped")
			return nil

		case n := <-listener.Notify:
			// nil приходит после переподключения: пропущенные уведомления потеряны
			if n == nil {
				l.logger.Warn("Listener: connection re-established, some changes may have been missed")
				continue
			}
			l.handle(ctx, n.Extra)

		case <-ticker.C:
			if err := listener.Ping(); err != nil {
				l.logger.Warn("Listener: ping failed: %v", err)
			}
		}
	}
}

func (l *Listener) handle(ctx context.Context, raw string) {
	change, err := Decode(raw, l.cfg.Location)
	if err != nil {
		l.logger.Error("Listener: failed to decode notification: %v", err)
		return
	}

	if err := l.publisher.Publish(ctx, change); err != nil && !errors.Is(err, context.Canceled) {
		l.logger.Error("Listener: failed to publish %s for appointment id=%s: %v",
			change.Type, change.AppointmentID(), err)
	}
}

func (l *Listener) onEvent(event pq.ListenerEventType, err error) {
	switch event {
	case pq.ListenerEventConnected:
		l.logger.Info("Listener: connected")
	case pq.ListenerEventDisconnected:
		l.logger.Warn("Listener: disconnected: %v", err)
	case pq.ListenerEventReconnected:
		l.logger.Info("Listener: reconnected")
	case pq.ListenerEventConnectionAttemptFailed:
		l.logger.Warn("Listener: connection attempt failed: %v", err)
	}
}
