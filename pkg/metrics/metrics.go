package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-коллекторов сервиса.
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	DBQueriesTotal     *prometheus.CounterVec
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	BookingsCreatedTotal   prometheus.Counter
	BookingsCancelledTotal *prometheus.CounterVec
	SlotComputationsTotal  *prometheus.CounterVec

	RealtimeSubscribers prometheus.Gauge
	RealtimeEventsTotal *prometheus.CounterVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре (удобно для тестов)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPRequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests being served",
			ConstLabels: constLabels,
		}),

		DBQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		BookingsCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of created appointments",
			ConstLabels: constLabels,
		}),
		BookingsCancelledTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Total number of cancelled appointments",
			ConstLabels: constLabels,
		}, []string{"actor"}),
		SlotComputationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_computations_total",
			Help:        "Total number of slot availability computations",
			ConstLabels: constLabels,
		}, []string{"result"}),

		RealtimeSubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "realtime_subscribers",
			Help:        "Number of active realtime subscribers",
			ConstLabels: constLabels,
		}),
		RealtimeEventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "realtime_events_total",
			Help:        "Total number of appointment change events received",
			ConstLabels: constLabels,
		}, []string{"type"}),
	}
}

// IncBookingsCreated учитывает созданную запись
func (m *Metrics) IncBookingsCreated() {
	if m == nil {
		return
	}
	m.BookingsCreatedTotal.Inc()
}

// IncBookingsCancelled учитывает отмену (actor: client | admin)
func (m *Metrics) IncBookingsCancelled(actor string) {
	if m == nil {
		return
	}
	m.BookingsCancelledTotal.WithLabelValues(actor).Inc()
}

// IncSlotComputations учитывает расчёт слотов (result: available | full | closed)
func (m *Metrics) IncSlotComputations(result string) {
	if m == nil {
		return
	}
	m.SlotComputationsTotal.WithLabelValues(result).Inc()
}

// AddRealtimeSubscribers изменяет число активных подписчиков
func (m *Metrics) AddRealtimeSubscribers(delta float64) {
	if m == nil {
		return
	}
	m.RealtimeSubscribers.Add(delta)
}

// IncRealtimeEvents учитывает событие изменения записи
func (m *Metrics) IncRealtimeEvents(eventType string) {
	if m == nil {
		return
	}
	m.RealtimeEventsTotal.WithLabelValues(eventType).Inc()
}
