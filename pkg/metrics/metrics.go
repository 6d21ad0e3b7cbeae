package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты для меток
const (
	OutcomeCreated  = "created"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"

	ResultOK      = "ok"
	ResultError   = "error"
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultDropped = "dropped"
)

// Metrics сборщик метрик сервиса
// Все методы безопасны для nil-получателя, поэтому при выключенных метриках можно передавать nil
type Metrics struct {
	registry *prometheus.Registry

	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	bookings          *prometheus.CounterVec
	sweepDeleted      prometheus.Counter
	sweepRuns         *prometheus.CounterVec
	assistantRequests *prometheus.CounterVec
	notifications     *prometheus.CounterVec
}

// New создает сборщик с собственным реестром
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_total",
			Help:        "Booking commit attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		sweepDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "sweep_deleted_total",
			Help:        "Appointments deleted by the retention sweep",
			ConstLabels: constLabels,
		}),
		sweepRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "sweep_runs_total",
			Help:        "Retention sweep runs by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		assistantRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "assistant_requests_total",
			Help:        "Fallback assistant requests by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Operator notifications by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.bookings,
		m.sweepDeleted,
		m.sweepRuns,
		m.assistantRequests,
		m.notifications,
	)

	return m
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry нужен тестам для чтения значений
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) IncBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveSweep(result string, deleted int64) {
	if m == nil {
		return
	}
	m.sweepRuns.WithLabelValues(result).Inc()
	if deleted > 0 {
		m.sweepDeleted.Add(float64(deleted))
	}
}

func (m *Metrics) IncAssistant(result string) {
	if m == nil {
		return
	}
	m.assistantRequests.WithLabelValues(result).Inc()
}

func (m *Metrics) IncNotification(result string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(result).Inc()
}
