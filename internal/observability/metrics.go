package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors of the service.
type Metrics struct {
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	errors         *prometheus.CounterVec
	mutations      *prometheus.CounterVec
	notifications  prometheus.Counter
	visibleTickets prometheus.Gauge
	openTickets    prometheus.Gauge
	toasts         prometheus.Counter
}

// NewMetrics registers collectors on reg. Tests pass a fresh
// prometheus.NewRegistry() to stay isolated.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "triage",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests, labeled by route, method and status",
		}, []string{"path", "method", "status"}),
		requestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "triage",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "triage",
			Subsystem: "http",
			Name:      "errors_total",
			Help:      "HTTP errors, labeled by route, method and error code",
		}, []string{"path", "method", "code"}),
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "triage",
			Subsystem: "view",
			Name:      "mutations_total",
			Help:      "View-state operations, labeled by operation",
		}, []string{"operation"}),
		notifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "triage",
			Subsystem: "store",
			Name:      "notifications_total",
			Help:      "State-change notifications broadcast by the ticket store",
		}),
		visibleTickets: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "triage",
			Subsystem: "view",
			Name:      "visible_tickets",
			Help:      "Tickets in the latest derived view",
		}),
		openTickets: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "triage",
			Subsystem: "view",
			Name:      "open_tickets",
			Help:      "Tickets whose status is not ended",
		}),
		toasts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "triage",
			Subsystem: "toast",
			Name:      "messages_total",
			Help:      "Toast messages pushed",
		}),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(path, method, code).Inc()
}

// RecordMutation counts one view-state operation.
func (m *Metrics) RecordMutation(operation string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(operation).Inc()
}

// RecordNotification counts one store broadcast.
func (m *Metrics) RecordNotification() {
	if m == nil {
		return
	}
	m.notifications.Inc()
}

// RecordView stores the sizes of the latest derived view.
func (m *Metrics) RecordView(visible, open int) {
	if m == nil {
		return
	}
	m.visibleTickets.Set(float64(visible))
	m.openTickets.Set(float64(open))
}

// RecordToast counts one pushed toast.
func (m *Metrics) RecordToast() {
	if m == nil {
		return
	}
	m.toasts.Inc()
}
