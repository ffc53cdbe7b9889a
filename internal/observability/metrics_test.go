package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecordsCounters(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordMutation("update_status")
	m.RecordMutation("update_status")
	m.RecordNotification()
	m.RecordToast()
	m.RecordView(3, 4)
	m.RecordRequest("/api/view", "GET", 200, 10*time.Millisecond)
	m.RecordError("/api/tickets/:id", "GET", "NOT_FOUND")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.mutations.WithLabelValues("update_status")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.toasts))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.visibleTickets))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.openTickets))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/view", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("/api/tickets/:id", "GET", "NOT_FOUND")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordMutation("x")
	m.RecordNotification()
	m.RecordView(1, 1)
	m.RecordToast()
	m.RecordRequest("/", "GET", 200, time.Second)
	m.RecordError("/", "GET", "X")
}
