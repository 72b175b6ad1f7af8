package authsdk

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records APIClient traffic.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics registers the client collectors with reg. It panics if they
// are already registered there.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "propauth",
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Requests sent by the API client by method, path and outcome code",
			},
			[]string{"method", "path", "code"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "propauth",
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "API client request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

func (m *Metrics) observe(method, path string, status int, apiErr *APIError, elapsed time.Duration) {
	if m == nil {
		return
	}

	code := strconv.Itoa(status)
	if status == 0 && apiErr != nil {
		code = apiErr.Kind.String()
	}

	m.Requests.WithLabelValues(method, path, code).Inc()
	m.Duration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
