package mockauth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts account events.
type Metrics struct {
	Signups *prometheus.CounterVec
	Logins  *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Signups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mockauth",
				Name:      "signups_total",
				Help:      "Signup attempts by result",
			},
			[]string{"result"},
		),
		Logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mockauth",
				Name:      "logins_total",
				Help:      "Login attempts by result (success, pending, failure)",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) signup(result string) {
	if m != nil {
		m.Signups.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) login(result string) {
	if m != nil {
		m.Logins.WithLabelValues(result).Inc()
	}
}
