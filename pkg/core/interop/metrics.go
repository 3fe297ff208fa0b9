package interop

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the syscall-dispatch counters a session updates as it
// invokes handlers: how often each named syscall fires, and how much gas
// was charged for it.
type Metrics struct {
	invocations *prometheus.CounterVec
	gasCharged  *prometheus.HistogramVec
}

// NewMetrics builds a fresh, unregistered Metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "synapse",
				Subsystem: "interop",
				Name:      "syscall_invocations_total",
				Help:      "Number of times each named syscall has been invoked.",
			},
			[]string{"method"},
		),
		gasCharged: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "synapse",
				Subsystem: "interop",
				Name:      "syscall_gas_charged",
				Help:      "Gas (10^-3 GAS units) charged per syscall invocation.",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"method"},
		),
	}
}

// Register registers m's collectors with r.
func (m *Metrics) Register(r prometheus.Registerer) error {
	if err := r.Register(m.invocations); err != nil {
		return err
	}
	return r.Register(m.gasCharged)
}

// Observe records one invocation of method at the given gas price.
func (m *Metrics) Observe(method string, price int64) {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(method).Inc()
	m.gasCharged.WithLabelValues(method).Observe(float64(price))
}
