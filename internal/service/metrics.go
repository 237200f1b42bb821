package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts store operations by outcome.
type Metrics struct {
	operations *prometheus.CounterVec
}

// NewMetrics creates the store metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notes_store_operations_total",
				Help: "Total number of note store operations by result.",
			},
			[]string{"op", "result"},
		),
	}
	if err := reg.Register(m.operations); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(op, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, result).Inc()
}
