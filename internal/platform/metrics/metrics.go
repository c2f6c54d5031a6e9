// Package metrics exposes Prometheus collectors for ledger operations.
package metrics

import (
	"sync"

	"github.com/SscSPs/milk_supply_chain/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Metrics groups the collectors updated by the core services. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	quantity   *prometheus.CounterVec
	sequence   prometheus.Gauge

	seqMu   sync.Mutex
	lastSeq int64
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "milk_ledger",
			Name:      "operations_total",
			Help:      "Ledger operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		quantity: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "milk_ledger",
			Name:      "quantity_total",
			Help:      "Quantity produced or transferred by committed operations.",
		}, []string{"operation"}),
		sequence: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "milk_ledger",
			Name:      "sequence",
			Help:      "Last committed global sequence number.",
		}),
	}
	reg.MustRegister(m.operations, m.quantity, m.sequence)
	return m
}

// ObserveOperation counts one call of op, labelled with the error kind.
func (m *Metrics) ObserveOperation(op string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, apperrors.Kind(err)).Inc()
}

// ObserveCommit records the quantity moved by a committed operation and the sequence it took.
// Commits may be reported out of order; the sequence gauge only moves forward.
func (m *Metrics) ObserveCommit(op string, qty decimal.Decimal, sequence int64) {
	if m == nil {
		return
	}
	f, _ := qty.Float64()
	m.quantity.WithLabelValues(op).Add(f)
	m.seqMu.Lock()
	defer m.seqMu.Unlock()
	if sequence > m.lastSeq {
		m.lastSeq = sequence
		m.sequence.Set(float64(sequence))
	}
}
