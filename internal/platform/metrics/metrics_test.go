package metrics

import (
	"fmt"
	"sync"
	"testing"

	"github.com/SscSPs/milk_supply_chain/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestObserveOperation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveOperation("produce", nil)
	m.ObserveOperation("produce", nil)
	m.ObserveOperation("produce", fmt.Errorf("%w: not an authorized producer", apperrors.ErrUnauthorized))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("produce", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("produce", "unauthorized")))
}

func TestObserveCommit(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveCommit("transfer", decimal.RequireFromString("12.5"), 4)
	m.ObserveCommit("transfer", decimal.NewFromInt(7), 5)

	assert.Equal(t, 19.5, testutil.ToFloat64(m.quantity.WithLabelValues("transfer")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.sequence))
}

func TestSequenceGaugeNeverMovesBack(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveCommit("produce", decimal.NewFromInt(1), 9)
	m.ObserveCommit("transfer", decimal.NewFromInt(1), 8)
	assert.Equal(t, 9.0, testutil.ToFloat64(m.sequence))

	var wg sync.WaitGroup
	for seq := int64(1); seq <= 50; seq++ {
		wg.Add(1)
		go func(seq int64) {
			defer wg.Done()
			m.ObserveCommit("transfer", decimal.NewFromInt(1), seq)
		}(seq)
	}
	wg.Wait()
	assert.Equal(t, 50.0, testutil.ToFloat64(m.sequence))
	assert.Equal(t, 51.0, testutil.ToFloat64(m.quantity.WithLabelValues("transfer")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("produce", nil)
		m.ObserveCommit("produce", decimal.NewFromInt(1), 1)
	})
}
