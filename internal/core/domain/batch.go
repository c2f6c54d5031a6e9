package domain

import (
	"github.com/shopspring/decimal"
)

// BatchState is derived from Remaining; Active is both the initial state and the
// only one from which the producer can still transfer.
type BatchState string

const (
	BatchActive    BatchState = "ACTIVE"
	BatchExhausted BatchState = "EXHAUSTED"
)

// Batch is an append-only record of a quantity produced by one producer.
type Batch struct {
	BatchID    int64           `json:"batchID"`    // Strictly increasing, starts at 0
	ProducerID string          `json:"producerID"` // FK -> Account.AccountID
	Quantity   decimal.Decimal `json:"quantity"`   // Amount produced, > 0
	Remaining  decimal.Decimal `json:"remaining"`  // Quantity still held by the producer
	Sequence   int64           `json:"sequence"`   // Global sequence at creation
	AuditFields
}

// State reports whether the producer's share of the batch is exhausted.
func (b Batch) State() BatchState {
	if b.Remaining.IsPositive() {
		return BatchActive
	}
	return BatchExhausted
}

// Holding is the quantity of one batch currently held by one account.
// A holding is created for the producer on produce and for each receiver on transfer.
type Holding struct {
	BatchID  int64           `json:"batchID"`
	HolderID string          `json:"holderID"`
	Quantity decimal.Decimal `json:"quantity"`
}

// BatchFilter narrows ListBatches. AfterID is exclusive; nil starts at the first batch.
type BatchFilter struct {
	ProducerID string
	AfterID    *int64
	Limit      int
}
