package models

import (
	"github.com/shopspring/decimal"
)

// Batch is a row of the batches table.
type Batch struct {
	BatchID    int64           `db:"batch_id"`
	ProducerID string          `db:"producer_id"`
	Quantity   decimal.Decimal `db:"quantity"`
	Remaining  decimal.Decimal `db:"remaining"`
	Sequence   int64           `db:"sequence"`
	AuditFields
}

// Holding is a row of the batch_holdings table, keyed by (batch_id, holder_id).
type Holding struct {
	BatchID  int64           `db:"batch_id"`
	HolderID string          `db:"holder_id"`
	Quantity decimal.Decimal `db:"quantity"`
}
