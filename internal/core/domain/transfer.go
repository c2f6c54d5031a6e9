package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is the immutable audit record appended by every successful stock movement.
type Transfer struct {
	Sequence   int64           `json:"sequence"`   // Global order of the committing transaction
	TransferID string          `json:"transferID"` // UUID
	BatchID    int64           `json:"batchID"`
	FromID     string          `json:"fromID"`
	ToID       string          `json:"toID"`
	Quantity   decimal.Decimal `json:"quantity"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// TransferFilter narrows ListTransfers. AccountID matches either side of the transfer.
type TransferFilter struct {
	AccountID     string
	BatchID       *int64
	AfterSequence int64
	Limit         int
}
