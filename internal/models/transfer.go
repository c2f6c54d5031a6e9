package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is a row of the append-only transfers table.
type Transfer struct {
	Sequence      int64           `db:"sequence"`
	TransferID    string          `db:"transfer_id"`
	BatchID       int64           `db:"batch_id"`
	FromAccountID string          `db:"from_account_id"`
	ToAccountID   string          `db:"to_account_id"`
	Quantity      decimal.Decimal `db:"quantity"`
	CreatedAt     time.Time       `db:"created_at"`
}
