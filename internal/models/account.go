package models

import (
	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table. Only accounts that were ever
// written have a row.
type Account struct {
	AccountID   string          `db:"account_id"`
	Role        string          `db:"role"`
	MaxQuantity decimal.Decimal `db:"max_quantity"` // Zero unless role is RESELLER
	Balance     decimal.Decimal `db:"balance"`
	AuditFields
}
