package domain

import (
	"github.com/shopspring/decimal"
)

// Role is the closed set of participant roles known to the registry.
type Role string

const (
	RoleNone     Role = "NONE"
	RoleProducer Role = "PRODUCER"
	RoleReseller Role = "RESELLER"
	RoleAdmin    Role = "ADMIN"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleNone, RoleProducer, RoleReseller, RoleAdmin:
		return true
	default:
		return false
	}
}

// Account is a participant in the supply chain. Accounts exist implicitly:
// an id that was never written reads back as a NONE account with zero balance.
type Account struct {
	AccountID   string          `json:"accountID"`   // Opaque caller identity
	Role        Role            `json:"role"`        // NONE, PRODUCER, RESELLER or ADMIN
	MaxQuantity decimal.Decimal `json:"maxQuantity"` // Only meaningful for RESELLER
	Balance     decimal.Decimal `json:"balance"`     // Current on-hand quantity, never negative
	AuditFields
}

// NewAccount returns the implicit zero-value account for id.
func NewAccount(id string) Account {
	return Account{
		AccountID:   id,
		Role:        RoleNone,
		MaxQuantity: decimal.Zero,
		Balance:     decimal.Zero,
	}
}

// CanReceive reports whether crediting qty keeps the account within its quota.
// Only resellers are capped.
func (a Account) CanReceive(qty decimal.Decimal) bool {
	if a.Role != RoleReseller {
		return true
	}
	return a.Balance.Add(qty).LessThanOrEqual(a.MaxQuantity)
}
