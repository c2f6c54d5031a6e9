package dto

import (
	"time"

	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetResellerRequest defines the body of a setReseller call. The sign of the
// cap is checked by the registry after the caller's role.
type SetResellerRequest struct {
	MaxQuantity *decimal.Decimal `json:"maxQuantity" binding:"required"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	Role          domain.Role     `json:"role"`
	MaxQuantity   decimal.Decimal `json:"maxQuantity"`
	Balance       decimal.Decimal `json:"balance"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// RoleResponse defines the data returned for a roleOf query.
type RoleResponse struct {
	AccountID string      `json:"accountID"`
	Role      domain.Role `json:"role"`
}

// BalanceResponse defines the data returned for a stockBalance query.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// HoldingResponse is one batch share held by an account.
type HoldingResponse struct {
	BatchID  int64           `json:"batchID"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ListHoldingsResponse wraps the holdings of an account.
type ListHoldingsResponse struct {
	AccountID string            `json:"accountID"`
	Holdings  []HoldingResponse `json:"holdings"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Role:          acc.Role,
		MaxQuantity:   acc.MaxQuantity,
		Balance:       acc.Balance,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListHoldingsResponse converts holdings of one account to the response DTO
func ToListHoldingsResponse(accountID string, holdings []domain.Holding) ListHoldingsResponse {
	res := ListHoldingsResponse{AccountID: accountID, Holdings: make([]HoldingResponse, len(holdings))}
	for i, h := range holdings {
		res.Holdings[i] = HoldingResponse{BatchID: h.BatchID, Quantity: h.Quantity}
	}
	return res
}
