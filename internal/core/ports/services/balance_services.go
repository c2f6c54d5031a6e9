package services

import (
	"context"

	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSvcFacade exposes the read-only balance store. Balances change only
// as a side effect of produce and transferStock.
type BalanceSvcFacade interface {
	// StockBalance returns the on-hand quantity of accountID, zero if never credited.
	StockBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// ListHoldings returns the per-batch breakdown of the balance of accountID.
	ListHoldings(ctx context.Context, accountID string) ([]domain.Holding, error)
}
