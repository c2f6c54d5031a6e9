package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/milk_supply_chain/internal/apperrors"
	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
	portsrepo "github.com/SscSPs/milk_supply_chain/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/milk_supply_chain/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// balanceService is the read side of the balance store. There is no writer:
// balances move only inside produce and transferStock.
type balanceService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
}

// NewBalanceService creates a new balance service
func NewBalanceService(ledgerRepo portsrepo.LedgerReader, options ...ServiceOption) portssvc.BalanceSvcFacade {
	return &balanceService{
		BaseService: newBaseService(options...),
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

func (s *balanceService) StockBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if accountID == "" {
		return decimal.Zero, fmt.Errorf("%w: account id is required", apperrors.ErrInvalidArgument)
	}
	acc, err := loadAccount(ctx, s.ledgerRepo, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read balance", slog.String("account_id", accountID))
		return decimal.Zero, err
	}
	return acc.Balance, nil
}

func (s *balanceService) ListHoldings(ctx context.Context, accountID string) ([]domain.Holding, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", apperrors.ErrInvalidArgument)
	}
	holdings, err := s.ledgerRepo.ListHoldingsByHolder(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list holdings", slog.String("account_id", accountID))
		return nil, err
	}
	if holdings == nil {
		return []domain.Holding{}, nil
	}
	return holdings, nil
}
