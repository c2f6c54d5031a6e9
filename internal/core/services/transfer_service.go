package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/milk_supply_chain/internal/apperrors"
	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
	portsrepo "github.com/SscSPs/milk_supply_chain/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/milk_supply_chain/internal/core/ports/services"
	"github.com/SscSPs/milk_supply_chain/internal/dto"
	"github.com/SscSPs/milk_supply_chain/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transferService implements the transfer engine
type transferService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewTransferService creates a new transfer service
func NewTransferService(ledgerRepo portsrepo.LedgerRepositoryFacade, options ...ServiceOption) portssvc.TransferSvcFacade {
	return &transferService{
		BaseService: newBaseService(options...),
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// TransferStock moves quantity of batchID from the caller to toID.
//
// The caller must hold a share of the batch: the producer from creation, any
// other account once it has received part of it. Checks run in this order and
// the first failure wins: arguments, batch existence, ownership, stock, quota.
func (s *transferService) TransferStock(ctx context.Context, callerID, toID string, quantity decimal.Decimal, batchID int64) (err error) {
	defer func() { s.Metrics.ObserveOperation("transfer", err) }()

	logAttrs := []any{
		slog.String("from", callerID),
		slog.String("to", toID),
		slog.Int64("batch_id", batchID),
		slog.String("quantity", quantity.String()),
	}

	if err := validateTransferArgs(callerID, toID, quantity); err != nil {
		s.LogWarn(ctx, err, "Transfer rejected", logAttrs...)
		return err
	}

	var record domain.Transfer
	err = s.ledgerRepo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		batch, err := tx.FindBatchByID(ctx, batchID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: unknown batch %d", apperrors.ErrInvalidArgument, batchID)
			}
			return err
		}

		held, err := tx.FindHolding(ctx, batchID, callerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: caller does not hold batch %d", apperrors.ErrUnauthorized, batchID)
			}
			return err
		}
		if held.Quantity.LessThan(quantity) {
			return fmt.Errorf("%w: batch %d has %s available to caller, requested %s",
				apperrors.ErrInsufficientStock, batchID, held.Quantity, quantity)
		}

		sender, err := loadAccount(ctx, tx, callerID)
		if err != nil {
			return err
		}
		if sender.Balance.LessThan(quantity) {
			return fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientStock, sender.Balance, quantity)
		}

		receiver, err := loadAccount(ctx, tx, toID)
		if err != nil {
			return err
		}
		if !receiver.CanReceive(quantity) {
			return fmt.Errorf("%w: receiver %s holds %s of max %s, cannot receive %s",
				apperrors.ErrQuotaExceeded, toID, receiver.Balance, receiver.MaxQuantity, quantity)
		}

		received, err := tx.FindHolding(ctx, batchID, toID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
			received = &domain.Holding{BatchID: batchID, HolderID: toID, Quantity: decimal.Zero}
		}

		seq, err := tx.NextSequence(ctx)
		if err != nil {
			return err
		}
		now := s.now()

		held.Quantity = held.Quantity.Sub(quantity)
		received.Quantity = received.Quantity.Add(quantity)
		if err := tx.SaveHolding(ctx, *held); err != nil {
			return err
		}
		if err := tx.SaveHolding(ctx, *received); err != nil {
			return err
		}

		// Remaining tracks the producer's undistributed share and never grows back.
		if callerID == batch.ProducerID && batch.Remaining.IsPositive() {
			batch.Remaining = decimal.Max(batch.Remaining.Sub(quantity), decimal.Zero)
			batch.LastUpdatedAt = now
			batch.LastUpdatedBy = callerID
			if err := tx.SaveBatch(ctx, *batch); err != nil {
				return err
			}
		}

		sender.Balance = sender.Balance.Sub(quantity)
		receiver.Balance = receiver.Balance.Add(quantity)
		touch(&sender, callerID, now)
		touch(&receiver, callerID, now)
		if err := tx.SaveAccount(ctx, sender); err != nil {
			return err
		}
		if err := tx.SaveAccount(ctx, receiver); err != nil {
			return err
		}

		record = domain.Transfer{
			Sequence:   seq,
			TransferID: uuid.NewString(),
			BatchID:    batchID,
			FromID:     callerID,
			ToID:       toID,
			Quantity:   quantity,
			CreatedAt:  now,
		}
		return tx.AppendTransfer(ctx, record)
	})
	if err != nil {
		s.logFailure(ctx, err, "Transfer rejected", logAttrs...)
		return err
	}

	s.Metrics.ObserveCommit("transfer", quantity, record.Sequence)
	s.LogInfo(ctx, "Stock transferred", append(logAttrs,
		slog.String("transfer_id", record.TransferID),
		slog.Int64("sequence", record.Sequence))...)
	return nil
}

func validateTransferArgs(callerID, toID string, quantity decimal.Decimal) error {
	if callerID == "" {
		return fmt.Errorf("%w: missing caller identity", apperrors.ErrUnauthorized)
	}
	if !quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive, got %s", apperrors.ErrInvalidArgument, quantity)
	}
	if toID == "" {
		return fmt.Errorf("%w: receiver is required", apperrors.ErrInvalidArgument)
	}
	if toID == callerID {
		return fmt.Errorf("%w: cannot transfer to self", apperrors.ErrInvalidArgument)
	}
	return nil
}

// ListTransfers retrieves a page of the audit log
func (s *transferService) ListTransfers(ctx context.Context, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	filter := domain.TransferFilter{AccountID: params.AccountID, BatchID: params.BatchID, Limit: limit}
	if params.NextToken != nil && *params.NextToken != "" {
		after, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
		}
		filter.AfterSequence = after
	}

	transfers, err := s.ledgerRepo.ListTransfers(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transfers", slog.String("account_id", params.AccountID))
		return nil, err
	}

	resp := &dto.ListTransfersResponse{Transfers: make([]dto.TransferResponse, len(transfers))}
	for i, t := range transfers {
		resp.Transfers[i] = dto.ToTransferResponse(t)
	}
	if len(transfers) > 0 {
		resp.NextToken = pagination.NextToken(len(transfers), limit, transfers[len(transfers)-1].Sequence)
	}
	return resp, nil
}
