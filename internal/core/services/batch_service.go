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
	"github.com/shopspring/decimal"
)

const defaultPageSize = 20

// batchService implements the batch ledger
type batchService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewBatchService creates a new batch service
func NewBatchService(ledgerRepo portsrepo.LedgerRepositoryFacade, options ...ServiceOption) portssvc.BatchSvcFacade {
	return &batchService{
		BaseService: newBaseService(options...),
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.BatchSvcFacade = (*batchService)(nil)

// Produce allocates a new batch for the calling producer and credits its balance.
func (s *batchService) Produce(ctx context.Context, callerID string, quantity decimal.Decimal) (batchID int64, err error) {
	defer func() { s.Metrics.ObserveOperation("produce", err) }()

	var created domain.Batch
	err = s.ledgerRepo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		producer, err := authorizeCaller(ctx, tx, callerID, domain.RoleProducer, "not an authorized producer")
		if err != nil {
			return err
		}
		if !quantity.IsPositive() {
			return fmt.Errorf("%w: quantity must be positive, got %s", apperrors.ErrInvalidArgument, quantity)
		}

		seq, err := tx.NextSequence(ctx)
		if err != nil {
			return err
		}
		id, err := tx.NextBatchID(ctx)
		if err != nil {
			return err
		}

		now := s.now()
		batch := domain.Batch{
			BatchID:    id,
			ProducerID: callerID,
			Quantity:   quantity,
			Remaining:  quantity,
			Sequence:   seq,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     callerID,
				LastUpdatedAt: now,
				LastUpdatedBy: callerID,
			},
		}
		if err := tx.SaveBatch(ctx, batch); err != nil {
			return err
		}
		if err := tx.SaveHolding(ctx, domain.Holding{BatchID: id, HolderID: callerID, Quantity: quantity}); err != nil {
			return err
		}

		producer.Balance = producer.Balance.Add(quantity)
		touch(&producer, callerID, now)
		if err := tx.SaveAccount(ctx, producer); err != nil {
			return err
		}

		created = batch
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Produce rejected",
			slog.String("caller_id", callerID),
			slog.String("quantity", quantity.String()))
		return 0, err
	}

	s.Metrics.ObserveCommit("produce", quantity, created.Sequence)
	s.LogInfo(ctx, "Batch produced",
		slog.Int64("batch_id", created.BatchID),
		slog.String("producer_id", callerID),
		slog.String("quantity", quantity.String()),
		slog.Int64("sequence", created.Sequence))
	return created.BatchID, nil
}

// GetBatch retrieves a batch by id
func (s *batchService) GetBatch(ctx context.Context, batchID int64) (*domain.Batch, error) {
	if batchID < 0 {
		return nil, fmt.Errorf("%w: batch id must not be negative", apperrors.ErrInvalidArgument)
	}
	batch, err := s.ledgerRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find batch", slog.Int64("batch_id", batchID))
		}
		return nil, err
	}
	return batch, nil
}

// ListBatches retrieves a page of batches, optionally for one producer
func (s *batchService) ListBatches(ctx context.Context, params dto.ListBatchesParams) (*dto.ListBatchesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	filter := domain.BatchFilter{ProducerID: params.ProducerID, Limit: limit}
	if params.NextToken != nil && *params.NextToken != "" {
		after, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
		}
		filter.AfterID = &after
	}

	batches, err := s.ledgerRepo.ListBatches(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list batches", slog.String("producer_id", params.ProducerID))
		return nil, err
	}

	resp := &dto.ListBatchesResponse{Batches: dto.ToBatchResponses(batches)}
	if len(batches) > 0 {
		resp.NextToken = pagination.NextToken(len(batches), limit, batches[len(batches)-1].BatchID)
	}
	s.LogDebug(ctx, "Batches listed", slog.Int("count", len(batches)))
	return resp, nil
}
