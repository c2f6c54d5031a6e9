package services

import (
	"context"

	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
	"github.com/SscSPs/milk_supply_chain/internal/dto"
	"github.com/shopspring/decimal"
)

// BatchWriterSvc defines batch creation
type BatchWriterSvc interface {
	// Produce creates a batch owned by the calling producer and returns its id.
	Produce(ctx context.Context, callerID string, quantity decimal.Decimal) (int64, error)
}

// BatchReaderSvc defines read operations for the batch ledger
type BatchReaderSvc interface {
	// GetBatch retrieves a batch by id.
	GetBatch(ctx context.Context, batchID int64) (*domain.Batch, error)

	// ListBatches retrieves a page of batches ordered by id.
	ListBatches(ctx context.Context, params dto.ListBatchesParams) (*dto.ListBatchesResponse, error)
}

// BatchSvcFacade combines all batch-related service interfaces
type BatchSvcFacade interface {
	BatchWriterSvc
	BatchReaderSvc
}
