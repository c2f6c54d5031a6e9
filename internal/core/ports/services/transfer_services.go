package services

import (
	"context"

	"github.com/SscSPs/milk_supply_chain/internal/dto"
	"github.com/shopspring/decimal"
)

// TransferWriterSvc defines stock movement
type TransferWriterSvc interface {
	// TransferStock moves quantity of batchID from the caller to toID.
	TransferStock(ctx context.Context, callerID, toID string, quantity decimal.Decimal, batchID int64) error
}

// TransferReaderSvc defines read operations for the audit log
type TransferReaderSvc interface {
	// ListTransfers retrieves a page of transfer records ordered by sequence.
	ListTransfers(ctx context.Context, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error)
}

// TransferSvcFacade combines all transfer-related service interfaces
type TransferSvcFacade interface {
	TransferWriterSvc
	TransferReaderSvc
}
