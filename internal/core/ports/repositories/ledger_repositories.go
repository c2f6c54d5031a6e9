package repositories

import (
	"context"

	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
)

// AccountReader defines read operations for registry and balance data
type AccountReader interface {
	// FindAccountByID returns apperrors.ErrNotFound for ids never written.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAdmin returns the distinguished admin account, or apperrors.ErrNotFound before bootstrap.
	FindAdmin(ctx context.Context) (*domain.Account, error)
}

// BatchReader defines read operations for the batch ledger and holdings
type BatchReader interface {
	// FindBatchByID returns apperrors.ErrNotFound for unknown ids.
	FindBatchByID(ctx context.Context, batchID int64) (*domain.Batch, error)

	// ListBatches returns batches ordered by id.
	ListBatches(ctx context.Context, filter domain.BatchFilter) ([]domain.Batch, error)

	// FindHolding returns apperrors.ErrNotFound when holderID never held batchID.
	FindHolding(ctx context.Context, batchID int64, holderID string) (*domain.Holding, error)

	// ListHoldingsByHolder returns the non-empty holdings of holderID ordered by batch id.
	ListHoldingsByHolder(ctx context.Context, holderID string) ([]domain.Holding, error)
}

// TransferReader defines read operations for the transfer audit log
type TransferReader interface {
	// ListTransfers returns transfer records ordered by sequence.
	ListTransfers(ctx context.Context, filter domain.TransferFilter) ([]domain.Transfer, error)
}

// LedgerWriter defines the writes available inside a unit of work
type LedgerWriter interface {
	// SaveAccount inserts or replaces an account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// NextSequence advances and returns the global sequence number.
	NextSequence(ctx context.Context) (int64, error)

	// NextBatchID allocates the next batch id, starting at 0.
	NextBatchID(ctx context.Context) (int64, error)

	// SaveBatch inserts or replaces a batch.
	SaveBatch(ctx context.Context, batch domain.Batch) error

	// SaveHolding inserts or replaces a (batch, holder) holding.
	SaveHolding(ctx context.Context, holding domain.Holding) error

	// AppendTransfer appends an audit record.
	AppendTransfer(ctx context.Context, transfer domain.Transfer) error
}

// LedgerReader combines all read interfaces
type LedgerReader interface {
	AccountReader
	BatchReader
	TransferReader
}

// LedgerTx is the view of the ledger handed to a unit of work
type LedgerTx interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryFacade combines committed-state reads with transaction management
// This is a facade for clients that need access to all operations
type LedgerRepositoryFacade interface {
	LedgerReader
	TransactionManager
}
