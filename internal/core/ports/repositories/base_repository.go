package repositories

import (
	"context"
)

// TransactionManager runs a unit of work against the ledger. All writes made
// through tx inside fn are committed together when fn returns nil and
// discarded when it returns an error. Implementations serialize units of work
// so that exactly one commits at a time.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}
