// Package memory provides an in-process ledger store. It is the default driver
// for local runs and the store the service tests run against.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/SscSPs/milk_supply_chain/internal/apperrors"
	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
	portsrepo "github.com/SscSPs/milk_supply_chain/internal/core/ports/repositories"
)

type holdingKey struct {
	batchID  int64
	holderID string
}

// ledgerState is one consistent snapshot of the ledger.
type ledgerState struct {
	accounts    map[string]domain.Account
	batches     map[int64]domain.Batch
	holdings    map[holdingKey]domain.Holding
	transfers   []domain.Transfer
	sequence    int64
	nextBatchID int64
}

func newLedgerState() *ledgerState {
	return &ledgerState{
		accounts: make(map[string]domain.Account),
		batches:  make(map[int64]domain.Batch),
		holdings: make(map[holdingKey]domain.Holding),
	}
}

// clone copies the maps so a unit of work can write freely. Transfers are
// append-only, so the clone shares the committed prefix and gets its own
// capacity.
func (s *ledgerState) clone() *ledgerState {
	return &ledgerState{
		accounts:    maps.Clone(s.accounts),
		batches:     maps.Clone(s.batches),
		holdings:    maps.Clone(s.holdings),
		transfers:   slices.Clip(s.transfers),
		sequence:    s.sequence,
		nextBatchID: s.nextBatchID,
	}
}

// LedgerRepository keeps the ledger in memory. Units of work run one at a
// time against a private copy of the state that replaces the committed state
// only when the unit of work succeeds.
type LedgerRepository struct {
	txMu  sync.Mutex   // serializes WithinTx
	mu    sync.RWMutex // guards state
	state *ledgerState
}

// NewLedgerRepository creates an empty in-memory ledger.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{state: newLedgerState()}
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

func (r *LedgerRepository) snapshot() *ledgerState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// WithinTx implements portsrepo.TransactionManager.
func (r *LedgerRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return apperrors.NewAppError(500, "transaction aborted", err)
	}

	work := r.snapshot().clone()
	if err := fn(ctx, &ledgerTx{state: work}); err != nil {
		return err
	}

	r.mu.Lock()
	r.state = work
	r.mu.Unlock()
	return nil
}

func (r *LedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return findAccount(r.snapshot(), accountID)
}

func (r *LedgerRepository) FindAdmin(ctx context.Context) (*domain.Account, error) {
	return findAdmin(r.snapshot())
}

func (r *LedgerRepository) FindBatchByID(ctx context.Context, batchID int64) (*domain.Batch, error) {
	return findBatch(r.snapshot(), batchID)
}

func (r *LedgerRepository) ListBatches(ctx context.Context, filter domain.BatchFilter) ([]domain.Batch, error) {
	return listBatches(r.snapshot(), filter), nil
}

func (r *LedgerRepository) FindHolding(ctx context.Context, batchID int64, holderID string) (*domain.Holding, error) {
	return findHolding(r.snapshot(), batchID, holderID)
}

func (r *LedgerRepository) ListHoldingsByHolder(ctx context.Context, holderID string) ([]domain.Holding, error) {
	return listHoldings(r.snapshot(), holderID), nil
}

func (r *LedgerRepository) ListTransfers(ctx context.Context, filter domain.TransferFilter) ([]domain.Transfer, error) {
	return listTransfers(r.snapshot(), filter), nil
}

// ledgerTx reads and writes the private state of one unit of work.
type ledgerTx struct {
	state *ledgerState
}

var _ portsrepo.LedgerTx = (*ledgerTx)(nil)

func (t *ledgerTx) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return findAccount(t.state, accountID)
}

func (t *ledgerTx) FindAdmin(ctx context.Context) (*domain.Account, error) {
	return findAdmin(t.state)
}

func (t *ledgerTx) FindBatchByID(ctx context.Context, batchID int64) (*domain.Batch, error) {
	return findBatch(t.state, batchID)
}

func (t *ledgerTx) ListBatches(ctx context.Context, filter domain.BatchFilter) ([]domain.Batch, error) {
	return listBatches(t.state, filter), nil
}

func (t *ledgerTx) FindHolding(ctx context.Context, batchID int64, holderID string) (*domain.Holding, error) {
	return findHolding(t.state, batchID, holderID)
}

func (t *ledgerTx) ListHoldingsByHolder(ctx context.Context, holderID string) ([]domain.Holding, error) {
	return listHoldings(t.state, holderID), nil
}

func (t *ledgerTx) ListTransfers(ctx context.Context, filter domain.TransferFilter) ([]domain.Transfer, error) {
	return listTransfers(t.state, filter), nil
}

func (t *ledgerTx) SaveAccount(ctx context.Context, account domain.Account) error {
	if account.AccountID == "" {
		return apperrors.NewAppError(500, "failed to save account", fmt.Errorf("empty account id"))
	}
	t.state.accounts[account.AccountID] = account
	return nil
}

func (t *ledgerTx) NextSequence(ctx context.Context) (int64, error) {
	t.state.sequence++
	return t.state.sequence, nil
}

func (t *ledgerTx) NextBatchID(ctx context.Context) (int64, error) {
	id := t.state.nextBatchID
	t.state.nextBatchID++
	return id, nil
}

func (t *ledgerTx) SaveBatch(ctx context.Context, batch domain.Batch) error {
	t.state.batches[batch.BatchID] = batch
	return nil
}

func (t *ledgerTx) SaveHolding(ctx context.Context, holding domain.Holding) error {
	t.state.holdings[holdingKey{holding.BatchID, holding.HolderID}] = holding
	return nil
}

func (t *ledgerTx) AppendTransfer(ctx context.Context, transfer domain.Transfer) error {
	t.state.transfers = append(t.state.transfers, transfer)
	return nil
}

func findAccount(s *ledgerState, accountID string) (*domain.Account, error) {
	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func findAdmin(s *ledgerState) (*domain.Account, error) {
	for _, acc := range s.accounts {
		if acc.Role == domain.RoleAdmin {
			return &acc, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func findBatch(s *ledgerState, batchID int64) (*domain.Batch, error) {
	b, ok := s.batches[batchID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &b, nil
}

func findHolding(s *ledgerState, batchID int64, holderID string) (*domain.Holding, error) {
	h, ok := s.holdings[holdingKey{batchID, holderID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &h, nil
}

func listBatches(s *ledgerState, filter domain.BatchFilter) []domain.Batch {
	ids := slices.Sorted(maps.Keys(s.batches))
	out := make([]domain.Batch, 0)
	for _, id := range ids {
		if filter.AfterID != nil && id <= *filter.AfterID {
			continue
		}
		b := s.batches[id]
		if filter.ProducerID != "" && b.ProducerID != filter.ProducerID {
			continue
		}
		out = append(out, b)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out
}

func listHoldings(s *ledgerState, holderID string) []domain.Holding {
	out := make([]domain.Holding, 0)
	for key, h := range s.holdings {
		if key.holderID == holderID && h.Quantity.IsPositive() {
			out = append(out, h)
		}
	}
	slices.SortFunc(out, func(a, b domain.Holding) int {
		switch {
		case a.BatchID < b.BatchID:
			return -1
		case a.BatchID > b.BatchID:
			return 1
		default:
			return 0
		}
	})
	return out
}

func listTransfers(s *ledgerState, filter domain.TransferFilter) []domain.Transfer {
	out := make([]domain.Transfer, 0)
	for _, t := range s.transfers {
		if t.Sequence <= filter.AfterSequence {
			continue
		}
		if filter.AccountID != "" && t.FromID != filter.AccountID && t.ToID != filter.AccountID {
			continue
		}
		if filter.BatchID != nil && t.BatchID != *filter.BatchID {
			continue
		}
		out = append(out, t)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out
}
