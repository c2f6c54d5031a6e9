package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/milk_supply_chain/internal/apperrors"
	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
	portsrepo "github.com/SscSPs/milk_supply_chain/internal/core/ports/repositories"
	"github.com/SscSPs/milk_supply_chain/internal/models"
	"github.com/SscSPs/milk_supply_chain/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	accountColumns  = "account_id, role, max_quantity, balance, created_at, created_by, last_updated_at, last_updated_by"
	batchColumns    = "batch_id, producer_id, quantity, remaining, sequence, created_at, created_by, last_updated_at, last_updated_by"
	transferColumns = "sequence, transfer_id, batch_id, from_account_id, to_account_id, quantity, created_at"
)

// PgxLedgerRepository stores the ledger in PostgreSQL.
type PgxLedgerRepository struct {
	BaseRepository
	pgxLedgerReader
}

// newPgxLedgerRepository creates a new repository for ledger data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository:  BaseRepository{Pool: pool},
		pgxLedgerReader: pgxLedgerReader{q: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// WithinTx runs fn inside a database transaction holding the ledger lock.
func (r *PgxLedgerRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if transaction is committed successfully
	defer r.Rollback(ctx, tx)

	if err := fn(ctx, &pgxLedgerTx{pgxLedgerReader: pgxLedgerReader{q: tx}}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// pgxLedgerReader implements the read ports against any querier.
type pgxLedgerReader struct {
	q querier
}

func (r pgxLedgerReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`
	rows, err := r.q.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, notFoundOr(err, "failed to scan account "+accountID)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r pgxLedgerReader) FindAdmin(ctx context.Context) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE role = $1`
	rows, err := r.q.Query(ctx, query, string(domain.RoleAdmin))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query admin", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, notFoundOr(err, "failed to scan admin")
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r pgxLedgerReader) FindBatchByID(ctx context.Context, batchID int64) (*domain.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE batch_id = $1`
	rows, err := r.q.Query(ctx, query, batchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query batch", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Batch])
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("failed to scan batch %d", batchID))
	}
	b := mapping.ToDomainBatch(m)
	return &b, nil
}

func (r pgxLedgerReader) ListBatches(ctx context.Context, filter domain.BatchFilter) ([]domain.Batch, error) {
	var (
		conds []string
		args  []any
	)
	if filter.ProducerID != "" {
		args = append(args, filter.ProducerID)
		conds = append(conds, fmt.Sprintf("producer_id = $%d", len(args)))
	}
	if filter.AfterID != nil {
		args = append(args, *filter.AfterID)
		conds = append(conds, fmt.Sprintf("batch_id > $%d", len(args)))
	}

	query := `SELECT ` + batchColumns + ` FROM batches`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY batch_id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list batches", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Batch])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan batches", err)
	}
	return mapping.ToDomainBatchSlice(ms), nil
}

func (r pgxLedgerReader) FindHolding(ctx context.Context, batchID int64, holderID string) (*domain.Holding, error) {
	query := `SELECT batch_id, holder_id, quantity FROM batch_holdings WHERE batch_id = $1 AND holder_id = $2`
	rows, err := r.q.Query(ctx, query, batchID, holderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query holding", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Holding])
	if err != nil {
		return nil, notFoundOr(err, "failed to scan holding")
	}
	h := mapping.ToDomainHolding(m)
	return &h, nil
}

func (r pgxLedgerReader) ListHoldingsByHolder(ctx context.Context, holderID string) ([]domain.Holding, error) {
	query := `
		SELECT batch_id, holder_id, quantity
		FROM batch_holdings
		WHERE holder_id = $1 AND quantity > 0
		ORDER BY batch_id`
	rows, err := r.q.Query(ctx, query, holderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list holdings", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Holding])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan holdings", err)
	}
	return mapping.ToDomainHoldingSlice(ms), nil
}

func (r pgxLedgerReader) ListTransfers(ctx context.Context, filter domain.TransferFilter) ([]domain.Transfer, error) {
	args := []any{filter.AfterSequence}
	conds := []string{"sequence > $1"}
	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		conds = append(conds, fmt.Sprintf("(from_account_id = $%d OR to_account_id = $%d)", len(args), len(args)))
	}
	if filter.BatchID != nil {
		args = append(args, *filter.BatchID)
		conds = append(conds, fmt.Sprintf("batch_id = $%d", len(args)))
	}

	query := `SELECT ` + transferColumns + ` FROM transfers WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY sequence`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transfers", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transfer])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan transfers", err)
	}
	return mapping.ToDomainTransferSlice(ms), nil
}

// pgxLedgerTx adds the write ports on top of a transaction-bound reader.
type pgxLedgerTx struct {
	pgxLedgerReader
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

func (t *pgxLedgerTx) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (account_id) DO UPDATE SET
			role = EXCLUDED.role,
			max_quantity = EXCLUDED.max_quantity,
			balance = EXCLUDED.balance,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by`
	_, err := t.q.Exec(ctx, query,
		m.AccountID, m.Role, m.MaxQuantity, m.Balance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save account "+m.AccountID, err)
	}
	return nil
}

func (t *pgxLedgerTx) NextSequence(ctx context.Context) (int64, error) {
	var seq int64
	err := t.q.QueryRow(ctx,
		`UPDATE ledger_counters SET value = value + 1 WHERE name = 'sequence' RETURNING value`,
	).Scan(&seq)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to advance sequence", err)
	}
	return seq, nil
}

func (t *pgxLedgerTx) NextBatchID(ctx context.Context) (int64, error) {
	var id int64
	err := t.q.QueryRow(ctx,
		`UPDATE ledger_counters SET value = value + 1 WHERE name = 'batch_id' RETURNING value - 1`,
	).Scan(&id)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate batch id", err)
	}
	return id, nil
}

func (t *pgxLedgerTx) SaveBatch(ctx context.Context, batch domain.Batch) error {
	m := mapping.ToModelBatch(batch)
	query := `
		INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (batch_id) DO UPDATE SET
			remaining = EXCLUDED.remaining,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by`
	_, err := t.q.Exec(ctx, query,
		m.BatchID, m.ProducerID, m.Quantity, m.Remaining, m.Sequence,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to save batch %d", m.BatchID), err)
	}
	return nil
}

func (t *pgxLedgerTx) SaveHolding(ctx context.Context, holding domain.Holding) error {
	m := mapping.ToModelHolding(holding)
	query := `
		INSERT INTO batch_holdings (batch_id, holder_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (batch_id, holder_id) DO UPDATE SET quantity = EXCLUDED.quantity`
	if _, err := t.q.Exec(ctx, query, m.BatchID, m.HolderID, m.Quantity); err != nil {
		return apperrors.NewAppError(500, "failed to save holding", err)
	}
	return nil
}

func (t *pgxLedgerTx) AppendTransfer(ctx context.Context, transfer domain.Transfer) error {
	m := mapping.ToModelTransfer(transfer)
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := t.q.Exec(ctx, query,
		m.Sequence, m.TransferID, m.BatchID, m.FromAccountID, m.ToAccountID, m.Quantity, m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to append transfer "+m.TransferID, err)
	}
	return nil
}
