// Package sqlite stores the ledger in a single SQLite file through the pure-Go
// modernc driver. It suits single-node deployments that need durability
// without running PostgreSQL.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SscSPs/milk_supply_chain/internal/apperrors"
	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
	portsrepo "github.com/SscSPs/milk_supply_chain/internal/core/ports/repositories"
	"github.com/SscSPs/milk_supply_chain/internal/models"
	"github.com/SscSPs/milk_supply_chain/internal/utils/mapping"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	account_id      TEXT PRIMARY KEY,
	role            TEXT NOT NULL,
	max_quantity    TEXT NOT NULL,
	balance         TEXT NOT NULL,
	created_at      TEXT NOT NULL,
	created_by      TEXT NOT NULL,
	last_updated_at TEXT NOT NULL,
	last_updated_by TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS accounts_single_admin_idx ON accounts (role) WHERE role = 'ADMIN';
CREATE TABLE IF NOT EXISTS ledger_counters (
	name  TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);
INSERT OR IGNORE INTO ledger_counters (name, value) VALUES ('sequence', 0), ('batch_id', 0);
CREATE TABLE IF NOT EXISTS batches (
	batch_id        INTEGER PRIMARY KEY,
	producer_id     TEXT NOT NULL,
	quantity        TEXT NOT NULL,
	remaining       TEXT NOT NULL,
	sequence        INTEGER NOT NULL UNIQUE,
	created_at      TEXT NOT NULL,
	created_by      TEXT NOT NULL,
	last_updated_at TEXT NOT NULL,
	last_updated_by TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS batches_producer_idx ON batches (producer_id, batch_id);
CREATE TABLE IF NOT EXISTS batch_holdings (
	batch_id  INTEGER NOT NULL,
	holder_id TEXT NOT NULL,
	quantity  TEXT NOT NULL,
	PRIMARY KEY (batch_id, holder_id)
);
CREATE INDEX IF NOT EXISTS batch_holdings_holder_idx ON batch_holdings (holder_id, batch_id);
CREATE TABLE IF NOT EXISTS transfers (
	sequence        INTEGER PRIMARY KEY,
	transfer_id     TEXT NOT NULL UNIQUE,
	batch_id        INTEGER NOT NULL,
	from_account_id TEXT NOT NULL,
	to_account_id   TEXT NOT NULL,
	quantity        TEXT NOT NULL,
	created_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS transfers_batch_idx ON transfers (batch_id, sequence);
`

const (
	accountColumns  = "account_id, role, max_quantity, balance, created_at, created_by, last_updated_at, last_updated_by"
	batchColumns    = "batch_id, producer_id, quantity, remaining, sequence, created_at, created_by, last_updated_at, last_updated_by"
	transferColumns = "sequence, transfer_id, batch_id, from_account_id, to_account_id, quantity, created_at"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// LedgerRepository stores the ledger in SQLite.
type LedgerRepository struct {
	db *sql.DB
	sqlLedgerReader
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*LedgerRepository, error) {
	if path == "" {
		path = "milk_ledger.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection serializes writers and keeps pragmas in effect.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA journal_mode = WAL", "PRAGMA busy_timeout = 5000", schema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init sqlite: %w", err)
		}
	}
	return &LedgerRepository{db: db, sqlLedgerReader: sqlLedgerReader{q: db}}, nil
}

// NewRepositoryProvider wires the SQLite store; Close releases the file.
func NewRepositoryProvider(repo *LedgerRepository) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo: repo,
		Close:      repo.Close,
	}
}

// Close closes the underlying database.
func (r *LedgerRepository) Close() error {
	return r.db.Close()
}

// WithinTx implements portsrepo.TransactionManager.
func (r *LedgerRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(ctx, &sqlLedgerTx{sqlLedgerReader{q: tx}}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	return apperrors.NewAppError(500, msg, err)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAudit(created, updated string, m *models.AuditFields) error {
	var err error
	if m.CreatedAt, err = parseTime(created); err != nil {
		return err
	}
	m.LastUpdatedAt, err = parseTime(updated)
	return err
}

func scanAccount(row scanner) (models.Account, error) {
	var (
		m                models.Account
		created, updated string
	)
	if err := row.Scan(&m.AccountID, &m.Role, &m.MaxQuantity, &m.Balance,
		&created, &m.CreatedBy, &updated, &m.LastUpdatedBy); err != nil {
		return m, err
	}
	return m, scanAudit(created, updated, &m.AuditFields)
}

func scanBatch(row scanner) (models.Batch, error) {
	var (
		m                models.Batch
		created, updated string
	)
	if err := row.Scan(&m.BatchID, &m.ProducerID, &m.Quantity, &m.Remaining, &m.Sequence,
		&created, &m.CreatedBy, &updated, &m.LastUpdatedBy); err != nil {
		return m, err
	}
	return m, scanAudit(created, updated, &m.AuditFields)
}

func scanTransfer(row scanner) (models.Transfer, error) {
	var (
		m       models.Transfer
		created string
	)
	if err := row.Scan(&m.Sequence, &m.TransferID, &m.BatchID, &m.FromAccountID, &m.ToAccountID,
		&m.Quantity, &created); err != nil {
		return m, err
	}
	var err error
	m.CreatedAt, err = parseTime(created)
	return m, err
}

func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer func() { _ = rows.Close() }()
	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// sqlLedgerReader implements the read ports against any querier.
type sqlLedgerReader struct {
	q querier
}

func (r sqlLedgerReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = ?`, accountID)
	m, err := scanAccount(row)
	if err != nil {
		return nil, notFoundOr(err, "failed to scan account "+accountID)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r sqlLedgerReader) FindAdmin(ctx context.Context) (*domain.Account, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE role = ?`, string(domain.RoleAdmin))
	m, err := scanAccount(row)
	if err != nil {
		return nil, notFoundOr(err, "failed to scan admin")
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r sqlLedgerReader) FindBatchByID(ctx context.Context, batchID int64) (*domain.Batch, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+batchColumns+` FROM batches WHERE batch_id = ?`, batchID)
	m, err := scanBatch(row)
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("failed to scan batch %d", batchID))
	}
	b := mapping.ToDomainBatch(m)
	return &b, nil
}

func (r sqlLedgerReader) ListBatches(ctx context.Context, filter domain.BatchFilter) ([]domain.Batch, error) {
	var (
		conds []string
		args  []any
	)
	if filter.ProducerID != "" {
		conds = append(conds, "producer_id = ?")
		args = append(args, filter.ProducerID)
	}
	if filter.AfterID != nil {
		conds = append(conds, "batch_id > ?")
		args = append(args, *filter.AfterID)
	}
	query := `SELECT ` + batchColumns + ` FROM batches`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY batch_id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list batches", err)
	}
	ms, err := collect(rows, scanBatch)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan batches", err)
	}
	return mapping.ToDomainBatchSlice(ms), nil
}

func (r sqlLedgerReader) FindHolding(ctx context.Context, batchID int64, holderID string) (*domain.Holding, error) {
	var m models.Holding
	err := r.q.QueryRowContext(ctx,
		`SELECT batch_id, holder_id, quantity FROM batch_holdings WHERE batch_id = ? AND holder_id = ?`,
		batchID, holderID,
	).Scan(&m.BatchID, &m.HolderID, &m.Quantity)
	if err != nil {
		return nil, notFoundOr(err, "failed to scan holding")
	}
	h := mapping.ToDomainHolding(m)
	return &h, nil
}

func (r sqlLedgerReader) ListHoldingsByHolder(ctx context.Context, holderID string) ([]domain.Holding, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT batch_id, holder_id, quantity FROM batch_holdings WHERE holder_id = ? ORDER BY batch_id`,
		holderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list holdings", err)
	}
	ms, err := collect(rows, func(row scanner) (models.Holding, error) {
		var m models.Holding
		err := row.Scan(&m.BatchID, &m.HolderID, &m.Quantity)
		return m, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan holdings", err)
	}
	// Quantities are stored as text, so the empty-holding filter runs here.
	nonEmpty := ms[:0]
	for _, m := range ms {
		if m.Quantity.IsPositive() {
			nonEmpty = append(nonEmpty, m)
		}
	}
	return mapping.ToDomainHoldingSlice(nonEmpty), nil
}

func (r sqlLedgerReader) ListTransfers(ctx context.Context, filter domain.TransferFilter) ([]domain.Transfer, error) {
	conds := []string{"sequence > ?"}
	args := []any{filter.AfterSequence}
	if filter.AccountID != "" {
		conds = append(conds, "(from_account_id = ? OR to_account_id = ?)")
		args = append(args, filter.AccountID, filter.AccountID)
	}
	if filter.BatchID != nil {
		conds = append(conds, "batch_id = ?")
		args = append(args, *filter.BatchID)
	}
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY sequence`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transfers", err)
	}
	ms, err := collect(rows, scanTransfer)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan transfers", err)
	}
	return mapping.ToDomainTransferSlice(ms), nil
}

// sqlLedgerTx adds the write ports on top of a transaction-bound reader.
type sqlLedgerTx struct {
	sqlLedgerReader
}

var _ portsrepo.LedgerTx = (*sqlLedgerTx)(nil)

func (t *sqlLedgerTx) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, err := t.q.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (account_id) DO UPDATE SET
			role = excluded.role,
			max_quantity = excluded.max_quantity,
			balance = excluded.balance,
			last_updated_at = excluded.last_updated_at,
			last_updated_by = excluded.last_updated_by`,
		m.AccountID, m.Role, m.MaxQuantity.String(), m.Balance.String(),
		formatTime(m.CreatedAt), m.CreatedBy, formatTime(m.LastUpdatedAt), m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save account "+m.AccountID, err)
	}
	return nil
}

func (t *sqlLedgerTx) nextCounter(ctx context.Context, name string) (int64, error) {
	var value int64
	err := t.q.QueryRowContext(ctx,
		`UPDATE ledger_counters SET value = value + 1 WHERE name = ? RETURNING value`, name,
	).Scan(&value)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to advance counter "+name, err)
	}
	return value, nil
}

func (t *sqlLedgerTx) NextSequence(ctx context.Context) (int64, error) {
	return t.nextCounter(ctx, "sequence")
}

func (t *sqlLedgerTx) NextBatchID(ctx context.Context) (int64, error) {
	next, err := t.nextCounter(ctx, "batch_id")
	if err != nil {
		return 0, err
	}
	return next - 1, nil
}

func (t *sqlLedgerTx) SaveBatch(ctx context.Context, batch domain.Batch) error {
	m := mapping.ToModelBatch(batch)
	_, err := t.q.ExecContext(ctx, `
		INSERT INTO batches (`+batchColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (batch_id) DO UPDATE SET
			remaining = excluded.remaining,
			last_updated_at = excluded.last_updated_at,
			last_updated_by = excluded.last_updated_by`,
		m.BatchID, m.ProducerID, m.Quantity.String(), m.Remaining.String(), m.Sequence,
		formatTime(m.CreatedAt), m.CreatedBy, formatTime(m.LastUpdatedAt), m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to save batch %d", m.BatchID), err)
	}
	return nil
}

func (t *sqlLedgerTx) SaveHolding(ctx context.Context, holding domain.Holding) error {
	m := mapping.ToModelHolding(holding)
	_, err := t.q.ExecContext(ctx, `
		INSERT INTO batch_holdings (batch_id, holder_id, quantity) VALUES (?, ?, ?)
		ON CONFLICT (batch_id, holder_id) DO UPDATE SET quantity = excluded.quantity`,
		m.BatchID, m.HolderID, m.Quantity.String(),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save holding", err)
	}
	return nil
}

func (t *sqlLedgerTx) AppendTransfer(ctx context.Context, transfer domain.Transfer) error {
	m := mapping.ToModelTransfer(transfer)
	_, err := t.q.ExecContext(ctx, `
		INSERT INTO transfers (`+transferColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Sequence, m.TransferID, m.BatchID, m.FromAccountID, m.ToAccountID, m.Quantity.String(), formatTime(m.CreatedAt),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to append transfer "+m.TransferID, err)
	}
	return nil
}
