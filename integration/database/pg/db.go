package pg

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/skiff/core/logger"
)

// Row is one result row keyed by column name.
type Row = map[string]any

// Conn is the subset of *pgx.Conn used by DB.
type Conn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// DB serializes all work on a single connection behind one lock.
//
// Statements run inside a transaction that stays open until an Execute with
// commit set, or Commit, ends it. Fetches run in the open transaction when there
// is one, so they see uncommitted writes.
type DB struct {
	mu     sync.Mutex
	conn   Conn
	tx     pgx.Tx
	closed bool
	logger *slog.Logger
}

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger for transaction failures.
func WithLogger(l *slog.Logger) Option {
	return func(db *DB) {
		if l != nil {
			db.logger = l
		}
	}
}

// New wraps an open connection.
func New(conn Conn, opts ...Option) *DB {
	db := &DB{
		conn:   conn,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Execute runs a statement. With commit set the open transaction is committed
// afterwards. A failed statement rolls the transaction back.
func (db *DB) Execute(ctx context.Context, query string, args []any, commit bool) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrClosed
	}
	if db.tx == nil {
		tx, err := db.conn.Begin(ctx)
		if err != nil {
			return errors.Join(ErrExecute, err)
		}
		db.tx = tx
	}

	if _, err := db.tx.Exec(ctx, query, args...); err != nil {
		db.rollback(ctx)
		return errors.Join(ErrExecute, err)
	}
	if commit {
		return db.commit(ctx)
	}
	return nil
}

// Commit commits the open transaction, if any.
func (db *DB) Commit(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrClosed
	}
	return db.commit(ctx)
}

// Rollback discards the open transaction, if any.
func (db *DB) Rollback(ctx context.Context) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.rollback(ctx)
}

// FetchAll returns every row of query.
func (db *DB) FetchAll(ctx context.Context, query string, args ...any) ([]Row, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return nil, ErrClosed
	}
	rows, err := db.querier().Query(ctx, query, args...)
	if err != nil {
		db.rollback(ctx)
		return nil, errors.Join(ErrFetch, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		db.rollback(ctx)
		return nil, errors.Join(ErrFetch, err)
	}
	return out, nil
}

// FetchOne returns the first row of query, or nil when there is none.
func (db *DB) FetchOne(ctx context.Context, query string, args ...any) (Row, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return nil, ErrClosed
	}
	rows, err := db.querier().Query(ctx, query, args...)
	if err != nil {
		db.rollback(ctx)
		return nil, errors.Join(ErrFetch, err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		db.rollback(ctx)
		return nil, errors.Join(ErrFetch, err)
	}
	return row, nil
}

// Ping checks the connection.
func (db *DB) Ping(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrClosed
	}
	return db.conn.Ping(ctx)
}

// Close rolls back any open transaction and closes the connection.
// Calling it again is a no-op.
func (db *DB) Close(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return nil
	}
	db.rollback(ctx)
	db.closed = true
	return db.conn.Close(ctx)
}

// InTx reports whether a transaction is open.
func (db *DB) InTx() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.tx != nil
}

func (db *DB) querier() querier {
	if db.tx != nil {
		return db.tx
	}
	return db.conn
}

func (db *DB) commit(ctx context.Context) error {
	if db.tx == nil {
		return nil
	}
	tx := db.tx
	db.tx = nil
	if err := tx.Commit(ctx); err != nil {
		return errors.Join(ErrCommit, err)
	}
	return nil
}

func (db *DB) rollback(ctx context.Context) {
	if db.tx == nil {
		return
	}
	tx := db.tx
	db.tx = nil
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		db.logger.ErrorContext(ctx, "rollback failed",
			logger.Component("pg"),
			logger.Error(err))
	}
}
