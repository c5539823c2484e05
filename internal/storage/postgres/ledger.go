// Package postgres implements storage.Ledger on PostgreSQL.
//
// Every transaction first takes a transaction-scoped advisory lock, so ledger
// operations execute one at a time across all server replicas. Transactions
// run at READ COMMITTED: statements after the lock see every earlier commit.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"flightsurety/internal/storage"
	dErrors "flightsurety/pkg/domain-errors"
)

//go:embed schema.sql
var schema string

// ledgerLockKey is the advisory lock id shared by all ledger transactions.
const ledgerLockKey int64 = 0x666c6967687473

// Ledger is a PostgreSQL-backed storage.Ledger.
type Ledger struct {
	db *sql.DB
}

// New constructs a ledger on db. Call Migrate before first use.
func New(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// Migrate creates the ledger tables when missing.
func (l *Ledger) Migrate(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply ledger schema: %w", err)
	}
	return nil
}

// RunInTx implements storage.Ledger.
func (l *Ledger) RunInTx(ctx context.Context, fn func(tx storage.Tx) error) (err error) {
	sqlTx, err := l.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to begin transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = sqlTx.Rollback()
		}
	}()

	if _, err := sqlTx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, ledgerLockKey); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to acquire ledger lock")
	}

	if err := fn(&tx{tx: sqlTx}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit transaction")
	}
	committed = true
	return nil
}

// tx implements storage.Tx over one *sql.Tx.
type tx struct {
	tx *sql.Tx
}

var _ storage.Tx = (*tx)(nil)
