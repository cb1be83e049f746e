// pkg/db/transaction_manager.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// TxController defines methods for controlling a database transaction.
// *sqlx.Tx implicitly implements this interface.
type TxController interface {
	Commit() error
	Rollback() error
}

// DBTxBeginner defines the interface for beginning transactions.
// *sqlx.DB implements this.
type DBTxBeginner interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// BeginTx starts a new database transaction.
func BeginTx(ctx context.Context, dbConn DBTxBeginner) (TxController, error) {
	tx, err := dbConn.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CommitTx commits the transaction.
func CommitTx(tx TxController) error {
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RollbackTx rolls back the transaction. Meant for defer, so failures are only logged.
func RollbackTx(tx TxController) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		slog.Error("Error rolling back transaction", "error", err)
	}
}

// BeginTxFunc, CommitTxFunc and RollbackTxFunc let services take the transaction
// helpers as dependencies so tests can substitute them.
type (
	BeginTxFunc    func(ctx context.Context, dbConn DBTxBeginner) (TxController, error)
	CommitTxFunc   func(tx TxController) error
	RollbackTxFunc func(tx TxController)
)
