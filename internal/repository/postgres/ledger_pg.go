// internal/repository/postgres/ledger_pg.go
package postgres

import (
	"context"
	"fmt"

	"creator-wallet/internal/domain"
	"creator-wallet/internal/repository"

	"github.com/jmoiron/sqlx"
)

const ledgerColumns = `id, vendor_id, currency, source, order_ref, amount_minor, type,
	target_payout_at, target_payout_key, payout_batch_id, created_at`

// LedgerRepository implements repository.LedgerRepository for PostgreSQL.
type LedgerRepository struct{}

// NewLedgerRepository creates a new LedgerRepository.
// Methods receive a DBExecutor, so the connection is not stored.
func NewLedgerRepository(db *sqlx.DB) repository.LedgerRepository {
	return &LedgerRepository{}
}

// AppendEntry inserts a new ledger entry using the provided DBExecutor.
func (r *LedgerRepository) AppendEntry(ctx context.Context, q repository.DBExecutor, entry *domain.WalletLedgerEntry) error {
	query := `INSERT INTO wallet_ledger_entries (` + ledgerColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := q.ExecContext(ctx, query,
		entry.ID,
		entry.VendorID,
		entry.Currency,
		entry.Source,
		entry.OrderRef,
		entry.AmountMinor,
		entry.Type,
		entry.TargetPayoutAt,
		entry.TargetPayoutKey,
		entry.PayoutBatchID,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

// ListEntries retrieves every entry of a vendor+currency ledger, newest first.
func (r *LedgerRepository) ListEntries(ctx context.Context, q repository.DBExecutor, vendorID, currency string) ([]domain.WalletLedgerEntry, error) {
	entries := []domain.WalletLedgerEntry{}
	query := `
		SELECT ` + ledgerColumns + `
		FROM wallet_ledger_entries
		WHERE vendor_id = $1 AND currency = $2
		ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &entries, query, vendorID, currency); err != nil {
		return nil, fmt.Errorf("failed to fetch ledger entries for vendor %s (%s): %w", vendorID, currency, err)
	}
	return entries, nil
}

// ListEntriesPage retrieves a page of ledger entries plus the total count.
// It performs two queries: one for the data and one for the count.
func (r *LedgerRepository) ListEntriesPage(ctx context.Context, q repository.DBExecutor, vendorID, currency string, limit, offset int) ([]domain.WalletLedgerEntry, int64, error) {
	entries := []domain.WalletLedgerEntry{}
	query := `
		SELECT ` + ledgerColumns + `
		FROM wallet_ledger_entries
		WHERE vendor_id = $1 AND currency = $2
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`
	if err := q.SelectContext(ctx, &entries, query, vendorID, currency, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch ledger page for vendor %s (%s): %w", vendorID, currency, err)
	}

	var totalCount int64
	countQuery := `
		SELECT COUNT(*)
		FROM wallet_ledger_entries
		WHERE vendor_id = $1 AND currency = $2`
	if err := q.GetContext(ctx, &totalCount, countQuery, vendorID, currency); err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries for vendor %s (%s): %w", vendorID, currency, err)
	}

	return entries, totalCount, nil
}
