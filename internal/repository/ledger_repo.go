// internal/repository/ledger_repo.go
package repository

import (
	"context"

	"creator-wallet/internal/domain"
)

// LedgerRepository defines the append-only storage operations for wallet ledger entries.
type LedgerRepository interface {
	// AppendEntry inserts a new ledger entry. Entries are never updated afterwards.
	AppendEntry(ctx context.Context, q DBExecutor, entry *domain.WalletLedgerEntry) error
	// ListEntries returns every entry for a vendor+currency ledger.
	ListEntries(ctx context.Context, q DBExecutor, vendorID, currency string) ([]domain.WalletLedgerEntry, error)
	// ListEntriesPage returns one page of entries, newest first, and the total count.
	ListEntriesPage(ctx context.Context, q DBExecutor, vendorID, currency string, limit, offset int) ([]domain.WalletLedgerEntry, int64, error)
}

// LedgerCache holds full ledger snapshots keyed by vendor+currency.
//
// Every key carries a generation that Invalidate bumps. Get returns the
// current generation alongside the lookup and only reports a hit when the
// stored snapshot was written under that same generation. Callers pass the
// generation they read before loading from the database back into Set, so a
// snapshot loaded before a concurrent write is never served after it.
type LedgerCache interface {
	// Get reports hit=false with a nil error on a cache miss.
	Get(ctx context.Context, vendorID, currency string) (entries []domain.WalletLedgerEntry, generation int64, hit bool, err error)
	Set(ctx context.Context, vendorID, currency string, generation int64, entries []domain.WalletLedgerEntry) error
	Invalidate(ctx context.Context, vendorID, currency string) error
}
