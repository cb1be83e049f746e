// internal/repository/postgres/vendor_wallet_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"creator-wallet/internal/domain"
	"creator-wallet/internal/repository"
	"creator-wallet/internal/util"

	"github.com/jmoiron/sqlx"
)

// VendorWalletRepository implements repository.VendorWalletRepository for PostgreSQL.
type VendorWalletRepository struct{}

// NewVendorWalletRepository creates a new VendorWalletRepository.
func NewVendorWalletRepository(db *sqlx.DB) repository.VendorWalletRepository {
	return &VendorWalletRepository{}
}

// GetVendorWallet retrieves the payout settings for a vendor+currency wallet.
func (r *VendorWalletRepository) GetVendorWallet(ctx context.Context, q repository.DBExecutor, vendorID, currency string) (*domain.VendorWallet, error) {
	var wallet domain.VendorWallet
	query := `SELECT vendor_id, currency, schedule_type, created_at, updated_at
              FROM vendor_wallets WHERE vendor_id = $1 AND currency = $2`
	err := q.GetContext(ctx, &wallet, query, vendorID, currency)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vendor wallet %s (%s): %w", vendorID, currency, err)
	}
	return &wallet, nil
}

// UpsertVendorWallet creates the wallet settings row or updates its schedule.
func (r *VendorWalletRepository) UpsertVendorWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.VendorWallet) error {
	query := `INSERT INTO vendor_wallets (vendor_id, currency, schedule_type, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5)
              ON CONFLICT (vendor_id, currency)
              DO UPDATE SET schedule_type = EXCLUDED.schedule_type, updated_at = EXCLUDED.updated_at
              RETURNING created_at`
	err := q.QueryRowContext(ctx, query,
		wallet.VendorID,
		wallet.Currency,
		wallet.ScheduleType,
		wallet.CreatedAt,
		wallet.UpdatedAt,
	).Scan(&wallet.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert vendor wallet %s (%s): %w", wallet.VendorID, wallet.Currency, err)
	}
	return nil
}
