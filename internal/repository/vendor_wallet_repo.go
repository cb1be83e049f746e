// internal/repository/vendor_wallet_repo.go
package repository

import (
	"context"

	"creator-wallet/internal/domain"
)

// VendorWalletRepository defines storage for per-wallet payout settings.
type VendorWalletRepository interface {
	// GetVendorWallet returns util.ErrNotFound when the vendor has no settings for the currency.
	GetVendorWallet(ctx context.Context, q DBExecutor, vendorID, currency string) (*domain.VendorWallet, error)
	// UpsertVendorWallet creates the settings row or updates the chosen schedule.
	UpsertVendorWallet(ctx context.Context, q DBExecutor, wallet *domain.VendorWallet) error
}
