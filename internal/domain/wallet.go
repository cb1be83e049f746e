// internal/domain/wallet.go
package domain

import "time"

// WalletSummary is the per vendor+currency aggregate reconstructed from ledger entries.
type WalletSummary struct {
	VendorID          string     `json:"vendor_id"`
	Currency          string     `json:"currency"`
	TotalEligible     int64      `json:"total_eligible"`
	TotalReleased     int64      `json:"total_released"`
	TotalPaidOut      int64      `json:"total_paid_out"`
	TotalRefunded     int64      `json:"total_refunded"`
	TotalHeld         int64      `json:"total_held"`
	Balance           int64      `json:"balance"`            // Signed sum of every entry
	PendingSettlement int64      `json:"pending_settlement"` // Eligible credits not yet in a batch
	NextPayoutAt      *time.Time `json:"next_payout_at"`
	EntryCount        int        `json:"entry_count"`
}

// SummarizeWallet reduces entries into a WalletSummary. now decides which
// unsettled credits count towards NextPayoutAt.
func SummarizeWallet(vendorID, currency string, entries []WalletLedgerEntry, now time.Time) WalletSummary {
	summary := WalletSummary{
		VendorID: vendorID,
		Currency: currency,
	}
	for _, entry := range entries {
		summary.EntryCount++
		summary.Balance += entry.SignedAmount()

		switch entry.Type {
		case EntryTypeCreditEligible:
			summary.TotalEligible += entry.AmountMinor
			if !entry.IsSettled() {
				summary.PendingSettlement += entry.AmountMinor
				if entry.TargetPayoutAt != nil && entry.TargetPayoutAt.After(now) {
					if summary.NextPayoutAt == nil || entry.TargetPayoutAt.Before(*summary.NextPayoutAt) {
						next := *entry.TargetPayoutAt
						summary.NextPayoutAt = &next
					}
				}
			}
		case EntryTypeCreditRelease:
			summary.TotalReleased += entry.AmountMinor
		case EntryTypeDebitPayout:
			summary.TotalPaidOut += entry.AmountMinor
		case EntryTypeDebitRefund:
			summary.TotalRefunded += entry.AmountMinor
		case EntryTypeDebitHold:
			summary.TotalHeld += entry.AmountMinor
		}
	}
	return summary
}

// VendorWallet holds the payout settings of one vendor+currency wallet.
type VendorWallet struct {
	VendorID     string    `db:"vendor_id" json:"vendor_id"`
	Currency     string    `db:"currency" json:"currency"`
	ScheduleType string    `db:"schedule_type" json:"schedule_type"` // Validated against the schedule table on read
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// NewVendorWallet creates a new VendorWallet instance stamped with now.
func NewVendorWallet(vendorID, currency, scheduleType string, now time.Time) *VendorWallet {
	now = now.UTC()
	return &VendorWallet{
		VendorID:     vendorID,
		Currency:     currency,
		ScheduleType: scheduleType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
