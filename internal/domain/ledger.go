// internal/domain/ledger.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"creator-wallet/internal/util"
)

// EntryType defines the kind of financial movement a ledger entry records.
type EntryType string

const (
	EntryTypeCreditEligible EntryType = "credit_eligible"
	EntryTypeDebitPayout    EntryType = "debit_payout"
	EntryTypeDebitRefund    EntryType = "debit_refund"
	EntryTypeCreditRelease  EntryType = "credit_release"
	EntryTypeDebitHold      EntryType = "debit_hold"
)

var validEntryTypes = []EntryType{
	EntryTypeCreditEligible,
	EntryTypeDebitPayout,
	EntryTypeDebitRefund,
	EntryTypeCreditRelease,
	EntryTypeDebitHold,
}

// IsValid reports whether the value is one of the known entry types.
func (t EntryType) IsValid() bool {
	for _, candidate := range validEntryTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// IsCredit reports whether the entry increases the available balance.
func (t EntryType) IsCredit() bool {
	return t == EntryTypeCreditEligible || t == EntryTypeCreditRelease
}

// ParseEntryType converts raw input into an EntryType. Unknown values wrap util.ErrInvalidInput.
func ParseEntryType(value string) (EntryType, error) {
	for _, candidate := range validEntryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("unknown ledger entry type %q: %w", value, util.ErrInvalidInput)
}

// Source distinguishes where the revenue behind an entry came from.
type Source string

const (
	SourceEvent Source = "event"
	SourceStore Source = "store"
)

// IsValid reports whether the value is a known revenue source.
func (s Source) IsValid() bool {
	return s == SourceEvent || s == SourceStore
}

// WalletLedgerEntry is an immutable record of one financial movement for a vendor wallet.
// Corrections are made by appending offsetting entries, never by updating a row.
type WalletLedgerEntry struct {
	ID              string     `db:"id" json:"id"`
	VendorID        string     `db:"vendor_id" json:"vendor_id"`                 // Brand or organizer owning the wallet
	Currency        string     `db:"currency" json:"currency"`                   // Fixed per vendor ledger
	Source          Source     `db:"source" json:"source"`                       // event or store
	OrderRef        string     `db:"order_ref" json:"order_ref"`                 // Originating order document
	AmountMinor     int64      `db:"amount_minor" json:"amount_minor"`           // Always positive; direction comes from Type
	Type            EntryType  `db:"type" json:"type"`                           // Movement kind
	TargetPayoutAt  *time.Time `db:"target_payout_at" json:"target_payout_at"`   // Settlement date assigned at credit time
	TargetPayoutKey *string    `db:"target_payout_key" json:"target_payout_key"` // Local calendar date of TargetPayoutAt
	PayoutBatchID   *string    `db:"payout_batch_id" json:"payout_batch_id"`     // Set once funds are disbursed
	CreatedAt       int64      `db:"created_at" json:"created_at"`               // Epoch milliseconds
}

// SignedAmount returns the amount with credits positive and debits negative.
func (e WalletLedgerEntry) SignedAmount() int64 {
	if e.Type.IsCredit() {
		return e.AmountMinor
	}
	return -e.AmountMinor
}

// IsSettled reports whether the entry has been attached to a payout batch.
func (e WalletLedgerEntry) IsSettled() bool {
	return e.PayoutBatchID != nil && *e.PayoutBatchID != ""
}

// CreatedTime converts CreatedAt to a time.Time in UTC.
func (e WalletLedgerEntry) CreatedTime() time.Time {
	return time.UnixMilli(e.CreatedAt).UTC()
}

// NewLedgerEntry creates a new unsettled ledger entry with a fresh id.
func NewLedgerEntry(
	vendorID string,
	currency string,
	source Source,
	orderRef string,
	amountMinor int64,
	entryType EntryType,
	createdAt time.Time,
) *WalletLedgerEntry {
	return &WalletLedgerEntry{
		ID:          uuid.NewString(),
		VendorID:    vendorID,
		Currency:    currency,
		Source:      source,
		OrderRef:    orderRef,
		AmountMinor: amountMinor,
		Type:        entryType,
		CreatedAt:   createdAt.UnixMilli(),
	}
}
