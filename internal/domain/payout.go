// internal/domain/payout.go
package domain

import "time"

// PayoutStatus is the derived state of a payout record.
type PayoutStatus string

const (
	PayoutStatusPending   PayoutStatus = "pending"
	PayoutStatusCompleted PayoutStatus = "completed"
)

// PayoutEntry is a read-only projection of one debit_payout ledger entry.
// It is recomputed on every read and never persisted.
type PayoutEntry struct {
	ID             string       `json:"id"`
	AmountMinor    int64        `json:"amount_minor"`
	Currency       string       `json:"currency"`
	Status         PayoutStatus `json:"status"`
	Reference      *string      `json:"reference,omitempty"`
	TargetPayoutAt *time.Time   `json:"target_payout_at,omitempty"`
	PayoutBatchID  *string      `json:"payout_batch_id,omitempty"`
	CreatedAt      int64        `json:"created_at"`
}

// PayoutSummary is the derived payout list plus its aggregates.
type PayoutSummary struct {
	Payouts          []PayoutEntry `json:"payouts"`
	TotalPayouts     int64         `json:"total_payouts"`
	PendingPayouts   int           `json:"pending_payouts"`
	CompletedPayouts int           `json:"completed_payouts"`
}
