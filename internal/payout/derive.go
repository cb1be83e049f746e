// internal/payout/derive.go
package payout

import (
	"sort"
	"strconv"
	"strings"

	"creator-wallet/internal/domain"
)

const (
	referencePrefix = "TXN_"
	referenceLength = 8
)

// DerivePayouts reduces a vendor's ledger entries to payout records, newest first.
//
// Only debit_payout entries become payouts. A payout is pending while its
// target payout time is still ahead of clock(), otherwise completed. The
// input order does not matter and the input slice is not modified.
func DerivePayouts(entries []domain.WalletLedgerEntry, clock Clock) domain.PayoutSummary {
	if clock == nil {
		clock = SystemClock
	}
	now := clock()

	summary := domain.PayoutSummary{Payouts: []domain.PayoutEntry{}}
	for _, entry := range entries {
		if entry.Type != domain.EntryTypeDebitPayout {
			continue
		}

		p := domain.PayoutEntry{
			ID:             payoutID(entry),
			AmountMinor:    entry.AmountMinor,
			Currency:       entry.Currency,
			Status:         domain.PayoutStatusCompleted,
			TargetPayoutAt: entry.TargetPayoutAt,
			PayoutBatchID:  entry.PayoutBatchID,
			CreatedAt:      entry.CreatedAt,
		}
		if entry.TargetPayoutAt != nil && entry.TargetPayoutAt.After(now) {
			p.Status = domain.PayoutStatusPending
		}
		if entry.IsSettled() {
			ref := BatchReference(*entry.PayoutBatchID)
			p.Reference = &ref
		}
		summary.Payouts = append(summary.Payouts, p)
	}

	sort.SliceStable(summary.Payouts, func(i, j int) bool {
		return summary.Payouts[i].CreatedAt > summary.Payouts[j].CreatedAt
	})

	for _, p := range summary.Payouts {
		summary.TotalPayouts += p.AmountMinor
		switch p.Status {
		case domain.PayoutStatusPending:
			summary.PendingPayouts++
		case domain.PayoutStatusCompleted:
			summary.CompletedPayouts++
		}
	}
	return summary
}

// BatchReference renders the human-facing reference for a payout batch id:
// the last eight characters, upper-cased, prefixed with TXN_.
func BatchReference(batchID string) string {
	runes := []rune(batchID)
	if len(runes) > referenceLength {
		runes = runes[len(runes)-referenceLength:]
	}
	return referencePrefix + strings.ToUpper(string(runes))
}

// The synthesized id is for display keys only; it is not unique enough to join on.
func payoutID(entry domain.WalletLedgerEntry) string {
	if entry.IsSettled() {
		return *entry.PayoutBatchID
	}
	return strconv.FormatInt(entry.CreatedAt, 10) + "-" + strconv.FormatInt(entry.AmountMinor, 10)
}
