// internal/metrics/wallet.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// WalletMetrics counts ledger and payout activity.
type WalletMetrics struct {
	ledgerAppends  *prometheus.CounterVec
	feeQuotes      *prometheus.CounterVec
	derivations    prometheus.Counter
	derivedPayouts *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
}

// NewWalletMetrics registers the wallet metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewWalletMetrics(reg prometheus.Registerer) *WalletMetrics {
	if reg == nil {
		return &WalletMetrics{}
	}
	ledgerAppends := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_ledger_appends_total",
		Help: "Ledger entries appended, by entry type.",
	}, []string{"type"})
	feeQuotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_fee_quotes_total",
		Help: "Payout fee quotes computed, by schedule type.",
	}, []string{"schedule"})
	derivations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wallet_payout_derivations_total",
		Help: "Payout derivations run over a ledger.",
	})
	derivedPayouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_derived_payouts_total",
		Help: "Payout entries produced by derivation, by status.",
	}, []string{"status"})
	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_ledger_cache_lookups_total",
		Help: "Ledger snapshot cache lookups, by result.",
	}, []string{"result"})
	reg.MustRegister(ledgerAppends, feeQuotes, derivations, derivedPayouts, cacheLookups)
	return &WalletMetrics{
		ledgerAppends:  ledgerAppends,
		feeQuotes:      feeQuotes,
		derivations:    derivations,
		derivedPayouts: derivedPayouts,
		cacheLookups:   cacheLookups,
	}
}

// IncLedgerAppend counts one appended entry of the given type.
func (m *WalletMetrics) IncLedgerAppend(entryType string) {
	if m == nil || m.ledgerAppends == nil {
		return
	}
	m.ledgerAppends.WithLabelValues(normalizeLabel(entryType)).Inc()
}

// IncFeeQuote counts one fee quote for the given schedule.
func (m *WalletMetrics) IncFeeQuote(schedule string) {
	if m == nil || m.feeQuotes == nil {
		return
	}
	m.feeQuotes.WithLabelValues(normalizeLabel(schedule)).Inc()
}

// ObserveDerivation records one derivation run and its pending/completed split.
func (m *WalletMetrics) ObserveDerivation(pending, completed int) {
	if m == nil || m.derivations == nil {
		return
	}
	m.derivations.Inc()
	m.derivedPayouts.WithLabelValues("pending").Add(float64(pending))
	m.derivedPayouts.WithLabelValues("completed").Add(float64(completed))
}

// IncCacheLookup counts a cache hit or miss.
func (m *WalletMetrics) IncCacheLookup(hit bool) {
	if m == nil || m.cacheLookups == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
