// internal/api/handler/schedule.go
package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"creator-wallet/internal/api/types"
	"creator-wallet/internal/api/validators"
	"creator-wallet/internal/payout"
	"creator-wallet/internal/util"
)

// QuoteFeeRequest represents the request body for a payout fee quote.
type QuoteFeeRequest struct {
	EstimatedEarningsMinor *int64 `json:"estimated_earnings_minor" validate:"required"`
}

// FeeQuoteResponse is a fee calculation together with display strings.
type FeeQuoteResponse struct {
	ScheduleType           payout.ScheduleType `json:"schedule_type"`
	Label                  string              `json:"label"`
	TimelineDays           int                 `json:"timeline_days"`
	Currency               string              `json:"currency"`
	EstimatedEarningsMinor int64               `json:"estimated_earnings_minor"`
	FeeAmountMinor         int64               `json:"fee_amount_minor"`
	NetAmountMinor         int64               `json:"net_amount_minor"`
	FeePercent             decimal.Decimal     `json:"fee_percent"`
	FeeCapMinor            int64               `json:"fee_cap_minor"`
	EstimatedEarnings      string              `json:"estimated_earnings"`
	FeeAmount              string              `json:"fee_amount"`
	NetAmount              string              `json:"net_amount"`
	FeeCap                 string              `json:"fee_cap,omitempty"`
}

// ListSchedules returns the payout schedule table.
// GET /payout-schedules
func (h *WalletHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data":    payout.Schedules(),
		"default": payout.DefaultSchedule,
	})
}

// GetSchedule returns one row of the schedule table.
// GET /payout-schedules/{scheduleType}
func (h *WalletHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	cfg, err := payout.GetScheduleConfig(payout.ScheduleType(chi.URLParam(r, "scheduleType")))
	if err != nil {
		if util.IsError(err, util.ErrUnknownScheduleType) {
			h.respondWithJSON(w, http.StatusNotFound, types.ErrorResponse{Error: err.Error()})
			return
		}
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, cfg)
}

// QuoteFee previews the fee and net payout for an earnings amount.
// POST /payout-schedules/{scheduleType}/quote?currency=NGN
func (h *WalletHandler) QuoteFee(w http.ResponseWriter, r *http.Request) {
	var req QuoteFeeRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	scheduleTag := chi.URLParam(r, "scheduleType")
	calc, err := h.service.QuotePayoutFee(r.Context(), *req.EstimatedEarningsMinor, scheduleTag)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	cfg, err := payout.GetScheduleConfig(payout.ScheduleType(scheduleTag))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	currency := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("currency")))
	if currency == "" {
		currency = h.defaultCurrency
	}

	resp := FeeQuoteResponse{
		ScheduleType:           cfg.Type,
		Label:                  cfg.Label,
		TimelineDays:           cfg.TimelineDays,
		Currency:               currency,
		EstimatedEarningsMinor: calc.EstimatedEarnings,
		FeeAmountMinor:         calc.FeeAmount,
		NetAmountMinor:         calc.NetAmount,
		FeePercent:             calc.FeePercent,
		FeeCapMinor:            calc.FeeCapMinor,
		EstimatedEarnings:      payout.FormatCurrency(calc.EstimatedEarnings, currency),
		FeeAmount:              payout.FormatCurrency(calc.FeeAmount, currency),
		NetAmount:              payout.FormatCurrency(calc.NetAmount, currency),
	}
	if calc.FeeCapMinor > 0 {
		resp.FeeCap = payout.FormatCurrency(calc.FeeCapMinor, currency)
	}
	h.respondWithJSON(w, http.StatusOK, resp)
}
