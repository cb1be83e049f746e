// internal/api/handler/wallet.go
package handler

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"creator-wallet/internal/api/types"
	"creator-wallet/internal/api/validators"
	"creator-wallet/internal/domain"
	"creator-wallet/internal/payout"
	"creator-wallet/internal/service"
	"creator-wallet/internal/util" // For custom errors
)

// DefaultTimeout bounds how long a single request may run.
const DefaultTimeout = 30 * time.Second

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// WalletHandler handles HTTP requests for vendor ledgers, payouts and payout schedules.
type WalletHandler struct {
	service         service.WalletService
	logger          *slog.Logger
	defaultCurrency string
}

// NewWalletHandler creates a new WalletHandler. defaultCurrency is used to
// format fee quotes when the caller does not name one.
func NewWalletHandler(svc service.WalletService, logger *slog.Logger, defaultCurrency string) *WalletHandler {
	if defaultCurrency == "" {
		defaultCurrency = payout.DefaultCurrency
	}
	return &WalletHandler{
		service:         svc,
		logger:          logger,
		defaultCurrency: defaultCurrency,
	}
}

// Helper function to send JSON responses.
func (h *WalletHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *WalletHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidAmount),
		util.IsError(err, util.ErrInvalidInput),
		util.IsError(err, util.ErrUnknownScheduleType):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, types.ErrorResponse{Error: message})
}

// WalletSummaryResponse is the summary plus display strings for its headline amounts.
type WalletSummaryResponse struct {
	domain.WalletSummary
	FormattedBalance           string `json:"formatted_balance"`
	FormattedPendingSettlement string `json:"formatted_pending_settlement"`
}

// PayoutsResponse is the derived payout list plus the formatted total.
type PayoutsResponse struct {
	domain.PayoutSummary
	FormattedTotalPayouts string `json:"formatted_total_payouts"`
}

// AppendEntryRequest represents the request body for appending a ledger entry.
type AppendEntryRequest struct {
	Source         string     `json:"source" validate:"required,oneof=event store"`
	OrderRef       string     `json:"order_ref" validate:"required,max=128"`
	AmountMinor    *int64     `json:"amount_minor" validate:"required"`
	Type           string     `json:"type" validate:"required,oneof=credit_eligible debit_payout debit_refund credit_release debit_hold"`
	TargetPayoutAt *time.Time `json:"target_payout_at"`
	PayoutBatchID  *string    `json:"payout_batch_id" validate:"omitempty,max=64"`
}

// SetPayoutScheduleRequest represents the request body for choosing a payout tier.
type SetPayoutScheduleRequest struct {
	ScheduleType string `json:"schedule_type" validate:"required"`
}

// ListLedger handles the ledger listing request.
// GET /vendors/{vendorID}/wallets/{currency}/ledger
func (h *WalletHandler) ListLedger(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "vendorID")
	currency := chi.URLParam(r, "currency")

	limit, err := validators.ParseQueryInt(r, "limit", defaultPageLimit, 1, maxPageLimit)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	offset, err := validators.ParseQueryInt(r, "offset", 0, 0, math.MaxInt32)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	entries, total, err := h.service.ListLedger(r.Context(), vendorID, currency, limit, offset)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.NewPaginatedResponse(entries, limit, offset, total))
}

// AppendEntry handles the append ledger entry request.
// POST /vendors/{vendorID}/wallets/{currency}/ledger
func (h *WalletHandler) AppendEntry(w http.ResponseWriter, r *http.Request) {
	var req AppendEntryRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	entry, err := h.service.AppendEntry(r.Context(), service.AppendEntryInput{
		VendorID:       chi.URLParam(r, "vendorID"),
		Currency:       chi.URLParam(r, "currency"),
		Source:         domain.Source(req.Source),
		OrderRef:       req.OrderRef,
		AmountMinor:    *req.AmountMinor,
		Type:           domain.EntryType(req.Type),
		TargetPayoutAt: req.TargetPayoutAt,
		PayoutBatchID:  req.PayoutBatchID,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, entry)
}

// GetWalletSummary handles the wallet summary request.
// GET /vendors/{vendorID}/wallets/{currency}/summary
func (h *WalletHandler) GetWalletSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetWalletSummary(r.Context(), chi.URLParam(r, "vendorID"), chi.URLParam(r, "currency"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, WalletSummaryResponse{
		WalletSummary:              *summary,
		FormattedBalance:           payout.FormatCurrency(summary.Balance, summary.Currency),
		FormattedPendingSettlement: payout.FormatCurrency(summary.PendingSettlement, summary.Currency),
	})
}

// GetPayouts handles the payout history request.
// GET /vendors/{vendorID}/wallets/{currency}/payouts
func (h *WalletHandler) GetPayouts(w http.ResponseWriter, r *http.Request) {
	currency := chi.URLParam(r, "currency")
	summary, err := h.service.GetPayouts(r.Context(), chi.URLParam(r, "vendorID"), currency)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, PayoutsResponse{
		PayoutSummary:         *summary,
		FormattedTotalPayouts: payout.FormatCurrency(summary.TotalPayouts, currency),
	})
}

// GetPayoutSchedule handles the vendor schedule lookup.
// GET /vendors/{vendorID}/wallets/{currency}/payout-schedule
func (h *WalletHandler) GetPayoutSchedule(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.service.GetPayoutSchedule(r.Context(), chi.URLParam(r, "vendorID"), chi.URLParam(r, "currency"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, wallet)
}

// SetPayoutSchedule handles the vendor schedule change.
// PUT /vendors/{vendorID}/wallets/{currency}/payout-schedule
func (h *WalletHandler) SetPayoutSchedule(w http.ResponseWriter, r *http.Request) {
	var req SetPayoutScheduleRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	wallet, err := h.service.SetPayoutSchedule(r.Context(), chi.URLParam(r, "vendorID"), chi.URLParam(r, "currency"), req.ScheduleType)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, wallet)
}
