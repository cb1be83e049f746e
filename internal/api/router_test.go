// internal/api/router_test.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"creator-wallet/internal/api/handler"
	"creator-wallet/internal/domain"
	"creator-wallet/internal/metrics"
	"creator-wallet/internal/payout"
	"creator-wallet/internal/service"
	"creator-wallet/internal/util"
)

// MockWalletService is a mock implementation of service.WalletService.
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) ListLedger(ctx context.Context, vendorID, currency string, limit, offset int) ([]domain.WalletLedgerEntry, int64, error) {
	args := m.Called(ctx, vendorID, currency, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.WalletLedgerEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockWalletService) GetWalletSummary(ctx context.Context, vendorID, currency string) (*domain.WalletSummary, error) {
	args := m.Called(ctx, vendorID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletSummary), args.Error(1)
}

func (m *MockWalletService) GetPayouts(ctx context.Context, vendorID, currency string) (*domain.PayoutSummary, error) {
	args := m.Called(ctx, vendorID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutSummary), args.Error(1)
}

func (m *MockWalletService) QuotePayoutFee(ctx context.Context, estimatedEarningsMinor int64, scheduleType string) (*payout.FeeCalculation, error) {
	args := m.Called(ctx, estimatedEarningsMinor, scheduleType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payout.FeeCalculation), args.Error(1)
}

func (m *MockWalletService) AppendEntry(ctx context.Context, input service.AppendEntryInput) (*domain.WalletLedgerEntry, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletLedgerEntry), args.Error(1)
}

func (m *MockWalletService) GetPayoutSchedule(ctx context.Context, vendorID, currency string) (*domain.VendorWallet, error) {
	args := m.Called(ctx, vendorID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VendorWallet), args.Error(1)
}

func (m *MockWalletService) SetPayoutSchedule(ctx context.Context, vendorID, currency, scheduleType string) (*domain.VendorWallet, error) {
	args := m.Called(ctx, vendorID, currency, scheduleType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VendorWallet), args.Error(1)
}

func newTestRouter(svc service.WalletService) (http.Handler, *prometheus.Registry) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	metrics.NewWalletMetrics(reg).IncFeeQuote("weekly")
	h := handler.NewWalletHandler(svc, logger, "NGN")
	return NewRouter(h, reg, logger), reg
}

// makeRequest runs a request through the router and returns the recorder.
func makeRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthAndMetrics(t *testing.T) {
	router, _ := newTestRouter(new(MockWalletService))

	rec := makeRequest(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = makeRequest(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wallet_fee_quotes_total")
}

func TestScheduleRoutes(t *testing.T) {
	t.Run("ListSchedules", func(t *testing.T) {
		router, _ := newTestRouter(new(MockWalletService))

		rec := makeRequest(t, router, http.MethodGet, "/payout-schedules", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Len(t, body["data"], 5)
		assert.Equal(t, "weekly", body["default"])
	})

	t.Run("GetSchedule", func(t *testing.T) {
		router, _ := newTestRouter(new(MockWalletService))

		rec := makeRequest(t, router, http.MethodGet, "/payout-schedules/1day", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Daily", body["label"])
		assert.Equal(t, float64(500000), body["fee_cap_minor"])
	})

	t.Run("UnknownScheduleIsNotFound", func(t *testing.T) {
		router, _ := newTestRouter(new(MockWalletService))

		rec := makeRequest(t, router, http.MethodGet, "/payout-schedules/hourly", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "unknown payout schedule type")
	})
}

func TestQuoteFee(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockWalletService)
		router, _ := newTestRouter(svc)
		svc.On("QuotePayoutFee", mock.Anything, int64(10000000), "1day").Return(&payout.FeeCalculation{
			EstimatedEarnings: 10000000,
			FeeAmount:         300000,
			NetAmount:         9700000,
			FeePercent:        decimal.NewFromInt(3),
			FeeCapMinor:       500000,
		}, nil).Once()

		rec := makeRequest(t, router, http.MethodPost, "/payout-schedules/1day/quote", `{"estimated_earnings_minor": 10000000}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "NGN", body["currency"])
		assert.Equal(t, "₦100,000.00", body["estimated_earnings"])
		assert.Equal(t, "₦3,000.00", body["fee_amount"])
		assert.Equal(t, "₦97,000.00", body["net_amount"])
		assert.Equal(t, "₦5,000.00", body["fee_cap"])
		assert.Equal(t, float64(300000), body["fee_amount_minor"])
		svc.AssertExpectations(t)
	})

	t.Run("CurrencyOverride", func(t *testing.T) {
		svc := new(MockWalletService)
		router, _ := newTestRouter(svc)
		svc.On("QuotePayoutFee", mock.Anything, int64(10000), "weekly").Return(&payout.FeeCalculation{
			EstimatedEarnings: 10000,
			FeeAmount:         100,
			NetAmount:         9900,
			FeePercent:        decimal.NewFromInt(1),
		}, nil).Once()

		rec := makeRequest(t, router, http.MethodPost, "/payout-schedules/weekly/quote?currency=usd", `{"estimated_earnings_minor": 10000}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "$1.00", body["fee_amount"])
		_, hasCap := body["fee_cap"]
		assert.False(t, hasCap)
	})

	t.Run("FractionalAmount", func(t *testing.T) {
		svc := new(MockWalletService)
		router, _ := newTestRouter(svc)

		rec := makeRequest(t, router, http.MethodPost, "/payout-schedules/weekly/quote", `{"estimated_earnings_minor": 12.5}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "QuotePayoutFee", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownSchedule", func(t *testing.T) {
		svc := new(MockWalletService)
		router, _ := newTestRouter(svc)
		svc.On("QuotePayoutFee", mock.Anything, int64(100), "hourly").
			Return(nil, fmt.Errorf("%w: %q", util.ErrUnknownScheduleType, "hourly")).Once()

		rec := makeRequest(t, router, http.MethodPost, "/payout-schedules/hourly/quote", `{"estimated_earnings_minor": 100}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestLedgerRoutes(t *testing.T) {
	t.Run("ListWithPaging", func(t *testing.T) {
		svc := new(MockWalletService)
		router, _ := newTestRouter(svc)
		entries := []domain.WalletLedgerEntry{{ID: "e1", VendorID: "vendor-1", Currency: "NGN", Type: domain.EntryTypeCreditEligible, AmountMinor: 100}}
		svc.On("ListLedger", mock.Anything, "vendor-1", "NGN", 5, 10).Return(entries, int64(11), nil).Once()

		rec := makeRequest(t, router, http.MethodGet, "/vendors/vendor-1/wallets/NGN/ledger?limit=5&offset=10", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, float64(11), body["total_count"])
		assert.Equal(t, float64(5), body["limit"])
		assert.Len(t, body["data"], 1)
		svc.AssertExpectations(t)
	})

	t.Run("InvalidLimit", func(t *testing.T) {
		svc := new(MockWalletService)
		router, _ := newTestRouter(svc)

		rec := makeRequest(t, router, http.MethodGet, "/vendors/vendor-1/wallets/NGN/ledger?limit=0", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "ListLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AppendEntry", func(t *testing.T) {
		svc := new(MockWalletService)
		router, _ := newTestRouter(svc)
		created := &domain.WalletLedgerEntry{ID: "new-id", VendorID: "vendor-1", Currency: "NGN", Type: domain.EntryTypeCreditEligible, AmountMinor: 5000}
		svc.On("AppendEntry", mock.Anything, mock.MatchedBy(func(in service.AppendEntryInput) bool {
			return in.VendorID == "vendor-1" && in.Currency == "NGN" && in.AmountMinor == 5000 &&
				in.Type == domain.EntryTypeCreditEligible && in.Source == domain.SourceStore && in.OrderRef == "order-1"
		})).Return(created, nil).Once()

		rec := makeRequest(t, router, http.MethodPost, "/vendors/vendor-1/wallets/NGN/ledger",
			`{"source":"store","order_ref":"order-1","amount_minor":5000,"type":"credit_eligible"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "new-id", decodeBody(t, rec)["id"])
		svc.AssertExpectations(t)
	})

	t.Run("AppendEntryValidation", func(t *testing.T) {
		svc := new(MockWalletService)
		router, _ := newTestRouter(svc)

		rec := makeRequest(t, router, http.MethodPost, "/vendors/vendor-1/wallets/NGN/ledger",
			`{"source":"pos","order_ref":"order-1","amount_minor":5000}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "source must be one of")
		assert.Contains(t, rec.Body.String(), "type is required")
		svc.AssertNotCalled(t, "AppendEntry", mock.Anything, mock.Anything)
	})

	t.Run("AppendEntryInvalidAmount", func(t *testing.T) {
		svc := new(MockWalletService)
		router, _ := newTestRouter(svc)
		svc.On("AppendEntry", mock.Anything, mock.Anything).Return(nil, util.ErrInvalidAmount).Once()

		rec := makeRequest(t, router, http.MethodPost, "/vendors/vendor-1/wallets/NGN/ledger",
			`{"source":"store","order_ref":"order-1","amount_minor":0,"type":"credit_eligible"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestWalletReadRoutes(t *testing.T) {
	t.Run("Summary", func(t *testing.T) {
		svc := new(MockWalletService)
		router, _ := newTestRouter(svc)
		svc.On("GetWalletSummary", mock.Anything, "vendor-1", "NGN").Return(&domain.WalletSummary{
			VendorID:          "vendor-1",
			Currency:          "NGN",
			Balance:           500000,
			PendingSettlement: 123456,
		}, nil).Once()

		rec := makeRequest(t, router, http.MethodGet, "/vendors/vendor-1/wallets/NGN/summary", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "₦5,000.00", body["formatted_balance"])
		assert.Equal(t, "₦1,234.56", body["formatted_pending_settlement"])
		assert.Equal(t, float64(500000), body["balance"])
	})

	t.Run("Payouts", func(t *testing.T) {
		svc := new(MockWalletService)
		router, _ := newTestRouter(svc)
		target := time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC)
		svc.On("GetPayouts", mock.Anything, "vendor-1", "NGN").Return(&domain.PayoutSummary{
			Payouts: []domain.PayoutEntry{
				{ID: "batch_20250912AB", AmountMinor: 500000, Currency: "NGN", Status: domain.PayoutStatusCompleted, TargetPayoutAt: &target},
			},
			TotalPayouts:     500000,
			CompletedPayouts: 1,
		}, nil).Once()

		rec := makeRequest(t, router, http.MethodGet, "/vendors/vendor-1/wallets/NGN/payouts", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "₦5,000.00", body["formatted_total_payouts"])
		assert.Equal(t, float64(1), body["completed_payouts"])
		assert.Len(t, body["payouts"], 1)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockWalletService)
		router, _ := newTestRouter(svc)
		svc.On("GetPayouts", mock.Anything, "vendor-1", "NGN").Return(nil, util.ErrNotFound).Once()

		rec := makeRequest(t, router, http.MethodGet, "/vendors/vendor-1/wallets/NGN/payouts", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Resource not found")
	})

	t.Run("InternalError", func(t *testing.T) {
		svc := new(MockWalletService)
		router, _ := newTestRouter(svc)
		svc.On("GetWalletSummary", mock.Anything, "vendor-1", "NGN").Return(nil, errors.New("db down")).Once()

		rec := makeRequest(t, router, http.MethodGet, "/vendors/vendor-1/wallets/NGN/summary", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Internal server error")
	})
}

func TestPayoutScheduleRoutes(t *testing.T) {
	t.Run("Get", func(t *testing.T) {
		svc := new(MockWalletService)
		router, _ := newTestRouter(svc)
		svc.On("GetPayoutSchedule", mock.Anything, "vendor-1", "NGN").
			Return(&domain.VendorWallet{VendorID: "vendor-1", Currency: "NGN", ScheduleType: "weekly"}, nil).Once()

		rec := makeRequest(t, router, http.MethodGet, "/vendors/vendor-1/wallets/NGN/payout-schedule", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "weekly", decodeBody(t, rec)["schedule_type"])
	})

	t.Run("Set", func(t *testing.T) {
		svc := new(MockWalletService)
		router, _ := newTestRouter(svc)
		svc.On("SetPayoutSchedule", mock.Anything, "vendor-1", "NGN", "2days").
			Return(&domain.VendorWallet{VendorID: "vendor-1", Currency: "NGN", ScheduleType: "2days"}, nil).Once()

		rec := makeRequest(t, router, http.MethodPut, "/vendors/vendor-1/wallets/NGN/payout-schedule", `{"schedule_type":"2days"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2days", decodeBody(t, rec)["schedule_type"])
		svc.AssertExpectations(t)
	})

	t.Run("SetMissingBody", func(t *testing.T) {
		svc := new(MockWalletService)
		router, _ := newTestRouter(svc)

		rec := makeRequest(t, router, http.MethodPut, "/vendors/vendor-1/wallets/NGN/payout-schedule", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
