// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"creator-wallet/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router. gatherer backs /metrics; nil
// falls back to the default Prometheus registry.
func NewRouter(walletHandler *handler.WalletHandler, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorLog: slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}))

	// Static schedule table and fee previews
	r.Route("/payout-schedules", func(r chi.Router) {
		r.Get("/", walletHandler.ListSchedules)
		r.Get("/{scheduleType}", walletHandler.GetSchedule)
		r.Post("/{scheduleType}/quote", walletHandler.QuoteFee)
	})

	// Per vendor+currency wallet
	r.Route("/vendors/{vendorID}/wallets/{currency}", func(r chi.Router) {
		r.Get("/ledger", walletHandler.ListLedger)
		r.Post("/ledger", walletHandler.AppendEntry)
		r.Get("/summary", walletHandler.GetWalletSummary)
		r.Get("/payouts", walletHandler.GetPayouts)
		r.Get("/payout-schedule", walletHandler.GetPayoutSchedule)
		r.Put("/payout-schedule", walletHandler.SetPayoutSchedule)
	})

	return r
}
