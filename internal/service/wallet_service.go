// internal/service/wallet_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"creator-wallet/internal/domain"
	"creator-wallet/internal/metrics"
	"creator-wallet/internal/payout"
	"creator-wallet/internal/repository"
	"creator-wallet/internal/util"
	"creator-wallet/pkg/db"
)

// AppendEntryInput carries a new ledger movement from an upstream order or payout process.
type AppendEntryInput struct {
	VendorID       string
	Currency       string
	Source         domain.Source
	OrderRef       string
	AmountMinor    int64
	Type           domain.EntryType
	TargetPayoutAt *time.Time
	PayoutBatchID  *string
}

// WalletService defines the interface for wallet ledger and payout business logic.
type WalletService interface {
	ListLedger(ctx context.Context, vendorID, currency string, limit, offset int) ([]domain.WalletLedgerEntry, int64, error)
	GetWalletSummary(ctx context.Context, vendorID, currency string) (*domain.WalletSummary, error)
	GetPayouts(ctx context.Context, vendorID, currency string) (*domain.PayoutSummary, error)
	QuotePayoutFee(ctx context.Context, estimatedEarningsMinor int64, scheduleType string) (*payout.FeeCalculation, error)
	AppendEntry(ctx context.Context, input AppendEntryInput) (*domain.WalletLedgerEntry, error)
	GetPayoutSchedule(ctx context.Context, vendorID, currency string) (*domain.VendorWallet, error)
	SetPayoutSchedule(ctx context.Context, vendorID, currency, scheduleType string) (*domain.VendorWallet, error)
}

// Option customises a walletService.
type Option func(*walletService)

// WithCache puts a snapshot cache in front of ledger reads.
func WithCache(cache repository.LedgerCache) Option {
	return func(s *walletService) { s.cache = cache }
}

// WithMetrics records activity on the given recorder.
func WithMetrics(m *metrics.WalletMetrics) Option {
	return func(s *walletService) { s.metrics = m }
}

// WithClock overrides the wall clock used for payout status and entry timestamps.
func WithClock(clock payout.Clock) Option {
	return func(s *walletService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLocation sets the timezone payout dates are computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *walletService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger overrides the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *walletService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// walletService implements the WalletService interface.
type walletService struct {
	dbBeginner       db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor       repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	ledgerRepo       repository.LedgerRepository
	vendorWalletRepo repository.VendorWalletRepository
	beginTx          db.BeginTxFunc
	commitTx         db.CommitTxFunc
	rollbackTx       db.RollbackTxFunc

	cache   repository.LedgerCache
	metrics *metrics.WalletMetrics
	clock   payout.Clock
	loc     *time.Location
	logger  *slog.Logger
}

// NewWalletService creates a new instance of WalletService.
func NewWalletService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	ledgerRepo repository.LedgerRepository,
	vendorWalletRepo repository.VendorWalletRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	opts ...Option,
) WalletService {
	s := &walletService{
		dbBeginner:       dbBeginner,
		dbExecutor:       dbExecutor,
		ledgerRepo:       ledgerRepo,
		vendorWalletRepo: vendorWalletRepo,
		beginTx:          beginTx,
		commitTx:         commitTx,
		rollbackTx:       rollbackTx,
		clock:            payout.SystemClock,
		loc:              time.UTC,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListLedger returns one page of the vendor's ledger, newest first.
func (s *walletService) ListLedger(ctx context.Context, vendorID, currency string, limit, offset int) ([]domain.WalletLedgerEntry, int64, error) {
	vendorID, currency, err := normalizeWalletKey(vendorID, currency)
	if err != nil {
		return nil, 0, err
	}
	if limit <= 0 || offset < 0 {
		return nil, 0, fmt.Errorf("list ledger: limit must be positive and offset non-negative: %w", util.ErrInvalidInput)
	}

	entries, total, err := s.ledgerRepo.ListEntriesPage(ctx, s.dbExecutor, vendorID, currency, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list ledger: failed to list entries for %s/%s: %w", vendorID, currency, err)
	}
	return entries, total, nil
}

// GetWalletSummary reconstructs the wallet aggregate from the full ledger.
func (s *walletService) GetWalletSummary(ctx context.Context, vendorID, currency string) (*domain.WalletSummary, error) {
	vendorID, currency, err := normalizeWalletKey(vendorID, currency)
	if err != nil {
		return nil, err
	}
	entries, err := s.loadEntries(ctx, vendorID, currency)
	if err != nil {
		return nil, fmt.Errorf("wallet summary: %w", err)
	}
	summary := domain.SummarizeWallet(vendorID, currency, entries, s.clock())
	return &summary, nil
}

// GetPayouts derives the vendor's payout history from the ledger.
func (s *walletService) GetPayouts(ctx context.Context, vendorID, currency string) (*domain.PayoutSummary, error) {
	vendorID, currency, err := normalizeWalletKey(vendorID, currency)
	if err != nil {
		return nil, err
	}
	entries, err := s.loadEntries(ctx, vendorID, currency)
	if err != nil {
		return nil, fmt.Errorf("get payouts: %w", err)
	}
	summary := payout.DerivePayouts(entries, s.clock)
	s.metrics.ObserveDerivation(summary.PendingPayouts, summary.CompletedPayouts)
	return &summary, nil
}

// QuotePayoutFee previews the fee for the given earnings under a schedule tag.
func (s *walletService) QuotePayoutFee(ctx context.Context, estimatedEarningsMinor int64, scheduleType string) (*payout.FeeCalculation, error) {
	st, err := payout.ParseScheduleType(scheduleType)
	if err != nil {
		return nil, err
	}
	calc, err := payout.CalculatePayoutFee(estimatedEarningsMinor, st)
	if err != nil {
		return nil, err
	}
	s.metrics.IncFeeQuote(string(st))
	return &calc, nil
}

// AppendEntry validates and stores a new ledger entry. Eligible credits without
// an explicit target are assigned one from the vendor's payout schedule.
func (s *walletService) AppendEntry(ctx context.Context, input AppendEntryInput) (*domain.WalletLedgerEntry, error) {
	vendorID, currency, err := normalizeWalletKey(input.VendorID, input.Currency)
	if err != nil {
		return nil, err
	}
	entryType, err := domain.ParseEntryType(string(input.Type))
	if err != nil {
		return nil, fmt.Errorf("append entry: %w", err)
	}
	if !input.Source.IsValid() {
		return nil, fmt.Errorf("append entry: unknown source %q: %w", input.Source, util.ErrInvalidInput)
	}
	if strings.TrimSpace(input.OrderRef) == "" {
		return nil, fmt.Errorf("append entry: order reference is required: %w", util.ErrInvalidInput)
	}
	if input.AmountMinor <= 0 {
		return nil, util.ErrInvalidAmount
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("append entry: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("append entry: transaction controller does not implement DBExecutor")
	}

	entry := domain.NewLedgerEntry(vendorID, currency, input.Source, strings.TrimSpace(input.OrderRef), input.AmountMinor, entryType, s.clock())
	if input.PayoutBatchID != nil && *input.PayoutBatchID != "" {
		batchID := *input.PayoutBatchID
		entry.PayoutBatchID = &batchID
	}

	switch {
	case input.TargetPayoutAt != nil:
		target := input.TargetPayoutAt.UTC()
		key := input.TargetPayoutAt.In(s.loc).Format(payout.TargetKeyLayout)
		entry.TargetPayoutAt = &target
		entry.TargetPayoutKey = &key
	case entryType == domain.EntryTypeCreditEligible:
		scheduleType, err := s.scheduleFor(ctx, txExecutor, vendorID, currency)
		if err != nil {
			return nil, fmt.Errorf("append entry: %w", err)
		}
		target, key, err := payout.TargetPayoutDate(entry.CreatedTime(), scheduleType, s.loc)
		if err != nil {
			return nil, fmt.Errorf("append entry: %w", err)
		}
		target = target.UTC()
		entry.TargetPayoutAt = &target
		entry.TargetPayoutKey = &key
	}

	if err := s.ledgerRepo.AppendEntry(ctx, txExecutor, entry); err != nil {
		return nil, fmt.Errorf("append entry: failed to store entry: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("append entry: failed to commit transaction: %w", err)
	}

	s.invalidate(ctx, vendorID, currency)
	s.metrics.IncLedgerAppend(string(entry.Type))
	s.logger.InfoContext(ctx, "ledger entry appended",
		"entry_id", entry.ID,
		"vendor_id", vendorID,
		"currency", currency,
		"type", entry.Type,
		"amount_minor", entry.AmountMinor,
	)
	return entry, nil
}

// GetPayoutSchedule returns the vendor's payout settings. Vendors that never
// chose a schedule get an unsaved weekly default.
func (s *walletService) GetPayoutSchedule(ctx context.Context, vendorID, currency string) (*domain.VendorWallet, error) {
	vendorID, currency, err := normalizeWalletKey(vendorID, currency)
	if err != nil {
		return nil, err
	}
	wallet, err := s.vendorWalletRepo.GetVendorWallet(ctx, s.dbExecutor, vendorID, currency)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return domain.NewVendorWallet(vendorID, currency, string(payout.DefaultSchedule), s.clock()), nil
		}
		return nil, fmt.Errorf("get payout schedule: %w", err)
	}
	return wallet, nil
}

// SetPayoutSchedule stores the vendor's chosen schedule. It only affects credits appended afterwards.
func (s *walletService) SetPayoutSchedule(ctx context.Context, vendorID, currency, scheduleType string) (*domain.VendorWallet, error) {
	vendorID, currency, err := normalizeWalletKey(vendorID, currency)
	if err != nil {
		return nil, err
	}
	st, err := payout.ParseScheduleType(scheduleType)
	if err != nil {
		return nil, err
	}

	wallet := domain.NewVendorWallet(vendorID, currency, string(st), s.clock())
	if err := s.vendorWalletRepo.UpsertVendorWallet(ctx, s.dbExecutor, wallet); err != nil {
		return nil, fmt.Errorf("set payout schedule: %w", err)
	}
	s.logger.InfoContext(ctx, "payout schedule updated", "vendor_id", vendorID, "currency", currency, "schedule", st)
	return wallet, nil
}

// scheduleFor resolves the vendor's schedule, falling back to the default.
// A stored tag outside the table is an error rather than a silent default.
func (s *walletService) scheduleFor(ctx context.Context, q repository.DBExecutor, vendorID, currency string) (payout.ScheduleType, error) {
	wallet, err := s.vendorWalletRepo.GetVendorWallet(ctx, q, vendorID, currency)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return payout.DefaultSchedule, nil
		}
		return "", fmt.Errorf("failed to load payout schedule: %w", err)
	}
	return payout.ParseScheduleType(wallet.ScheduleType)
}

// loadEntries reads the full ledger, going through the snapshot cache when one is configured.
// A snapshot is only written back under the generation read before the database
// query, so a load that races with AppendEntry cannot outlive its invalidation.
// Cache failures are logged and the database is used instead.
func (s *walletService) loadEntries(ctx context.Context, vendorID, currency string) ([]domain.WalletLedgerEntry, error) {
	var (
		generation int64
		cacheable  bool
	)
	if s.cache != nil {
		entries, gen, hit, err := s.cache.Get(ctx, vendorID, currency)
		if err != nil {
			s.logger.WarnContext(ctx, "ledger cache read failed", "vendor_id", vendorID, "currency", currency, "error", err)
		} else {
			s.metrics.IncCacheLookup(hit)
			if hit {
				return entries, nil
			}
			generation, cacheable = gen, true
		}
	}

	entries, err := s.ledgerRepo.ListEntries(ctx, s.dbExecutor, vendorID, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for %s/%s: %w", vendorID, currency, err)
	}

	if cacheable {
		if err := s.cache.Set(ctx, vendorID, currency, generation, entries); err != nil {
			s.logger.WarnContext(ctx, "ledger cache write failed", "vendor_id", vendorID, "currency", currency, "error", err)
		}
	}
	return entries, nil
}

func (s *walletService) invalidate(ctx context.Context, vendorID, currency string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, vendorID, currency); err != nil {
		s.logger.WarnContext(ctx, "ledger cache invalidation failed", "vendor_id", vendorID, "currency", currency, "error", err)
	}
}

// normalizeWalletKey trims the vendor id and upper-cases the ISO currency code.
func normalizeWalletKey(vendorID, currency string) (string, string, error) {
	vendorID = strings.TrimSpace(vendorID)
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if vendorID == "" {
		return "", "", fmt.Errorf("vendor id is required: %w", util.ErrInvalidInput)
	}
	if len(currency) != 3 {
		return "", "", fmt.Errorf("currency must be a 3-letter ISO code: %w", util.ErrInvalidInput)
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return "", "", fmt.Errorf("currency must be a 3-letter ISO code: %w", util.ErrInvalidInput)
		}
	}
	return vendorID, currency, nil
}
