// internal/repository/cache/ledger_cache.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"creator-wallet/internal/domain"
	"creator-wallet/internal/repository"
)

const (
	keyNamespace     = "cw"
	ledgerPrefix     = "ledger"
	generationSuffix = "gen"
)

// cmdable is the subset of the go-redis client the cache uses.
type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// Config holds the Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// LedgerCache stores full ledger snapshots in Redis as JSON. Each snapshot
// is tagged with the key generation it was loaded under; the generation
// counter itself never expires.
type LedgerCache struct {
	store cmdable
	ttl   time.Duration
}

var _ repository.LedgerCache = (*LedgerCache)(nil)

// NewRedisClient opens a Redis connection and verifies it with a ping.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewLedgerCache wraps a Redis client. A non-positive ttl stores keys without expiry.
func NewLedgerCache(store cmdable, ttl time.Duration) *LedgerCache {
	if ttl < 0 {
		ttl = 0
	}
	return &LedgerCache{store: store, ttl: ttl}
}

type snapshot struct {
	Generation int64                      `json:"generation"`
	Entries    []domain.WalletLedgerEntry `json:"entries"`
}

// Get returns the cached snapshot for the ledger, if any, and the current
// generation of its key. A snapshot written under an older generation is a miss.
func (c *LedgerCache) Get(ctx context.Context, vendorID, currency string) ([]domain.WalletLedgerEntry, int64, bool, error) {
	gen, err := c.generation(ctx, vendorID, currency)
	if err != nil {
		return nil, 0, false, err
	}
	raw, err := c.store.Get(ctx, LedgerKey(vendorID, currency)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gen, false, nil
		}
		return nil, gen, false, fmt.Errorf("read ledger cache: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, gen, false, fmt.Errorf("decode ledger cache: %w", err)
	}
	if snap.Generation != gen {
		return nil, gen, false, nil
	}
	return snap.Entries, gen, true, nil
}

// Set stores the snapshot for the ledger under the given generation.
func (c *LedgerCache) Set(ctx context.Context, vendorID, currency string, generation int64, entries []domain.WalletLedgerEntry) error {
	payload, err := json.Marshal(snapshot{Generation: generation, Entries: entries})
	if err != nil {
		return fmt.Errorf("encode ledger cache: %w", err)
	}
	if err := c.store.Set(ctx, LedgerKey(vendorID, currency), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("write ledger cache: %w", err)
	}
	return nil
}

// Invalidate bumps the key generation and drops the snapshot so the next
// read goes to the database.
func (c *LedgerCache) Invalidate(ctx context.Context, vendorID, currency string) error {
	if err := c.store.Incr(ctx, GenerationKey(vendorID, currency)).Err(); err != nil {
		return fmt.Errorf("bump ledger cache generation: %w", err)
	}
	if err := c.store.Del(ctx, LedgerKey(vendorID, currency)).Err(); err != nil {
		return fmt.Errorf("invalidate ledger cache: %w", err)
	}
	return nil
}

func (c *LedgerCache) generation(ctx context.Context, vendorID, currency string) (int64, error) {
	gen, err := c.store.Get(ctx, GenerationKey(vendorID, currency)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("read ledger cache generation: %w", err)
	}
	return gen, nil
}

// LedgerKey returns the namespaced key for a vendor+currency ledger snapshot.
func LedgerKey(vendorID, currency string) string {
	return strings.Join([]string{keyNamespace, ledgerPrefix, vendorID, strings.ToUpper(currency)}, ":")
}

// GenerationKey returns the key holding the invalidation counter for a ledger.
func GenerationKey(vendorID, currency string) string {
	return LedgerKey(vendorID, currency) + ":" + generationSuffix
}
