package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/metrics"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

// BalanceCache decorates a MonthlyBalanceRepository with a Redis read
// cache for single snapshots. Writes go to the store first and are then
// written through; reads only fill absent keys, so a slow reader never
// overwrites a newer snapshot.
type BalanceCache struct {
	next    usecase.MonthlyBalanceRepository
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	sf      singleflight.Group
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

var _ usecase.MonthlyBalanceRepository = (*BalanceCache)(nil)

// NewBalanceCache creates a new BalanceCache.
func NewBalanceCache(next usecase.MonthlyBalanceRepository, client *redis.Client, ttl time.Duration, m *metrics.Metrics, logger zerolog.Logger) *BalanceCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &BalanceCache{
		next:    next,
		client:  client,
		prefix:  "spendwise:balance:",
		ttl:     ttl,
		metrics: m,
		logger:  logger.With().Str("component", "balance_cache").Logger(),
	}
}

func (c *BalanceCache) key(walletID string, month domain.MonthKey) string {
	return c.prefix + walletID + ":" + month.String()
}

// Find serves from Redis when possible. Concurrent misses for the same key
// share one store read. Redis failures fall back to the store.
func (c *BalanceCache) Find(ctx context.Context, walletID string, month domain.MonthKey) (*domain.MonthlyBalance, error) {
	key := c.key(walletID, month)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached domain.MonthlyBalance
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			c.observe("hit")
			return &cached, nil
		}
		c.observe("error")
	case errors.Is(err, redis.Nil):
		c.observe("miss")
	default:
		c.observe("error")
		c.logger.Warn().Err(err).Str("key", key).Msg("balance cache read failed")
	}

	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		balance, err := c.next.Find(ctx, walletID, month)
		if err != nil {
			return nil, err
		}

		c.fill(ctx, key, balance)
		return balance, nil
	})
	if err != nil {
		return nil, err
	}

	// Callers may mutate the result, so each gets its own copy.
	out := *v.(*domain.MonthlyBalance)
	return &out, nil
}

func (c *BalanceCache) Create(ctx context.Context, balance *domain.MonthlyBalance) error {
	if err := c.next.Create(ctx, balance); err != nil {
		return err
	}

	c.store(ctx, balance)
	return nil
}

func (c *BalanceCache) Upsert(ctx context.Context, balance *domain.MonthlyBalance) error {
	if err := c.next.Upsert(ctx, balance); err != nil {
		return err
	}

	c.store(ctx, balance)
	return nil
}

func (c *BalanceCache) FindLatest(ctx context.Context, walletID string, notAfter domain.MonthKey) (*domain.MonthlyBalance, error) {
	return c.next.FindLatest(ctx, walletID, notAfter)
}

func (c *BalanceCache) ListByWallets(ctx context.Context, walletIDs []string, from, to domain.MonthKey) ([]*domain.MonthlyBalance, error) {
	return c.next.ListByWallets(ctx, walletIDs, from, to)
}

// fill caches a freshly read snapshot only if no writer got there first.
func (c *BalanceCache) fill(ctx context.Context, key string, balance *domain.MonthlyBalance) {
	raw, err := json.Marshal(balance)
	if err != nil {
		return
	}

	if err := c.client.SetNX(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("balance cache fill failed")
	}
}

// store writes a committed snapshot through. If that fails the key is
// dropped so readers go back to the store.
func (c *BalanceCache) store(ctx context.Context, balance *domain.MonthlyBalance) {
	key := c.key(balance.WalletID, balance.Month)

	raw, err := json.Marshal(balance)
	if err == nil {
		err = c.client.Set(ctx, key, raw, c.ttl).Err()
	}
	if err == nil {
		return
	}

	c.logger.Warn().Err(err).Str("key", key).Msg("balance cache write failed, evicting")
	if delErr := c.client.Del(context.WithoutCancel(ctx), key).Err(); delErr != nil {
		c.logger.Error().Err(delErr).Str("key", key).Msg("balance cache eviction failed")
	}
}

func (c *BalanceCache) observe(result string) {
	if c.metrics != nil {
		c.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}
