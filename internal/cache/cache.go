package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segyhp/credit-ledger/internal/domain"
)

const totalsKey = "credit-ledger:dashboard:totals"

// TotalsCache stores the dashboard totals between writes.
type TotalsCache interface {
	// Get returns the cached totals; ok is false on a miss.
	Get(ctx context.Context) (totals domain.DashboardTotals, ok bool, err error)
	Set(ctx context.Context, totals domain.DashboardTotals) error
	Invalidate(ctx context.Context) error
}

// OpenRedis connects and pings the server.
func OpenRedis(addr, password string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

type redisTotalsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTotalsCache(client *redis.Client, ttl time.Duration) TotalsCache {
	return &redisTotalsCache{client: client, ttl: ttl}
}

func (c *redisTotalsCache) Get(ctx context.Context) (domain.DashboardTotals, bool, error) {
	var totals domain.DashboardTotals

	raw, err := c.client.Get(ctx, totalsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return totals, false, nil
	}
	if err != nil {
		return totals, false, err
	}

	if err := json.Unmarshal(raw, &totals); err != nil {
		return domain.DashboardTotals{}, false, err
	}
	return totals, true, nil
}

func (c *redisTotalsCache) Set(ctx context.Context, totals domain.DashboardTotals) error {
	raw, err := json.Marshal(totals)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, totalsKey, raw, c.ttl).Err()
}

func (c *redisTotalsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, totalsKey).Err()
}

// Noop is used when Redis is not configured; every Get misses.
type Noop struct{}

func (Noop) Get(context.Context) (domain.DashboardTotals, bool, error) {
	return domain.DashboardTotals{}, false, nil
}

func (Noop) Set(context.Context, domain.DashboardTotals) error { return nil }

func (Noop) Invalidate(context.Context) error { return nil }
