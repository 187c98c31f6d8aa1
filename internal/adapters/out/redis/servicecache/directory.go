// Package servicecache decorates a ports.ServiceDirectory with a Redis read-through
// cache.
package servicecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/pricing"
	"laundry/internal/core/ports"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

const keyPrefix = "service:"

// DefaultTTL is used when the directory is created with a non-positive TTL.
const DefaultTTL = 5 * time.Minute

type cachedQuote struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Unit  string          `json:"unit"`
}

// Directory serves quotes from Redis and asks next only for the ids that missed.
// Redis failures never fail a lookup; they are logged and the lookup goes to next.
type Directory struct {
	rdb    redis.Cmdable
	next   ports.ServiceDirectory
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.ServiceDirectory = (*Directory)(nil)

func NewDirectory(rdb redis.Cmdable, next ports.ServiceDirectory, ttl time.Duration, logger *slog.Logger) *Directory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Directory{
		rdb:    rdb,
		next:   next,
		ttl:    ttl,
		logger: logger.With("component", "service-cache"),
	}
}

// Connect parses redisURL and pings the server, like the other Redis clients in this
// codebase.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

func (d *Directory) FindByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]pricing.Quote, error) {
	quotes := make(map[kernel.UUID]pricing.Quote, len(ids))
	if len(ids) == 0 {
		return quotes, nil
	}

	missing := d.readCached(ctx, ids, quotes)
	if len(missing) == 0 {
		return quotes, nil
	}

	fetched, err := d.next.FindByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, quote := range fetched {
		quotes[id] = quote
	}
	d.store(ctx, fetched)

	return quotes, nil
}

// readCached fills quotes from Redis and returns the ids it could not serve.
func (d *Directory) readCached(ctx context.Context, ids []kernel.UUID, quotes map[kernel.UUID]pricing.Quote) []kernel.UUID {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, key(id))
	}

	values, err := d.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		d.logger.Warn("Service cache read failed", "error", err)
		return ids
	}

	missing := make([]kernel.UUID, 0)
	for i, id := range ids {
		raw, ok := values[i].(string)
		if !ok {
			missing = append(missing, id)
			continue
		}
		var cached cachedQuote
		if err := json.Unmarshal([]byte(raw), &cached); err != nil {
			d.logger.Warn("Dropping unreadable service cache entry", "serviceId", id.String(), "error", err)
			missing = append(missing, id)
			continue
		}
		quotes[id] = pricing.Quote{
			Name:  cached.Name,
			Price: cached.Price,
			Unit:  pricing.Unit(cached.Unit),
		}
	}
	return missing
}

func (d *Directory) store(ctx context.Context, quotes map[kernel.UUID]pricing.Quote) {
	if len(quotes) == 0 {
		return
	}

	_, err := d.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for id, quote := range quotes {
			payload, err := json.Marshal(cachedQuote{
				Name:  quote.Name,
				Price: quote.Price,
				Unit:  string(quote.Unit),
			})
			if err != nil {
				return err
			}
			pipe.Set(ctx, key(id), payload, d.ttl)
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		d.logger.Warn("Service cache write failed", "count", len(quotes), "error", err)
	}
}

// Invalidate drops the cached quotes of ids.
func (d *Directory) Invalidate(ctx context.Context, ids ...kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, key(id))
	}
	return d.rdb.Del(ctx, keys...).Err()
}

func key(id kernel.UUID) string {
	return keyPrefix + id.String()
}
