package cache

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cacher is the storage behind FindAndCache. *Cache and Noop implement it.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type FetchFunc[T any] func(ctx context.Context) (T, error)

// generations counts Invalidate calls per key in this process. A fill that
// started under an older generation must not leave its value behind.
var generations sync.Map

func generation(key string) *atomic.Uint64 {
	g, _ := generations.LoadOrStore(key, new(atomic.Uint64))
	return g.(*atomic.Uint64)
}

// storeFill writes a fetched value unless key was invalidated after the fetch
// began at generation gen. An invalidation racing the write deletes it again.
func storeFill(ctx context.Context, c Cacher, key string, gen uint64, value any, ttl time.Duration) (bool, error) {
	g := generation(key)
	if g.Load() != gen {
		return false, nil
	}
	if err := c.Set(ctx, key, value, ttl); err != nil {
		return false, err
	}
	if g.Load() != gen {
		return false, c.Delete(ctx, key)
	}
	return true, nil
}

const (
	defaultFetchTimeout = 15 * time.Second
	defaultSetTimeout   = 5 * time.Second
)

// addTTLJitter adds up to ±15s random jitter so keys written together do not expire together.
func addTTLJitter(ttl time.Duration) time.Duration {
	if ttl <= 30*time.Second {
		return ttl
	}
	jitter := time.Duration(rand.Intn(30)-15) * time.Second
	return ttl + jitter
}

func triggerBackgroundRefresh[T any](
	c Cacher,
	sf *singleflight.Group,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
	fn FetchFunc[T],
) {
	go func() {
		_, _, _ = sf.Do(key+":refresh", func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), defaultFetchTimeout)
			defer cancel()

			gen := generation(key).Load()
			value, err := fn(ctx)
			if err != nil {
				logger.Warn("background refresh failed",
					zap.String("key", key),
					zap.Error(err))
				return nil, err
			}

			setCtx, cancelSet := context.WithTimeout(context.Background(), defaultSetTimeout)
			defer cancelSet()

			ttlWithJitter := addTTLJitter(ttl)
			stored, err := storeFill(setCtx, c, key, gen, value, ttlWithJitter)
			switch {
			case err != nil:
				logger.Warn("failed to update cache in background",
					zap.String("key", key),
					zap.Error(err))
			case !stored:
				logger.Debug("background refresh discarded after invalidation", zap.String("key", key))
			default:
				logger.Debug("cache refreshed in background",
					zap.String("key", key),
					zap.Duration("ttl", ttlWithJitter))
			}

			return value, nil
		})
	}()
}

func fetchAndStore[T any](
	ctx context.Context,
	c Cacher,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
	fn FetchFunc[T],
) (T, error) {
	var zero T

	gen := generation(key).Load()
	value, err := fn(ctx)
	if err != nil {
		logger.Error("fetch failed", zap.String("key", key), zap.Error(err))
		return zero, err
	}

	setCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultSetTimeout)
	defer cancel()

	stored, err := storeFill(setCtx, c, key, gen, value, addTTLJitter(ttl))
	switch {
	case err != nil:
		logger.Warn("failed to set cache on miss", zap.String("key", key), zap.Error(err))
	case !stored:
		logger.Debug("fill discarded after invalidation", zap.String("key", key))
	default:
		logger.Debug("cache populated on miss", zap.String("key", key))
	}

	return value, nil
}

// FindAndCache implements read-through caching with singleflight and refresh-ahead.
// A hit is returned immediately and refreshed in the background; a miss is
// fetched once per key no matter how many callers are waiting.
// Cache errors never fail the call.
func FindAndCache[T any](
	ctx context.Context,
	c Cacher,
	sf *singleflight.Group,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
	fn FetchFunc[T],
) (T, error) {
	var zero T
	if logger == nil {
		logger = zap.NewNop()
	}

	var cached T
	err := c.Get(ctx, key, &cached)
	switch {
	case err == nil:
		logger.Debug("cache hit", zap.String("key", key))
		triggerBackgroundRefresh(c, sf, key, ttl, logger, fn)
		return cached, nil

	case errors.Is(err, ErrMiss):
		logger.Debug("cache miss", zap.String("key", key))

	default:
		logger.Warn("cache get error (treating as miss)", zap.String("key", key), zap.Error(err))
	}

	v, err, shared := sf.Do(key, func() (any, error) {
		return fetchAndStore(ctx, c, key, ttl, logger, fn)
	})
	if err != nil {
		return zero, err
	}

	value, ok := v.(T)
	if !ok {
		logger.Error("singleflight type mismatch", zap.String("key", key))
		return zero, fmt.Errorf("type mismatch for key %q", key)
	}

	if shared {
		logger.Debug("singleflight shared result", zap.String("key", key))
	}

	return value, nil
}

// Invalidate drops keys and logs instead of failing when the cache is unreachable.
// Fills of these keys already in flight in this process are discarded.
func Invalidate(ctx context.Context, c Cacher, logger *zap.Logger, keys ...string) {
	for _, key := range keys {
		generation(key).Add(1)
	}
	if err := c.Delete(ctx, keys...); err != nil && logger != nil {
		logger.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
