package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"eshoplite/internal/domain"
)

const productsCacheKey = "catalog:products"

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedCatalog es un read-through cache en Redis delante de un ProductCatalog.
// Si Redis falla se consulta directamente al upstream.
type CachedCatalog struct {
	upstream ProductCatalog
	client   redisKV
	ttl      time.Duration
	logger   *zap.Logger
	group    singleflight.Group
}

func NewCachedCatalog(upstream ProductCatalog, client *redis.Client, ttl time.Duration, logger *zap.Logger) ProductCatalog {
	if client == nil {
		return upstream
	}
	return newCachedCatalog(upstream, client, ttl, logger)
}

func newCachedCatalog(upstream ProductCatalog, client redisKV, ttl time.Duration, logger *zap.Logger) *CachedCatalog {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedCatalog{
		upstream: upstream,
		client:   client,
		ttl:      ttl,
		logger:   logger,
	}
}

func (c *CachedCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if products, ok := c.readCache(ctx); ok {
		return products, nil
	}

	v, err, _ := c.group.Do(productsCacheKey, func() (interface{}, error) {
		products, err := c.upstream.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		c.writeCache(ctx, products)
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func (c *CachedCatalog) readCache(ctx context.Context) ([]domain.Product, bool) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	raw, err := c.client.Get(ctx, productsCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("catalog cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		c.logger.Warn("catalog cache decode failed", zap.Error(err))
		return nil, false
	}
	return products, true
}

func (c *CachedCatalog) writeCache(ctx context.Context, products []domain.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	if err := c.client.Set(ctx, productsCacheKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", zap.Error(err))
	}
}
