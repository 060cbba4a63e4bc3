// Package cache provides an optional Redis read-through cache for business
// records. Buffer config and time zone are consulted on every hold, promote
// and availability call but change rarely.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/wb-go/wbf/logger"
)

const defaultTTL = 5 * time.Minute

type BusinessCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger logger.Logger
}

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewBusinessCache connects to Redis. An empty addr disables caching: the
// returned nil cache is a valid "always miss" handle for the services.
func NewBusinessCache(cfg Config, log logger.Logger) (*BusinessCache, error) {
	if cfg.Addr == "" {
		log.Warn("redis addr is empty, business cache disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &BusinessCache{
		client: client,
		ttl:    ttl,
		prefix: "rentalhold:business:",
		logger: log,
	}, nil
}

func (c *BusinessCache) Get(ctx context.Context, id string) (*domain.Business, bool) {
	data, err := c.client.Get(ctx, c.prefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("business cache get failed",
				logger.String("business_id", id),
				logger.String("error", err.Error()),
			)
		}
		return nil, false
	}

	var b domain.Business
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, false
	}
	return &b, true
}

func (c *BusinessCache) Set(ctx context.Context, b *domain.Business) {
	data, err := json.Marshal(b)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.prefix+b.ID, data, c.ttl).Err(); err != nil {
		c.logger.Warn("business cache set failed",
			logger.String("business_id", b.ID),
			logger.String("error", err.Error()),
		)
	}
}

func (c *BusinessCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, c.prefix+id).Err(); err != nil {
		c.logger.Warn("business cache invalidate failed",
			logger.String("business_id", id),
			logger.String("error", err.Error()),
		)
	}
}

func (c *BusinessCache) Close() error {
	return c.client.Close()
}
