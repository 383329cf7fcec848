package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/grupo99/customer-service/internal/config"
	"github.com/grupo99/customer-service/internal/domain"
)

// Redis wraps the go-redis client and the customer read cache built on it.
type Redis struct {
	Client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis using the provided configuration. The cache is
// best-effort: connection problems are logged, never fatal.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client, ttl: cfg.CacheTTL()}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

func customerKey(personID uuid.UUID) string {
	return "customer:" + personID.String()
}

// GetCustomer returns the cached customer, or (nil, false) on miss or any
// cache error.
func (r *Redis) GetCustomer(ctx context.Context, personID uuid.UUID) (*domain.Customer, bool) {
	if r == nil || r.Client == nil {
		return nil, false
	}
	raw, err := r.Client.Get(ctx, customerKey(personID)).Bytes()
	if err != nil {
		return nil, false
	}
	var customer domain.Customer
	if err := json.Unmarshal(raw, &customer); err != nil {
		return nil, false
	}
	return &customer, true
}

// SetCustomer stores the customer with the configured TTL. Failures are
// silently dropped; the database remains the source of truth.
func (r *Redis) SetCustomer(ctx context.Context, customer *domain.Customer) {
	if r == nil || r.Client == nil || customer == nil {
		return
	}
	raw, err := json.Marshal(customer)
	if err != nil {
		return
	}
	_ = r.Client.Set(ctx, customerKey(customer.PersonID), raw, r.ttl).Err()
}

// InvalidateCustomer drops the cache entry after a write.
func (r *Redis) InvalidateCustomer(ctx context.Context, personID uuid.UUID) {
	if r == nil || r.Client == nil {
		return
	}
	_ = r.Client.Del(ctx, customerKey(personID)).Err()
}
