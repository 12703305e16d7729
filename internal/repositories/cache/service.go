package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bux/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// ErrCacheMiss is returned when a key is not present.
var ErrCacheMiss = errors.New("cache miss")

// CacheService is a thin JSON cache over Redis for read-heavy lookups
// (users, balances). Persistence stays authoritative; every write path
// invalidates rather than updates.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// GenerateKey builds a namespaced cache key.
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// User caching

func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	return s.Set(ctx, s.GenerateKey("user", "id", user.ID), user)
}

func (s *CacheService) GetUser(ctx context.Context, key string) (*models.User, error) {
	var user models.User
	if err := s.Get(ctx, key, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, userID uint) error {
	return s.Delete(ctx, s.GenerateKey("user", "id", userID))
}

// Balance caching

func (s *CacheService) CacheBalance(ctx context.Context, userID uint, balance decimal.Decimal) error {
	return s.Set(ctx, s.GenerateKey("balance", "user", userID), balance)
}

func (s *CacheService) GetBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := s.Get(ctx, s.GenerateKey("balance", "user", userID), &balance); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

func (s *CacheService) InvalidateBalance(ctx context.Context, userID uint) error {
	return s.Delete(ctx, s.GenerateKey("balance", "user", userID))
}

// Maintenance

func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}
