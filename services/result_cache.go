package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LovationAdmin/giftfinder-api/config"
	"github.com/LovationAdmin/giftfinder-api/models"
)

// ErrCacheMiss indicates a cache miss.
var ErrCacheMiss = errors.New("cache miss")

// ResultCache stores live (provider) results. Fallback data is never cached.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]models.GiftResult, error)
	Set(ctx context.Context, key string, results []models.GiftResult) error
	Close() error
}

type RedisResultCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisResultCache connects and pings Redis.
func NewRedisResultCache(cfg config.Config) (*RedisResultCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &RedisResultCache{client: client, prefix: "giftfinder:results:", ttl: ttl}, nil
}

func (c *RedisResultCache) Get(ctx context.Context, key string) ([]models.GiftResult, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var results []models.GiftResult
	if err := json.Unmarshal(val, &results); err != nil {
		return nil, fmt.Errorf("decode cached results: %w", err)
	}
	return results, nil
}

func (c *RedisResultCache) Set(ctx context.Context, key string, results []models.GiftResult) error {
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisResultCache) Close() error {
	return c.client.Close()
}

// CacheKey derives a key from everything that shapes the ranked live results.
func CacheKey(providerQuery string, profile models.RecipientProfile) string {
	parts := []string{
		providerQuery,
		formatAmount(profile.BudgetLimit),
		strings.ToLower(profile.PersonalityType),
		strings.ToLower(strings.Join(profile.Interests, ",")),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
