package prepared

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crosslock/fusion-gateway/pkg/types"
	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "prepared:"

// RedisStore is the multi-instance backing. GETDEL gives the same atomic
// consume-once guarantee as the in-memory store, and the key TTL handles
// unconditional eviction server-side.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// RedisConfig holds Redis store configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Logger   *zap.Logger
}

// NewRedisStore creates a Redis-backed store and verifies connectivity.
func NewRedisStore(cfg *RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	cfg.Logger.Info("redis-store-connected",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB))

	return &RedisStore{
		client: client,
		ttl:    cfg.TTL,
		logger: cfg.Logger,
	}, nil
}

// Put stores the record under its preparation hash with the store TTL.
func (s *RedisStore) Put(ctx context.Context, record *types.PreparationRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal preparation record: %w", err)
	}

	err = s.client.Set(ctx, redisKeyPrefix+record.PreparationHash, payload, s.ttl).Err()
	if err != nil {
		return fmt.Errorf("store preparation record: %w", err)
	}

	PutsTotal.Inc()
	s.logger.Debug("preparation-stored",
		zap.String("preparation-hash", record.PreparationHash),
		zap.Duration("ttl", s.ttl))

	return nil
}

// Consume atomically fetches and deletes the record via GETDEL.
func (s *RedisStore) Consume(ctx context.Context, preparationHash string) (*types.PreparationRecord, error) {
	payload, err := s.client.GetDel(ctx, redisKeyPrefix+preparationHash).Bytes()
	if errors.Is(err, redis.Nil) {
		ConsumeMissesTotal.Inc()
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consume preparation record: %w", err)
	}

	var record types.PreparationRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("unmarshal preparation record: %w", err)
	}

	ConsumesTotal.Inc()
	s.logger.Debug("preparation-consumed",
		zap.String("preparation-hash", preparationHash))

	return &record, nil
}

// Has is a non-destructive existence check.
func (s *RedisStore) Has(ctx context.Context, preparationHash string) (bool, error) {
	n, err := s.client.Exists(ctx, redisKeyPrefix+preparationHash).Result()
	if err != nil {
		return false, fmt.Errorf("check preparation record: %w", err)
	}

	return n > 0, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	s.logger.Info("redis-store-closed")
	return s.client.Close()
}
