package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lumieats/table-ordering-platform/internal/cache"
	"github.com/lumieats/table-ordering-platform/internal/cart"
	"github.com/lumieats/table-ordering-platform/internal/config"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	redisURL := cfg.RedisConnect.GetDSN()
	slog.Info("Connecting to Redis", slog.String("host", cfg.RedisConnect.Host), slog.String("port", cfg.RedisConnect.Port))

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Error("Failed to parse Redis URL", slog.Any("error", err))
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Test the connection
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")
	return client, nil
}

// cartSnapshotStore keeps encoded cart snapshots in Redis, keyed by
// session. The TTL matches the snapshot max age so abandoned carts
// evict themselves; the decode-time age check stays authoritative.
type cartSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartSnapshotStore(client *redis.Client, ttl time.Duration) cart.Store {
	if ttl <= 0 {
		ttl = cart.DefaultSnapshotMaxAge
	}

	return &cartSnapshotStore{client: client, ttl: ttl}
}

func (s *cartSnapshotStore) Load(ctx context.Context, sessionID string) ([]byte, bool, error) {
	key := cache.Key(cache.CartKeyPrefix, sessionID)

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("failed to load cart snapshot %s: %w", key, err)
	}

	return data, true, nil
}

func (s *cartSnapshotStore) Save(ctx context.Context, sessionID string, data []byte) error {
	key := cache.Key(cache.CartKeyPrefix, sessionID)

	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart snapshot %s: %w", key, err)
	}

	return nil
}

func (s *cartSnapshotStore) Delete(ctx context.Context, sessionID string) error {
	key := cache.Key(cache.CartKeyPrefix, sessionID)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cart snapshot %s: %w", key, err)
	}

	return nil
}
