package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/layer-3/zetafrog/core"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis implementation of the token and snapshot stores
type RedisStore struct {
	client      *redis.Client
	prefix      string
	frogPrefix  string
	snapshotTTL time.Duration
}

// NewRedisStore creates a new Redis store. Snapshots expire after snapshotTTL, zero keeps them.
func NewRedisStore(client *redis.Client, snapshotTTL time.Duration) *RedisStore {
	return &RedisStore{
		client:      client,
		prefix:      "zetafrog:invalidated:",
		frogPrefix:  "zetafrog:frog:",
		snapshotTTL: snapshotTTL,
	}
}

// InvalidateToken marks a token as invalidated in Redis
func (s *RedisStore) InvalidateToken(ctx context.Context, tokenID string, expiry time.Duration) error {
	key := s.prefix + tokenID

	// Set key with expiration
	if err := s.client.Set(ctx, key, "1", expiry).Err(); err != nil {
		return fmt.Errorf("failed to invalidate token: %w", err)
	}

	return nil
}

// IsTokenInvalidated checks if a token is invalidated in Redis
func (s *RedisStore) IsTokenInvalidated(ctx context.Context, tokenID string) (bool, error) {
	key := s.prefix + tokenID

	// Check if key exists
	val, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token invalidation: %w", err)
	}

	return val > 0, nil
}

// SaveFrog stores a frog snapshot as JSON
func (s *RedisStore) SaveFrog(ctx context.Context, frog core.Frog) error {
	payload, err := json.Marshal(frog)
	if err != nil {
		return fmt.Errorf("failed to marshal frog: %w", err)
	}

	if err := s.client.Set(ctx, s.frogKey(frog.TokenID), payload, s.snapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to save frog snapshot: %w", err)
	}
	return nil
}

// Frog loads a frog snapshot
func (s *RedisStore) Frog(ctx context.Context, tokenID int) (core.Frog, error) {
	payload, err := s.client.Get(ctx, s.frogKey(tokenID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return core.Frog{}, core.ErrSnapshotNotFound
		}
		return core.Frog{}, fmt.Errorf("failed to load frog snapshot: %w", err)
	}

	var frog core.Frog
	if err := json.Unmarshal(payload, &frog); err != nil {
		return core.Frog{}, fmt.Errorf("failed to decode frog snapshot: %w", err)
	}
	return frog, nil
}

func (s *RedisStore) frogKey(tokenID int) string {
	return s.frogPrefix + strconv.Itoa(tokenID)
}
