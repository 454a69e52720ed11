package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/warf-hq/warf-backend/pkg/config"
)

// NewRedisClient creates a Redis client and verifies the connection
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// RedisFlagStore keeps session-scoped face verification flags in Redis. Each
// flag lives under its own key with a TTL, so a flag can never outlive the
// session by more than the configured bound and needs no explicit cleanup.
type RedisFlagStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisFlagStore creates a Redis-backed session flag store
func NewRedisFlagStore(client *redis.Client, ttl time.Duration) *RedisFlagStore {
	return &RedisFlagStore{client: client, ttl: ttl}
}

func flagKey(sessionID, meetingID uuid.UUID) string {
	return fmt.Sprintf("face_verified:%s:%s", sessionID, meetingID)
}

// SetFaceVerified marks the (session, meeting) pair as verified
func (s *RedisFlagStore) SetFaceVerified(ctx context.Context, sessionID, meetingID uuid.UUID) error {
	return s.client.Set(ctx, flagKey(sessionID, meetingID), "1", s.ttl).Err()
}

// HasFaceVerified reports whether the pair was verified within the TTL
func (s *RedisFlagStore) HasFaceVerified(ctx context.Context, sessionID, meetingID uuid.UUID) (bool, error) {
	err := s.client.Get(ctx, flagKey(sessionID, meetingID)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ClearFaceVerified drops the flag, forcing a re-verification
func (s *RedisFlagStore) ClearFaceVerified(ctx context.Context, sessionID, meetingID uuid.UUID) error {
	return s.client.Del(ctx, flagKey(sessionID, meetingID)).Err()
}
