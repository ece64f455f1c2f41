// Package countcache caches per-user NotificationCounts in Redis.
// Entries are advisory: a miss or a Redis error falls back to the database.
//
// Every user has a version counter that Invalidate bumps. A writer reads the
// version before computing counts and Set only stores them if the version is
// still the same, so counts computed before an invalidation are never written
// back.
package countcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

// versionTTL bounds how long an untouched version counter survives.
const versionTTL = 24 * time.Hour

type entry struct {
	PendingInvitations int `json:"pending_invitations"`
	PendingSuggestions int `json:"pending_suggestions"`
	RecentApprovals    int `json:"recent_approvals"`
	RecentRejections   int `json:"recent_rejections"`
}

// Cache is a Redis-backed counts cache.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New connects to redisURL and verifies the connection.
func New(ctx context.Context, redisURL, prefix string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewWithClient(client, prefix, ttl), nil
}

// NewWithClient creates a cache from an existing Redis client.
func NewWithClient(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

func (c *Cache) key(userID uuid.UUID) string {
	return c.prefix + "counts:" + userID.String()
}

func (c *Cache) versionKey(userID uuid.UUID) string {
	return c.prefix + "counts_ver:" + userID.String()
}

// Get returns the cached counts. ok is false on a miss.
func (c *Cache) Get(ctx context.Context, userID uuid.UUID) (domain.NotificationCounts, bool, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NotificationCounts{}, false, nil
	}
	if err != nil {
		return domain.NotificationCounts{}, false, fmt.Errorf("get counts: %w", err)
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return domain.NotificationCounts{}, false, fmt.Errorf("unmarshal counts: %w", err)
	}

	return domain.NotificationCounts{
		PendingInvitations: e.PendingInvitations,
		PendingSuggestions: e.PendingSuggestions,
		RecentApprovals:    e.RecentApprovals,
		RecentRejections:   e.RecentRejections,
	}.Normalize(), true, nil
}

// Version returns the user's current invalidation version. A missing
// counter is version 0.
func (c *Cache) Version(ctx context.Context, userID uuid.UUID) (uint64, error) {
	v, err := c.client.Get(ctx, c.versionKey(userID)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get counts version: %w", err)
	}
	return v, nil
}

// Set stores counts with the configured TTL if the user's version still
// equals version. A stale write is dropped without error.
func (c *Cache) Set(ctx context.Context, userID uuid.UUID, version uint64, counts domain.NotificationCounts) error {
	data, err := json.Marshal(entry{
		PendingInvitations: counts.PendingInvitations,
		PendingSuggestions: counts.PendingSuggestions,
		RecentApprovals:    counts.RecentApprovals,
		RecentRejections:   counts.RecentRejections,
	})
	if err != nil {
		return fmt.Errorf("marshal counts: %w", err)
	}

	verKey := c.versionKey(userID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleVersion
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(userID), data, c.ttl)
			return nil
		})
		return err
	}, verKey)

	switch {
	case err == nil, errors.Is(err, errStaleVersion), errors.Is(err, redis.TxFailedErr):
		return nil
	default:
		return fmt.Errorf("set counts: %w", err)
	}
}

var errStaleVersion = errors.New("counts version changed")

// Invalidate drops the cached counts of every given user and bumps their
// versions.
func (c *Cache) Invalidate(ctx context.Context, userIDs ...uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range userIDs {
			verKey := c.versionKey(id)
			pipe.Incr(ctx, verKey)
			pipe.Expire(ctx, verKey, versionTTL)
			pipe.Del(ctx, c.key(id))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate counts: %w", err)
	}
	return nil
}

// Ping checks if Redis is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Noop is used when Redis is not configured. Every Get is a miss.
type Noop struct{}

func (Noop) Get(context.Context, uuid.UUID) (domain.NotificationCounts, bool, error) {
	return domain.NotificationCounts{}, false, nil
}

func (Noop) Version(context.Context, uuid.UUID) (uint64, error) { return 0, nil }

func (Noop) Set(context.Context, uuid.UUID, uint64, domain.NotificationCounts) error { return nil }

func (Noop) Invalidate(context.Context, ...uuid.UUID) error { return nil }

func (Noop) Ping(context.Context) error { return nil }
