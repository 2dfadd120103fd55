package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	postKeyPrefix = "post:%d"
	postListKey   = "posts:list:%d:%d"
)

const (
	PostTTL     = 30 * time.Minute
	PostListTTL = 1 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

func PostListKey(limit, offset int) string {
	return fmt.Sprintf(postListKey, limit, offset)
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if Client == nil {
		return false, nil
	}
	s, err := Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if Client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return Client.Set(ctx, key, b, ttl).Err()
}

// CacheAside tries Redis first, on miss it calls fetch (which should
// populate dest), then stores the result with ttl. fetch must write into
// dest.
func CacheAside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// InvalidatePost drops the single-post entry and every cached list page.
func InvalidatePost(ctx context.Context, postID uint) {
	if Client == nil {
		return
	}
	Client.Del(ctx, PostKey(postID))
	iter := Client.Scan(ctx, 0, "posts:list:*", 0).Iterator()
	for iter.Next(ctx) {
		Client.Del(ctx, iter.Val())
	}
}
