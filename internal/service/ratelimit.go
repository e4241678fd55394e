package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CheckAndSetRateLimit atomically claims a per-user action slot. It returns
// true when the action may proceed. A nil client disables rate limiting so
// the app degrades gracefully without redis.
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string, limit time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), action)

	wasSet, err := rdb.SetNX(ctx, key, "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

// GetRateLimitTTL reports how long the user's slot stays claimed, for the
// Retry-After header on rejected requests.
func GetRateLimitTTL(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string) (time.Duration, error) {
	if rdb == nil {
		return 0, nil
	}
	key := fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), action)
	return rdb.TTL(ctx, key).Result()
}

// RetryAfterSeconds renders a TTL as a Retry-After header value. Rounds up so
// clients never retry inside the window.
func RetryAfterSeconds(ttl time.Duration) string {
	secs := int64((ttl + time.Second - 1) / time.Second)
	return strconv.FormatInt(secs, 10)
}
