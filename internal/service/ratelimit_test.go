package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCheckAndSetRateLimitWithoutRedis(t *testing.T) {
	allowed, err := CheckAndSetRateLimit(context.Background(), nil, uuid.New(), "challenge_progress", time.Second)
	if err != nil {
		t.Fatalf("CheckAndSetRateLimit returned error: %v", err)
	}
	if !allowed {
		t.Error("allowed = false without redis, want true")
	}
}

func TestGetRateLimitTTLWithoutRedis(t *testing.T) {
	ttl, err := GetRateLimitTTL(context.Background(), nil, uuid.New(), "challenge_progress")
	if err != nil {
		t.Fatalf("GetRateLimitTTL returned error: %v", err)
	}
	if ttl != 0 {
		t.Errorf("ttl = %v without redis, want 0", ttl)
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		want string
	}{
		{"sub-second rounds up", 900 * time.Millisecond, "1"},
		{"exact second", time.Second, "1"},
		{"fraction rounds up", 1200 * time.Millisecond, "2"},
		{"thirty seconds", 30 * time.Second, "30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RetryAfterSeconds(tt.ttl); got != tt.want {
				t.Errorf("RetryAfterSeconds(%v) = %q, want %q", tt.ttl, got, tt.want)
			}
		})
	}
}
