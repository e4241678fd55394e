package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	leaderboardDto "github.com/forgelabs-dev/fitforge/internal/modules/leaderboard/dto"
	leaderboardRepo "github.com/forgelabs-dev/fitforge/internal/modules/leaderboard/repository"
	"github.com/redis/go-redis/v9"
)

const cacheTTL = 60 * time.Second

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, limit int) ([]leaderboardDto.LeaderboardEntry, error)
}

type leaderboardService struct {
	repo        leaderboardRepo.LeaderboardRepository
	redisClient *redis.Client
}

func NewLeaderboardService(repo leaderboardRepo.LeaderboardRepository, redisClient *redis.Client) LeaderboardService {
	return &leaderboardService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// GetLeaderboard serves from a short-lived redis cache; the board tolerates
// up to a minute of staleness in exchange for keeping the hot path off the
// users table.
func (s *leaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]leaderboardDto.LeaderboardEntry, error) {
	cacheKey := fmt.Sprintf("leaderboard:top:%d", limit)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var entries []leaderboardDto.LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		}
	}

	users, err := s.repo.GetTopUsers(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]leaderboardDto.LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, leaderboardDto.LeaderboardEntry{
			Position:    i + 1,
			UserID:      user.ID,
			Name:        user.Name,
			TotalPoints: user.TotalPoints,
			Level:       user.Level,
			Title:       user.Title,
		})
	}

	if s.redisClient != nil {
		payload, err := json.Marshal(entries)
		if err == nil {
			if err := s.redisClient.Set(ctx, cacheKey, payload, cacheTTL).Err(); err != nil {
				log.Printf("Failed to cache leaderboard: %v", err)
			}
		}
	}

	return entries, nil
}
