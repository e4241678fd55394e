package repository

import (
	"context"

	"github.com/forgelabs-dev/fitforge/internal/model"
	"gorm.io/gorm"
)

type LeaderboardRepository interface {
	GetTopUsers(ctx context.Context, limit int) ([]model.User, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) GetTopUsers(ctx context.Context, limit int) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Order("total_points DESC, created_at ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
