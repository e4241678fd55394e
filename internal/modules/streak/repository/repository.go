package repository

import (
	"context"
	"errors"

	"github.com/forgelabs-dev/fitforge/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StreakRepository interface {
	// GetOrCreateForUpdate returns the user's streak row locked for the
	// remainder of tx, creating it first if the user has never worked out.
	GetOrCreateForUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*model.Streak, error)
	Save(ctx context.Context, tx *gorm.DB, streak *model.Streak) error
	Get(ctx context.Context, userID uuid.UUID) (*model.Streak, error)
}

type streakRepository struct {
	db *gorm.DB
}

func NewStreakRepository(db *gorm.DB) StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) GetOrCreateForUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*model.Streak, error) {
	var streak model.Streak
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&streak, "user_id = ?", userID).Error
	if err == nil {
		return &streak, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// First activity for this user. The unique index on user_id makes the
	// insert race-safe; on conflict another request created the row, so
	// fall back to locking that one.
	streak = model.Streak{UserID: userID, Multiplier: 1.0}
	res := tx.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&streak)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		err = tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&streak, "user_id = ?", userID).Error
		if err != nil {
			return nil, err
		}
	}
	return &streak, nil
}

func (r *streakRepository) Save(ctx context.Context, tx *gorm.DB, streak *model.Streak) error {
	return tx.WithContext(ctx).Model(streak).
		Select("current_streak", "longest_streak", "last_activity_at", "multiplier").
		Updates(map[string]interface{}{
			"current_streak":   streak.CurrentStreak,
			"longest_streak":   streak.LongestStreak,
			"last_activity_at": streak.LastActivityAt,
			"multiplier":       streak.Multiplier,
		}).Error
}

func (r *streakRepository) Get(ctx context.Context, userID uuid.UUID) (*model.Streak, error) {
	var streak model.Streak
	err := r.db.WithContext(ctx).First(&streak, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &streak, nil
}
