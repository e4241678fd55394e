package repository

import (
	"context"

	"github.com/forgelabs-dev/fitforge/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository interface {
	// InsertGrant inserts the grant with ON CONFLICT DO NOTHING on
	// (user_id, name) and reports whether this call created the row. A
	// false return means another request won the race; callers treat that
	// as "already granted", never as an error.
	InsertGrant(ctx context.Context, tx *gorm.DB, grant *model.AchievementGrant) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AchievementGrant, error)
}

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) InsertGrant(ctx context.Context, tx *gorm.DB, grant *model.AchievementGrant) (bool, error) {
	res := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
			DoNothing: true,
		}).
		Create(grant)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *achievementRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AchievementGrant, error) {
	var grants []model.AchievementGrant
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("granted_at DESC").
		Find(&grants).Error
	return grants, err
}
