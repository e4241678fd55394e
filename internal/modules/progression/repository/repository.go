package repository

import (
	"context"
	"errors"

	"github.com/forgelabs-dev/fitforge/internal/model"
	"github.com/forgelabs-dev/fitforge/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserProgressRepository interface {
	// GetForUpdate locks the user row for the remainder of tx. All mutating
	// progression operations go through this lock, which is what serializes
	// concurrent requests against the same user.
	GetForUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*model.User, error)
	SaveProgress(ctx context.Context, tx *gorm.DB, user *model.User) error
	Get(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type userProgressRepository struct {
	db *gorm.DB
}

func NewUserProgressRepository(db *gorm.DB) UserProgressRepository {
	return &userProgressRepository{db: db}
}

func (r *userProgressRepository) GetForUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*model.User, error) {
	var user model.User
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userProgressRepository) SaveProgress(ctx context.Context, tx *gorm.DB, user *model.User) error {
	return tx.WithContext(ctx).Model(user).
		Select("total_points", "level", "title").
		Updates(map[string]interface{}{
			"total_points": user.TotalPoints,
			"level":        user.Level,
			"title":        user.Title,
		}).Error
}

func (r *userProgressRepository) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
