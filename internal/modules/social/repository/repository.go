package repository

import (
	"context"
	"errors"
	"time"

	"github.com/forgelabs-dev/fitforge/internal/model"
	"github.com/forgelabs-dev/fitforge/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SocialRepository interface {
	CreateHighlight(ctx context.Context, highlight *model.WorkoutHighlight) error
	GetHighlight(ctx context.Context, id uuid.UUID) (*model.WorkoutHighlight, error)
	IncrementLikes(ctx context.Context, tx *gorm.DB, highlightID uuid.UUID) (*model.WorkoutHighlight, error)
	DeleteHighlight(ctx context.Context, id uuid.UUID) error
	ListHighlights(ctx context.Context, limit, offset int) ([]model.WorkoutHighlight, error)
	ListHighlightsByUsers(ctx context.Context, userIDs []uuid.UUID, since time.Time, limit int) ([]model.WorkoutHighlight, error)

	CreateFriendship(ctx context.Context, friendship *model.Friendship) error
	GetFriendship(ctx context.Context, id uuid.UUID) (*model.Friendship, error)
	AcceptFriendship(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	CountAcceptedFriends(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)

	CreateGymSpotted(ctx context.Context, tx *gorm.DB, spotted *model.GymSpotted) error
	ListGymSpotted(ctx context.Context, gymLocation string, since time.Time, limit int) ([]model.GymSpotted, error)

	CreateTransformation(ctx context.Context, tx *gorm.DB, progress *model.TransformationProgress) error
	CountTransformations(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	ListTransformations(ctx context.Context, userID uuid.UUID) ([]model.TransformationProgress, error)
}

type socialRepository struct {
	db *gorm.DB
}

func NewSocialRepository(db *gorm.DB) SocialRepository {
	return &socialRepository{db: db}
}

func (r *socialRepository) CreateHighlight(ctx context.Context, highlight *model.WorkoutHighlight) error {
	return r.db.WithContext(ctx).Create(highlight).Error
}

func (r *socialRepository) GetHighlight(ctx context.Context, id uuid.UUID) (*model.WorkoutHighlight, error) {
	var highlight model.WorkoutHighlight
	err := r.db.WithContext(ctx).First(&highlight, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &highlight, nil
}

// IncrementLikes bumps the counter atomically and returns the fresh row.
func (r *socialRepository) IncrementLikes(ctx context.Context, tx *gorm.DB, highlightID uuid.UUID) (*model.WorkoutHighlight, error) {
	res := tx.WithContext(ctx).Model(&model.WorkoutHighlight{}).
		Where("id = ?", highlightID).
		Update("likes", gorm.Expr("likes + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperror.ErrNotFound
	}

	var highlight model.WorkoutHighlight
	if err := tx.WithContext(ctx).First(&highlight, "id = ?", highlightID).Error; err != nil {
		return nil, err
	}
	return &highlight, nil
}

func (r *socialRepository) DeleteHighlight(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.WorkoutHighlight{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *socialRepository) ListHighlights(ctx context.Context, limit, offset int) ([]model.WorkoutHighlight, error) {
	var highlights []model.WorkoutHighlight
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&highlights).Error
	return highlights, err
}

func (r *socialRepository) ListHighlightsByUsers(ctx context.Context, userIDs []uuid.UUID, since time.Time, limit int) ([]model.WorkoutHighlight, error) {
	if len(userIDs) == 0 {
		return []model.WorkoutHighlight{}, nil
	}
	var highlights []model.WorkoutHighlight
	err := r.db.WithContext(ctx).
		Where("user_id IN ? AND created_at >= ?", userIDs, since).
		Order("created_at DESC").
		Limit(limit).
		Find(&highlights).Error
	return highlights, err
}

func (r *socialRepository) CreateFriendship(ctx context.Context, friendship *model.Friendship) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "friend_id"}},
			DoNothing: true,
		}).
		Create(friendship).Error
}

func (r *socialRepository) GetFriendship(ctx context.Context, id uuid.UUID) (*model.Friendship, error) {
	var friendship model.Friendship
	err := r.db.WithContext(ctx).First(&friendship, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &friendship, nil
}

// AcceptFriendship flips pending->accepted and reports whether this call made
// the flip, mirroring the one-time challenge payout guard.
func (r *socialRepository) AcceptFriendship(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	res := tx.WithContext(ctx).Model(&model.Friendship{}).
		Where("id = ? AND status = ?", id, model.FriendshipPending).
		Update("status", model.FriendshipAccepted)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *socialRepository) FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var friendships []model.Friendship
	err := r.db.WithContext(ctx).
		Where("(user_id = ? OR friend_id = ?) AND status = ?", userID, userID, model.FriendshipAccepted).
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(friendships))
	for _, f := range friendships {
		if f.UserID == userID {
			ids = append(ids, f.FriendID)
		} else {
			ids = append(ids, f.UserID)
		}
	}
	return ids, nil
}

func (r *socialRepository) CountAcceptedFriends(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.Friendship{}).
		Where("(user_id = ? OR friend_id = ?) AND status = ?", userID, userID, model.FriendshipAccepted).
		Count(&count).Error
	return count, err
}

func (r *socialRepository) CreateGymSpotted(ctx context.Context, tx *gorm.DB, spotted *model.GymSpotted) error {
	return tx.WithContext(ctx).Create(spotted).Error
}

func (r *socialRepository) ListGymSpotted(ctx context.Context, gymLocation string, since time.Time, limit int) ([]model.GymSpotted, error) {
	q := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Limit(limit)
	if gymLocation != "" {
		q = q.Where("gym_location = ?", gymLocation)
	}

	var spotted []model.GymSpotted
	err := q.Find(&spotted).Error
	return spotted, err
}

func (r *socialRepository) CreateTransformation(ctx context.Context, tx *gorm.DB, progress *model.TransformationProgress) error {
	return tx.WithContext(ctx).Create(progress).Error
}

func (r *socialRepository) CountTransformations(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.TransformationProgress{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *socialRepository) ListTransformations(ctx context.Context, userID uuid.UUID) ([]model.TransformationProgress, error) {
	var progress []model.TransformationProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&progress).Error
	return progress, err
}
