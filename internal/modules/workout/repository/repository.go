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

type WorkoutRepository interface {
	Create(ctx context.Context, workout *model.Workout) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Workout, error)
	GetForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Workout, error)
	MarkCompleted(ctx context.Context, tx *gorm.DB, workout *model.Workout) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Workout, int64, error)

	CreateExerciseLogs(ctx context.Context, tx *gorm.DB, logs []model.ExerciseLog) error

	// BestRecord returns the user's best value for the exercise and record
	// type, or found=false when no record exists yet.
	BestRecord(ctx context.Context, tx *gorm.DB, userID uuid.UUID, exerciseName, recordType string) (float64, bool, error)
	CreatePersonalRecord(ctx context.Context, tx *gorm.DB, record *model.PersonalRecord) error
	ListRecords(ctx context.Context, userID uuid.UUID) ([]model.PersonalRecord, error)

	CountCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	CountRecords(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	CountRecordsSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) (int64, error)
}

type workoutRepository struct {
	db *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) WorkoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) Create(ctx context.Context, workout *model.Workout) error {
	return r.db.WithContext(ctx).Create(workout).Error
}

func (r *workoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Workout, error) {
	var workout model.Workout
	err := r.db.WithContext(ctx).
		Preload("Exercises").
		First(&workout, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *workoutRepository) GetForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Workout, error) {
	var workout model.Workout
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&workout, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// Preload cannot ride along with FOR UPDATE on the joined rows.
	if err := tx.WithContext(ctx).
		Where("workout_id = ?", id).
		Find(&workout.Exercises).Error; err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *workoutRepository) MarkCompleted(ctx context.Context, tx *gorm.DB, workout *model.Workout) error {
	return tx.WithContext(ctx).Model(workout).
		Select("completed", "completed_at", "difficulty_rating", "notes").
		Updates(map[string]interface{}{
			"completed":         workout.Completed,
			"completed_at":      workout.CompletedAt,
			"difficulty_rating": workout.DifficultyRating,
			"notes":             workout.Notes,
		}).Error
}

func (r *workoutRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Workout, int64, error) {
	var workouts []model.Workout
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Workout{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Exercises").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&workouts).Error
	return workouts, total, err
}

func (r *workoutRepository) CreateExerciseLogs(ctx context.Context, tx *gorm.DB, logs []model.ExerciseLog) error {
	if len(logs) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&logs).Error
}

func (r *workoutRepository) BestRecord(ctx context.Context, tx *gorm.DB, userID uuid.UUID, exerciseName, recordType string) (float64, bool, error) {
	var record model.PersonalRecord
	err := tx.WithContext(ctx).
		Where("user_id = ? AND exercise_name = ? AND record_type = ?", userID, exerciseName, recordType).
		Order("value DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return record.Value, true, nil
}

func (r *workoutRepository) CreatePersonalRecord(ctx context.Context, tx *gorm.DB, record *model.PersonalRecord) error {
	return tx.WithContext(ctx).Create(record).Error
}

func (r *workoutRepository) ListRecords(ctx context.Context, userID uuid.UUID) ([]model.PersonalRecord, error) {
	var records []model.PersonalRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("achieved_at DESC").
		Find(&records).Error
	return records, err
}

func (r *workoutRepository) CountCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.Workout{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *workoutRepository) CountRecords(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.PersonalRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *workoutRepository) CountRecordsSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.PersonalRecord{}).
		Where("user_id = ? AND achieved_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}
