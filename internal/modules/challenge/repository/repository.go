package repository

import (
	"context"
	"errors"
	"time"

	"github.com/forgelabs-dev/fitforge/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Challenge, error)
	ListActive(ctx context.Context, now time.Time) ([]model.Challenge, error)
	Create(ctx context.Context, challenge *model.Challenge) error
	CountActiveByType(ctx context.Context, challengeType string, now time.Time) (int64, error)

	// JoinParticipant inserts with ON CONFLICT DO NOTHING on
	// (challenge_id, user_id); joining twice is a no-op, never an error.
	JoinParticipant(ctx context.Context, participant *model.ChallengeParticipant) error
	GetParticipant(ctx context.Context, challengeID, userID uuid.UUID) (*model.ChallengeParticipant, error)
	GetParticipantForUpdate(ctx context.Context, tx *gorm.DB, challengeID, userID uuid.UUID) (*model.ChallengeParticipant, error)
	SaveProgress(ctx context.Context, tx *gorm.DB, participant *model.ChallengeParticipant) error

	// MarkCompleted flips completed only if it is still false and reports
	// whether this call made the flip. Exactly one caller ever sees true,
	// so the reward pays out once.
	MarkCompleted(ctx context.Context, tx *gorm.DB, participantID uuid.UUID, at time.Time) (bool, error)
	ListParticipations(ctx context.Context, userID uuid.UUID) ([]model.ChallengeParticipant, error)
}

type challengeRepository struct {
	db *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.db.WithContext(ctx).First(&challenge, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *challengeRepository) ListActive(ctx context.Context, now time.Time) ([]model.Challenge, error) {
	var challenges []model.Challenge
	err := r.db.WithContext(ctx).
		Where("start_at <= ? AND end_at > ?", now, now).
		Order("end_at ASC").
		Find(&challenges).Error
	return challenges, err
}

func (r *challengeRepository) Create(ctx context.Context, challenge *model.Challenge) error {
	return r.db.WithContext(ctx).Create(challenge).Error
}

func (r *challengeRepository) CountActiveByType(ctx context.Context, challengeType string, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Challenge{}).
		Where("type = ? AND start_at <= ? AND end_at > ?", challengeType, now, now).
		Count(&count).Error
	return count, err
}

func (r *challengeRepository) JoinParticipant(ctx context.Context, participant *model.ChallengeParticipant) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "challenge_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(participant).Error
}

func (r *challengeRepository) GetParticipant(ctx context.Context, challengeID, userID uuid.UUID) (*model.ChallengeParticipant, error) {
	var participant model.ChallengeParticipant
	err := r.db.WithContext(ctx).
		First(&participant, "challenge_id = ? AND user_id = ?", challengeID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *challengeRepository) GetParticipantForUpdate(ctx context.Context, tx *gorm.DB, challengeID, userID uuid.UUID) (*model.ChallengeParticipant, error) {
	var participant model.ChallengeParticipant
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&participant, "challenge_id = ? AND user_id = ?", challengeID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *challengeRepository) SaveProgress(ctx context.Context, tx *gorm.DB, participant *model.ChallengeParticipant) error {
	return tx.WithContext(ctx).Model(participant).
		Update("current_value", participant.CurrentValue).Error
}

func (r *challengeRepository) MarkCompleted(ctx context.Context, tx *gorm.DB, participantID uuid.UUID, at time.Time) (bool, error) {
	res := tx.WithContext(ctx).Model(&model.ChallengeParticipant{}).
		Where("id = ? AND completed = ?", participantID, false).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *challengeRepository) ListParticipations(ctx context.Context, userID uuid.UUID) ([]model.ChallengeParticipant, error) {
	var participations []model.ChallengeParticipant
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("joined_at DESC").
		Find(&participations).Error
	return participations, err
}
