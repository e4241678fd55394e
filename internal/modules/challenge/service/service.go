package service

import (
	"context"
	"time"

	"github.com/forgelabs-dev/fitforge/internal/catalog"
	"github.com/forgelabs-dev/fitforge/internal/model"
	"github.com/forgelabs-dev/fitforge/internal/modules/challenge/repository"
	progression "github.com/forgelabs-dev/fitforge/internal/modules/progression/service"
	"github.com/forgelabs-dev/fitforge/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressResult reports the participant state after a progress update. Award
// is non-nil only on the update that crossed the target and paid the reward.
type ProgressResult struct {
	ChallengeID   uuid.UUID                `json:"challenge_id"`
	ChallengeName string                   `json:"challenge_name"`
	CurrentValue  int                      `json:"current_value"`
	TargetValue   int                      `json:"target_value"`
	Completed     bool                     `json:"completed"`
	RewardPaid    bool                     `json:"reward_paid"`
	RewardPoints  int                      `json:"reward_points,omitempty"`
	MemeReward    string                   `json:"meme_reward,omitempty"`
	Award         *progression.AwardResult `json:"progress,omitempty"`
}

type ChallengeTracker interface {
	ListActive(ctx context.Context) ([]model.Challenge, error)
	Join(ctx context.Context, challengeID, userID uuid.UUID) (*model.ChallengeParticipant, error)
	UpdateProgress(ctx context.Context, challengeID, userID uuid.UUID, currentValue int) (ProgressResult, error)
	ListParticipations(ctx context.Context, userID uuid.UUID) ([]model.ChallengeParticipant, error)

	// EnsureActiveChallenges tops up daily and weekly challenges from the
	// catalog templates. Called at startup and from the rotation ticker.
	EnsureActiveChallenges(ctx context.Context, now time.Time) error
}

type challengeTracker struct {
	db     *gorm.DB
	repo   repository.ChallengeRepository
	ledger progression.PointLedger
	cat    *catalog.Catalog
}

func NewChallengeTracker(db *gorm.DB, repo repository.ChallengeRepository, ledger progression.PointLedger, cat *catalog.Catalog) ChallengeTracker {
	return &challengeTracker{db: db, repo: repo, ledger: ledger, cat: cat}
}

func (s *challengeTracker) ListActive(ctx context.Context) ([]model.Challenge, error) {
	return s.repo.ListActive(ctx, time.Now())
}

func (s *challengeTracker) Join(ctx context.Context, challengeID, userID uuid.UUID) (*model.ChallengeParticipant, error) {
	challenge, err := s.repo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, apperror.ErrUnknownChallenge
	}
	if !challenge.EndAt.After(time.Now()) {
		return nil, apperror.New(400, "challenge has already ended", apperror.ErrBadRequest)
	}

	participant := &model.ChallengeParticipant{
		ChallengeID: challengeID,
		UserID:      userID,
	}
	if err := s.repo.JoinParticipant(ctx, participant); err != nil {
		return nil, err
	}

	// Re-read so a repeated join returns the existing row instead of the
	// zero-value insert attempt.
	return s.repo.GetParticipant(ctx, challengeID, userID)
}

func (s *challengeTracker) UpdateProgress(ctx context.Context, challengeID, userID uuid.UUID, currentValue int) (ProgressResult, error) {
	challenge, err := s.repo.GetByID(ctx, challengeID)
	if err != nil {
		return ProgressResult{}, err
	}
	if challenge == nil {
		return ProgressResult{}, apperror.ErrUnknownChallenge
	}

	res := ProgressResult{
		ChallengeID:   challenge.ID,
		ChallengeName: challenge.Name,
		TargetValue:   challenge.TargetValue,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.updateProgressInTx(ctx, tx, challenge, userID, currentValue, &res)
	})
	if err != nil {
		return ProgressResult{}, err
	}
	return res, nil
}

func (s *challengeTracker) updateProgressInTx(ctx context.Context, tx *gorm.DB, challenge *model.Challenge, userID uuid.UUID, currentValue int, res *ProgressResult) error {
	participant, err := s.repo.GetParticipantForUpdate(ctx, tx, challenge.ID, userID)
	if err != nil {
		return err
	}
	if participant == nil {
		return apperror.ErrNotParticipating
	}

	participant.CurrentValue = currentValue
	if err := s.repo.SaveProgress(ctx, tx, participant); err != nil {
		return err
	}

	res.CurrentValue = participant.CurrentValue
	res.Completed = participant.Completed

	if currentValue < challenge.TargetValue {
		return nil
	}

	// The conditional flip decides who pays the reward; every other
	// concurrent or repeat update sees flipped=false and pays nothing.
	flipped, err := s.repo.MarkCompleted(ctx, tx, participant.ID, time.Now())
	if err != nil {
		return err
	}
	res.Completed = true
	if !flipped {
		return nil
	}

	award, err := s.ledger.AwardInTx(ctx, tx, userID, challenge.RewardPoints)
	if err != nil {
		return err
	}
	res.RewardPaid = true
	res.RewardPoints = challenge.RewardPoints
	res.MemeReward = challenge.MemeReward
	res.Award = &award
	return nil
}

func (s *challengeTracker) ListParticipations(ctx context.Context, userID uuid.UUID) ([]model.ChallengeParticipant, error) {
	return s.repo.ListParticipations(ctx, userID)
}

func (s *challengeTracker) EnsureActiveChallenges(ctx context.Context, now time.Time) error {
	if err := s.ensureType(ctx, model.ChallengeTypeDaily, s.cat.DailyChallenges, now, 24*time.Hour); err != nil {
		return err
	}
	return s.ensureType(ctx, model.ChallengeTypeWeekly, s.cat.WeeklyChallenges, now, 7*24*time.Hour)
}

func (s *challengeTracker) ensureType(ctx context.Context, challengeType string, templates []catalog.ChallengeTemplate, now time.Time, span time.Duration) error {
	count, err := s.repo.CountActiveByType(ctx, challengeType, now)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, tpl := range templates {
		challenge := &model.Challenge{
			Name:         tpl.Name,
			Description:  tpl.Description,
			Type:         challengeType,
			TargetValue:  tpl.TargetValue,
			RewardPoints: tpl.RewardPoints,
			StartAt:      start,
			EndAt:        start.Add(span),
		}
		if err := s.repo.Create(ctx, challenge); err != nil {
			return err
		}
	}
	return nil
}
