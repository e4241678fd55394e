package service

import (
	"context"

	"github.com/forgelabs-dev/fitforge/internal/catalog"
	"github.com/forgelabs-dev/fitforge/internal/model"
	"github.com/forgelabs-dev/fitforge/internal/modules/achievement/repository"
	progression "github.com/forgelabs-dev/fitforge/internal/modules/progression/service"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Context carries the facts rule predicates threshold on. Callers fill in
// whatever they know; an absent fact reads as zero and simply never
// satisfies its rules.
type Context struct {
	CurrentStreak     int
	PRTotal           int64
	PRMonth           int64
	WorkoutsCompleted int64
	FriendsAccepted   int64
	ProgressPhotos    int64
}

func (c Context) metric(name string) int64 {
	switch name {
	case catalog.MetricCurrentStreak:
		return int64(c.CurrentStreak)
	case catalog.MetricPRTotal:
		return c.PRTotal
	case catalog.MetricPRMonth:
		return c.PRMonth
	case catalog.MetricWorkoutsCompleted:
		return c.WorkoutsCompleted
	case catalog.MetricFriendsAccepted:
		return c.FriendsAccepted
	case catalog.MetricProgressPhotos:
		return c.ProgressPhotos
	}
	return 0
}

// Evaluator scans the rule catalog against a user's current stats and grants
// whatever newly qualifies. Safe to call redundantly: the grant uniqueness
// constraint guarantees at-most-once semantics per (user, rule).
type Evaluator interface {
	Evaluate(ctx context.Context, userID uuid.UUID, ec Context) ([]model.AchievementGrant, error)
	EvaluateInTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, ec Context) ([]model.AchievementGrant, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AchievementGrant, error)
}

type evaluator struct {
	db     *gorm.DB
	repo   repository.AchievementRepository
	ledger progression.PointLedger
	cat    *catalog.Catalog
}

func NewEvaluator(db *gorm.DB, repo repository.AchievementRepository, ledger progression.PointLedger, cat *catalog.Catalog) Evaluator {
	return &evaluator{db: db, repo: repo, ledger: ledger, cat: cat}
}

func (s *evaluator) Evaluate(ctx context.Context, userID uuid.UUID, ec Context) ([]model.AchievementGrant, error) {
	var granted []model.AchievementGrant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		granted, txErr = s.EvaluateInTx(ctx, tx, userID, ec)
		return txErr
	})
	return granted, err
}

func (s *evaluator) EvaluateInTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, ec Context) ([]model.AchievementGrant, error) {
	granted := []model.AchievementGrant{}

	for _, rule := range s.cat.Achievements {
		if ec.metric(rule.Metric) < rule.Threshold {
			continue
		}

		grant := model.AchievementGrant{
			UserID:      userID,
			Name:        rule.Name,
			Description: rule.Description,
			Type:        rule.Type,
			BadgeURL:    rule.BadgeURL,
			MemeURL:     rule.MemeURL,
		}
		inserted, err := s.repo.InsertGrant(ctx, tx, &grant)
		if err != nil {
			return nil, err
		}
		if !inserted {
			// Already granted, possibly by a concurrent evaluation.
			continue
		}

		if _, err := s.ledger.AwardInTx(ctx, tx, userID, rule.Points); err != nil {
			return nil, err
		}
		granted = append(granted, grant)
	}

	return granted, nil
}

func (s *evaluator) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AchievementGrant, error) {
	return s.repo.ListByUser(ctx, userID)
}
