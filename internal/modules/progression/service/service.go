package service

import (
	"context"

	"github.com/forgelabs-dev/fitforge/internal/catalog"
	"github.com/forgelabs-dev/fitforge/internal/modules/progression/repository"
	"github.com/forgelabs-dev/fitforge/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AwardResult reports the progression state after a point award.
type AwardResult struct {
	NewTotal int    `json:"total_points"`
	OldLevel int    `json:"-"`
	NewLevel int    `json:"level"`
	Title    string `json:"title"`
}

func (r AwardResult) LeveledUp() bool {
	return r.NewLevel > r.OldLevel
}

// PointLedger is the only sanctioned mutator of a user's point total. Every
// award re-derives level and title and persists all three together.
type PointLedger interface {
	Award(ctx context.Context, userID uuid.UUID, amount int) (AwardResult, error)
	AwardInTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) (AwardResult, error)
	GetProgress(ctx context.Context, userID uuid.UUID) (AwardResult, error)
}

type pointLedger struct {
	db   *gorm.DB
	repo repository.UserProgressRepository
	cat  *catalog.Catalog
}

func NewPointLedger(db *gorm.DB, repo repository.UserProgressRepository, cat *catalog.Catalog) PointLedger {
	return &pointLedger{db: db, repo: repo, cat: cat}
}

func (s *pointLedger) Award(ctx context.Context, userID uuid.UUID, amount int) (AwardResult, error) {
	var res AwardResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		res, txErr = s.AwardInTx(ctx, tx, userID, amount)
		return txErr
	})
	return res, err
}

// AwardInTx applies the award inside an existing transaction so composite
// flows (workout completion, challenge payout, achievement grants) stay
// atomic end to end. The caller owns the transaction boundary.
func (s *pointLedger) AwardInTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) (AwardResult, error) {
	if amount < 0 {
		return AwardResult{}, apperror.ErrInvalidAmount
	}

	user, err := s.repo.GetForUpdate(ctx, tx, userID)
	if err != nil {
		return AwardResult{}, err
	}

	oldLevel := user.Level
	user.TotalPoints += amount
	user.Level = catalog.ResolveLevel(user.TotalPoints)
	user.Title = s.cat.ResolveTitle(user.Level)

	if err := s.repo.SaveProgress(ctx, tx, user); err != nil {
		return AwardResult{}, err
	}

	return AwardResult{
		NewTotal: user.TotalPoints,
		OldLevel: oldLevel,
		NewLevel: user.Level,
		Title:    user.Title,
	}, nil
}

func (s *pointLedger) GetProgress(ctx context.Context, userID uuid.UUID) (AwardResult, error) {
	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		return AwardResult{}, err
	}
	return AwardResult{
		NewTotal: user.TotalPoints,
		OldLevel: user.Level,
		NewLevel: user.Level,
		Title:    user.Title,
	}, nil
}
