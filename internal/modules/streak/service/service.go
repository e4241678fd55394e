package service

import (
	"context"
	"time"

	"github.com/forgelabs-dev/fitforge/internal/model"
	"github.com/forgelabs-dev/fitforge/internal/modules/streak/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	multiplierStep = 0.1
	multiplierCap  = 2.0
)

// Snapshot is the streak state handed back to the workout completion flow
// for point calculation.
type Snapshot struct {
	CurrentStreak int     `json:"current_streak"`
	LongestStreak int     `json:"longest_streak"`
	Multiplier    float64 `json:"multiplier"`
}

type StreakTracker interface {
	RecordActivity(ctx context.Context, userID uuid.UUID, now time.Time) (Snapshot, error)
	RecordActivityInTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time) (Snapshot, error)
	GetSnapshot(ctx context.Context, userID uuid.UUID) (Snapshot, error)
}

type streakTracker struct {
	db   *gorm.DB
	repo repository.StreakRepository
}

func NewStreakTracker(db *gorm.DB, repo repository.StreakRepository) StreakTracker {
	return &streakTracker{db: db, repo: repo}
}

func (s *streakTracker) RecordActivity(ctx context.Context, userID uuid.UUID, now time.Time) (Snapshot, error) {
	var snap Snapshot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		snap, txErr = s.RecordActivityInTx(ctx, tx, userID, now)
		return txErr
	})
	return snap, err
}

func (s *streakTracker) RecordActivityInTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time) (Snapshot, error) {
	streak, err := s.repo.GetOrCreateForUpdate(ctx, tx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	advance(streak, now)

	if err := s.repo.Save(ctx, tx, streak); err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		CurrentStreak: streak.CurrentStreak,
		LongestStreak: streak.LongestStreak,
		Multiplier:    streak.Multiplier,
	}, nil
}

func (s *streakTracker) GetSnapshot(ctx context.Context, userID uuid.UUID) (Snapshot, error) {
	streak, err := s.repo.Get(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	if streak == nil {
		return Snapshot{Multiplier: 1.0}, nil
	}
	return Snapshot{
		CurrentStreak: streak.CurrentStreak,
		LongestStreak: streak.LongestStreak,
		Multiplier:    streak.Multiplier,
	}, nil
}

// advance applies one completed workout to the streak. The streak breaks
// only when more than one calendar day passed since the last activity; a
// gap of zero or one day increments. A second completion on the same
// calendar day therefore also increments the streak. See the same-day test
// before changing this rule.
func advance(streak *model.Streak, now time.Time) {
	if streak.LastActivityAt == nil || daysBetween(*streak.LastActivityAt, now) > 1 {
		streak.CurrentStreak = 1
	} else {
		streak.CurrentStreak++
	}

	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}

	streak.Multiplier = 1.0 + multiplierStep*float64(streak.CurrentStreak)
	if streak.Multiplier > multiplierCap {
		streak.Multiplier = multiplierCap
	}

	t := now
	streak.LastActivityAt = &t
}

// daysBetween compares date components only. Each civil date is pinned to a
// UTC midnight before subtracting, so every day is exactly 24h long and DST
// transitions in the inputs' locations cannot skew the count.
func daysBetween(earlier, later time.Time) int {
	ey, em, ed := earlier.Date()
	ly, lm, ld := later.Date()
	start := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	end := time.Date(ly, lm, ld, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start) / (24 * time.Hour))
}
