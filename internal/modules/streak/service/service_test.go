package service

import (
	"math"
	"testing"
	"time"

	"github.com/forgelabs-dev/fitforge/internal/model"
)

func day(dayOfMonth, hour int) time.Time {
	return time.Date(2025, time.March, dayOfMonth, hour, 0, 0, 0, time.UTC)
}

func TestAdvanceFirstActivity(t *testing.T) {
	streak := &model.Streak{Multiplier: 1.0}

	advance(streak, day(10, 8))

	if streak.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", streak.CurrentStreak)
	}
	if streak.LongestStreak != 1 {
		t.Errorf("LongestStreak = %d, want 1", streak.LongestStreak)
	}
	if streak.LastActivityAt == nil {
		t.Fatal("LastActivityAt not set")
	}
}

func TestAdvanceConsecutiveDays(t *testing.T) {
	streak := &model.Streak{Multiplier: 1.0}

	for d := 10; d < 17; d++ {
		advance(streak, day(d, 8))
	}

	if streak.CurrentStreak != 7 {
		t.Errorf("CurrentStreak = %d, want 7", streak.CurrentStreak)
	}
	if math.Abs(streak.Multiplier-1.7) > 1e-9 {
		t.Errorf("Multiplier = %v, want 1.7", streak.Multiplier)
	}
}

// Two completions on the same calendar day both increment. This mirrors the
// behavior users have relied on since launch; if it ever changes, change this
// test and the gap rule together.
func TestAdvanceSameDayIncrements(t *testing.T) {
	streak := &model.Streak{Multiplier: 1.0}

	advance(streak, day(10, 8))
	advance(streak, day(10, 19))

	if streak.CurrentStreak != 2 {
		t.Errorf("CurrentStreak after same-day repeat = %d, want 2", streak.CurrentStreak)
	}
}

func TestAdvanceGapResets(t *testing.T) {
	streak := &model.Streak{Multiplier: 1.0}

	advance(streak, day(10, 8))
	advance(streak, day(11, 8))
	advance(streak, day(14, 8)) // 3-day gap

	if streak.CurrentStreak != 1 {
		t.Errorf("CurrentStreak after gap = %d, want 1", streak.CurrentStreak)
	}
	if streak.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", streak.LongestStreak)
	}
}

func TestAdvanceLongestNeverDecreases(t *testing.T) {
	streak := &model.Streak{CurrentStreak: 5, LongestStreak: 9, Multiplier: 1.5}
	last := day(1, 8)
	streak.LastActivityAt = &last

	advance(streak, day(20, 8)) // big gap, reset

	if streak.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", streak.CurrentStreak)
	}
	if streak.LongestStreak != 9 {
		t.Errorf("LongestStreak = %d, want 9", streak.LongestStreak)
	}
}

func TestAdvanceMultiplierCap(t *testing.T) {
	streak := &model.Streak{Multiplier: 1.0}

	for d := 1; d <= 15; d++ {
		advance(streak, day(d, 8))
	}

	if streak.Multiplier != 2.0 {
		t.Errorf("Multiplier = %v, want capped 2.0", streak.Multiplier)
	}
}

// Spring-forward makes the wall-clock span of a two-day gap 47 hours. The
// gap must still count as two days and reset the streak.
func TestAdvanceGapAcrossDSTResets(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}

	streak := &model.Streak{Multiplier: 1.0}
	advance(streak, time.Date(2025, time.March, 8, 8, 0, 0, 0, loc))
	advance(streak, time.Date(2025, time.March, 10, 8, 0, 0, 0, loc))

	if streak.CurrentStreak != 1 {
		t.Errorf("CurrentStreak after 2-day gap over DST = %d, want 1", streak.CurrentStreak)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name    string
		earlier time.Time
		later   time.Time
		want    int
	}{
		{"same day", day(10, 8), day(10, 23), 0},
		{"next day early morning", day(10, 23), day(11, 1), 1},
		{"two days", day(10, 8), day(12, 8), 2},
		{"month boundary", time.Date(2025, time.February, 28, 20, 0, 0, 0, time.UTC), time.Date(2025, time.March, 1, 6, 0, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := daysBetween(tt.earlier, tt.later); got != tt.want {
				t.Errorf("daysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}
