package service

import (
	"context"
	"testing"

	"github.com/forgelabs-dev/fitforge/internal/catalog"
	"github.com/forgelabs-dev/fitforge/internal/model"
	progression "github.com/forgelabs-dev/fitforge/internal/modules/progression/service"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeGrantRepo struct {
	granted map[string]bool
}

func (f *fakeGrantRepo) InsertGrant(ctx context.Context, tx *gorm.DB, grant *model.AchievementGrant) (bool, error) {
	key := grant.UserID.String() + "/" + grant.Name
	if f.granted[key] {
		return false, nil
	}
	f.granted[key] = true
	return true, nil
}

func (f *fakeGrantRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AchievementGrant, error) {
	return nil, nil
}

type fakeLedger struct {
	awarded int
	calls   int
}

func (f *fakeLedger) Award(ctx context.Context, userID uuid.UUID, amount int) (progression.AwardResult, error) {
	return f.AwardInTx(ctx, nil, userID, amount)
}

func (f *fakeLedger) AwardInTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) (progression.AwardResult, error) {
	f.awarded += amount
	f.calls++
	return progression.AwardResult{NewTotal: f.awarded, OldLevel: 1, NewLevel: 1, Title: catalog.DefaultTitle}, nil
}

func (f *fakeLedger) GetProgress(ctx context.Context, userID uuid.UUID) (progression.AwardResult, error) {
	return progression.AwardResult{NewTotal: f.awarded, OldLevel: 1, NewLevel: 1, Title: catalog.DefaultTitle}, nil
}

func newTestEvaluator() (*evaluator, *fakeLedger) {
	ledger := &fakeLedger{}
	ev := &evaluator{
		repo:   &fakeGrantRepo{granted: map[string]bool{}},
		ledger: ledger,
		cat:    catalog.Default(),
	}
	return ev, ledger
}

func TestEvaluateGrantsAtThreshold(t *testing.T) {
	ev, ledger := newTestEvaluator()
	userID := uuid.New()

	granted, err := ev.EvaluateInTx(context.Background(), nil, userID, Context{CurrentStreak: 7})
	if err != nil {
		t.Fatalf("EvaluateInTx returned error: %v", err)
	}

	if len(granted) != 1 {
		t.Fatalf("granted %d achievements, want 1", len(granted))
	}
	if granted[0].Name != "No Cap Streak" {
		t.Errorf("granted %q, want No Cap Streak", granted[0].Name)
	}
	if ledger.awarded != 100 {
		t.Errorf("awarded %d points, want 100", ledger.awarded)
	}
}

func TestEvaluateBelowThreshold(t *testing.T) {
	ev, ledger := newTestEvaluator()

	granted, err := ev.EvaluateInTx(context.Background(), nil, uuid.New(), Context{CurrentStreak: 6})
	if err != nil {
		t.Fatalf("EvaluateInTx returned error: %v", err)
	}

	if len(granted) != 0 {
		t.Errorf("granted %d achievements, want 0", len(granted))
	}
	if ledger.awarded != 0 {
		t.Errorf("awarded %d points, want 0", ledger.awarded)
	}
}

func TestEvaluateGrantsOnce(t *testing.T) {
	ev, ledger := newTestEvaluator()
	userID := uuid.New()
	ec := Context{CurrentStreak: 7}

	first, err := ev.EvaluateInTx(context.Background(), nil, userID, ec)
	if err != nil {
		t.Fatalf("first EvaluateInTx returned error: %v", err)
	}
	second, err := ev.EvaluateInTx(context.Background(), nil, userID, ec)
	if err != nil {
		t.Fatalf("second EvaluateInTx returned error: %v", err)
	}

	if len(first) != 1 || len(second) != 0 {
		t.Errorf("grants = (%d, %d), want (1, 0)", len(first), len(second))
	}
	if ledger.calls != 1 {
		t.Errorf("ledger called %d times, want 1", ledger.calls)
	}
}

func TestEvaluateMultipleRules(t *testing.T) {
	ev, ledger := newTestEvaluator()

	// 30-day streak satisfies both streak rules at once.
	granted, err := ev.EvaluateInTx(context.Background(), nil, uuid.New(), Context{CurrentStreak: 30})
	if err != nil {
		t.Fatalf("EvaluateInTx returned error: %v", err)
	}

	if len(granted) != 2 {
		t.Fatalf("granted %d achievements, want 2", len(granted))
	}
	if ledger.awarded != 600 {
		t.Errorf("awarded %d points, want 600", ledger.awarded)
	}
}

func TestMetricLookup(t *testing.T) {
	ec := Context{
		CurrentStreak:     3,
		PRTotal:           4,
		PRMonth:           2,
		WorkoutsCompleted: 11,
		FriendsAccepted:   1,
		ProgressPhotos:    7,
	}

	tests := []struct {
		metric string
		want   int64
	}{
		{catalog.MetricCurrentStreak, 3},
		{catalog.MetricPRTotal, 4},
		{catalog.MetricPRMonth, 2},
		{catalog.MetricWorkoutsCompleted, 11},
		{catalog.MetricFriendsAccepted, 1},
		{catalog.MetricProgressPhotos, 7},
		{"unknown_metric", 0},
	}

	for _, tt := range tests {
		t.Run(tt.metric, func(t *testing.T) {
			if got := ec.metric(tt.metric); got != tt.want {
				t.Errorf("metric(%q) = %d, want %d", tt.metric, got, tt.want)
			}
		})
	}
}
