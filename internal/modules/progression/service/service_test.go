package service

import (
	"context"
	"errors"
	"testing"

	"github.com/forgelabs-dev/fitforge/internal/catalog"
	"github.com/forgelabs-dev/fitforge/internal/model"
	"github.com/forgelabs-dev/fitforge/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeProgressRepo struct {
	user *model.User
}

func (f *fakeProgressRepo) GetForUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*model.User, error) {
	if f.user == nil || f.user.ID != userID {
		return nil, apperror.ErrNotFound
	}
	return f.user, nil
}

func (f *fakeProgressRepo) SaveProgress(ctx context.Context, tx *gorm.DB, user *model.User) error {
	f.user = user
	return nil
}

func (f *fakeProgressRepo) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return f.GetForUpdate(ctx, nil, userID)
}

func newLedgerWithUser(points int) (*pointLedger, *model.User) {
	user := &model.User{
		ID:          uuid.New(),
		Name:        "Test Lifter",
		TotalPoints: points,
		Level:       catalog.ResolveLevel(points),
		Title:       catalog.DefaultTitle,
	}
	cat := catalog.Default()
	user.Title = cat.ResolveTitle(user.Level)
	ledger := &pointLedger{repo: &fakeProgressRepo{user: user}, cat: cat}
	return ledger, user
}

func TestAwardNegativeAmount(t *testing.T) {
	ledger, user := newLedgerWithUser(0)

	_, err := ledger.AwardInTx(context.Background(), nil, user.ID, -10)
	if !errors.Is(err, apperror.ErrInvalidAmount) {
		t.Fatalf("AwardInTx(-10) error = %v, want ErrInvalidAmount", err)
	}
}

func TestAwardUnknownUser(t *testing.T) {
	ledger, _ := newLedgerWithUser(0)

	_, err := ledger.AwardInTx(context.Background(), nil, uuid.New(), 100)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("AwardInTx(unknown user) error = %v, want ErrNotFound", err)
	}
}

func TestAwardAccumulates(t *testing.T) {
	ledger, user := newLedgerWithUser(0)

	res, err := ledger.AwardInTx(context.Background(), nil, user.ID, 170)
	if err != nil {
		t.Fatalf("AwardInTx returned error: %v", err)
	}

	if res.NewTotal != 170 {
		t.Errorf("NewTotal = %d, want 170", res.NewTotal)
	}
	if res.NewLevel != 1 {
		t.Errorf("NewLevel = %d, want 1", res.NewLevel)
	}
	if res.Title != "Rookie Lifter" {
		t.Errorf("Title = %q, want Rookie Lifter", res.Title)
	}
	if res.LeveledUp() {
		t.Error("LeveledUp() = true, want false")
	}
}

func TestAwardLevelUp(t *testing.T) {
	ledger, user := newLedgerWithUser(950)

	res, err := ledger.AwardInTx(context.Background(), nil, user.ID, 100)
	if err != nil {
		t.Fatalf("AwardInTx returned error: %v", err)
	}

	if res.NewTotal != 1050 {
		t.Errorf("NewTotal = %d, want 1050", res.NewTotal)
	}
	if res.NewLevel != 2 {
		t.Errorf("NewLevel = %d, want 2", res.NewLevel)
	}
	if !res.LeveledUp() {
		t.Error("LeveledUp() = false, want true")
	}
}

func TestAwardTitleChange(t *testing.T) {
	// 4999 points is level 5, the Gym Rat Apprentice tier.
	ledger, user := newLedgerWithUser(3999)

	res, err := ledger.AwardInTx(context.Background(), nil, user.ID, 1000)
	if err != nil {
		t.Fatalf("AwardInTx returned error: %v", err)
	}

	if res.NewLevel != 5 {
		t.Errorf("NewLevel = %d, want 5", res.NewLevel)
	}
	if res.Title != "Gym Rat Apprentice" {
		t.Errorf("Title = %q, want Gym Rat Apprentice", res.Title)
	}
}

func TestAwardZeroIsNoOp(t *testing.T) {
	ledger, user := newLedgerWithUser(500)

	res, err := ledger.AwardInTx(context.Background(), nil, user.ID, 0)
	if err != nil {
		t.Fatalf("AwardInTx(0) returned error: %v", err)
	}
	if res.NewTotal != 500 {
		t.Errorf("NewTotal = %d, want 500", res.NewTotal)
	}
	if res.LeveledUp() {
		t.Error("LeveledUp() = true for zero award")
	}
}
