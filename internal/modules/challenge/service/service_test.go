package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/forgelabs-dev/fitforge/internal/catalog"
	"github.com/forgelabs-dev/fitforge/internal/model"
	progression "github.com/forgelabs-dev/fitforge/internal/modules/progression/service"
	"github.com/forgelabs-dev/fitforge/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeChallengeRepo struct {
	challenges   map[uuid.UUID]*model.Challenge
	participants map[uuid.UUID]*model.ChallengeParticipant
}

func newFakeChallengeRepo() *fakeChallengeRepo {
	return &fakeChallengeRepo{
		challenges:   map[uuid.UUID]*model.Challenge{},
		participants: map[uuid.UUID]*model.ChallengeParticipant{},
	}
}

func (f *fakeChallengeRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Challenge, error) {
	return f.challenges[id], nil
}

func (f *fakeChallengeRepo) ListActive(ctx context.Context, now time.Time) ([]model.Challenge, error) {
	var out []model.Challenge
	for _, c := range f.challenges {
		if !c.StartAt.After(now) && c.EndAt.After(now) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeChallengeRepo) Create(ctx context.Context, challenge *model.Challenge) error {
	if challenge.ID == uuid.Nil {
		challenge.ID = uuid.New()
	}
	f.challenges[challenge.ID] = challenge
	return nil
}

func (f *fakeChallengeRepo) CountActiveByType(ctx context.Context, challengeType string, now time.Time) (int64, error) {
	var count int64
	for _, c := range f.challenges {
		if c.Type == challengeType && !c.StartAt.After(now) && c.EndAt.After(now) {
			count++
		}
	}
	return count, nil
}

func (f *fakeChallengeRepo) JoinParticipant(ctx context.Context, participant *model.ChallengeParticipant) error {
	for _, p := range f.participants {
		if p.ChallengeID == participant.ChallengeID && p.UserID == participant.UserID {
			return nil
		}
	}
	if participant.ID == uuid.Nil {
		participant.ID = uuid.New()
	}
	f.participants[participant.ID] = participant
	return nil
}

func (f *fakeChallengeRepo) GetParticipant(ctx context.Context, challengeID, userID uuid.UUID) (*model.ChallengeParticipant, error) {
	for _, p := range f.participants {
		if p.ChallengeID == challengeID && p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeChallengeRepo) GetParticipantForUpdate(ctx context.Context, tx *gorm.DB, challengeID, userID uuid.UUID) (*model.ChallengeParticipant, error) {
	return f.GetParticipant(ctx, challengeID, userID)
}

func (f *fakeChallengeRepo) SaveProgress(ctx context.Context, tx *gorm.DB, participant *model.ChallengeParticipant) error {
	f.participants[participant.ID] = participant
	return nil
}

func (f *fakeChallengeRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, participantID uuid.UUID, at time.Time) (bool, error) {
	p, ok := f.participants[participantID]
	if !ok || p.Completed {
		return false, nil
	}
	p.Completed = true
	p.CompletedAt = &at
	return true, nil
}

func (f *fakeChallengeRepo) ListParticipations(ctx context.Context, userID uuid.UUID) ([]model.ChallengeParticipant, error) {
	var out []model.ChallengeParticipant
	for _, p := range f.participants {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
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

func setupTracker(t *testing.T) (*challengeTracker, *fakeChallengeRepo, *fakeLedger, *model.Challenge, uuid.UUID) {
	t.Helper()

	repo := newFakeChallengeRepo()
	ledger := &fakeLedger{}
	tracker := &challengeTracker{repo: repo, ledger: ledger, cat: catalog.Default()}

	challenge := &model.Challenge{
		Name:         "Push Day Energy",
		Type:         model.ChallengeTypeDaily,
		TargetValue:  100,
		RewardPoints: 50,
		StartAt:      time.Now().Add(-time.Hour),
		EndAt:        time.Now().Add(23 * time.Hour),
	}
	if err := repo.Create(context.Background(), challenge); err != nil {
		t.Fatalf("failed to create challenge: %v", err)
	}

	userID := uuid.New()
	if err := repo.JoinParticipant(context.Background(), &model.ChallengeParticipant{
		ChallengeID: challenge.ID,
		UserID:      userID,
	}); err != nil {
		t.Fatalf("failed to join challenge: %v", err)
	}

	return tracker, repo, ledger, challenge, userID
}

func (s *challengeTracker) mustProgress(t *testing.T, challenge *model.Challenge, userID uuid.UUID, value int) ProgressResult {
	t.Helper()
	res := ProgressResult{
		ChallengeID:   challenge.ID,
		ChallengeName: challenge.Name,
		TargetValue:   challenge.TargetValue,
	}
	if err := s.updateProgressInTx(context.Background(), nil, challenge, userID, value, &res); err != nil {
		t.Fatalf("updateProgressInTx(%d) returned error: %v", value, err)
	}
	return res
}

func TestProgressBelowTarget(t *testing.T) {
	tracker, _, ledger, challenge, userID := setupTracker(t)

	res := tracker.mustProgress(t, challenge, userID, 75)

	if res.Completed {
		t.Error("Completed = true at 75/100")
	}
	if res.RewardPaid {
		t.Error("RewardPaid = true at 75/100")
	}
	if ledger.awarded != 0 {
		t.Errorf("awarded %d points, want 0", ledger.awarded)
	}
}

func TestProgressCrossingTargetPaysOnce(t *testing.T) {
	tracker, _, ledger, challenge, userID := setupTracker(t)

	res := tracker.mustProgress(t, challenge, userID, 120)

	if !res.Completed || !res.RewardPaid {
		t.Fatalf("Completed=%v RewardPaid=%v, want both true", res.Completed, res.RewardPaid)
	}
	if ledger.awarded != 50 {
		t.Errorf("awarded %d points, want 50", ledger.awarded)
	}

	// A later update past the target must not pay again.
	res = tracker.mustProgress(t, challenge, userID, 150)
	if !res.Completed {
		t.Error("Completed = false after payout")
	}
	if res.RewardPaid {
		t.Error("RewardPaid = true on repeat update")
	}
	if ledger.calls != 1 {
		t.Errorf("ledger called %d times, want 1", ledger.calls)
	}
}

func TestProgressNotParticipating(t *testing.T) {
	tracker, _, _, challenge, _ := setupTracker(t)

	res := ProgressResult{}
	err := tracker.updateProgressInTx(context.Background(), nil, challenge, uuid.New(), 10, &res)
	if !errors.Is(err, apperror.ErrNotParticipating) {
		t.Fatalf("error = %v, want ErrNotParticipating", err)
	}
}

func TestUpdateProgressUnknownChallenge(t *testing.T) {
	tracker, _, _, _, userID := setupTracker(t)

	_, err := tracker.UpdateProgress(context.Background(), uuid.New(), userID, 10)
	if !errors.Is(err, apperror.ErrUnknownChallenge) {
		t.Fatalf("error = %v, want ErrUnknownChallenge", err)
	}
}

func TestJoinIsIdempotent(t *testing.T) {
	tracker, repo, _, challenge, userID := setupTracker(t)

	first, err := tracker.Join(context.Background(), challenge.ID, userID)
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	second, err := tracker.Join(context.Background(), challenge.ID, userID)
	if err != nil {
		t.Fatalf("repeat Join returned error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("repeat join created a new participation: %s vs %s", first.ID, second.ID)
	}
	if len(repo.participants) != 1 {
		t.Errorf("participant rows = %d, want 1", len(repo.participants))
	}
}

func TestJoinEndedChallenge(t *testing.T) {
	tracker, repo, _, _, userID := setupTracker(t)

	ended := &model.Challenge{
		Name:        "Old News",
		Type:        model.ChallengeTypeDaily,
		TargetValue: 10,
		StartAt:     time.Now().Add(-48 * time.Hour),
		EndAt:       time.Now().Add(-24 * time.Hour),
	}
	if err := repo.Create(context.Background(), ended); err != nil {
		t.Fatalf("failed to create challenge: %v", err)
	}

	if _, err := tracker.Join(context.Background(), ended.ID, userID); !errors.Is(err, apperror.ErrBadRequest) {
		t.Fatalf("Join(ended) error = %v, want ErrBadRequest", err)
	}
}

func TestEnsureActiveChallenges(t *testing.T) {
	repo := newFakeChallengeRepo()
	tracker := &challengeTracker{repo: repo, ledger: &fakeLedger{}, cat: catalog.Default()}
	now := time.Date(2025, time.June, 3, 10, 0, 0, 0, time.UTC)

	if err := tracker.EnsureActiveChallenges(context.Background(), now); err != nil {
		t.Fatalf("EnsureActiveChallenges returned error: %v", err)
	}

	daily, _ := repo.CountActiveByType(context.Background(), model.ChallengeTypeDaily, now)
	weekly, _ := repo.CountActiveByType(context.Background(), model.ChallengeTypeWeekly, now)
	if daily != 2 || weekly != 2 {
		t.Errorf("active challenges = (%d daily, %d weekly), want (2, 2)", daily, weekly)
	}

	// A second pass must not duplicate.
	if err := tracker.EnsureActiveChallenges(context.Background(), now); err != nil {
		t.Fatalf("second EnsureActiveChallenges returned error: %v", err)
	}
	if len(repo.challenges) != 4 {
		t.Errorf("challenge rows = %d, want 4", len(repo.challenges))
	}
}
