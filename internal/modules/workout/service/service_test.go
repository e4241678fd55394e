package service

import (
	"context"
	"testing"
	"time"

	"github.com/forgelabs-dev/fitforge/internal/model"
	workoutDto "github.com/forgelabs-dev/fitforge/internal/modules/workout/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeWorkoutRepo struct {
	bests     map[string]float64
	records   []model.PersonalRecord
	workouts  []model.Workout
	completed int64
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{bests: map[string]float64{}}
}

func bestKey(exerciseName, recordType string) string {
	return exerciseName + "/" + recordType
}

func (f *fakeWorkoutRepo) Create(ctx context.Context, workout *model.Workout) error { return nil }
func (f *fakeWorkoutRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Workout, error) {
	return nil, nil
}
func (f *fakeWorkoutRepo) GetForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Workout, error) {
	return nil, nil
}
func (f *fakeWorkoutRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, workout *model.Workout) error {
	return nil
}
func (f *fakeWorkoutRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Workout, int64, error) {
	out := f.workouts
	if limit < len(out) {
		out = out[:limit]
	}
	return out, int64(len(f.workouts)), nil
}
func (f *fakeWorkoutRepo) CreateExerciseLogs(ctx context.Context, tx *gorm.DB, logs []model.ExerciseLog) error {
	return nil
}

func (f *fakeWorkoutRepo) BestRecord(ctx context.Context, tx *gorm.DB, userID uuid.UUID, exerciseName, recordType string) (float64, bool, error) {
	best, ok := f.bests[bestKey(exerciseName, recordType)]
	return best, ok, nil
}

func (f *fakeWorkoutRepo) CreatePersonalRecord(ctx context.Context, tx *gorm.DB, record *model.PersonalRecord) error {
	f.records = append(f.records, *record)
	key := bestKey(record.ExerciseName, record.RecordType)
	if record.Value > f.bests[key] {
		f.bests[key] = record.Value
	}
	return nil
}

func (f *fakeWorkoutRepo) ListRecords(ctx context.Context, userID uuid.UUID) ([]model.PersonalRecord, error) {
	return f.records, nil
}
func (f *fakeWorkoutRepo) CountCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	return f.completed, nil
}
func (f *fakeWorkoutRepo) CountRecords(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	return int64(len(f.records)), nil
}
func (f *fakeWorkoutRepo) CountRecordsSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) (int64, error) {
	return int64(len(f.records)), nil
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestDetectRecordsFirstLift(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := &workoutService{repo: repo}

	records, err := svc.detectRecords(context.Background(), nil, uuid.New(), []workoutDto.ExerciseLogInput{
		{ExerciseName: "Bench Press", SetsCompleted: 3, WeightUsed: floatPtr(60)},
	})
	if err != nil {
		t.Fatalf("detectRecords returned error: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("detected %d records, want 1", len(records))
	}
	if records[0].RecordType != model.RecordTypeWeight || records[0].Value != 60 {
		t.Errorf("record = %s/%v, want weight/60", records[0].RecordType, records[0].Value)
	}
}

func TestDetectRecordsOnlyImprovements(t *testing.T) {
	repo := newFakeWorkoutRepo()
	repo.bests[bestKey("Bench Press", model.RecordTypeWeight)] = 80
	repo.bests[bestKey("Squat", model.RecordTypeWeight)] = 100
	svc := &workoutService{repo: repo}

	records, err := svc.detectRecords(context.Background(), nil, uuid.New(), []workoutDto.ExerciseLogInput{
		{ExerciseName: "Bench Press", SetsCompleted: 3, WeightUsed: floatPtr(80)},  // tie, no record
		{ExerciseName: "Squat", SetsCompleted: 5, WeightUsed: floatPtr(102.5)},     // improvement
		{ExerciseName: "Deadlift", SetsCompleted: 1, WeightUsed: floatPtr(140)},    // first lift
	})
	if err != nil {
		t.Fatalf("detectRecords returned error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("detected %d records, want 2", len(records))
	}
	if records[0].ExerciseName != "Squat" || records[1].ExerciseName != "Deadlift" {
		t.Errorf("records = %s, %s; want Squat, Deadlift", records[0].ExerciseName, records[1].ExerciseName)
	}
}

func TestDetectRecordsTypeSelection(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := &workoutService{repo: repo}

	records, err := svc.detectRecords(context.Background(), nil, uuid.New(), []workoutDto.ExerciseLogInput{
		{ExerciseName: "Pull Up", SetsCompleted: 3, RepsCompleted: intPtr(12)},
		{ExerciseName: "Plank", SetsCompleted: 1, Duration: intPtr(90)},
		{ExerciseName: "Stretching", SetsCompleted: 1}, // nothing measurable
	})
	if err != nil {
		t.Fatalf("detectRecords returned error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("detected %d records, want 2", len(records))
	}
	if records[0].RecordType != model.RecordTypeReps {
		t.Errorf("Pull Up record type = %s, want reps", records[0].RecordType)
	}
	if records[1].RecordType != model.RecordTypeDuration {
		t.Errorf("Plank record type = %s, want duration", records[1].RecordType)
	}
}

func TestProgressSummary(t *testing.T) {
	repo := newFakeWorkoutRepo()
	userID := uuid.New()
	for i := 0; i < 8; i++ {
		repo.workouts = append(repo.workouts, model.Workout{UserID: userID})
	}
	repo.completed = 6
	repo.records = append(repo.records, model.PersonalRecord{
		UserID:       userID,
		ExerciseName: "Bench Press",
		RecordType:   model.RecordTypeWeight,
		Value:        80,
	})
	svc := &workoutService{repo: repo}

	summary, err := svc.GetProgressSummary(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetProgressSummary returned error: %v", err)
	}

	if summary.Stats.TotalWorkouts != 8 {
		t.Errorf("TotalWorkouts = %d, want 8", summary.Stats.TotalWorkouts)
	}
	if summary.Stats.CompletedWorkouts != 6 {
		t.Errorf("CompletedWorkouts = %d, want 6", summary.Stats.CompletedWorkouts)
	}
	if summary.Stats.CompletionRate != 75.0 {
		t.Errorf("CompletionRate = %v, want 75", summary.Stats.CompletionRate)
	}
	if len(summary.RecentWorkouts) != recentWorkoutLimit {
		t.Errorf("RecentWorkouts has %d entries, want %d", len(summary.RecentWorkouts), recentWorkoutLimit)
	}
	if len(summary.PersonalRecords) != 1 {
		t.Errorf("PersonalRecords has %d entries, want 1", len(summary.PersonalRecords))
	}
}

func TestProgressSummaryNoWorkouts(t *testing.T) {
	svc := &workoutService{repo: newFakeWorkoutRepo()}

	summary, err := svc.GetProgressSummary(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetProgressSummary returned error: %v", err)
	}

	if summary.Stats.CompletionRate != 0 {
		t.Errorf("CompletionRate = %v, want 0 for empty history", summary.Stats.CompletionRate)
	}
	if summary.Stats.TotalWorkouts != 0 {
		t.Errorf("TotalWorkouts = %d, want 0", summary.Stats.TotalWorkouts)
	}
}

func TestCompletionPointsFollowMultiplier(t *testing.T) {
	tests := []struct {
		multiplier float64
		want       int
	}{
		{1.0, 100},
		{1.3, 130},
		{1.7, 170},
		{2.0, 200},
	}

	for _, tt := range tests {
		if got := int(BasePoints * tt.multiplier); got != tt.want {
			t.Errorf("points at multiplier %v = %d, want %d", tt.multiplier, got, tt.want)
		}
	}
}
