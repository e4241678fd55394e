package service

import (
	"context"
	"log"
	"time"

	"github.com/forgelabs-dev/fitforge/internal/model"
	achievement "github.com/forgelabs-dev/fitforge/internal/modules/achievement/service"
	notification "github.com/forgelabs-dev/fitforge/internal/modules/notification/service"
	progression "github.com/forgelabs-dev/fitforge/internal/modules/progression/service"
	streak "github.com/forgelabs-dev/fitforge/internal/modules/streak/service"
	workoutDto "github.com/forgelabs-dev/fitforge/internal/modules/workout/dto"
	"github.com/forgelabs-dev/fitforge/internal/modules/workout/repository"
	"github.com/forgelabs-dev/fitforge/internal/service"
	"github.com/forgelabs-dev/fitforge/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BasePoints is the flat reward for finishing a workout, before the streak
// multiplier is applied.
const BasePoints = 100

const prMonthWindow = 30 * 24 * time.Hour

// recentWorkoutLimit is how many workouts the progress summary includes.
const recentWorkoutLimit = 5

type WorkoutService interface {
	Create(ctx context.Context, req workoutDto.CreateWorkoutRequest) (*model.Workout, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Workout, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Workout, int64, error)
	ListRecords(ctx context.Context, userID uuid.UUID) ([]model.PersonalRecord, error)
	GetProgressSummary(ctx context.Context, userID uuid.UUID) (*workoutDto.ProgressSummaryResponse, error)
	Complete(ctx context.Context, workoutID uuid.UUID, req workoutDto.CompleteWorkoutRequest) (*workoutDto.CompletionResponse, error)
}

type workoutService struct {
	db            *gorm.DB
	repo          repository.WorkoutRepository
	streaks       streak.StreakTracker
	ledger        progression.PointLedger
	achievements  achievement.Evaluator
	notifications notification.NotificationService
	search        service.MeiliSearchService
}

func NewWorkoutService(
	db *gorm.DB,
	repo repository.WorkoutRepository,
	streaks streak.StreakTracker,
	ledger progression.PointLedger,
	achievements achievement.Evaluator,
	notifications notification.NotificationService,
	search service.MeiliSearchService,
) WorkoutService {
	return &workoutService{
		db:            db,
		repo:          repo,
		streaks:       streaks,
		ledger:        ledger,
		achievements:  achievements,
		notifications: notifications,
		search:        search,
	}
}

func (s *workoutService) Create(ctx context.Context, req workoutDto.CreateWorkoutRequest) (*model.Workout, error) {
	workout := &model.Workout{
		UserID: req.UserID,
		Notes:  req.Notes,
	}
	for _, ex := range req.Exercises {
		workout.Exercises = append(workout.Exercises, model.WorkoutExercise{
			Name:     ex.Name,
			Sets:     ex.Sets,
			Reps:     ex.Reps,
			Duration: ex.Duration,
		})
	}

	if err := s.repo.Create(ctx, workout); err != nil {
		return nil, err
	}

	if s.search != nil {
		go func(w model.Workout) {
			if err := s.search.IndexWorkout(&w); err != nil {
				log.Printf("Failed to index workout %s: %v", w.ID, err)
			}
		}(*workout)
	}

	return workout, nil
}

func (s *workoutService) GetByID(ctx context.Context, id uuid.UUID) (*model.Workout, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *workoutService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Workout, int64, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *workoutService) ListRecords(ctx context.Context, userID uuid.UUID) ([]model.PersonalRecord, error) {
	return s.repo.ListRecords(ctx, userID)
}

// GetProgressSummary aggregates completion stats, personal records and the
// most recent workouts into one payload.
func (s *workoutService) GetProgressSummary(ctx context.Context, userID uuid.UUID) (*workoutDto.ProgressSummaryResponse, error) {
	recent, total, err := s.repo.ListByUser(ctx, userID, recentWorkoutLimit, 0)
	if err != nil {
		return nil, err
	}

	completed, err := s.repo.CountCompleted(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListRecords(ctx, userID)
	if err != nil {
		return nil, err
	}

	rate := 0.0
	if total > 0 {
		rate = float64(completed) / float64(total) * 100
	}

	return &workoutDto.ProgressSummaryResponse{
		UserID: userID,
		Stats: workoutDto.ProgressStats{
			TotalWorkouts:     total,
			CompletedWorkouts: completed,
			CompletionRate:    rate,
		},
		PersonalRecords: records,
		RecentWorkouts:  recent,
	}, nil
}

// Complete runs the whole completion flow in one transaction: mark the
// workout done, log the exercises, detect new personal records, advance the
// streak, pay out points with the streak multiplier and evaluate
// achievements. Notifications and search indexing happen after commit so no
// network call runs while the user's rows are locked.
func (s *workoutService) Complete(ctx context.Context, workoutID uuid.UUID, req workoutDto.CompleteWorkoutRequest) (*workoutDto.CompletionResponse, error) {
	now := time.Now()
	resp := &workoutDto.CompletionResponse{WorkoutID: workoutID}

	var workout *model.Workout

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		workout, err = s.repo.GetForUpdate(ctx, tx, workoutID)
		if err != nil {
			return err
		}
		if workout.Completed {
			return apperror.New(400, "workout already completed", apperror.ErrBadRequest)
		}

		workout.Completed = true
		workout.CompletedAt = &now
		if req.DifficultyRating != nil {
			workout.DifficultyRating = req.DifficultyRating
		}
		if req.Notes != nil {
			workout.Notes = req.Notes
		}
		if err := s.repo.MarkCompleted(ctx, tx, workout); err != nil {
			return err
		}

		logs := make([]model.ExerciseLog, 0, len(req.ExerciseLogs))
		for _, entry := range req.ExerciseLogs {
			logs = append(logs, model.ExerciseLog{
				WorkoutID:     workoutID,
				ExerciseName:  entry.ExerciseName,
				SetsCompleted: entry.SetsCompleted,
				RepsCompleted: entry.RepsCompleted,
				WeightUsed:    entry.WeightUsed,
				Duration:      entry.Duration,
				Completed:     true,
			})
		}
		if err := s.repo.CreateExerciseLogs(ctx, tx, logs); err != nil {
			return err
		}

		records, err := s.detectRecords(ctx, tx, workout.UserID, req.ExerciseLogs)
		if err != nil {
			return err
		}
		resp.NewRecords = records

		snap, err := s.streaks.RecordActivityInTx(ctx, tx, workout.UserID, now)
		if err != nil {
			return err
		}
		resp.Streak = snap
		resp.Multiplier = snap.Multiplier

		points := int(BasePoints * snap.Multiplier)
		award, err := s.ledger.AwardInTx(ctx, tx, workout.UserID, points)
		if err != nil {
			return err
		}
		resp.PointsAwarded = points
		resp.LeveledUp = award.LeveledUp()
		resp.Progress = award

		completed, err := s.repo.CountCompleted(ctx, tx, workout.UserID)
		if err != nil {
			return err
		}
		prTotal, err := s.repo.CountRecords(ctx, tx, workout.UserID)
		if err != nil {
			return err
		}
		prMonth, err := s.repo.CountRecordsSince(ctx, tx, workout.UserID, now.Add(-prMonthWindow))
		if err != nil {
			return err
		}

		grants, err := s.achievements.EvaluateInTx(ctx, tx, workout.UserID, achievement.Context{
			CurrentStreak:     snap.CurrentStreak,
			PRTotal:           prTotal,
			PRMonth:           prMonth,
			WorkoutsCompleted: completed,
		})
		if err != nil {
			return err
		}
		resp.NewAchievements = grants

		// Achievement points move the total after the base award. A zero
		// award re-reads the locked row so the response reflects the state
		// this transaction will commit.
		if len(grants) > 0 {
			final, err := s.ledger.AwardInTx(ctx, tx, workout.UserID, 0)
			if err != nil {
				return err
			}
			resp.LeveledUp = final.NewLevel > award.OldLevel
			resp.Progress = progression.AwardResult{
				NewTotal: final.NewTotal,
				OldLevel: award.OldLevel,
				NewLevel: final.NewLevel,
				Title:    final.Title,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyCompletion(ctx, workout.UserID, resp)

	if s.search != nil {
		go func(w model.Workout) {
			if err := s.search.IndexWorkout(&w); err != nil {
				log.Printf("Failed to index workout %s: %v", w.ID, err)
			}
		}(*workout)
	}

	return resp, nil
}

func (s *workoutService) detectRecords(ctx context.Context, tx *gorm.DB, userID uuid.UUID, entries []workoutDto.ExerciseLogInput) ([]model.PersonalRecord, error) {
	records := []model.PersonalRecord{}

	for _, entry := range entries {
		recordType := ""
		value := 0.0
		switch {
		case entry.WeightUsed != nil && *entry.WeightUsed > 0:
			recordType = model.RecordTypeWeight
			value = *entry.WeightUsed
		case entry.RepsCompleted != nil && *entry.RepsCompleted > 0:
			recordType = model.RecordTypeReps
			value = float64(*entry.RepsCompleted)
		case entry.Duration != nil && *entry.Duration > 0:
			recordType = model.RecordTypeDuration
			value = float64(*entry.Duration)
		default:
			continue
		}

		best, found, err := s.repo.BestRecord(ctx, tx, userID, entry.ExerciseName, recordType)
		if err != nil {
			return nil, err
		}
		if found && value <= best {
			continue
		}

		record := model.PersonalRecord{
			UserID:       userID,
			ExerciseName: entry.ExerciseName,
			RecordType:   recordType,
			Value:        value,
			AchievedAt:   time.Now(),
		}
		if err := s.repo.CreatePersonalRecord(ctx, tx, &record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func (s *workoutService) notifyCompletion(ctx context.Context, userID uuid.UUID, resp *workoutDto.CompletionResponse) {
	if s.notifications == nil {
		return
	}

	if resp.LeveledUp {
		err := s.notifications.CreateNotification(ctx, &model.Notification{
			UserID:     userID,
			EntityID:   userID,
			EntityType: "progression",
			Type:       notification.TypeLevelUp,
			Message:    "Level up! You are now a " + resp.Progress.Title,
		})
		if err != nil {
			log.Printf("Failed to create level-up notification: %v", err)
		}
	}

	for _, grant := range resp.NewAchievements {
		err := s.notifications.CreateNotification(ctx, &model.Notification{
			UserID:     userID,
			EntityID:   grant.ID,
			EntityType: "achievement",
			Type:       notification.TypeAchievementUnlocked,
			Message:    "Achievement unlocked: " + grant.Name,
		})
		if err != nil {
			log.Printf("Failed to create achievement notification: %v", err)
		}
	}
}
