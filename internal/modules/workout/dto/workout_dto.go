package dto

import (
	"github.com/forgelabs-dev/fitforge/internal/model"
	progression "github.com/forgelabs-dev/fitforge/internal/modules/progression/service"
	streak "github.com/forgelabs-dev/fitforge/internal/modules/streak/service"
	"github.com/google/uuid"
)

type ExerciseInput struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Sets     int    `json:"sets" binding:"required,min=1"`
	Reps     *int   `json:"reps,omitempty" binding:"omitempty,min=1"`
	Duration *int   `json:"duration,omitempty" binding:"omitempty,min=1"`
}

type CreateWorkoutRequest struct {
	UserID    uuid.UUID       `json:"user_id" binding:"required"`
	Exercises []ExerciseInput `json:"exercises" binding:"required,min=1,dive"`
	Notes     *string         `json:"notes,omitempty"`
}

type ExerciseLogInput struct {
	ExerciseName  string   `json:"exercise_name" binding:"required,min=1,max=100"`
	SetsCompleted int      `json:"sets_completed" binding:"min=0"`
	RepsCompleted *int     `json:"reps_completed,omitempty" binding:"omitempty,min=0"`
	WeightUsed    *float64 `json:"weight_used,omitempty" binding:"omitempty,min=0"`
	Duration      *int     `json:"duration,omitempty" binding:"omitempty,min=0"`
}

type CompleteWorkoutRequest struct {
	ExerciseLogs     []ExerciseLogInput `json:"exercise_logs" binding:"omitempty,dive"`
	DifficultyRating *int               `json:"difficulty_rating,omitempty" binding:"omitempty,min=1,max=5"`
	Notes            *string            `json:"notes,omitempty"`
}

type ProgressStats struct {
	TotalWorkouts     int64   `json:"total_workouts"`
	CompletedWorkouts int64   `json:"completed_workouts"`
	CompletionRate    float64 `json:"completion_rate"`
}

// ProgressSummaryResponse is the dashboard view of a user's training history:
// completion stats, every personal record and the latest workouts.
type ProgressSummaryResponse struct {
	UserID          uuid.UUID              `json:"user_id"`
	Stats           ProgressStats          `json:"stats"`
	PersonalRecords []model.PersonalRecord `json:"personal_records"`
	RecentWorkouts  []model.Workout        `json:"recent_workouts"`
}

// CompletionResponse reports everything the completion earned in one shot so
// the client can render the celebration screen without follow-up calls.
type CompletionResponse struct {
	WorkoutID       uuid.UUID                `json:"workout_id"`
	PointsAwarded   int                      `json:"points_awarded"`
	Multiplier      float64                  `json:"multiplier"`
	Streak          streak.Snapshot          `json:"streak"`
	LeveledUp       bool                     `json:"leveled_up"`
	Progress        progression.AwardResult  `json:"progress"`
	NewRecords      []model.PersonalRecord   `json:"new_records"`
	NewAchievements []model.AchievementGrant `json:"new_achievements"`
}
