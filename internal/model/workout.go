package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Workout struct {
	ID               uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID         `gorm:"type:uuid;index;not null" json:"user_id"`
	User             User              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Exercises        []WorkoutExercise `gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE" json:"exercises"`
	Completed        bool              `gorm:"not null;default:false" json:"completed"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	DifficultyRating *int              `json:"difficulty_rating,omitempty"` // 1-5 rating
	Notes            *string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (w *Workout) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

type WorkoutExercise struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkoutID uuid.UUID `gorm:"type:uuid;index;not null" json:"workout_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Sets      int       `json:"sets"`
	Reps      *int      `json:"reps,omitempty"`
	Duration  *int      `json:"duration,omitempty"` // seconds
}

func (e *WorkoutExercise) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type ExerciseLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkoutID     uuid.UUID `gorm:"type:uuid;index;not null" json:"workout_id"`
	Workout       Workout   `gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE" json:"-"`
	ExerciseName  string    `gorm:"size:100;not null" json:"exercise_name"`
	SetsCompleted int       `json:"sets_completed"`
	RepsCompleted *int      `json:"reps_completed,omitempty"`
	WeightUsed    *float64  `json:"weight_used,omitempty"` // kg
	Duration      *int      `json:"duration,omitempty"`    // seconds
	Completed     bool      `gorm:"not null;default:true" json:"completed"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *ExerciseLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
