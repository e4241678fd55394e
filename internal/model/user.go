package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Phone         *string   `gorm:"size:30" json:"phone,omitempty"`
	FitnessLevel  string    `gorm:"size:30;default:beginner" json:"fitness_level"`
	PreferredTime *string   `gorm:"size:30" json:"preferred_time,omitempty"`
	Goals         *string   `gorm:"type:text" json:"goals,omitempty"`

	// Progression state. TotalPoints is written only through the point
	// ledger; Level and Title are re-derived on every award and persisted
	// together with the total in the same transaction.
	TotalPoints int    `gorm:"not null;default:0" json:"total_points"`
	Level       int    `gorm:"not null;default:1" json:"level"`
	Title       string `gorm:"size:100;default:'Rookie Lifter'" json:"title"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

const (
	RecordTypeWeight   = "weight"
	RecordTypeReps     = "reps"
	RecordTypeDuration = "duration"
)

type PersonalRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User         User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ExerciseName string    `gorm:"size:100;not null" json:"exercise_name"`
	RecordType   string    `gorm:"size:20;not null" json:"record_type"` // "weight", "reps", "duration"
	Value        float64   `gorm:"not null" json:"value"`
	AchievedAt   time.Time `gorm:"autoCreateTime" json:"achieved_at"`
	Notes        *string   `gorm:"type:text" json:"notes,omitempty"`
}

func (p *PersonalRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
