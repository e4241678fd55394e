package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkoutHighlight struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	User          User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	WorkoutID     *uuid.UUID `gorm:"type:uuid" json:"workout_id,omitempty"`
	Title         string     `gorm:"size:150;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	MediaURL      string     `gorm:"type:text" json:"media_url"`
	HighlightType string     `gorm:"size:30" json:"highlight_type"`
	Likes         int        `gorm:"not null;default:0" json:"likes"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (h *WorkoutHighlight) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

type Friendship struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_friend_pair;not null" json:"user_id"`
	FriendID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_friend_pair;not null" json:"friend_id"`
	Status    string    `gorm:"size:20;not null;default:pending" json:"status"` // "pending", "accepted"
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type GymSpotted struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SpotterID   uuid.UUID `gorm:"type:uuid;index;not null" json:"spotter_id"`
	SpottedID   uuid.UUID `gorm:"type:uuid;index;not null" json:"spotted_id"`
	GymLocation string    `gorm:"size:150;index;not null" json:"gym_location"`
	Message     string    `gorm:"type:text" json:"message"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (g *GymSpotted) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

type TransformationProgress struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	PhotoURL  string    `gorm:"type:text;not null" json:"photo_url"`
	Metrics   string    `gorm:"type:jsonb;default:'{}'" json:"metrics"`
	Mood      string    `gorm:"size:50" json:"mood"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (t *TransformationProgress) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
