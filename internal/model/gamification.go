package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Streak is created lazily on the first workout completion and mutated only
// by the streak tracker. longest_streak >= current_streak at all times.
type Streak struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CurrentStreak  int        `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak  int        `gorm:"not null;default:0" json:"longest_streak"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
	Multiplier     float64    `gorm:"not null;default:1.0" json:"multiplier"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Streak) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// AchievementGrant is an immutable fact. The composite unique index is what
// enforces at-most-one grant per (user, name) even under concurrent
// evaluation; inserts use ON CONFLICT DO NOTHING and treat a lost race as
// "already granted".
type AchievementGrant struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_achievement;not null" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Name        string    `gorm:"size:100;uniqueIndex:idx_user_achievement;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"size:30;not null" json:"achievement_type"`
	BadgeURL    string    `gorm:"type:text" json:"badge_url"`
	MemeURL     string    `gorm:"type:text" json:"meme_url"`
	GrantedAt   time.Time `gorm:"autoCreateTime" json:"granted_at"`
}

func (a *AchievementGrant) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

const (
	ChallengeTypeDaily  = "daily"
	ChallengeTypeWeekly = "weekly"
)

type Challenge struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Type         string    `gorm:"size:20;not null" json:"challenge_type"` // "daily", "weekly"
	TargetValue  int       `gorm:"not null" json:"target_value"`
	RewardPoints int       `gorm:"not null" json:"reward_points"`
	StartAt      time.Time `gorm:"not null" json:"start_at"`
	EndAt        time.Time `gorm:"index;not null" json:"end_at"`
	MemeReward   string    `gorm:"type:text" json:"meme_reward"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ChallengeParticipant tracks a user's progress toward a challenge target.
// Completed flips false->true exactly once; the flip is guarded by a
// conditional update so the reward is paid at most once per participation.
type ChallengeParticipant struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ChallengeID  uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_challenge_user;not null" json:"challenge_id"`
	Challenge    Challenge  `gorm:"foreignKey:ChallengeID;constraint:OnDelete:CASCADE" json:"-"`
	UserID       uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_challenge_user;not null" json:"user_id"`
	CurrentValue int        `gorm:"not null;default:0" json:"current_value"`
	Completed    bool       `gorm:"not null;default:false" json:"completed"`
	JoinedAt     time.Time  `gorm:"autoCreateTime" json:"joined_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

func (p *ChallengeParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
