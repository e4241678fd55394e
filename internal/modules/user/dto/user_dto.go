package dto

import (
	"time"

	"github.com/forgelabs-dev/fitforge/internal/model"
	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=100"`
	Phone         *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	FitnessLevel  string  `json:"fitness_level" binding:"required,oneof=beginner intermediate advanced"`
	PreferredTime *string `json:"preferred_time,omitempty"`
	Goals         *string `json:"goals,omitempty"`
}

type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Phone         *string   `json:"phone,omitempty"`
	FitnessLevel  string    `json:"fitness_level"`
	PreferredTime *string   `json:"preferred_time,omitempty"`
	Goals         *string   `json:"goals,omitempty"`
	TotalPoints   int       `json:"total_points"`
	Level         int       `json:"level"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Phone:         u.Phone,
		FitnessLevel:  u.FitnessLevel,
		PreferredTime: u.PreferredTime,
		Goals:         u.Goals,
		TotalPoints:   u.TotalPoints,
		Level:         u.Level,
		Title:         u.Title,
		CreatedAt:     u.CreatedAt,
	}
}

// GamificationStatusResponse aggregates everything the profile screen shows.
type GamificationStatusResponse struct {
	User           UserResponse                 `json:"user"`
	Streak         StreakInfo                   `json:"streak"`
	Achievements   []model.AchievementGrant     `json:"achievements"`
	Participations []model.ChallengeParticipant `json:"challenges"`
}

type StreakInfo struct {
	CurrentStreak int     `json:"current_streak"`
	LongestStreak int     `json:"longest_streak"`
	Multiplier    float64 `json:"multiplier"`
}
