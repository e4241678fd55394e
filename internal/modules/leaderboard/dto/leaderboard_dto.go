package dto

import "github.com/google/uuid"

type LeaderboardEntry struct {
	Position    int       `json:"position"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	TotalPoints int       `json:"total_points"`
	Level       int       `json:"level"`
	Title       string    `json:"title"`
}
