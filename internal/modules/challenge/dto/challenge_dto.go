package dto

import "github.com/google/uuid"

type JoinChallengeRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

type UpdateProgressRequest struct {
	UserID       uuid.UUID `json:"user_id" binding:"required"`
	CurrentValue int       `json:"current_value" binding:"min=0"`
}
