package dto

import "github.com/google/uuid"

type CreateHighlightRequest struct {
	UserID        uuid.UUID  `json:"user_id" binding:"required"`
	WorkoutID     *uuid.UUID `json:"workout_id,omitempty"`
	Title         string     `json:"title" binding:"required,min=1,max=150"`
	Description   string     `json:"description" binding:"max=2000"`
	MediaURL      string     `json:"media_url" binding:"omitempty,url"`
	HighlightType string     `json:"highlight_type" binding:"required,oneof=pr_hit workout_done transformation flex"`
}

type LikeHighlightRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

type DeleteHighlightRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

type FriendRequestRequest struct {
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	FriendID uuid.UUID `json:"friend_id" binding:"required"`
}

type GymSpottedRequest struct {
	SpotterID   uuid.UUID `json:"spotter_id" binding:"required"`
	SpottedID   uuid.UUID `json:"spotted_id" binding:"required"`
	GymLocation string    `json:"gym_location" binding:"required,min=1,max=150"`
	Message     string    `json:"message" binding:"max=500"`
}

type TransformationRequest struct {
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	PhotoURL string    `json:"photo_url" binding:"required,url"`
	Metrics  string    `json:"metrics,omitempty"`
	Mood     string    `json:"mood,omitempty" binding:"max=50"`
}
