package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/forgelabs-dev/fitforge/internal/model"
	notifRepo "github.com/forgelabs-dev/fitforge/internal/modules/notification/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	TypeAchievementUnlocked = "achievement_unlocked"
	TypeLevelUp             = "level_up"
	TypeChallengeCompleted  = "challenge_completed"
	TypeHighlightLiked      = "highlight_liked"
	TypeFriendRequest       = "friend_request"
	TypeFriendAccepted      = "friend_accepted"
	TypeGymSpotted          = "gym_spotted"
)

type NotificationService interface {
	// CreateNotification persists the notification and fans it out to the
	// user's websocket channel. Called only after the owning transaction
	// has committed; a publish failure must never undo progression state.
	CreateNotification(ctx context.Context, notification *model.Notification) error
	GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo notifRepo.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// UserChannel is the redis pub/sub channel carrying a user's notifications.
func UserChannel(userID uuid.UUID) string {
	return fmt.Sprintf("user_notifications:%s", userID.String())
}

func (s *notificationService) CreateNotification(ctx context.Context, notification *model.Notification) error {
	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	if s.redisClient != nil {
		payload, err := json.Marshal(notification)
		if err == nil {
			s.redisClient.Publish(ctx, UserChannel(notification.UserID), payload)
		}
	}

	return nil
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	return s.repo.GetByUserID(ctx, userID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
