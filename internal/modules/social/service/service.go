package service

import (
	"context"
	"log"
	"time"

	"github.com/forgelabs-dev/fitforge/internal/model"
	achievement "github.com/forgelabs-dev/fitforge/internal/modules/achievement/service"
	notification "github.com/forgelabs-dev/fitforge/internal/modules/notification/service"
	progression "github.com/forgelabs-dev/fitforge/internal/modules/progression/service"
	socialDto "github.com/forgelabs-dev/fitforge/internal/modules/social/dto"
	"github.com/forgelabs-dev/fitforge/internal/modules/social/repository"
	"github.com/forgelabs-dev/fitforge/internal/service"
	"github.com/forgelabs-dev/fitforge/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	pointsPerLike   = 10
	pointsPerSpot   = 20
	feedWindow      = 7 * 24 * time.Hour
	gymFeedWindow   = 24 * time.Hour
	defaultFeedSize = 50
)

type SocialService interface {
	CreateHighlight(ctx context.Context, req socialDto.CreateHighlightRequest) (*model.WorkoutHighlight, error)
	LikeHighlight(ctx context.Context, highlightID, likerID uuid.UUID) (*model.WorkoutHighlight, error)
	DeleteHighlight(ctx context.Context, highlightID, userID uuid.UUID) error
	ListHighlights(ctx context.Context, limit, offset int) ([]model.WorkoutHighlight, error)
	FriendFeed(ctx context.Context, userID uuid.UUID) ([]model.WorkoutHighlight, error)

	RequestFriendship(ctx context.Context, req socialDto.FriendRequestRequest) (*model.Friendship, error)
	AcceptFriendship(ctx context.Context, friendshipID uuid.UUID) (*model.Friendship, error)

	SpotAtGym(ctx context.Context, req socialDto.GymSpottedRequest) (*model.GymSpotted, error)
	GymFeed(ctx context.Context, gymLocation string) ([]model.GymSpotted, error)

	AddTransformation(ctx context.Context, req socialDto.TransformationRequest) (*model.TransformationProgress, error)
	ListTransformations(ctx context.Context, userID uuid.UUID) ([]model.TransformationProgress, error)
}

type socialService struct {
	db            *gorm.DB
	repo          repository.SocialRepository
	ledger        progression.PointLedger
	achievements  achievement.Evaluator
	notifications notification.NotificationService
	search        service.MeiliSearchService
}

func NewSocialService(
	db *gorm.DB,
	repo repository.SocialRepository,
	ledger progression.PointLedger,
	achievements achievement.Evaluator,
	notifications notification.NotificationService,
	search service.MeiliSearchService,
) SocialService {
	return &socialService{
		db:            db,
		repo:          repo,
		ledger:        ledger,
		achievements:  achievements,
		notifications: notifications,
		search:        search,
	}
}

func (s *socialService) CreateHighlight(ctx context.Context, req socialDto.CreateHighlightRequest) (*model.WorkoutHighlight, error) {
	highlight := &model.WorkoutHighlight{
		UserID:        req.UserID,
		WorkoutID:     req.WorkoutID,
		Title:         req.Title,
		Description:   req.Description,
		MediaURL:      req.MediaURL,
		HighlightType: req.HighlightType,
	}
	if err := s.repo.CreateHighlight(ctx, highlight); err != nil {
		return nil, err
	}

	if s.search != nil {
		go func(h model.WorkoutHighlight) {
			if err := s.search.IndexHighlight(&h); err != nil {
				log.Printf("Failed to index highlight %s: %v", h.ID, err)
			}
		}(*highlight)
	}

	return highlight, nil
}

// LikeHighlight bumps the like counter and pays the creator. Likes from the
// creator on their own highlight earn nothing.
func (s *socialService) LikeHighlight(ctx context.Context, highlightID, likerID uuid.UUID) (*model.WorkoutHighlight, error) {
	var highlight *model.WorkoutHighlight

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		highlight, err = s.repo.IncrementLikes(ctx, tx, highlightID)
		if err != nil {
			return err
		}

		if highlight.UserID == likerID {
			return nil
		}

		_, err = s.ledger.AwardInTx(ctx, tx, highlight.UserID, pointsPerLike)
		return err
	})
	if err != nil {
		return nil, err
	}

	if highlight.UserID != likerID && s.notifications != nil {
		notifErr := s.notifications.CreateNotification(ctx, &model.Notification{
			UserID:     highlight.UserID,
			ActorID:    likerID,
			EntityID:   highlight.ID,
			EntityType: "highlight",
			Type:       notification.TypeHighlightLiked,
			Message:    "Someone hyped your highlight: " + highlight.Title,
		})
		if notifErr != nil {
			log.Printf("Failed to create like notification: %v", notifErr)
		}
	}

	if s.search != nil {
		go func(h model.WorkoutHighlight) {
			if err := s.search.IndexHighlight(&h); err != nil {
				log.Printf("Failed to reindex highlight %s: %v", h.ID, err)
			}
		}(*highlight)
	}

	return highlight, nil
}

// DeleteHighlight removes the highlight and its search document. Only the
// creator may delete; likes already paid out stay paid.
func (s *socialService) DeleteHighlight(ctx context.Context, highlightID, userID uuid.UUID) error {
	highlight, err := s.repo.GetHighlight(ctx, highlightID)
	if err != nil {
		return err
	}
	if highlight.UserID != userID {
		return apperror.New(400, "only the creator can delete a highlight", apperror.ErrBadRequest)
	}

	if err := s.repo.DeleteHighlight(ctx, highlightID); err != nil {
		return err
	}

	if s.search != nil {
		go func(id string) {
			if err := s.search.DeleteHighlight(id); err != nil {
				log.Printf("Failed to remove highlight %s from index: %v", id, err)
			}
		}(highlightID.String())
	}

	return nil
}

func (s *socialService) ListHighlights(ctx context.Context, limit, offset int) ([]model.WorkoutHighlight, error) {
	return s.repo.ListHighlights(ctx, limit, offset)
}

func (s *socialService) FriendFeed(ctx context.Context, userID uuid.UUID) ([]model.WorkoutHighlight, error) {
	friendIDs, err := s.repo.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListHighlightsByUsers(ctx, friendIDs, time.Now().Add(-feedWindow), defaultFeedSize)
}

func (s *socialService) RequestFriendship(ctx context.Context, req socialDto.FriendRequestRequest) (*model.Friendship, error) {
	if req.UserID == req.FriendID {
		return nil, apperror.New(400, "cannot befriend yourself", apperror.ErrBadRequest)
	}

	friendship := &model.Friendship{
		UserID:   req.UserID,
		FriendID: req.FriendID,
		Status:   model.FriendshipPending,
	}
	if err := s.repo.CreateFriendship(ctx, friendship); err != nil {
		return nil, err
	}

	if s.notifications != nil {
		notifErr := s.notifications.CreateNotification(ctx, &model.Notification{
			UserID:     req.FriendID,
			ActorID:    req.UserID,
			EntityID:   friendship.ID,
			EntityType: "friendship",
			Type:       notification.TypeFriendRequest,
			Message:    "You have a new gym buddy request",
		})
		if notifErr != nil {
			log.Printf("Failed to create friend request notification: %v", notifErr)
		}
	}

	return friendship, nil
}

// AcceptFriendship flips the request to accepted and evaluates the social
// achievement for both sides. The flip happens at most once; a repeat accept
// returns the friendship unchanged.
func (s *socialService) AcceptFriendship(ctx context.Context, friendshipID uuid.UUID) (*model.Friendship, error) {
	friendship, err := s.repo.GetFriendship(ctx, friendshipID)
	if err != nil {
		return nil, err
	}

	var flipped bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		flipped, err = s.repo.AcceptFriendship(ctx, tx, friendshipID)
		if err != nil || !flipped {
			return err
		}

		// Lock order by user id keeps two concurrent accepts touching the
		// same pair from deadlocking.
		for _, userID := range orderedPair(friendship.UserID, friendship.FriendID) {
			count, err := s.repo.CountAcceptedFriends(ctx, tx, userID)
			if err != nil {
				return err
			}
			if _, err := s.achievements.EvaluateInTx(ctx, tx, userID, achievement.Context{
				FriendsAccepted: count,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if flipped {
		friendship.Status = model.FriendshipAccepted
		if s.notifications != nil {
			notifErr := s.notifications.CreateNotification(ctx, &model.Notification{
				UserID:     friendship.UserID,
				ActorID:    friendship.FriendID,
				EntityID:   friendship.ID,
				EntityType: "friendship",
				Type:       notification.TypeFriendAccepted,
				Message:    "Your gym buddy request was accepted",
			})
			if notifErr != nil {
				log.Printf("Failed to create friend accepted notification: %v", notifErr)
			}
		}
	}

	return friendship, nil
}

// SpotAtGym records the sighting and pays both users in one transaction.
func (s *socialService) SpotAtGym(ctx context.Context, req socialDto.GymSpottedRequest) (*model.GymSpotted, error) {
	if req.SpotterID == req.SpottedID {
		return nil, apperror.New(400, "cannot spot yourself", apperror.ErrBadRequest)
	}

	spotted := &model.GymSpotted{
		SpotterID:   req.SpotterID,
		SpottedID:   req.SpottedID,
		GymLocation: req.GymLocation,
		Message:     req.Message,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.CreateGymSpotted(ctx, tx, spotted); err != nil {
			return err
		}

		// Award in user id order so two crossing spots cannot deadlock on
		// the locked user rows.
		for _, userID := range orderedPair(req.SpotterID, req.SpottedID) {
			if _, err := s.ledger.AwardInTx(ctx, tx, userID, pointsPerSpot); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifications != nil {
		notifErr := s.notifications.CreateNotification(ctx, &model.Notification{
			UserID:     req.SpottedID,
			ActorID:    req.SpotterID,
			EntityID:   spotted.ID,
			EntityType: "gym_spotted",
			Type:       notification.TypeGymSpotted,
			Message:    "You got spotted at " + req.GymLocation,
		})
		if notifErr != nil {
			log.Printf("Failed to create gym spotted notification: %v", notifErr)
		}
	}

	return spotted, nil
}

func (s *socialService) GymFeed(ctx context.Context, gymLocation string) ([]model.GymSpotted, error) {
	return s.repo.ListGymSpotted(ctx, gymLocation, time.Now().Add(-gymFeedWindow), defaultFeedSize)
}

func (s *socialService) AddTransformation(ctx context.Context, req socialDto.TransformationRequest) (*model.TransformationProgress, error) {
	progress := &model.TransformationProgress{
		UserID:   req.UserID,
		PhotoURL: req.PhotoURL,
		Metrics:  req.Metrics,
		Mood:     req.Mood,
	}
	if progress.Metrics == "" {
		progress.Metrics = "{}"
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.CreateTransformation(ctx, tx, progress); err != nil {
			return err
		}

		count, err := s.repo.CountTransformations(ctx, tx, req.UserID)
		if err != nil {
			return err
		}

		_, err = s.achievements.EvaluateInTx(ctx, tx, req.UserID, achievement.Context{
			ProgressPhotos: count,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return progress, nil
}

func (s *socialService) ListTransformations(ctx context.Context, userID uuid.UUID) ([]model.TransformationProgress, error) {
	return s.repo.ListTransformations(ctx, userID)
}

func orderedPair(a, b uuid.UUID) [2]uuid.UUID {
	if a.String() < b.String() {
		return [2]uuid.UUID{a, b}
	}
	return [2]uuid.UUID{b, a}
}
