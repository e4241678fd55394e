package service

import (
	"context"

	"github.com/forgelabs-dev/fitforge/internal/model"
	achievement "github.com/forgelabs-dev/fitforge/internal/modules/achievement/service"
	challenge "github.com/forgelabs-dev/fitforge/internal/modules/challenge/service"
	streak "github.com/forgelabs-dev/fitforge/internal/modules/streak/service"
	userDto "github.com/forgelabs-dev/fitforge/internal/modules/user/dto"
	"github.com/forgelabs-dev/fitforge/internal/modules/user/repository"
	"github.com/google/uuid"
)

type UserService interface {
	Create(ctx context.Context, req userDto.CreateUserRequest) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context, limit, offset int) ([]model.User, int64, error)
	GetGamificationStatus(ctx context.Context, id uuid.UUID) (*userDto.GamificationStatusResponse, error)
}

type userService struct {
	repo         repository.UserRepository
	streaks      streak.StreakTracker
	achievements achievement.Evaluator
	challenges   challenge.ChallengeTracker
}

func NewUserService(repo repository.UserRepository, streaks streak.StreakTracker, achievements achievement.Evaluator, challenges challenge.ChallengeTracker) UserService {
	return &userService{
		repo:         repo,
		streaks:      streaks,
		achievements: achievements,
		challenges:   challenges,
	}
}

func (s *userService) Create(ctx context.Context, req userDto.CreateUserRequest) (*model.User, error) {
	user := &model.User{
		Name:          req.Name,
		Phone:         req.Phone,
		FitnessLevel:  req.FitnessLevel,
		PreferredTime: req.PreferredTime,
		Goals:         req.Goals,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, limit, offset int) ([]model.User, int64, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *userService) GetGamificationStatus(ctx context.Context, id uuid.UUID) (*userDto.GamificationStatusResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snap, err := s.streaks.GetSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}

	grants, err := s.achievements.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	participations, err := s.challenges.ListParticipations(ctx, id)
	if err != nil {
		return nil, err
	}

	return &userDto.GamificationStatusResponse{
		User: userDto.ToUserResponse(user),
		Streak: userDto.StreakInfo{
			CurrentStreak: snap.CurrentStreak,
			LongestStreak: snap.LongestStreak,
			Multiplier:    snap.Multiplier,
		},
		Achievements:   grants,
		Participations: participations,
	}, nil
}
