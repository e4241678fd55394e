package server

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/forgelabs-dev/fitforge/internal/catalog"
	"github.com/forgelabs-dev/fitforge/internal/config"
	"github.com/forgelabs-dev/fitforge/internal/service"

	achievementHttp "github.com/forgelabs-dev/fitforge/internal/modules/achievement/delivery/http"
	achievementRepo "github.com/forgelabs-dev/fitforge/internal/modules/achievement/repository"
	achievementService "github.com/forgelabs-dev/fitforge/internal/modules/achievement/service"

	challengeHttp "github.com/forgelabs-dev/fitforge/internal/modules/challenge/delivery/http"
	challengeRepo "github.com/forgelabs-dev/fitforge/internal/modules/challenge/repository"
	challengeService "github.com/forgelabs-dev/fitforge/internal/modules/challenge/service"

	leaderboardHttp "github.com/forgelabs-dev/fitforge/internal/modules/leaderboard/delivery/http"
	leaderboardRepo "github.com/forgelabs-dev/fitforge/internal/modules/leaderboard/repository"
	leaderboardService "github.com/forgelabs-dev/fitforge/internal/modules/leaderboard/service"

	notiHttp "github.com/forgelabs-dev/fitforge/internal/modules/notification/delivery/http"
	notifRepo "github.com/forgelabs-dev/fitforge/internal/modules/notification/repository"
	notifService "github.com/forgelabs-dev/fitforge/internal/modules/notification/service"

	progressionRepo "github.com/forgelabs-dev/fitforge/internal/modules/progression/repository"
	progressionService "github.com/forgelabs-dev/fitforge/internal/modules/progression/service"

	searchHttp "github.com/forgelabs-dev/fitforge/internal/modules/search/delivery/http"

	socialHttp "github.com/forgelabs-dev/fitforge/internal/modules/social/delivery/http"
	socialRepo "github.com/forgelabs-dev/fitforge/internal/modules/social/repository"
	socialService "github.com/forgelabs-dev/fitforge/internal/modules/social/service"

	streakRepo "github.com/forgelabs-dev/fitforge/internal/modules/streak/repository"
	streakService "github.com/forgelabs-dev/fitforge/internal/modules/streak/service"

	userHttp "github.com/forgelabs-dev/fitforge/internal/modules/user/delivery/http"
	userRepo "github.com/forgelabs-dev/fitforge/internal/modules/user/repository"
	userService "github.com/forgelabs-dev/fitforge/internal/modules/user/service"

	workoutHttp "github.com/forgelabs-dev/fitforge/internal/modules/workout/delivery/http"
	workoutRepo "github.com/forgelabs-dev/fitforge/internal/modules/workout/repository"
	workoutService "github.com/forgelabs-dev/fitforge/internal/modules/workout/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, cat *catalog.Catalog) *Server {
	// Meilisearch is optional; without a host the search endpoints report
	// unavailable and indexing is skipped.
	var meiliSvc service.MeiliSearchService
	if cfg.MeiliSearchHost != "" {
		meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		meiliSvc = service.NewMeiliSearchService(meiliClient)
	}

	// Progression engine
	progressRepo := progressionRepo.NewUserProgressRepository(db)
	ledger := progressionService.NewPointLedger(db, progressRepo, cat)

	strkRepo := streakRepo.NewStreakRepository(db)
	streaks := streakService.NewStreakTracker(db, strkRepo)

	achvRepo := achievementRepo.NewAchievementRepository(db)
	achievements := achievementService.NewEvaluator(db, achvRepo, ledger, cat)
	achievementHandler := achievementHttp.NewAchievementHandler(achievements)

	chlgRepo := challengeRepo.NewChallengeRepository(db)
	challenges := challengeService.NewChallengeTracker(db, chlgRepo, ledger, cat)

	// Notification module
	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient)

	challengeHandler := challengeHttp.NewChallengeHandler(challenges, notificationSvc, redisClient, cfg.RateLimitProgress)

	// User module
	usrRepo := userRepo.NewUserRepository(db)
	userSvc := userService.NewUserService(usrRepo, streaks, achievements, challenges)
	userHandler := userHttp.NewUserHandler(userSvc)

	// Workout module
	wktRepo := workoutRepo.NewWorkoutRepository(db)
	workoutSvc := workoutService.NewWorkoutService(db, wktRepo, streaks, ledger, achievements, notificationSvc, meiliSvc)
	workoutHandler := workoutHttp.NewWorkoutHandler(workoutSvc)

	// Social module
	socRepo := socialRepo.NewSocialRepository(db)
	socialSvc := socialService.NewSocialService(db, socRepo, ledger, achievements, notificationSvc, meiliSvc)
	socialHandler := socialHttp.NewSocialHandler(socialSvc, redisClient, cfg.RateLimitHighlight)

	// Leaderboard module
	ldbRepo := leaderboardRepo.NewLeaderboardRepository(db)
	leaderboardSvc := leaderboardService.NewLeaderboardService(ldbRepo, redisClient)
	leaderboardHandler := leaderboardHttp.NewLeaderboardHandler(leaderboardSvc)

	searchHandler := searchHttp.NewSearchHandler(meiliSvc)

	// Seed today's challenges and keep rotating them in the background.
	if err := challenges.EnsureActiveChallenges(context.Background(), time.Now()); err != nil {
		log.Printf("Failed to seed challenges: %v", err)
	}
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := challenges.EnsureActiveChallenges(context.Background(), time.Now()); err != nil {
				log.Printf("Failed to rotate challenges: %v", err)
			}
		}
	}()

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// User routes
		api.POST("/users", userHandler.CreateUser)
		api.GET("/users", userHandler.ListUsers)
		api.GET("/users/:id", userHandler.GetUser)
		api.GET("/users/:id/gamification", userHandler.GetGamificationStatus)

		// Workout routes
		api.POST("/workouts", workoutHandler.CreateWorkout)
		api.GET("/workouts/:id", workoutHandler.GetWorkout)
		api.POST("/workouts/:id/complete", workoutHandler.CompleteWorkout)
		api.GET("/users/:id/workouts", workoutHandler.ListWorkouts)
		api.GET("/users/:id/records", workoutHandler.ListRecords)
		api.GET("/users/:id/progress", workoutHandler.GetProgressSummary)

		// Achievement routes
		api.GET("/users/:id/achievements", achievementHandler.ListByUser)

		// Challenge routes
		api.GET("/challenges", challengeHandler.ListActive)
		api.POST("/challenges/:id/join", challengeHandler.Join)
		api.POST("/challenges/:id/progress", challengeHandler.UpdateProgress)

		// Social routes
		api.POST("/highlights", socialHandler.CreateHighlight)
		api.GET("/highlights", socialHandler.ListHighlights)
		api.POST("/highlights/:id/like", socialHandler.LikeHighlight)
		api.DELETE("/highlights/:id", socialHandler.DeleteHighlight)
		api.GET("/users/:id/feed", socialHandler.FriendFeed)
		api.POST("/friendships", socialHandler.RequestFriendship)
		api.POST("/friendships/:id/accept", socialHandler.AcceptFriendship)
		api.POST("/gym-spotted", socialHandler.SpotAtGym)
		api.GET("/gym-spotted", socialHandler.GymFeed)
		api.POST("/transformations", socialHandler.AddTransformation)
		api.GET("/users/:id/transformations", socialHandler.ListTransformations)

		// Leaderboard
		api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)

		// Search
		api.GET("/search/workouts", searchHandler.SearchWorkouts)
		api.GET("/search/highlights", searchHandler.SearchHighlights)

		// Notification routes
		api.GET("/users/:id/notifications", notificationHandler.GetNotifications)
		api.GET("/users/:id/notifications/unread-count", notificationHandler.UnreadCount)
		api.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		api.PUT("/users/:id/notifications/read-all", notificationHandler.MarkAllAsRead)
		api.GET("/users/:id/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
