package main

import (
	"log"

	"github.com/forgelabs-dev/fitforge/internal/catalog"
	"github.com/forgelabs-dev/fitforge/internal/config"
	"github.com/forgelabs-dev/fitforge/internal/model"
	"github.com/forgelabs-dev/fitforge/internal/server"
	"github.com/forgelabs-dev/fitforge/pkg/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(database.Options{
		URL:      cfg.DatabaseURL,
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		Port:     cfg.DBPort,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	redisClient := connectRedis(cfg.RedisURL)

	srv := server.NewServer(cfg, db, redisClient, cat)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.PersonalRecord{},
		&model.Workout{},
		&model.WorkoutExercise{},
		&model.ExerciseLog{},
		&model.Streak{},
		&model.AchievementGrant{},
		&model.Challenge{},
		&model.ChallengeParticipant{},
		&model.WorkoutHighlight{},
		&model.Friendship{},
		&model.GymSpotted{},
		&model.TransformationProgress{},
		&model.Notification{},
	)
}

// connectRedis returns nil when REDIS_URL is unset or unparsable; the app
// runs without rate limiting, caching and live notifications in that case.
func connectRedis(redisURL string) *redis.Client {
	if redisURL == "" {
		log.Println("REDIS_URL not set, running without redis")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Invalid REDIS_URL, running without redis: %v", err)
		return nil
	}

	return redis.NewClient(opts)
}
