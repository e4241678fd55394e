package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/forgelabs-dev/fitforge/internal/model"
	challengeDto "github.com/forgelabs-dev/fitforge/internal/modules/challenge/dto"
	challenge "github.com/forgelabs-dev/fitforge/internal/modules/challenge/service"
	notification "github.com/forgelabs-dev/fitforge/internal/modules/notification/service"
	"github.com/forgelabs-dev/fitforge/internal/service"
	"github.com/forgelabs-dev/fitforge/pkg/apperror"
	"github.com/forgelabs-dev/fitforge/pkg/response"
	"github.com/forgelabs-dev/fitforge/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type ChallengeHandler struct {
	service       challenge.ChallengeTracker
	notifications notification.NotificationService
	redisClient   *redis.Client
	progressLimit time.Duration
}

func NewChallengeHandler(service challenge.ChallengeTracker, notifications notification.NotificationService, redisClient *redis.Client, progressLimit time.Duration) *ChallengeHandler {
	return &ChallengeHandler{
		service:       service,
		notifications: notifications,
		redisClient:   redisClient,
		progressLimit: progressLimit,
	}
}

func (h *ChallengeHandler) ListActive(c *gin.Context) {
	challenges, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": challenges})
}

func (h *ChallengeHandler) Join(c *gin.Context) {
	id, err := response.ParseUUID(c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req challengeDto.JoinChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	participant, err := h.service.Join(c.Request.Context(), id, req.UserID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, participant)
}

func (h *ChallengeHandler) UpdateProgress(c *gin.Context) {
	id, err := response.ParseUUID(c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req challengeDto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	allowed, err := service.CheckAndSetRateLimit(c.Request.Context(), h.redisClient, req.UserID, "challenge_progress", h.progressLimit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !allowed {
		if ttl, ttlErr := service.GetRateLimitTTL(c.Request.Context(), h.redisClient, req.UserID, "challenge_progress"); ttlErr == nil && ttl > 0 {
			c.Header("Retry-After", service.RetryAfterSeconds(ttl))
		}
		response.ResponseError(c, apperror.ErrRateLimitExceeded)
		return
	}

	result, err := h.service.UpdateProgress(c.Request.Context(), id, req.UserID, req.CurrentValue)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if result.RewardPaid && h.notifications != nil {
		notifErr := h.notifications.CreateNotification(c.Request.Context(), &model.Notification{
			UserID:     req.UserID,
			EntityID:   result.ChallengeID,
			EntityType: "challenge",
			Type:       notification.TypeChallengeCompleted,
			Message:    "Challenge completed: " + result.ChallengeName,
		})
		if notifErr != nil {
			log.Printf("Failed to create challenge notification: %v", notifErr)
		}
	}

	c.JSON(http.StatusOK, result)
}
