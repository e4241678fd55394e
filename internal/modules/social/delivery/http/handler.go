package handler

import (
	"net/http"
	"time"

	socialDto "github.com/forgelabs-dev/fitforge/internal/modules/social/dto"
	social "github.com/forgelabs-dev/fitforge/internal/modules/social/service"
	"github.com/forgelabs-dev/fitforge/internal/service"
	"github.com/forgelabs-dev/fitforge/pkg/apperror"
	"github.com/forgelabs-dev/fitforge/pkg/dto"
	"github.com/forgelabs-dev/fitforge/pkg/response"
	"github.com/forgelabs-dev/fitforge/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type SocialHandler struct {
	service        social.SocialService
	redisClient    *redis.Client
	highlightLimit time.Duration
}

func NewSocialHandler(service social.SocialService, redisClient *redis.Client, highlightLimit time.Duration) *SocialHandler {
	return &SocialHandler{
		service:        service,
		redisClient:    redisClient,
		highlightLimit: highlightLimit,
	}
}

func (h *SocialHandler) CreateHighlight(c *gin.Context) {
	var req socialDto.CreateHighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	allowed, err := service.CheckAndSetRateLimit(c.Request.Context(), h.redisClient, req.UserID, "create_highlight", h.highlightLimit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !allowed {
		if ttl, ttlErr := service.GetRateLimitTTL(c.Request.Context(), h.redisClient, req.UserID, "create_highlight"); ttlErr == nil && ttl > 0 {
			c.Header("Retry-After", service.RetryAfterSeconds(ttl))
		}
		response.ResponseError(c, apperror.ErrRateLimitExceeded)
		return
	}

	created, err := h.service.CreateHighlight(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *SocialHandler) LikeHighlight(c *gin.Context) {
	id, err := response.ParseUUID(c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req socialDto.LikeHighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	highlight, err := h.service.LikeHighlight(c.Request.Context(), id, req.UserID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, highlight)
}

func (h *SocialHandler) DeleteHighlight(c *gin.Context) {
	id, err := response.ParseUUID(c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req socialDto.DeleteHighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.DeleteHighlight(c.Request.Context(), id, req.UserID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "highlight deleted"})
}

func (h *SocialHandler) ListHighlights(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	highlights, err := h.service.ListHighlights(c.Request.Context(), query.Limit, query.Offset())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": highlights})
}

func (h *SocialHandler) FriendFeed(c *gin.Context) {
	userID, err := response.ParseUUID(c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	feed, err := h.service.FriendFeed(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": feed})
}

func (h *SocialHandler) RequestFriendship(c *gin.Context) {
	var req socialDto.FriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	friendship, err := h.service.RequestFriendship(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, friendship)
}

func (h *SocialHandler) AcceptFriendship(c *gin.Context) {
	id, err := response.ParseUUID(c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	friendship, err := h.service.AcceptFriendship(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, friendship)
}

func (h *SocialHandler) SpotAtGym(c *gin.Context) {
	var req socialDto.GymSpottedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	spotted, err := h.service.SpotAtGym(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, spotted)
}

func (h *SocialHandler) GymFeed(c *gin.Context) {
	feed, err := h.service.GymFeed(c.Request.Context(), c.Query("gym_location"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": feed})
}

func (h *SocialHandler) AddTransformation(c *gin.Context) {
	var req socialDto.TransformationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	progress, err := h.service.AddTransformation(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, progress)
}

func (h *SocialHandler) ListTransformations(c *gin.Context) {
	userID, err := response.ParseUUID(c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	progress, err := h.service.ListTransformations(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": progress})
}
