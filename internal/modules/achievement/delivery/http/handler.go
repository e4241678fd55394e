package handler

import (
	"net/http"

	achievement "github.com/forgelabs-dev/fitforge/internal/modules/achievement/service"
	"github.com/forgelabs-dev/fitforge/pkg/response"
	"github.com/gin-gonic/gin"
)

type AchievementHandler struct {
	service achievement.Evaluator
}

func NewAchievementHandler(service achievement.Evaluator) *AchievementHandler {
	return &AchievementHandler{service: service}
}

func (h *AchievementHandler) ListByUser(c *gin.Context) {
	userID, err := response.ParseUUID(c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	grants, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": grants})
}
