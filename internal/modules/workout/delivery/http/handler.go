package handler

import (
	"net/http"

	workoutDto "github.com/forgelabs-dev/fitforge/internal/modules/workout/dto"
	workout "github.com/forgelabs-dev/fitforge/internal/modules/workout/service"
	"github.com/forgelabs-dev/fitforge/pkg/dto"
	"github.com/forgelabs-dev/fitforge/pkg/response"
	"github.com/forgelabs-dev/fitforge/pkg/validator"
	"github.com/gin-gonic/gin"
)

type WorkoutHandler struct {
	service workout.WorkoutService
}

func NewWorkoutHandler(service workout.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req workoutDto.CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	id, err := response.ParseUUID(c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, err := response.ParseUUID(c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	workouts, total, err := h.service.ListByUser(c.Request.Context(), userID, query.Limit, query.Offset())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": workouts,
		"meta": dto.NewPaginationMeta(query.Page, query.Limit, total),
	})
}

func (h *WorkoutHandler) ListRecords(c *gin.Context) {
	userID, err := response.ParseUUID(c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	records, err := h.service.ListRecords(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}

func (h *WorkoutHandler) GetProgressSummary(c *gin.Context) {
	userID, err := response.ParseUUID(c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	summary, err := h.service.GetProgressSummary(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *WorkoutHandler) CompleteWorkout(c *gin.Context) {
	id, err := response.ParseUUID(c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req workoutDto.CompleteWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.service.Complete(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
