package handler

import (
	"net/http"

	userDto "github.com/forgelabs-dev/fitforge/internal/modules/user/dto"
	user "github.com/forgelabs-dev/fitforge/internal/modules/user/service"
	"github.com/forgelabs-dev/fitforge/pkg/dto"
	"github.com/forgelabs-dev/fitforge/pkg/response"
	"github.com/forgelabs-dev/fitforge/pkg/validator"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service user.UserService
}

func NewUserHandler(service user.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req userDto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userDto.ToUserResponse(created))
}

func (h *UserHandler) GetUser(c *gin.Context) {
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

	c.JSON(http.StatusOK, userDto.ToUserResponse(found))
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	users, total, err := h.service.List(c.Request.Context(), query.Limit, query.Offset())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	items := make([]userDto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userDto.ToUserResponse(&users[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"data": items,
		"meta": dto.NewPaginationMeta(query.Page, query.Limit, total),
	})
}

func (h *UserHandler) GetGamificationStatus(c *gin.Context) {
	id, err := response.ParseUUID(c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	status, err := h.service.GetGamificationStatus(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
