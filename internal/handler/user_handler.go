package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"attendance-service/internal/dto"
	"attendance-service/internal/response"
	"attendance-service/internal/service"
)

type UserHandler struct {
	userService service.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// CreateUser godoc
// @Summary      Provision a tracked user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateUserRequest true "User"
// @Success      201 {object} response.SuccessResponse{data=dto.UserResponse}
// @Failure      409 {object} response.ErrorResponse
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, user)
}

// ListUsers godoc
// @Summary      List tracked users
// @Tags         users
// @Produce      json
// @Param        search query string false "Matches username, name, department or email"
// @Param        status query string false "Status filter"
// @Success      200 {object} response.SuccessResponse{data=[]dto.UserResponse}
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context(), c.Query("search"), c.Query("status"))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// UpdateUser godoc
// @Summary      Update user fields
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id      path string                true "User ID (UUID)"
// @Param        request body dto.UpdateUserRequest true "Fields to change"
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Router       /users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, true)
}

// History godoc
// @Summary      Activity history, newest first
// @Tags         users
// @Produce      json
// @Param        id    path  string true  "User ID (UUID)"
// @Param        start query string false "YYYY-MM-DD"
// @Param        end   query string false "YYYY-MM-DD"
// @Param        limit query number false "At most 500"
// @Success      200 {object} response.SuccessResponse{data=[]dto.HistoryEventResponse}
// @Router       /users/{id}/history [get]
func (h *UserHandler) History(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	var limit float64
	if v := c.Query("limit"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "limit must be a number")
			return
		}
		limit = n
	}

	events, err := h.userService.History(c.Request.Context(), userID, c.Query("start"), c.Query("end"), limit)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, events)
}
