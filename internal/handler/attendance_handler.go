package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"attendance-service/internal/dto"
	"attendance-service/internal/response"
	"attendance-service/internal/service"
	"attendance-service/internal/timeutil"
)

type AttendanceHandler struct {
	ledgerService  service.LedgerService
	metricsService service.MetricsService
	logger         *zap.Logger
}

func NewAttendanceHandler(ledgerService service.LedgerService, metricsService service.MetricsService, logger *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		ledgerService:  ledgerService,
		metricsService: metricsService,
		logger:         logger,
	}
}

// RecordStatus godoc
// @Summary      Record a status transition
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "User ID (UUID)"
// @Param        request body dto.RecordStatusRequest  true "Status"
// @Success      201 {object} response.SuccessResponse{data=dto.RecordStatusResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /users/{id}/status [post]
func (h *AttendanceHandler) RecordStatus(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	var req dto.RecordStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	eventID, err := h.ledgerService.RecordStatus(c.Request.Context(), userID, req.Status, req.ActiveDurationSeconds)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, dto.RecordStatusResponse{EventID: eventID})
}

// GetMetrics godoc
// @Summary      Time attribution for a user over a date range
// @Tags         attendance
// @Produce      json
// @Param        id             path  string true  "User ID (UUID)"
// @Param        start          query string true  "YYYY-MM-DD"
// @Param        end            query string true  "YYYY-MM-DD"
// @Param        includeRunning query bool   false "Credit the open segment"
// @Success      200 {object} response.SuccessResponse{data=domain.MetricsResult}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /users/{id}/metrics [get]
func (h *AttendanceHandler) GetMetrics(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	includeRunning := false
	if v := c.Query("includeRunning"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "includeRunning must be a boolean")
			return
		}
		includeRunning = b
	}

	result, err := h.metricsService.GetMetrics(c.Request.Context(), userID, c.Query("start"), c.Query("end"), includeRunning)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetOvertime godoc
// @Summary      Overtime total for a user
// @Tags         attendance
// @Produce      json
// @Param        id    path  string true  "User ID (UUID)"
// @Param        start query string false "YYYY-MM-DD"
// @Param        end   query string false "YYYY-MM-DD"
// @Success      200 {object} response.SuccessResponse{data=dto.OvertimeResponse}
// @Router       /users/{id}/overtime [get]
func (h *AttendanceHandler) GetOvertime(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	seconds, err := h.metricsService.SumOvertime(c.Request.Context(), userID, c.Query("start"), c.Query("end"))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.OvertimeResponse{
		UserID:          userID,
		OvertimeSeconds: seconds,
		Readable:        timeutil.SecondsToHMS(seconds),
	})
}

// ListUnnotified godoc
// @Summary      Inactive and absent events not yet delivered
// @Tags         events
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]domain.UnnotifiedEvent}
// @Router       /events/unnotified/inactive [get]
func (h *AttendanceHandler) ListUnnotified(c *gin.Context) {
	events, err := h.ledgerService.ListUnnotified(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, events)
}

// MarkNotified godoc
// @Summary      Acknowledge delivery of an event
// @Tags         events
// @Produce      json
// @Param        id path string true "Event ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /events/{id}/mark-notified [post]
func (h *AttendanceHandler) MarkNotified(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id", "event")
	if !ok {
		return
	}

	if err := h.ledgerService.MarkNotified(c.Request.Context(), eventID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, true)
}

// DashboardStats godoc
// @Summary      Workforce summary
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=domain.DashboardStats}
// @Router       /dashboard/stats [get]
func (h *AttendanceHandler) DashboardStats(c *gin.Context) {
	stats, err := h.metricsService.DashboardStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, stats)
}
