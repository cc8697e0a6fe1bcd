package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"turnex/internal/domain"
)

// @Summary Get schedule configuration
// @Description Returns working hours and blocked dates/times
// @Tags Schedule
// @Accept json
// @Produce json
// @Success 200 {object} domain.ScheduleConfig "Schedule configuration"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Router /config [get]
func (h *Handler) getScheduleConfig(c *gin.Context) {
	cfg, err := h.services.Schedule.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("fetching schedule config failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, cfg)
}

// @Summary Update schedule configuration
// @Description Replaces the provided sections of the schedule configuration (admin only)
// @Tags Schedule
// @Accept json
// @Produce json
// @Param input body domain.UpdateScheduleConfigDTO true "Sections to replace"
// @Success 200 {object} domain.ScheduleConfig "Updated configuration"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Security ApiKeyAuth
// @Router /config [put]
func (h *Handler) updateScheduleConfig(c *gin.Context) {
	var req domain.UpdateScheduleConfigDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("malformed request body", zap.Error(err))
		badRequestResponse(c, "malformed request body")
		return
	}

	cfg, err := h.services.Schedule.Update(c.Request.Context(), req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, cfg)
}
