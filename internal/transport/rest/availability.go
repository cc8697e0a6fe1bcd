package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"turnex/internal/availability"
)

// @Summary Free slots for a day
// @Description Returns the start times a booking of the given duration can take on a date
// @Tags Availability
// @Accept json
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param duration query int false "Duration in minutes, multiple of 30 (default 30)"
// @Success 200 {array} string "Free start times (HH:MM)"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Router /availability/day [get]
func (h *Handler) getDayAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		badRequestResponse(c, "date query parameter is required")
		return
	}

	duration, err := strconv.Atoi(c.DefaultQuery("duration", strconv.Itoa(availability.SlotMinutes)))
	if err != nil {
		badRequestResponse(c, "malformed duration")
		return
	}

	slots, err := h.services.Availability.DaySlots(c.Request.Context(), date, duration)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, map[string]interface{}{
		"date":  date,
		"slots": slots,
	})
}

// @Summary Month availability
// @Description Flags each date of a month as having at least one free slot or not
// @Tags Availability
// @Accept json
// @Produce json
// @Param year query int false "Year (default current)"
// @Param month query int false "Month 1-12 (default current)"
// @Param duration query int false "Duration in minutes, multiple of 30 (default 30)"
// @Success 200 {object} map[string]availability.DayAvailability "Per-date availability"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Router /availability/month [get]
func (h *Handler) getMonthAvailability(c *gin.Context) {
	now := time.Now()

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		badRequestResponse(c, "malformed year")
		return
	}

	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		badRequestResponse(c, "malformed month")
		return
	}

	duration, err := strconv.Atoi(c.DefaultQuery("duration", strconv.Itoa(availability.SlotMinutes)))
	if err != nil {
		badRequestResponse(c, "malformed duration")
		return
	}

	days, err := h.services.Availability.Month(c.Request.Context(), year, month, duration)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	h.logger.Debug("month availability computed",
		zap.Int("year", year), zap.Int("month", month), zap.Int("days", len(days)))

	successResponse(c, http.StatusOK, map[string]interface{}{
		"year":  year,
		"month": month,
		"days":  days,
	})
}
