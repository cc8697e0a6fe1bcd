package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"turnex/internal/domain"
)

// @Summary Create a booking
// @Description Books a slot; the requested start must pass the availability check
// @Tags Bookings
// @Accept json
// @Produce json
// @Param input body domain.CreateBookingDTO true "Booking data"
// @Success 201 {object} domain.Booking "Created booking"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 404 {object} errorResponseBody "Service not found"
// @Failure 409 {object} errorResponseBody "Time not available"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Router /bookings [post]
func (h *Handler) createBooking(c *gin.Context) {
	var req domain.CreateBookingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("malformed request body", zap.Error(err))
		badRequestResponse(c, "malformed request body")
		return
	}

	booking, err := h.services.Booking.Create(c.Request.Context(), req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, booking)
}

// @Summary Get booking by id
// @Description Returns one booking (admin only)
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking id"
// @Success 200 {object} domain.Booking "Booking"
// @Failure 400 {object} errorResponseBody "Malformed id"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Failure 404 {object} errorResponseBody "Booking not found"
// @Security ApiKeyAuth
// @Router /bookings/{id} [get]
func (h *Handler) getBookingByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "malformed id")
		return
	}

	booking, err := h.services.Booking.GetByID(c.Request.Context(), id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, booking)
}

// @Summary Update a booking
// @Description Reschedules a booking or moves it through the status machine (admin only)
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking id"
// @Param input body domain.UpdateBookingDTO true "Fields to change"
// @Success 200 {object} domain.Booking "Updated booking"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Failure 404 {object} errorResponseBody "Booking not found"
// @Failure 409 {object} errorResponseBody "Time not available"
// @Failure 422 {object} errorResponseBody "Invalid status transition"
// @Security ApiKeyAuth
// @Router /bookings/{id} [put]
func (h *Handler) updateBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "malformed id")
		return
	}

	var req domain.UpdateBookingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("malformed request body", zap.Error(err))
		badRequestResponse(c, "malformed request body")
		return
	}

	booking, err := h.services.Booking.Update(c.Request.Context(), id, req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, booking)
}

// @Summary Cancel a booking
// @Description Cancels a booking and frees its slots (admin only)
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking id"
// @Success 204 {object} nil "Booking cancelled"
// @Failure 400 {object} errorResponseBody "Malformed id"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Failure 404 {object} errorResponseBody "Booking not found"
// @Failure 422 {object} errorResponseBody "Booking is in a terminal state"
// @Security ApiKeyAuth
// @Router /bookings/{id} [delete]
func (h *Handler) cancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "malformed id")
		return
	}

	if err := h.services.Booking.Cancel(c.Request.Context(), id); err != nil {
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary List bookings
// @Description Returns bookings filtered by date range, status or customer email, paginated (admin only)
// @Tags Bookings
// @Accept json
// @Produce json
// @Param date query string false "Exact date (YYYY-MM-DD)"
// @Param date_from query string false "Range start (YYYY-MM-DD)"
// @Param date_to query string false "Range end (YYYY-MM-DD)"
// @Param status query string false "Status filter"
// @Param email query string false "Customer email filter"
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Offset (default 0)"
// @Success 200 {object} paginatedResponse "Bookings"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Security ApiKeyAuth
// @Router /bookings [get]
func (h *Handler) getBookings(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := domain.BookingFilter{
		Limit:  limit,
		Offset: offset,
	}

	if date := c.Query("date"); date != "" {
		filter.Date = &date
	}
	if from := c.Query("date_from"); from != "" {
		filter.StartDate = &from
	}
	if to := c.Query("date_to"); to != "" {
		filter.EndDate = &to
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.BookingStatus(statusStr)
		filter.Status = &status
	}
	if email := c.Query("email"); email != "" {
		filter.CustomerEmail = &email
	}

	bookings, total, err := h.services.Booking.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("listing bookings failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "listing bookings failed")
		return
	}

	page := offset/limit + 1

	paginatedSuccessResponse(c, bookings, total, page, limit)
}

// @Summary Bookings for a day
// @Description Returns the active bookings occupying slots on one date, in start order (admin only)
// @Tags Bookings
// @Accept json
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} domain.Booking "Bookings"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Security ApiKeyAuth
// @Router /bookings/day [get]
func (h *Handler) getBookingsByDay(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		badRequestResponse(c, "date query parameter is required")
		return
	}

	bookings, err := h.services.Booking.ListByDay(c.Request.Context(), date)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, bookings)
}
