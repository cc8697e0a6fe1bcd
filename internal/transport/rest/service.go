package rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"turnex/internal/domain"
)

const maxImageSize = 5 << 20

// @Summary List services
// @Description Returns the bookable service catalog
// @Tags Services
// @Accept json
// @Produce json
// @Success 200 {array} domain.Service "Services"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Router /services [get]
func (h *Handler) getServices(c *gin.Context) {
	services, err := h.services.Catalog.List(c.Request.Context())
	if err != nil {
		h.logger.Error("listing services failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, services)
}

// @Summary Get service by id
// @Description Returns one catalog entry
// @Tags Services
// @Accept json
// @Produce json
// @Param id path int true "Service id"
// @Success 200 {object} domain.Service "Service"
// @Failure 400 {object} errorResponseBody "Malformed id"
// @Failure 404 {object} errorResponseBody "Service not found"
// @Router /services/{id} [get]
func (h *Handler) getServiceByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed id")
		return
	}

	svc, err := h.services.Catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, svc)
}

// @Summary Create a service
// @Description Adds a catalog entry (admin only)
// @Tags Services
// @Accept json
// @Produce json
// @Param input body domain.CreateServiceDTO true "Service data"
// @Success 201 {object} map[string]interface{} "Created service id"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Security ApiKeyAuth
// @Router /services [post]
func (h *Handler) createService(c *gin.Context) {
	var req domain.CreateServiceDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("malformed request body", zap.Error(err))
		badRequestResponse(c, "malformed request body")
		return
	}

	id, err := h.services.Catalog.Create(c.Request.Context(), req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Update a service
// @Description Edits catalog fields; duration changes affect future bookings only (admin only)
// @Tags Services
// @Accept json
// @Produce json
// @Param id path int true "Service id"
// @Param input body domain.UpdateServiceDTO true "New service data"
// @Success 204 {object} nil "Service updated"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Failure 404 {object} errorResponseBody "Service not found"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Security ApiKeyAuth
// @Router /services/{id} [put]
func (h *Handler) updateService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed id")
		return
	}

	var req domain.UpdateServiceDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("malformed request body", zap.Error(err))
		badRequestResponse(c, "malformed request body")
		return
	}

	if err := h.services.Catalog.Update(c.Request.Context(), id, req); err != nil {
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Delete a service
// @Description Removes a catalog entry unless upcoming bookings still reference it (admin only)
// @Tags Services
// @Accept json
// @Produce json
// @Param id path int true "Service id"
// @Success 204 {object} nil "Service deleted"
// @Failure 400 {object} errorResponseBody "Malformed id"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Failure 404 {object} errorResponseBody "Service not found"
// @Failure 409 {object} errorResponseBody "Upcoming bookings reference the service"
// @Security ApiKeyAuth
// @Router /services/{id} [delete]
func (h *Handler) deleteService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed id")
		return
	}

	if err := h.services.Catalog.Delete(c.Request.Context(), id); err != nil {
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Upload service image
// @Description Attaches an image to a service (admin only)
// @Tags Services
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Service id"
// @Param image formData file true "Image file"
// @Success 200 {object} map[string]interface{} "Image URL"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Failure 404 {object} errorResponseBody "Service not found"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Security ApiKeyAuth
// @Router /services/{id}/image [post]
func (h *Handler) uploadServiceImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed id")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		badRequestResponse(c, "image file is required")
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		badRequestResponse(c, "image exceeds the 5 MB limit")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("reading uploaded image failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	url, err := h.services.Catalog.UploadImage(c.Request.Context(), id, data, header.Filename)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, map[string]interface{}{
		"image_url": url,
	})
}

// @Summary Delete service image
// @Description Removes the image attached to a service (admin only)
// @Tags Services
// @Accept json
// @Produce json
// @Param id path int true "Service id"
// @Success 204 {object} nil "Image deleted"
// @Failure 400 {object} errorResponseBody "Malformed id"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Failure 404 {object} errorResponseBody "Service not found"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Security ApiKeyAuth
// @Router /services/{id}/image [delete]
func (h *Handler) deleteServiceImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed id")
		return
	}

	if err := h.services.Catalog.DeleteImage(c.Request.Context(), id); err != nil {
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}
