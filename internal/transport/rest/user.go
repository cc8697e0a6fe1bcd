package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"turnex/internal/domain"
)

// @Summary Create a user
// @Description Creates a user (admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Param input body domain.CreateUserDTO true "User data"
// @Success 201 {object} map[string]interface{} "Created user id"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Security ApiKeyAuth
// @Router /users [post]
func (h *Handler) createUser(c *gin.Context) {
	var req domain.CreateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("malformed request body", zap.Error(err))
		badRequestResponse(c, "malformed request body")
		return
	}

	id, err := h.services.User.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("creating user failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Get user by id
// @Description Returns a user; regular users may only fetch themselves
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} domain.User "User data"
// @Failure 400 {object} errorResponseBody "Malformed id"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Failure 404 {object} errorResponseBody "User not found"
// @Security ApiKeyAuth
// @Router /users/{id} [get]
func (h *Handler) getUserByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed id")
		return
	}

	currentUserID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	userRole, err := getUserRole(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	if currentUserID != id && userRole != domain.UserRoleAdmin {
		forbiddenResponse(c)
		return
	}

	user, err := h.services.User.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "user not found")
			return
		}
		h.logger.Error("fetching user failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, user)
}

// @Summary Update a user
// @Description Updates user profile fields
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param input body domain.UpdateUserDTO true "New user data"
// @Success 204 {object} nil "User updated"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Security ApiKeyAuth
// @Router /users/{id} [put]
func (h *Handler) updateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed id")
		return
	}

	currentUserID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	userRole, err := getUserRole(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	if currentUserID != id && userRole != domain.UserRoleAdmin {
		forbiddenResponse(c)
		return
	}

	var req domain.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("malformed request body", zap.Error(err))
		badRequestResponse(c, "malformed request body")
		return
	}

	err = h.services.User.Update(c.Request.Context(), id, req)
	if err != nil {
		h.logger.Error("updating user failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}

// @Summary Update password
// @Description Updates a user's password; only the user themselves may do it
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param input body domain.PasswordUpdateDTO true "Current and new password"
// @Success 204 {object} nil "Password updated"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Security ApiKeyAuth
// @Router /users/{id}/password [put]
func (h *Handler) updatePassword(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed id")
		return
	}

	currentUserID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	if currentUserID != id {
		forbiddenResponse(c)
		return
	}

	var req domain.PasswordUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("malformed request body", zap.Error(err))
		badRequestResponse(c, "malformed request body")
		return
	}

	err = h.services.User.UpdatePassword(c.Request.Context(), id, req)
	if err != nil {
		h.logger.Error("updating password failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}

// @Summary Delete a user
// @Description Deletes a user by id (admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Success 204 {object} nil "User deleted"
// @Failure 400 {object} errorResponseBody "Malformed id"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Security ApiKeyAuth
// @Router /users/{id} [delete]
func (h *Handler) deleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed id")
		return
	}

	err = h.services.User.Delete(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("deleting user failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}

// @Summary List users
// @Description Returns a paginated user list (admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Offset (default 0)"
// @Success 200 {array} domain.User "Users"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Security ApiKeyAuth
// @Router /users [get]
func (h *Handler) getUsers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		limit = 20
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	users, err := h.services.User.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("listing users failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "listing users failed")
		return
	}

	successResponse(c, http.StatusOK, users)
}

// @Summary Get current user
// @Description Returns the authenticated user's profile
// @Tags Users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} domain.User "User data"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Router /users/me [get]
func (h *Handler) getCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	user, err := h.services.User.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("fetching current user failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, user)
}
