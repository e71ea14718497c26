package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"userhub/internal/entity"
	"userhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Register creates a new account and logs it in.
func (h *HTTPHandler) Register(c *gin.Context) {
	var req entity.UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	if fieldErrs := entity.ValidateRegister(&req); len(fieldErrs) > 0 {
		ValidationFailed(c, fieldErrs)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.users.Register(ctx, &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"data":    makeAuthPayload(resp),
	})
}

// ListUsers is the admin listing: non-deleted accounts other than the
// caller, optionally filtered by exact user_name/email.
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	caller := CurrentUser(c)

	var query entity.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.users.ListUsers(ctx, caller, &query)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetUser returns the caller's own account.
func (h *HTTPHandler) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.users.GetUser(ctx, CurrentUser(c), id)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.MakeUserSummary(user))
}

// UpdateUser applies a partial update to the caller's own account.
func (h *HTTPHandler) UpdateUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req entity.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	if fieldErrs := entity.ValidateUpdate(&req); len(fieldErrs) > 0 {
		ValidationFailed(c, fieldErrs)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.users.UpdateUser(ctx, CurrentUser(c), id, &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.MakeUserSummary(user))
}

// DeleteUser soft-deletes the caller's own account.
func (h *HTTPHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.users.DeleteUser(ctx, CurrentUser(c), id); err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
	})
}

func parseUserID(c *gin.Context) (uint, bool) {
	idValue := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(idValue, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid user id")
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps domain errors to HTTP responses. Unexpected
// errors are logged and hidden behind a generic 500.
func (h *HTTPHandler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		Conflict(c, ErrCodeEmailExists, "Email already exists")
	case errors.Is(err, service.ErrUsernameTaken):
		Conflict(c, ErrCodeUsernameExists, "Username already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, service.ErrNotSelf):
		Unauthorized(c, "Unauthorized")
	case errors.Is(err, service.ErrUserNotFound):
		NotFound(c, ErrCodeUserNotFound, "User not found")
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("unexpected service error")
		InternalError(c, "internal server error")
	}
}
