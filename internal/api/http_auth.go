package api

import (
	"context"
	"net/http"
	"time"

	"userhub/internal/entity"

	"github.com/gin-gonic/gin"
)

// authPayload is the body of the data field returned by registration
// and login: the public projection plus the issued token.
type authPayload struct {
	entity.UserSummary
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func makeAuthPayload(resp *entity.AuthResponse) authPayload {
	return authPayload{
		UserSummary: resp.User,
		Token:       resp.Token,
		ExpiresAt:   resp.ExpiresAt,
	}
}

// Login resolves the identifier as an email or user name and returns a
// bearer token. Bad identifier and bad password yield the same answer.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	if fieldErrs := entity.ValidateLogin(&req); len(fieldErrs) > 0 {
		ValidationFailed(c, fieldErrs)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.users.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    makeAuthPayload(resp),
	})
}
