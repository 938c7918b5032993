package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/zetafrog/core"
	"github.com/layer-3/zetafrog/service"
)

// AuthHandlers contains HTTP handlers for session endpoints
type AuthHandlers struct {
	authService *service.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
	}
}

// Rotate replaces the caller's token with a new one
func (h *AuthHandlers) Rotate(c *gin.Context) {
	token := c.GetString(ctxAccessToken)

	next, err := h.authService.Rotate(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": next,
		"token_type":   "Bearer",
	})
}

// Logout invalidates the caller's token
func (h *AuthHandlers) Logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		statusCode := http.StatusInternalServerError
		errorMsg := "Failed to logout"
		if errors.Is(err, core.ErrInvalidToken) {
			statusCode = http.StatusBadRequest
			errorMsg = "Invalid access token"
		}
		c.JSON(statusCode, gin.H{"error": errorMsg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the caller's session id
func (h *AuthHandlers) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"session_id": c.GetString(ctxSessionID)})
}
