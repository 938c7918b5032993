package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/zetafrog/core"
	"github.com/layer-3/zetafrog/service"
)

const (
	ctxSessionID   = "sessionID"
	ctxAccessToken = "accessToken"
)

// bearerToken extracts the token from the Authorization header
func bearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if len(auth) < 8 || !strings.EqualFold(auth[:7], "Bearer ") {
		return "", false
	}
	return auth[7:], true
}

// AuthMiddleware creates middleware that validates access tokens
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			return
		}

		session, err := authService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, core.ErrTokenExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			case errors.Is(err, core.ErrTokenInvalidated):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been invalidated"})
			default:
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			return
		}

		c.Set(ctxSessionID, session.ID)
		c.Set(ctxAccessToken, token)
		c.Next()
	}
}

// RequireSigner rejects requests unless the wallet holds a signing credential
func RequireSigner(wallet *service.WalletSession) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !wallet.CanSign() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": core.ErrReadOnly.Error()})
			return
		}
		c.Next()
	}
}
