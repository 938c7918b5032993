package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/zetafrog/core"
	"github.com/layer-3/zetafrog/service"
)

var badRequest = []error{
	core.ErrInvalidAddress,
	core.ErrInvalidPrivateKey,
	core.ErrMnemonicLength,
	core.ErrInvalidMnemonic,
	core.ErrInvalidSignature,
	core.ErrInvalidTravelType,
	core.ErrInvalidChain,
	core.ErrInvalidDuration,
	core.ErrInvalidAction,
	core.ErrInvalidName,
	core.ErrNotEvaluable,
	core.ErrUnknownSouvenir,
	core.ErrFriendBusy,
	core.ErrTeamFull,
	core.ErrAlreadyInvited,
}

// statusFor maps a domain error to an HTTP status code
func statusFor(err error) int {
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}

	switch {
	case service.IsSessionError(err):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrReadOnly), errors.Is(err, core.ErrSignerUnavailable):
		return http.StatusForbidden
	case errors.Is(err, core.ErrNotConnected):
		return http.StatusConflict
	case errors.Is(err, core.ErrSnapshotNotFound), errors.Is(err, core.ErrMintJobNotFound):
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// respondError writes err as a JSON error body
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func invalidRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
}
