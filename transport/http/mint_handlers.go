package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/zetafrog/service"
)

// MintHandlers exposes frog minting
type MintHandlers struct {
	mints *service.MintService
}

// NewMintHandlers creates new mint handlers
func NewMintHandlers(mints *service.MintService) *MintHandlers {
	return &MintHandlers{mints: mints}
}

// Start begins a mint and returns its job id
func (h *MintHandlers) Start(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	id, err := h.mints.Start(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"jobId": id})
}

// Status returns a mint job
func (h *MintHandlers) Status(c *gin.Context) {
	job, err := h.mints.Job(c.Param("jobId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}
