package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/zetafrog/core"
	"github.com/layer-3/zetafrog/service"
)

// PetHandlers exposes the game features of the pet
type PetHandlers struct {
	pets *service.PetService
}

// NewPetHandlers creates new pet handlers
func NewPetHandlers(pets *service.PetService) *PetHandlers {
	return &PetHandlers{pets: pets}
}

func intParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n <= 0 {
		invalidRequest(c)
		return 0, false
	}
	return n, true
}

// MyFrogs lists the connected wallet's frogs
func (h *PetHandlers) MyFrogs(c *gin.Context) {
	frogs, err := h.pets.MyFrogs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, frogs)
}

// Frog fetches a frog and the sprite state it maps to
func (h *PetHandlers) Frog(c *gin.Context) {
	tokenID, ok := intParam(c, "tokenId")
	if !ok {
		return
	}

	frog, state, err := h.pets.RefreshFrog(c.Request.Context(), tokenID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"frog": frog, "state": state})
}

// Snapshot returns the last stored copy of a frog
func (h *PetHandlers) Snapshot(c *gin.Context) {
	tokenID, ok := intParam(c, "tokenId")
	if !ok {
		return
	}

	frog, err := h.pets.Snapshot(c.Request.Context(), tokenID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, frog)
}

// Sync asks the backend to refresh a frog from chain
func (h *PetHandlers) Sync(c *gin.Context) {
	tokenID, ok := intParam(c, "tokenId")
	if !ok {
		return
	}

	if err := h.pets.SyncFrog(c.Request.Context(), tokenID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// StartTravel starts a solo travel
func (h *PetHandlers) StartTravel(c *gin.Context) {
	var req core.TravelRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FrogID <= 0 {
		invalidRequest(c)
		return
	}

	env, err := h.pets.StartTravel(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, env)
}

// StartTeamTravel starts a travel with invited friends
func (h *PetHandlers) StartTeamTravel(c *gin.Context) {
	var req struct {
		FrogID      int    `json:"frogId" binding:"required"`
		FriendIDs   []int  `json:"friendIds"`
		TargetChain string `json:"targetChain" binding:"required"`
		Duration    int    `json:"duration" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	ctx := c.Request.Context()
	leader, err := h.pets.Snapshot(ctx, req.FrogID)
	if errors.Is(err, core.ErrSnapshotNotFound) {
		leader = core.Frog{TokenID: req.FrogID}
	} else if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.pets.StartTeamTravel(ctx, leader, req.FriendIDs, req.TargetChain, req.Duration)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// TravelHistory returns the wallet's travel history
func (h *PetHandlers) TravelHistory(c *gin.Context) {
	frogID, _ := strconv.Atoi(c.Query("frogId"))

	history, err := h.pets.TravelHistory(c.Request.Context(), frogID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// FrogTravels lists a frog's travels
func (h *PetHandlers) FrogTravels(c *gin.Context) {
	tokenID, ok := intParam(c, "tokenId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.pets.FrogTravels(c.Request.Context(), tokenID))
}

// TeamBonus previews the bonus of a team size
func (h *PetHandlers) TeamBonus(c *gin.Context) {
	size, err := strconv.Atoi(c.DefaultQuery("size", "1"))
	if err != nil {
		invalidRequest(c)
		return
	}
	baseXP, err := strconv.ParseInt(c.DefaultQuery("baseXp", "0"), 10, 64)
	if err != nil {
		invalidRequest(c)
		return
	}

	preview, err := h.pets.TeamBonus(size, baseXP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// Friends lists a frog's friends
func (h *PetHandlers) Friends(c *gin.Context) {
	tokenID, ok := intParam(c, "tokenId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.pets.Friends(c.Request.Context(), tokenID))
}

// FriendRequests lists a frog's pending friend requests
func (h *PetHandlers) FriendRequests(c *gin.Context) {
	tokenID, ok := intParam(c, "tokenId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.pets.FriendRequests(c.Request.Context(), tokenID))
}

// WorldOnline lists other frogs online
func (h *PetHandlers) WorldOnline(c *gin.Context) {
	tokenID, ok := intParam(c, "tokenId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.pets.WorldOnline(c.Request.Context(), tokenID))
}

// AddFriend sends a friend request
func (h *PetHandlers) AddFriend(c *gin.Context) {
	var req struct {
		FromFrogID int `json:"fromFrogId" binding:"required"`
		ToFrogID   int `json:"toFrogId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	env, err := h.pets.AddFriend(c.Request.Context(), req.FromFrogID, req.ToFrogID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, env)
}

// AcceptFriend accepts a friend request
func (h *PetHandlers) AcceptFriend(c *gin.Context) {
	friendshipID, ok := intParam(c, "friendshipId")
	if !ok {
		return
	}

	env, err := h.pets.AcceptFriend(c.Request.Context(), friendshipID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, env)
}

// Interact sends a friend interaction
func (h *PetHandlers) Interact(c *gin.Context) {
	var req struct {
		FromFrogID int             `json:"fromFrogId" binding:"required"`
		ToFrogID   int             `json:"toFrogId" binding:"required"`
		ActionType core.ActionType `json:"actionType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	env, err := h.pets.SendInteraction(c.Request.Context(), req.FromFrogID, req.ToFrogID, req.ActionType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, env)
}

// Souvenirs lists a frog's souvenirs
func (h *PetHandlers) Souvenirs(c *gin.Context) {
	tokenID, ok := intParam(c, "tokenId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.pets.Souvenirs(c.Request.Context(), tokenID))
}

// GiftSouvenir gives a souvenir to another frog
func (h *PetHandlers) GiftSouvenir(c *gin.Context) {
	var req struct {
		SouvenirID int `json:"souvenirId" binding:"required"`
		ToFrogID   int `json:"toFrogId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	env, err := h.pets.GiftSouvenir(c.Request.Context(), req.SouvenirID, req.ToFrogID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, env)
}

// BadgeSets evaluates a frog's badge set progress
func (h *PetHandlers) BadgeSets(c *gin.Context) {
	tokenID, ok := intParam(c, "tokenId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.pets.BadgeSets(c.Request.Context(), tokenID))
}

type synthesisRequest struct {
	SouvenirIDs []int `json:"souvenirIds" binding:"required"`
}

// PreviewSynthesis evaluates a souvenir selection
func (h *PetHandlers) PreviewSynthesis(c *gin.Context) {
	tokenID, ok := intParam(c, "tokenId")
	if !ok {
		return
	}
	var req synthesisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	preview, err := h.pets.PreviewSynthesis(c.Request.Context(), tokenID, req.SouvenirIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// Synthesize rolls a synthesis attempt
func (h *PetHandlers) Synthesize(c *gin.Context) {
	tokenID, ok := intParam(c, "tokenId")
	if !ok {
		return
	}
	var req synthesisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	outcome, err := h.pets.Synthesize(c.Request.Context(), tokenID, req.SouvenirIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}
