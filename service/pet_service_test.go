package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/zetafrog/adapters/gameapi"
	"github.com/layer-3/zetafrog/adapters/store"
	"github.com/layer-3/zetafrog/core"
	"github.com/layer-3/zetafrog/ports"
	"github.com/layer-3/zetafrog/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRoller int

func (f fixedRoller) Intn(n int) int { return int(f) }

type travelLog struct {
	mu     sync.Mutex
	starts []map[string]any
}

func (l *travelLog) add(body map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.starts = append(l.starts, body)
}

func (l *travelLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.starts)
}

func (l *travelLog) last() map[string]any {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.starts[len(l.starts)-1]
}

func gameBackend(t *testing.T) (*httptest.Server, *travelLog) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	travels := &travelLog{}
	router := gin.New()
	api := router.Group("/api")
	api.GET("/frogs/owner/:address", func(c *gin.Context) {
		c.JSON(http.StatusOK, []gin.H{
			{"tokenId": 1, "name": "Ribbit", "status": "Idle", "ownerAddress": c.Param("address")},
			{"tokenId": 2, "name": "Croak", "status": "Traveling"},
		})
	})
	api.GET("/frogs/:id", func(c *gin.Context) {
		if c.Param("id") != "1" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Frog not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"tokenId": 1, "name": "Ribbit", "status": "Returning", "level": 3}})
	})
	api.POST("/travels/start", func(c *gin.Context) {
		var body map[string]any
		_ = c.ShouldBindJSON(&body)
		travels.add(body)
		if body["frogId"] == float64(99) {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "frog is busy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"travelId": 7}})
	})
	api.GET("/travels/lucky-address", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"address": "0x000000000000000000000000000000000000beef"}})
	})
	api.GET("/travels/history", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"total": 2, "address": c.Query("address")}})
	})
	api.GET("/friends/list/:frogId", func(c *gin.Context) {
		c.JSON(http.StatusOK, []gin.H{
			{"tokenId": 20, "status": "Idle", "friendshipId": 1},
			{"tokenId": 21, "status": "Traveling", "friendshipId": 2},
			{"tokenId": 22, "status": "Idle", "friendshipId": 3},
			{"tokenId": 23, "friendshipId": 4},
			{"tokenId": 24, "status": "Idle", "friendshipId": 5},
		})
	})
	api.GET("/badges/:frogId", func(c *gin.Context) {
		c.JSON(http.StatusOK, []gin.H{
			{"code": "FIRST_TRIP", "unlocked": true},
			{"code": "TRAVELER_5", "unlocked": true},
			{"code": "TRAVELER_15", "unlocked": true},
			{"code": "FIRST_FRIEND", "unlocked": true},
			{"code": "LUCKY_FIND", "unlocked": false},
		})
	})
	api.GET("/souvenirs/:frogId", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": []gin.H{
			{"id": 1, "rarity": "Common"},
			{"id": 2, "rarity": "Common"},
			{"id": 3, "rarity": "Common"},
			{"id": 4, "rarity": "Rare"},
			{"id": 5, "rarity": "Legendary"},
		}})
	})
	api.POST("/friends/interact", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	api.POST("/souvenirs/gift", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "not your souvenir"})
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, travels
}

type petFixture struct {
	pets      *PetService
	wallet    *WalletSession
	snapshots *store.MemoryStore
	events    *recordingPublisher
	travels   *travelLog
}

func newPetFixture(t *testing.T, roller rules.Roller) petFixture {
	t.Helper()
	server, travels := gameBackend(t)

	events := &recordingPublisher{}
	wallet := NewWalletSession(nil, events, nil)
	snapshots := store.NewMemoryStore()
	client := gameapi.NewClient(server.URL, server.Client(), nil)

	return petFixture{
		pets:      NewPetService(client, wallet, snapshots, events, roller, nil),
		wallet:    wallet,
		snapshots: snapshots,
		events:    events,
		travels:   travels,
	}
}

func TestMyFrogsRequiresWallet(t *testing.T) {
	f := newPetFixture(t, nil)

	_, err := f.pets.MyFrogs(context.Background())
	assert.ErrorIs(t, err, core.ErrNotConnected)
}

func TestMyFrogsStoresSnapshots(t *testing.T) {
	f := newPetFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.wallet.ConnectReadOnly(testAddress))

	frogs, err := f.pets.MyFrogs(ctx)
	require.NoError(t, err)
	require.Len(t, frogs, 2)
	assert.Equal(t, testAddress, frogs[0].OwnerAddress)

	snap, err := f.pets.Snapshot(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Croak", snap.Name)
}

func TestRefreshFrog(t *testing.T) {
	f := newPetFixture(t, nil)
	ctx := context.Background()

	frog, state, err := f.pets.RefreshFrog(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, frog.Level)
	assert.Equal(t, core.PetTraveling, state)

	_, _, err = f.pets.RefreshFrog(ctx, 404)
	assert.ErrorIs(t, err, core.ErrUpstream)

	_, err = f.pets.Snapshot(ctx, 404)
	assert.ErrorIs(t, err, core.ErrSnapshotNotFound)
}

func TestStartTravelValidation(t *testing.T) {
	f := newPetFixture(t, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		req  core.TravelRequest
		err  error
	}{
		{"team type", core.TravelRequest{FrogID: 1, TravelType: core.TravelTeam, TargetChain: "bsc", Duration: 60}, core.ErrInvalidTravelType},
		{"unknown chain", core.TravelRequest{FrogID: 1, TravelType: core.TravelRandom, TargetChain: "solana", Duration: 60}, core.ErrInvalidChain},
		{"too short", core.TravelRequest{FrogID: 1, TravelType: core.TravelRandom, TargetChain: "bsc", Duration: 59}, core.ErrInvalidDuration},
		{"too long", core.TravelRequest{FrogID: 1, TravelType: core.TravelRandom, TargetChain: "bsc", Duration: 3601}, core.ErrInvalidDuration},
		{"bad target", core.TravelRequest{FrogID: 1, TravelType: core.TravelVisit, TargetChain: "bsc", Duration: 60, TargetAddress: "0x12"}, core.ErrInvalidAddress},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.pets.StartTravel(ctx, tc.req)
			assert.ErrorIs(t, err, tc.err)
		})
	}
	assert.Zero(t, f.travels.count(), "invalid travels are never submitted")
}

func TestStartTravel(t *testing.T) {
	f := newPetFixture(t, nil)
	ctx := context.Background()

	env, err := f.pets.StartTravel(ctx, core.TravelRequest{FrogID: 1, TravelType: core.TravelRandom, TargetChain: "Ethereum", Duration: 3600})
	require.NoError(t, err)
	assert.True(t, env.Success)

	body := f.travels.last()
	assert.Equal(t, "ethereum", body["targetChain"])
	assert.Equal(t, "RANDOM", body["travelType"])
	assert.NotContains(t, body, "targetAddress")

	event, ok := f.events.last(ports.TopicTravelStarted)
	require.True(t, ok)
	assert.Equal(t, 1, event.(TravelEvent).TeamSize)
}

func TestStartVisitUsesLuckyAddress(t *testing.T) {
	f := newPetFixture(t, nil)

	_, err := f.pets.StartTravel(context.Background(), core.TravelRequest{FrogID: 1, TravelType: core.TravelVisit, TargetChain: "zetachain", Duration: 120})
	require.NoError(t, err)
	assert.Equal(t, "0x000000000000000000000000000000000000beef", f.travels.last()["targetAddress"])
}

func TestStartTravelRejected(t *testing.T) {
	f := newPetFixture(t, nil)

	env, err := f.pets.StartTravel(context.Background(), core.TravelRequest{FrogID: 99, TravelType: core.TravelRandom, TargetChain: "bsc", Duration: 60})
	assert.ErrorIs(t, err, core.ErrUpstream)
	assert.Equal(t, "frog is busy", env.Error)

	_, ok := f.events.last(ports.TopicTravelStarted)
	assert.False(t, ok)
}

func TestStartTeamTravel(t *testing.T) {
	f := newPetFixture(t, nil)
	leader := core.Frog{TokenID: 1, Name: "Ribbit"}

	// 21 is traveling, 99 is not a friend, 22 is listed twice
	result, err := f.pets.StartTeamTravel(context.Background(), leader, []int{20, 21, 22, 22, 99, 23, 24}, "bsc", 600)
	require.NoError(t, err)

	assert.Equal(t, rules.MaxTeamSize, result.Team.Size())
	assert.Equal(t, 50, result.Bonus.XPPercent)
	assert.ElementsMatch(t, []int{21, 99, 24}, result.Skipped)
	assert.Equal(t, "TEAM", f.travels.last()["travelType"])

	event, ok := f.events.last(ports.TopicTravelStarted)
	require.True(t, ok)
	assert.Equal(t, 4, event.(TravelEvent).TeamSize)
}

func TestStartTeamTravelSolo(t *testing.T) {
	f := newPetFixture(t, nil)

	result, err := f.pets.StartTeamTravel(context.Background(), core.Frog{TokenID: 1}, nil, "bsc", 60)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Team.Size())
	assert.Equal(t, 0, result.Bonus.XPPercent)
}

func TestTeamBonusPreview(t *testing.T) {
	f := newPetFixture(t, nil)

	preview, err := f.pets.TeamBonus(3, 100)
	require.NoError(t, err)
	assert.Equal(t, "135", preview.XP.String())

	_, err = f.pets.TeamBonus(5, 100)
	assert.ErrorIs(t, err, core.ErrTeamFull)
}

func TestTravelHistory(t *testing.T) {
	f := newPetFixture(t, nil)
	ctx := context.Background()

	_, err := f.pets.TravelHistory(ctx, 0)
	assert.ErrorIs(t, err, core.ErrNotConnected)

	require.NoError(t, f.wallet.ConnectReadOnly(testAddress))
	history, err := f.pets.TravelHistory(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, testAddress, history["address"])
}

func TestBadgeSets(t *testing.T) {
	f := newPetFixture(t, nil)

	summary := f.pets.BadgeSets(context.Background(), 1)
	require.Len(t, summary.Sets, len(rules.BadgeSets))
	assert.True(t, summary.Sets[0].Completed)
	assert.Equal(t, 1, summary.Completed)
}

func TestSynthesize(t *testing.T) {
	f := newPetFixture(t, fixedRoller(89))
	ctx := context.Background()

	preview, err := f.pets.PreviewSynthesis(ctx, 1, []int{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, preview.Evaluable)
	assert.Equal(t, 90, preview.Rule.SuccessRate)

	outcome, err := f.pets.Synthesize(ctx, 1, []int{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, 90, outcome.Roll)
	assert.Equal(t, core.RarityUncommon, outcome.Result)
	assert.Equal(t, []int{1, 2, 3}, outcome.Consumed)

	_, ok := f.events.last(ports.TopicSynthesisResolved)
	assert.True(t, ok)
}

func TestSynthesizeFailureConsumesInputs(t *testing.T) {
	f := newPetFixture(t, fixedRoller(90))

	outcome, err := f.pets.Synthesize(context.Background(), 1, []int{1, 2, 3})
	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Empty(t, outcome.Result)
	assert.Len(t, outcome.Consumed, 3)
}

func TestSynthesizeRejected(t *testing.T) {
	f := newPetFixture(t, fixedRoller(0))
	ctx := context.Background()

	_, err := f.pets.Synthesize(ctx, 1, []int{1, 2, 4})
	assert.ErrorIs(t, err, core.ErrNotEvaluable)

	_, err = f.pets.Synthesize(ctx, 1, []int{1, 2, 77})
	assert.ErrorIs(t, err, core.ErrUnknownSouvenir)

	preview, err := f.pets.PreviewSynthesis(ctx, 1, []int{5})
	require.NoError(t, err)
	assert.False(t, preview.Evaluable)
}

func TestSendInteraction(t *testing.T) {
	f := newPetFixture(t, nil)
	ctx := context.Background()

	_, err := f.pets.SendInteraction(ctx, 1, 20, core.ActionType("poke"))
	assert.ErrorIs(t, err, core.ErrInvalidAction)

	env, err := f.pets.SendInteraction(ctx, 1, 20, core.ActionWave)
	require.NoError(t, err)
	assert.True(t, env.Success)
}

func TestGiftSouvenirUpstreamFailure(t *testing.T) {
	f := newPetFixture(t, nil)

	env, err := f.pets.GiftSouvenir(context.Background(), 1, 20)
	assert.ErrorIs(t, err, core.ErrUpstream)
	assert.Contains(t, env.Error, "not your souvenir")
}
