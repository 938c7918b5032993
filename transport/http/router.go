package http

import (
	"github.com/gin-gonic/gin"
	"github.com/layer-3/zetafrog/service"
)

// Services are the dependencies of the control API. Mints may be nil.
type Services struct {
	Auth   *service.AuthService
	Wallet *service.WalletSession
	Pets   *service.PetService
	Mints  *service.MintService
}

// SetupRouter sets up the Gin router
func SetupRouter(s Services) *gin.Engine {
	router := gin.Default()

	authHandlers := NewAuthHandlers(s.Auth)
	walletHandlers := NewWalletHandlers(s.Wallet)
	petHandlers := NewPetHandlers(s.Pets)
	requireAuth := AuthMiddleware(s.Auth)
	requireSigner := RequireSigner(s.Wallet)

	// Session routes
	auth := router.Group("/auth")
	{
		auth.POST("/logout", authHandlers.Logout)
		auth.POST("/session", requireAuth, authHandlers.Rotate)
	}

	// Protected API routes
	api := router.Group("/api")
	api.Use(requireAuth)
	{
		api.GET("/me", authHandlers.Me)

		api.GET("/wallet", walletHandlers.Status)
		api.POST("/wallet/readonly", walletHandlers.ReadOnly)
		api.POST("/wallet/key", walletHandlers.Key)
		api.POST("/wallet/mnemonic", walletHandlers.Mnemonic)
		api.POST("/wallet/disconnect", walletHandlers.Disconnect)
		api.POST("/wallet/sign", requireSigner, walletHandlers.SignText)
		api.POST("/wallet/sign-tx", requireSigner, walletHandlers.SignTransaction)
		api.POST("/wallet/verify", walletHandlers.Verify)

		api.GET("/frogs", petHandlers.MyFrogs)
		api.GET("/frogs/:tokenId", petHandlers.Frog)
		api.GET("/frogs/:tokenId/snapshot", petHandlers.Snapshot)
		api.POST("/frogs/:tokenId/sync", petHandlers.Sync)
		api.GET("/frogs/:tokenId/travels", petHandlers.FrogTravels)
		api.GET("/frogs/:tokenId/friends", petHandlers.Friends)
		api.GET("/frogs/:tokenId/friend-requests", petHandlers.FriendRequests)
		api.GET("/frogs/:tokenId/world-online", petHandlers.WorldOnline)
		api.GET("/frogs/:tokenId/souvenirs", petHandlers.Souvenirs)
		api.GET("/frogs/:tokenId/badge-sets", petHandlers.BadgeSets)
		api.POST("/frogs/:tokenId/synthesis/preview", petHandlers.PreviewSynthesis)
		api.POST("/frogs/:tokenId/synthesis", petHandlers.Synthesize)

		api.POST("/travels", petHandlers.StartTravel)
		api.POST("/travels/team", petHandlers.StartTeamTravel)
		api.GET("/travels/history", petHandlers.TravelHistory)
		api.GET("/team/bonus", petHandlers.TeamBonus)

		api.POST("/friends", petHandlers.AddFriend)
		api.POST("/friends/requests/:friendshipId/accept", petHandlers.AcceptFriend)
		api.POST("/friends/interact", petHandlers.Interact)

		api.POST("/souvenirs/gift", petHandlers.GiftSouvenir)
	}

	if s.Mints != nil {
		mintHandlers := NewMintHandlers(s.Mints)
		api.POST("/mint", requireSigner, mintHandlers.Start)
		api.GET("/mint/:jobId", mintHandlers.Status)
	}

	return router
}
