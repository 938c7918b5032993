package main

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/gin-gonic/gin"
	"github.com/layer-3/zetafrog/adapters/events"
	"github.com/layer-3/zetafrog/adapters/gameapi"
	"github.com/layer-3/zetafrog/adapters/keys"
	"github.com/layer-3/zetafrog/adapters/store"
	"github.com/layer-3/zetafrog/adapters/tokenizer"
	"github.com/layer-3/zetafrog/config"
	"github.com/layer-3/zetafrog/ports"
	"github.com/layer-3/zetafrog/service"
	httptransport "github.com/layer-3/zetafrog/transport/http"
	"github.com/redis/go-redis/v9"
)

type stores interface {
	ports.TokenStore
	ports.SnapshotStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := watermill.NewStdLogger(cfg.Debug, false)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// The API signing key lives for the lifetime of the process
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		log.Fatalf("Failed to generate signing key: %v", err)
	}

	var (
		st        stores
		publisher message.Publisher
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		defer redisClient.Close()

		publisher, err = redisstream.NewPublisher(
			redisstream.PublisherConfig{
				Client: redisClient,
			},
			logger,
		)
		if err != nil {
			log.Fatalf("Failed to create Redis publisher: %v", err)
		}
		st = store.NewRedisStore(redisClient, cfg.SnapshotTTL)
	} else {
		publisher = gochannel.NewGoChannel(gochannel.Config{}, logger)
		st = store.NewMemoryStore()
	}
	defer publisher.Close()

	eventPub := events.NewWatermillPublisher(publisher)

	client := gameapi.NewClient(cfg.APIURL, &http.Client{Timeout: cfg.HTTPTimeout}, logger)
	wallet := service.NewWalletSession(keys.NewEthBackend(), eventPub, logger)
	pets := service.NewPetService(client, wallet, st, eventPub, nil, logger)
	authService := service.NewAuthService(tokenizer.NewJWTTokenizer(privateKey), st, cfg.TokenTTL, logger)

	var mints *service.MintService
	chain, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		logger.Error("Minting disabled, RPC unavailable", err, watermill.LogFields{"rpc": cfg.RPCURL})
	} else {
		defer chain.Close()
		mints, err = service.NewMintService(chain, wallet, client, eventPub, service.MintConfig{
			ChainID:        cfg.ChainID,
			Contract:       common.HexToAddress(cfg.FrogContract),
			GasLimit:       cfg.MintGas,
			ReceiptTimeout: cfg.ReceiptTimeout,
			PollInterval:   2 * time.Second,
		}, logger)
		if err != nil {
			log.Fatalf("Failed to create mint service: %v", err)
		}
	}

	token, session, err := authService.IssueSession()
	if err != nil {
		log.Fatalf("Failed to issue access token: %v", err)
	}
	logger.Info("Control API token issued", watermill.LogFields{
		"session_id": session.ID,
		"expires_at": session.ExpiresAt.Format(time.RFC3339),
		"token":      token,
	})

	router := httptransport.SetupRouter(httptransport.Services{
		Auth:   authService,
		Wallet: wallet,
		Pets:   pets,
		Mints:  mints,
	})

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Control API listening", watermill.LogFields{"addr": cfg.ListenAddr, "backend": cfg.APIURL})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", err, nil)
	}
	wallet.Disconnect()
}
