package handler

import (
	"alias-wallet-orchestrator/internal/adapter/http/middleware"
	redisStore "alias-wallet-orchestrator/internal/adapter/storage/redis"
	"alias-wallet-orchestrator/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	LifecycleSvc    ports.LifecycleService
	FundingSvc      ports.FundingService
	SyncSvc         ports.SyncService
	VerificationSvc ports.VerificationService
	TokenSvc        ports.TokenService
	RateLimitStore  *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers  []ports.HealthChecker
	Logger          zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes (all JWT-authenticated)
	jwtAuth := middleware.JWTAuth(deps.TokenSvc)
	v1 := r.Group("/api/v1", jwtAuth)

	walletHandler := NewWalletHandler(deps.LifecycleSvc)
	wallets := v1.Group("/wallets")
	{
		wallets.POST("", rl("wallets_create"), walletHandler.CreateWallet)
		wallets.GET("/:id/status", rl("wallets_read"), walletHandler.GetStatus)
		wallets.POST("/:id/funding", rl("funding"), walletHandler.FundWallet)
	}

	fundingHandler := NewFundingHandler(deps.FundingSvc)
	funding := v1.Group("/funding")
	{
		funding.GET("/quotes", rl("funding"), fundingHandler.QuoteAll)
		funding.GET("/:id", rl("funding"), fundingHandler.GetStatus)
	}

	syncHandler := NewSyncHandler(deps.SyncSvc, deps.VerificationSvc)
	v1.POST("/folders/:id/sync", rl("sync"), syncHandler.SyncFolder)
	v1.POST("/files/:id/sync", rl("sync"), syncHandler.SyncFile)

	sync := v1.Group("/sync")
	{
		sync.POST("/run", rl("sync"), syncHandler.SyncAllPending)
		sync.GET("/verification", rl("sync"), syncHandler.VerifyAll)
		sync.GET("/status", rl("sync"), syncHandler.GetBlockchainStatus)
	}

	return r
}
