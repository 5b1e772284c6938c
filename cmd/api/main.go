package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alias-wallet-orchestrator/config"
	httpHandler "alias-wallet-orchestrator/internal/adapter/http/handler"
	"alias-wallet-orchestrator/internal/adapter/ledger"
	"alias-wallet-orchestrator/internal/adapter/payment"
	pgStorage "alias-wallet-orchestrator/internal/adapter/storage/postgres"
	redisStorage "alias-wallet-orchestrator/internal/adapter/storage/redis"
	"alias-wallet-orchestrator/internal/adapter/vault"
	"alias-wallet-orchestrator/internal/core/ports"
	"alias-wallet-orchestrator/internal/service"
	"alias-wallet-orchestrator/pkg/logger"

	"github.com/google/uuid"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("network", cfg.Ledger.Network).
		Msg("Starting Alias Wallet Orchestrator")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	walletRepo := pgStorage.NewWalletRepo(pool)
	folderRepo := pgStorage.NewFolderRepo(pool)
	fileRepo := pgStorage.NewFileRepo(pool)
	syncRepo := pgStorage.NewSyncStatusRepo(pool)
	ledgerTxRepo := pgStorage.NewLedgerTxRepo(pool)
	fundingRepo := pgStorage.NewFundingRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	priceCache := redisStorage.NewPriceCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize key custody
	credVault, err := vault.NewFileVault(cfg.Custody.VaultDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open credential vault")
	}
	custodian, err := service.NewKeyCustodian(cfg.Custody.MasterSecret, credVault, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize key custodian")
	}

	// Initialize outbound clients
	httpClient := &http.Client{Timeout: 30 * time.Second}
	ledgerClient := ledger.NewClient(cfg.Ledger.BaseURL, cfg.Ledger.Network, cfg.Ledger.OperatorID, cfg.Ledger.APIKey, httpClient, log)
	priceSource := ledger.NewPriceSource(cfg.Pricing.URL, httpClient, log)

	gateways := []ports.PaymentGateway{
		payment.NewAlchemyGateway(gatewayConfig(cfg.Providers.Alchemy), httpClient, log),
		payment.NewBanxaGateway(gatewayConfig(cfg.Providers.Banxa), httpClient, log),
	}

	treasuryUser, err := uuid.Parse(cfg.Sync.TreasuryUserID)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid treasury user id")
	}

	// Initialize core services
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	accountSvc := service.NewAccountService(ledgerClient, walletRepo, ledgerTxRepo, custodian, transactor, log)
	fundingSvc := service.NewFundingService(
		gateways,
		walletRepo,
		fundingRepo,
		ledgerTxRepo,
		ledgerClient,
		priceSource,
		priceCache,
		cfg.Providers.ReturnURL,
		cfg.Providers.CancelURL,
		log,
	)
	syncSvc := service.NewSyncService(ledgerClient, folderRepo, fileRepo, syncRepo, ledgerTxRepo, walletRepo, treasuryUser, log)
	verificationSvc := service.NewVerificationService(ledgerClient, folderRepo, fileRepo, syncRepo, log)
	lifecycleSvc := service.NewLifecycleService(accountSvc, fundingSvc, walletRepo, ledgerClient, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		LifecycleSvc:    lifecycleSvc,
		FundingSvc:      fundingSvc,
		SyncSvc:         syncSvc,
		VerificationSvc: verificationSvc,
		TokenSvc:        tokenSvc,
		RateLimitStore:  rateLimitStore,
		HealthCheckers:  []ports.HealthChecker{pgHealth, redisHealth},
		Logger:          log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func gatewayConfig(p config.ProviderConfig) payment.GatewayConfig {
	return payment.GatewayConfig{
		BaseURL:       p.BaseURL,
		APIKey:        p.APIKey,
		Secret:        p.Secret,
		FeePercentage: p.FeePercentage,
		FeeFixedCents: p.FeeFixedCents,
		MinCents:      p.MinCents,
		MaxCents:      p.MaxCents,
	}
}
