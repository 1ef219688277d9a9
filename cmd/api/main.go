package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pix-credit-service/config"
	"pix-credit-service/docs"
	httpHandler "pix-credit-service/internal/adapter/http/handler"
	"pix-credit-service/internal/adapter/http/middleware"
	pgStorage "pix-credit-service/internal/adapter/storage/postgres"
	redisStorage "pix-credit-service/internal/adapter/storage/redis"
	"pix-credit-service/internal/core/ports"
	"pix-credit-service/internal/service"
	"pix-credit-service/pkg/brcode"
	"pix-credit-service/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("PIXSVC_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config:\n%v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting PIX credit service")

	ctx := context.Background()

	builder, err := brcode.NewBuilder(cfg.Merchant.Profile())
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid merchant profile")
	}

	if cfg.Server.MigrateOnStart {
		migrator, err := pgStorage.NewMigrator(cfg.Database.MigrateURL(), log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open migrations")
		}
		if err := migrator.Up(); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
		if err := migrator.Close(); err != nil {
			log.Warn().Err(err).Msg("Closing migrator")
		}
	}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Repositories
	userRepo := pgStorage.NewUserRepo(pool)
	chargeRepo := pgStorage.NewChargeRepo(pool)
	idempotencyRepo := pgStorage.NewIdempotencyRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)

	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	pixSvc := service.NewPixService(builder, cfg.QRCode.BaseURL, log)
	authSvc := service.NewAuthService(userRepo, hashSvc, tokenSvc, log)
	chargeSvc := service.NewChargeService(chargeRepo, idempotencyRepo, idempotencyCache, encSvc, pixSvc, transactor, log)
	reportingSvc := service.NewReportingService(chargeRepo)
	auditSvc := service.NewAuditService(auditRepo, log)

	deps := httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		ChargeSvc:      chargeSvc,
		PixSvc:         pixSvc,
		ReportingSvc:   reportingSvc,
		TokenSvc:       tokenSvc,
		RateLimitRules: middleware.RateLimitRules(cfg.RateLimit.Requests, cfg.RateLimit.Window),
		AuditSvc:       auditSvc,
		HealthCheckers: []ports.HealthChecker{pgStorage.NewHealthCheck(pool), redisStorage.NewHealthCheck(rdb)},
		OpenAPISpec:    docs.OpenAPI,
		Mode:           cfg.Server.Mode,
		Logger:         log,
	}
	if cfg.RateLimit.Enabled {
		deps.RateLimiter = redisStorage.NewRateLimitStore(rdb)
	}
	router := httpHandler.SetupRouter(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           middleware.WrapHTTP(router, cfg.CORS.AllowedOrigins, cfg.Server.Mode != "release"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

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
