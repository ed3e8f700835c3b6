package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/soklet/toystore-app-sub001/internal/api/http"
	"github.com/soklet/toystore-app-sub001/internal/api/http/handlers"
	"github.com/soklet/toystore-app-sub001/internal/auth"
	"github.com/soklet/toystore-app-sub001/internal/config"
	"github.com/soklet/toystore-app-sub001/internal/events"
	"github.com/soklet/toystore-app-sub001/internal/observability"
	"github.com/soklet/toystore-app-sub001/internal/payment"
	"github.com/soklet/toystore-app-sub001/internal/persistence"
	"github.com/soklet/toystore-app-sub001/internal/repository"
	"github.com/soklet/toystore-app-sub001/internal/secrets"
	"github.com/soklet/toystore-app-sub001/internal/service"
	"github.com/soklet/toystore-app-sub001/internal/stream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signing key material is loaded exactly once; a missing or malformed
	// key aborts startup rather than surfacing per-request errors later.
	secretStore, err := secrets.NewStore(cfg.Auth)
	if err != nil {
		logger.Fatal("failed to configure secrets store", zap.Error(err))
	}
	signingKeys, err := auth.NewSigningKeys(secretStore)
	if err != nil {
		logger.Fatal("failed to load signing keys", zap.Error(err))
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	toyRepo := repository.NewToyRepository(pool)
	purchaseRepo := repository.NewPurchaseRepository(pool)

	hasher := auth.NewPasswordHasher(cfg.Auth.PBKDF2Iterations)
	tokenManager := auth.NewTokenManager(signingKeys)
	limiter := auth.NewLoginLimiter(redis.Client, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow(), logger)
	enforcer := auth.NewEnforcer(tokenManager, accountRepo)
	authMiddleware := auth.NewMiddleware(enforcer)

	dispatcher := events.NewInMemoryDispatcher(logger)
	hub := stream.NewHub(dispatcher, cfg.Stream.BufferSize, logger)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		AccountRepo:  accountRepo,
		Hasher:       hasher,
		TokenManager: tokenManager,
		LoginLimiter: limiter,
	})
	toyService := service.NewToyService(toyRepo, dispatcher)
	purchaseService := service.NewPurchaseService(purchaseRepo, toyRepo, payment.NewStubGateway(), dispatcher)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Accounts:       handlers.NewAccountsHandler(authService),
		Toys:           handlers.NewToysHandler(toyService),
		Purchases:      handlers.NewPurchasesHandler(purchaseService),
		Events:         handlers.NewEventsHandler(authService, hub, cfg.Stream.Heartbeat(), logger),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
