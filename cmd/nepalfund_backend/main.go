package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	portsrepo "github.com/nepalfund/nepalfund_backend/internal/core/ports/repositories"
	"github.com/nepalfund/nepalfund_backend/internal/core/services"
	"github.com/nepalfund/nepalfund_backend/internal/handlers"
	"github.com/nepalfund/nepalfund_backend/internal/middleware"
	"github.com/nepalfund/nepalfund_backend/internal/platform/config"
	"github.com/nepalfund/nepalfund_backend/internal/repositories/database/mongodb"
	"github.com/nepalfund/nepalfund_backend/internal/repositories/database/pgsql"
	"github.com/nepalfund/nepalfund_backend/internal/storage/photos"
	"github.com/nepalfund/nepalfund_backend/internal/utils"
	"github.com/nepalfund/nepalfund_backend/pkg/database"
	"github.com/shopspring/decimal"
)

const shutdownTimeout = 10 * time.Second

// @title NepalFund Backend API
// @version 1.0
// @description Onboarding, profile and campaign feed API for NepalFund.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Amounts are JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	verifier, err := services.NewGoogleCredentialVerifier(ctx, cfg.GoogleClientID, cfg.GoogleVerifyTimeout)
	if err != nil {
		logger.Error("Failed to initialize Google credential verifier", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.GoogleClientID == "" {
		logger.Warn("GOOGLE_CLIENT_ID not set, Google sign-in will reject every credential")
	}

	metrics := middleware.NewMetrics()
	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	container := services.NewServiceContainer(cfg, repos, verifier,
		services.WithAuthMetrics(metrics),
		services.WithEventTracker(posthogClient),
	)

	if err := handlers.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		metrics.Middleware(),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	photoStore := photos.NewLocalStore(cfg.UploadDir, cfg.UploadURLPrefix, cfg.MaxUploadBytes)
	handlers.RegisterRoutes(r, cfg, container, photoStore, metrics)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// openStore connects the configured identity and campaign store.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			pool.Close()
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil

	case config.StoreMongo:
		client, err := database.NewMongoClient(ctx, mongodb.ClientOptions(cfg.MongoURI), cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		store := mongodb.NewStore(client, cfg.MongoDatabase)
		if err := store.EnsureIndexes(ctx); err != nil {
			database.CloseMongoClient(context.Background(), client)
			return portsrepo.RepositoryProvider{}, nil, err
		}
		closeFn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			database.CloseMongoClient(closeCtx, client)
		}
		return mongodb.NewRepositoryProvider(store), closeFn, nil

	default:
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
