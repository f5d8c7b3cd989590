// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/contacts-api/internal/auth"
	"github.com/carterperez-dev/templates/contacts-api/internal/avatar"
	"github.com/carterperez-dev/templates/contacts-api/internal/config"
	"github.com/carterperez-dev/templates/contacts-api/internal/contact"
	"github.com/carterperez-dev/templates/contacts-api/internal/core"
	"github.com/carterperez-dev/templates/contacts-api/internal/health"
	"github.com/carterperez-dev/templates/contacts-api/internal/mail"
	"github.com/carterperez-dev/templates/contacts-api/internal/middleware"
	"github.com/carterperez-dev/templates/contacts-api/internal/server"
	"github.com/carterperez-dev/templates/contacts-api/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	tokens, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("token manager initialized",
		"algorithm", "HS256",
		"access_token_expire", cfg.JWT.AccessTokenExpire,
	)

	store, localDir, err := newAvatarStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	uploader, err := avatar.NewUploader(store, cfg.Storage)
	if err != nil {
		return err
	}

	mailer := mail.New(cfg.Mail, logger)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, uploader, logger)
	userHandler := user.NewHandler(userSvc, cfg.Storage.MaxUploadBytes)

	authSvc := auth.NewService(tokens, userSvc, mailer, cfg.App, logger)
	authHandler := auth.NewHandler(authSvc)

	contactRepo := contact.NewRepository(db.DB)
	contactSvc := contact.NewService(contactRepo)
	contactHandler := contact.NewHandler(contactSvc)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
		health.Dependency{Name: "avatar_store", Checker: store},
	)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.Authenticator(authSvc)
	tiered := middleware.TieredRateLimiter(redis.Client, middleware.DefaultTiers)
	mailLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit:    middleware.PerHour(cfg.RateLimit.VerifyRequests, cfg.RateLimit.VerifyRequests),
		KeyFunc:  middleware.KeyByIPAndEndpoint,
		FailOpen: true,
	}).Handler
	uploadLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit:    middleware.PerHour(cfg.RateLimit.UploadRequests, cfg.RateLimit.UploadRequests),
		KeyFunc:  middleware.KeyByUserAndEndpoint,
		FailOpen: true,
	}).Handler

	router.Route("/users", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator, mailLimiter)
		userHandler.RegisterRoutes(r, authenticator, uploadLimiter)
	})

	router.Route("/api", func(r chi.Router) {
		contactHandler.RegisterRoutes(r, authenticator, tiered)
	})

	if localDir != "" {
		router.Handle("/avatars/*", http.StripPrefix(
			"/avatars/",
			http.FileServer(http.Dir(localDir)),
		))
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// newAvatarStore returns the configured store and, for the local driver,
// the directory to serve statically.
func newAvatarStore(
	ctx context.Context,
	cfg config.StorageConfig,
) (avatar.Store, string, error) {
	switch cfg.Driver {
	case config.StorageDriverS3:
		store, err := avatar.NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, "", err
		}
		slog.Info("avatar store ready", "driver", cfg.Driver, "bucket", cfg.S3.Bucket)
		return store, "", nil
	case config.StorageDriverLocal:
		store, err := avatar.NewLocalStore(cfg.PublicDir)
		if err != nil {
			return nil, "", err
		}
		slog.Info("avatar store ready", "driver", cfg.Driver, "dir", store.Dir())
		return store, store.Dir(), nil
	}
	return nil, "", fmt.Errorf("unsupported storage driver %q", cfg.Driver)
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
