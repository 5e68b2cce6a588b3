// Package main is the entrypoint for the Full 9 site API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/kingpotter-hr/full9-website/internal/auth"
	"github.com/kingpotter-hr/full9-website/internal/cache"
	"github.com/kingpotter-hr/full9-website/internal/config"
	"github.com/kingpotter-hr/full9-website/internal/handler"
	"github.com/kingpotter-hr/full9-website/internal/metrics"
	"github.com/kingpotter-hr/full9-website/internal/middleware"
	"github.com/kingpotter-hr/full9-website/internal/repository"
	"github.com/kingpotter-hr/full9-website/internal/repository/sqlite"
	"github.com/kingpotter-hr/full9-website/internal/server"
	"github.com/kingpotter-hr/full9-website/internal/service"
	"github.com/kingpotter-hr/full9-website/internal/storage"
	"github.com/kingpotter-hr/full9-website/internal/webhook"
)

const startupTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	// Initialize datastore
	store, err := openStore(startCtx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.EnsureSchema(startCtx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	logger.Info("datastore ready", "driver", cfg.DatabaseDriver)

	recorder := metrics.NewPrometheus()
	checkers := map[string]handler.HealthChecker{"database": store, "redis": nil, "storage": nil}

	// Redis is optional: without it rate limits are kept per process.
	var (
		cacheClient *cache.Cache
		limiter     cache.Limiter = cache.NewMemoryLimiter()
		revoker     service.Revoker
		revocations middleware.RevocationChecker
	)
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(startCtx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			return fmt.Errorf("connect redis: %w", err)
		}
		defer cacheClient.Close()
		limiter = cacheClient
		checkers["redis"] = cacheClient
		if cfg.TokenRevocationEnabled {
			revoker = cacheClient
			revocations = cacheClient
		}
		logger.Info("connected to Redis", "revocation", cfg.TokenRevocationEnabled)
	} else {
		logger.Warn("REDIS_URL not set, using in-process rate limiter")
	}

	issuer, err := auth.NewIssuer(cfg.TokenSecret, auth.WithTTL(cfg.TokenTTL), auth.WithLeeway(cfg.TokenLeeway))
	if err != nil {
		return fmt.Errorf("token issuer: %w", err)
	}

	// Object storage for uploads
	var objects service.ObjectStore
	if cfg.StorageEnabled() {
		minioStore, err := storage.NewMinIO(storage.Config{
			Endpoint:  cfg.StorageEndpoint,
			AccessKey: cfg.StorageAccessKey,
			SecretKey: cfg.StorageSecretKey,
			Bucket:    cfg.StorageBucket,
			UseSSL:    cfg.StorageUseSSL,
			PublicURL: cfg.StoragePublicURL,
		})
		if err != nil {
			return fmt.Errorf("object storage: %w", err)
		}
		if err := minioStore.EnsureBucket(startCtx); err != nil {
			return fmt.Errorf("ensure bucket: %w", err)
		}
		objects = minioStore
		checkers["storage"] = minioStore
		logger.Info("object storage ready", "endpoint", cfg.StorageEndpoint, "bucket", cfg.StorageBucket)
	}

	// Inquiry notifications
	var (
		notifier    service.Notifier
		runNotifier func(context.Context)
	)
	if cfg.NotifyWebhookURL != "" {
		if err := webhook.ValidateTargetURL(startCtx, cfg.NotifyWebhookURL); err != nil {
			if !cfg.IsDevelopment() {
				return fmt.Errorf("NOTIFY_WEBHOOK_URL: %w", err)
			}
			logger.Warn("notification target failed validation, allowed in development", "error", err)
		}
		n := webhook.NewNotifier(cfg.NotifyWebhookURL, cfg.NotifyWebhookSecret, logger, webhook.WithMetrics(recorder))
		notifier = n
		runNotifier = n.Run
	}

	router := server.NewRouter(server.Deps{
		Logger:         logger,
		Metrics:        recorder,
		MetricsHandler: recorder.Handler(),
		Issuer:         issuer,
		Revocations:    revocations,
		Limiter:        limiter,
		LoginLimit:     server.RateLimit{PerMinute: cfg.LoginRatePerMinute, Burst: cfg.LoginBurst},
		InquiryLimit:   server.RateLimit{PerMinute: cfg.InquiryRatePerMinute, Burst: cfg.InquiryBurst},
		Auth:           service.NewAuthService(store, issuer, revoker, recorder, logger),
		Content:        service.NewContentService(store, recorder),
		Catalog:        service.NewCatalogService(store, recorder),
		Inquiry:        service.NewInquiryService(store, notifier, recorder),
		Settings:       service.NewSettingsService(store, recorder),
		Uploads:        service.NewUploadService(objects, cfg.UploadMaxBytes, recorder),
		HealthCheckers: checkers,
		IsDevelopment:  cfg.IsDevelopment(),
		CORSOrigins:    cfg.GetCORSAllowedOrigins(),
		MaxBodyBytes:   cfg.MaxRequestBodySize,
	})

	srv := server.New(router, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	if runNotifier != nil {
		notifyCtx, stopNotifier := context.WithCancel(context.WithoutCancel(ctx))
		done := make(chan struct{})
		go func() {
			defer close(done)
			runNotifier(notifyCtx)
		}()
		srv.OnShutdown("notifier", func(shutdownCtx context.Context) error {
			stopNotifier()
			select {
			case <-done:
				return nil
			case <-shutdownCtx.Done():
				return shutdownCtx.Err()
			}
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"uploads", objects != nil,
		"notifications", notifier != nil,
	)
	return srv.Run(ctx)
}

// openStore connects the configured datastore driver.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		return s, nil
	default:
		repo, err := repository.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect database %s: %s", redactURL(cfg.DatabaseURL), sanitizeError(err, cfg.DatabaseURL))
		}
		return repo, nil
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h).With("service", "full9-api")
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
