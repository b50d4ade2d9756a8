package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/storefront-api/internal/audit"
	"github.com/iliyamo/storefront-api/internal/auth"
	"github.com/iliyamo/storefront-api/internal/config"
	"github.com/iliyamo/storefront-api/internal/database"
	"github.com/iliyamo/storefront-api/internal/handler"
	"github.com/iliyamo/storefront-api/internal/imagehost"
	"github.com/iliyamo/storefront-api/internal/leaderboard"
	"github.com/iliyamo/storefront-api/internal/logging"
	"github.com/iliyamo/storefront-api/internal/queue"
	"github.com/iliyamo/storefront-api/internal/router"
	"github.com/iliyamo/storefront-api/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logFile, logger, err := logging.Setup(cfg.Logging.Directory, logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	store, closeStore, err := database.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := closeStore(closeCtx); err != nil {
			logger.Warn("store close failed", "error", err)
		}
	}()

	rdb := config.NewRedisClient(ctx)
	if rdb == nil {
		logger.Warn("redis unavailable; cache, rate limiting and leaderboard disabled")
	} else {
		defer rdb.Close()
	}

	var recorder audit.Recorder = audit.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kr := audit.NewKafkaRecorder(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer kr.Close()
		recorder = kr
		logger.Info("audit stream enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	}

	var notifier queue.Notifier = queue.Nop{}
	if cfg.RabbitURL != "" {
		pub := queue.NewPublisher(cfg.RabbitURL, logger)
		defer pub.Close()
		notifier = pub

		consumer := queue.NewConsumer(cfg.RabbitURL, cfg.Logging.Directory, logger)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("notification consumer stopped", "error", err)
			}
		}()
	}

	var uploader imagehost.Uploader
	if cfg.Cloudinary.Enabled() {
		cld, err := imagehost.NewCloudinary(cfg.Cloudinary)
		if err != nil {
			return err
		}
		uploader = cld
	} else {
		logger.Warn("cloudinary credentials missing; upload routes disabled")
	}

	svcs := service.New(service.Deps{Store: store, Recorder: recorder, Notifier: notifier, Logger: logger})
	h := handler.New(handler.Deps{
		Services:    svcs,
		Credentials: auth.NewCredentials(cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.PasswordHash),
		Issuer:      auth.NewIssuer(cfg.Admin.JWTSecret, cfg.Admin.TokenTTL),
		Uploader:    uploader,
		Board:       leaderboard.New(rdb, ""),
	})
	e := router.New(router.Options{
		Handlers:    h,
		Validator:   auth.NewValidator(cfg.Admin.JWTSecret),
		Redis:       rdb,
		Cache:       config.LoadCacheConfig(),
		RateLimit:   config.LoadRateLimitConfig(),
		CORSOrigins: cfg.CORSOrigins,
		TrustProxy:  cfg.TrustProxy,
		Logger:      logger,
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
