// cmd/assistant-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hr-assistant/internal/api"
	"hr-assistant/internal/assistant/generate"
	"hr-assistant/internal/assistant/pipeline"
	"hr-assistant/internal/assistant/retrieve"
	"hr-assistant/internal/common/config"
	"hr-assistant/internal/common/database"
	"hr-assistant/internal/common/logger"
	"hr-assistant/internal/common/observability"
	"hr-assistant/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting assistant server",
		zap.String("listen_address", cfg.Server.ListenAddress),
		zap.String("model", cfg.GenAI.Model),
	)

	obs := observability.New("assistant-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Postgres with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Postgres initialization")
	if err != nil {
		zapLog.Fatal("postgres unavailable", zap.Error(err))
	}
	defer pg.Close()

	// --- Redis with retry (rate limiter backend) ---
	var rd *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rd, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rd.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis initialization")
	if err != nil {
		if cfg.RateLimit.Enabled {
			zapLog.Fatal("redis unavailable and rate limiting enabled", zap.Error(err))
		}
		zapLog.Warn("redis unavailable, continuing without rate limiting", zap.Error(err))
		rd = nil
	}
	if rd != nil {
		defer rd.Close()
	}

	recordStore := store.NewPostgresStore(pg.GetDB())
	retriever := retrieve.New(recordStore, func() time.Time { return time.Now().UTC() }, log)
	generator := generate.New(cfg.GenAI, log)
	p := pipeline.New(retriever, generator, log).WithObservability(obs)

	var limiterClient *redis.Client
	if rd != nil {
		limiterClient = rd.GetClient()
	}
	limiter := api.NewRateLimiter(limiterClient, cfg.RateLimit, log)
	server := api.NewServer(p, limiter, cfg.Server, log)

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(runCtx); err != nil {
		zapLog.Fatal("server exited", zap.Error(err))
	}
	zapLog.Info("assistant server stopped")
}
