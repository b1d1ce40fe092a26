// cmd/quotebot/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"quotebot/internal/audit"
	"quotebot/internal/bot"
	"quotebot/internal/common/config"
	"quotebot/internal/common/database"
	commonerrors "quotebot/internal/common/errors"
	"quotebot/internal/common/logger"
	"quotebot/internal/common/observability"
	"quotebot/internal/crm"
	"quotebot/internal/dedup"
	"quotebot/internal/gate"
	"quotebot/internal/notify"
	"quotebot/internal/pricing"
	"quotebot/internal/transport/line"
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
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.New("info", "console")
		bootstrap.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting quotebot...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// --- Pricing table: invalid means refuse to start ---
	table, err := pricing.Load(cfg.Pricing.DocumentPath)
	if err != nil {
		zapLog.Fatal("pricing document rejected", zap.Error(commonerrors.NewPricingDocumentError(err)))
	}
	zapLog.Info("Pricing document loaded", zap.String("path", cfg.Pricing.DocumentPath))

	// --- Contact card template ---
	contactTemplate, err := line.LoadContactTemplate(cfg.Line.FlexTemplatePath)
	if err != nil {
		zapLog.Fatal("contact flex template rejected", zap.Error(err))
	}

	obs := observability.New("quotebot")
	defer obs.Shutdown()

	tracing, err := observability.NewTracing("quotebot", cfg.Tracing.JaegerEndpoint)
	if err != nil {
		zapLog.Fatal("tracing init failed", zap.Error(err))
	}
	defer tracing.Shutdown()

	ctx := context.Background()

	// --- PostgreSQL (optional: audit log off without it) ---
	var auditStore *audit.Store
	if cfg.Database.Postgres.Host != "" {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		auditStore = audit.NewStore(pg.DB, log)
		zapLog.Info("PostgreSQL connected successfully")
	} else {
		zapLog.Warn("PostgreSQL not configured, decision log disabled")
	}

	// --- Redis (optional: dedup off without it) ---
	var dedupChecker *dedup.Checker
	if cfg.Database.Redis.Address != "" {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		dedupChecker = dedup.NewChecker(redis.Client, config.GetDuration(cfg.Dedup.TTL), log)
		zapLog.Info("Redis connected successfully")
	} else {
		zapLog.Warn("Redis not configured, webhook dedup disabled")
	}

	// --- LINE client ---
	lineClient := line.NewClient(cfg.Line.APIEndpoint, cfg.Line.ChannelAccessToken, log)

	// --- Admin notifier ---
	var leads notify.LeadCreator
	if cfg.Integrations.Zoho.Enabled {
		leads = crm.NewClient(cfg.Integrations.Zoho.APIKey, cfg.Integrations.Zoho.AuthToken)
	}

	notifier, err := notify.NewWithAWS(ctx, notify.LoadConfig(cfg), log, lineClient, leads)
	if err != nil {
		zapLog.Fatal("notifier init failed", zap.Error(err))
	}

	// --- Decision pipeline and orchestrator ---
	policy := gate.NewPolicy(table, cfg.Trust.LowThreshold, cfg.Trust.HighThreshold)

	var auditor bot.AuditStore
	if auditStore != nil {
		auditor = auditStore
	}

	handler := bot.NewHandler(
		policy,
		lineClient,
		bot.ContactCard{
			Template: contactTemplate,
			Phone:    cfg.Line.ContactPhone,
			Email:    cfg.Line.ContactEmail,
		},
		notifier,
		auditor,
		obs,
		tracing,
		log,
	)

	// --- HTTP server ---
	mux := http.NewServeMux()

	var deduper line.Deduper
	if dedupChecker != nil {
		deduper = dedupChecker
	}
	webhook := line.NewServer(cfg.Line.ChannelSecret, handler, deduper, log)
	webhook.Register(mux)

	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/pprof/", http.DefaultServeMux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("Webhook server listening", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down server", zap.Error(err))
	}

	zapLog.Info("Quotebot stopped gracefully")
}
