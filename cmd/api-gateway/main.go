package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/research-admin-gateway/api/swagger"
	"github.com/noah-isme/research-admin-gateway/internal/handler"
	"github.com/noah-isme/research-admin-gateway/internal/query"
	"github.com/noah-isme/research-admin-gateway/internal/repository"
	"github.com/noah-isme/research-admin-gateway/internal/service"
	"github.com/noah-isme/research-admin-gateway/pkg/cache"
	"github.com/noah-isme/research-admin-gateway/pkg/config"
	"github.com/noah-isme/research-admin-gateway/pkg/database"
	"github.com/noah-isme/research-admin-gateway/pkg/logger"
	"github.com/noah-isme/research-admin-gateway/pkg/mailer"
	"github.com/noah-isme/research-admin-gateway/pkg/storage"
	"github.com/noah-isme/research-admin-gateway/pkg/upstream"
)

// @title Research Admin Gateway
// @version 1.0.0
// @description Backend-for-frontend for postgraduate research administration
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()
	validate := validator.New()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, persisted cache and preferences degrade until it recovers", zap.Error(err))
		redisClient = cache.NewClient(cfg.Redis)
	}
	defer redisClient.Close() //nolint:errcheck

	cacheSvc := service.NewCacheService(
		repository.NewCacheRepository(redisClient, logr),
		metrics,
		cfg.Query.PersistTTL,
		logr,
		cfg.Query.PersistenceEnabled,
	)
	queryOpts := []query.Option{query.WithRecorder(metrics)}
	if cacheSvc.Enabled() {
		queryOpts = append(queryOpts, query.WithPersister(cacheSvc))
	}
	queries := query.New(query.Config{StaleTime: cfg.Query.StaleTime, PersistTTL: cfg.Query.PersistTTL}, logr, queryOpts...)
	defer queries.Close()

	api := upstream.New(upstream.Config{
		BaseURL:        cfg.Upstream.BaseURL,
		Timeout:        cfg.Upstream.Timeout,
		MaxUploadBytes: cfg.Upstream.MaxUploadBytes,
	}, logr, metrics)

	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare export storage", zap.Error(err))
	}
	exports := service.NewExportService(
		exportStore,
		storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL),
		service.ExportConfig{APIPrefix: cfg.APIPrefix, RetainFor: cfg.Exports.SignedURLTTL},
		logr,
	)

	sender, err := mailer.New(cfg.Mail, logr)
	if err != nil {
		logr.Fatal("failed to init mailer", zap.Error(err))
	}
	notifications := service.NewNotificationService(sender, service.NotificationConfig{
		Workers:    cfg.Notify.Workers,
		MaxRetries: cfg.Notify.MaxRetries,
		RetryDelay: cfg.Notify.RetryDelay,
	}, logr)
	notifications.Start(ctx)

	resultsOpts := []service.ResultsOption{
		service.WithNotifier(notifications),
		service.WithBatchRecorder(metrics),
	}
	var ledgerDB *sqlx.DB
	if cfg.Batch.LedgerEnabled {
		ledgerDB, err = openLedger(ctx, cfg.Database)
		if err != nil {
			logr.Error("batch ledger disabled", zap.Error(err))
		} else {
			defer ledgerDB.Close() //nolint:errcheck
			resultsOpts = append(resultsOpts, service.WithLedger(repository.NewBatchRunRepository(ledgerDB)))
		}
	}

	auth := service.NewAuthService(logr, service.AuthConfig{AccessTokenSecret: cfg.JWT.Secret})
	prefs := service.NewPreferenceService(repository.NewPreferenceRepository(redisClient), cfg.Preferences.DefaultPageSize, validate, logr)

	handlers := routeHandlers{
		students:    handler.NewStudentHandler(service.NewStudentService(api, queries, validate, logr)),
		catalog:     handler.NewCatalogHandler(service.NewCatalogService(api, queries, validate, logr)),
		faculty:     handler.NewFacultyHandler(service.NewFacultyService(api, queries, validate, logr)),
		proposals:   handler.NewProposalHandler(service.NewProposalService(api, queries, validate, logr)),
		books:       handler.NewBookHandler(service.NewBookService(api, queries, validate, logr)),
		results:     handler.NewResultsHandler(service.NewResultsService(api, queries, exports, service.ResultsConfig{Concurrency: cfg.Batch.Concurrency}, validate, logr, resultsOpts...), exports),
		preferences: handler.NewPreferenceHandler(prefs, service.NewSessionService(queries, prefs, logr)),
		metrics:     handler.NewMetricsHandler(metrics, notifications, readinessChecks(redisClient, ledgerDB)),
	}

	r := newRouter(cfg, logr, auth, metrics, handlers)

	go runExportCleanup(ctx, exports, cfg.Exports.CleanupInterval, logr)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	notifications.Stop()
}

func openLedger(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := database.NewPostgres(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func readinessChecks(redisClient *redis.Client, ledgerDB *sqlx.DB) map[string]handler.ReadinessCheck {
	checks := map[string]handler.ReadinessCheck{
		"redis": func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	}
	if ledgerDB != nil {
		checks["ledger"] = ledgerDB.PingContext
	}
	return checks
}

func runExportCleanup(ctx context.Context, exports *service.ExportService, interval time.Duration, logr *zap.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := exports.Cleanup()
			if err != nil {
				logr.Warn("export cleanup failed", zap.Error(err))
				continue
			}
			if len(removed) > 0 {
				logr.Info("expired exports removed", zap.Int("count", len(removed)))
			}
		}
	}
}
