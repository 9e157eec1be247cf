package runtime

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"collections-service/internal/app/router"
	"collections-service/internal/pkg/cleanup"
	"collections-service/internal/pkg/config"
	mongodb "collections-service/internal/pkg/db/mongo"
	redisdb "collections-service/internal/pkg/db/redis"
	"collections-service/internal/pkg/logger"
	"collections-service/internal/pkg/scheduler"
	"collections-service/internal/pkg/store/impl/collections"
)

var (
	connectMongoDB = mongodb.ConnectToMongoDB
	connectRedisDB = func(ctx context.Context, cfg config.RedisConfig) (*redisdb.RedisClient, error) {
		return redisdb.ConnectToRedis(ctx, cfg, nil)
	}
)

// App encapsulates application resources and lifecycle.
type App struct {
	Cfg          *config.AppConfig
	MongoClient  *mongodb.MongoClient
	RedisClient  *redisdb.RedisClient
	DPDScheduler *scheduler.DPDScheduler
	HTTPServer   *http.Server
}

func New(ctx context.Context) (*App, error) {
	// Missing .env is fine, real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.LoadFromConfig()
	if err != nil {
		logger.CtxError(ctx, "Failed loading configuration", err)
		return nil, err
	}
	logger.Init(cfg.Logging.LogLevel)

	mClient, err := connectMongoDB(ctx, cfg.Mongo)
	if err != nil {
		logger.CtxError(ctx, "Failed to connect to MongoDB", err)
		return nil, err
	}

	rClient, err := connectRedisDB(ctx, cfg.Redis)
	if err != nil {
		logger.CtxError(ctx, "Failed to connect to Redis", err)
		return nil, err
	}

	collectionsRepo := collections.NewCollectionRecordRepository(mClient)
	dpdScheduler := scheduler.NewDPDScheduler(
		collectionsRepo,
		cfg.Scheduler.DPDCronSpec,
		int32(cfg.Scheduler.DefaultThreshold),
	)

	return &App{
		Cfg:          cfg,
		MongoClient:  mClient,
		RedisClient:  rClient,
		DPDScheduler: dpdScheduler,
	}, nil
}

// Run starts the DPD scheduler and HTTP server, then blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	if err := a.DPDScheduler.Start(); err != nil {
		logger.CtxError(ctx, "Failed to start DPD scheduler", err)
		return err
	}

	engine := router.SetupRouter(a.Cfg, a.MongoClient, a.RedisClient.Client)
	a.HTTPServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.CtxError(ctx, "Server failed to start", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.Shutdown(ctx)
	logger.CtxInfo(ctx, "Server exiting")
	return nil
}

// Shutdown gracefully closes all resources with bounded timeouts.
func (a *App) Shutdown(ctx context.Context) {
	if a.DPDScheduler != nil {
		a.DPDScheduler.Stop()
	}

	if a.HTTPServer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
			logger.CtxError(ctx, "HTTP server shutdown failed", err)
		}
	}

	cleanup.CleanupResources(ctx, a.MongoClient, a.RedisClient)
}
