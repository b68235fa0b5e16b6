package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/place-resolver/internal/config"
	"github.com/place-resolver/internal/pkg/logger"
	"github.com/place-resolver/internal/repository/cache"
	"github.com/place-resolver/internal/repository/postgres"
	redisRepo "github.com/place-resolver/internal/repository/redis"
	"github.com/place-resolver/internal/usecase"
	"github.com/place-resolver/internal/worker"
	"github.com/place-resolver/internal/worker/geocode"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Geocode Cache Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Duration("stream_read_timeout", cfg.Worker.StreamReadTimeout))

	if cfg.Cache.WriteMode != config.CacheWriteStream {
		log.Warn("CACHE_WRITE_MODE is not 'stream', API writes inline and the stream stays empty")
	}

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis Streams
	streamClient, err := cache.NewRedisStreams(&cfg.RedisStreams, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis Streams", zap.Error(err))
	}
	defer func() {
		if err := streamClient.Close(); err != nil {
			log.Error("Failed to close Redis Streams connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories and services
	placeRepo := postgres.NewPlaceRepository(db)
	streamRepo := redisRepo.NewStreamRepository(streamClient, cfg.Worker.StreamReadTimeout, log)
	placeCache := usecase.NewPlaceCacheService(placeRepo, log)

	// 6. Initialize workers
	cacheWorker := geocode.NewCacheWorker(
		streamRepo,
		placeCache,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(cacheWorker)

	// 7. Start workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	if err := workerManager.Stop(context.Background()); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	for name, err := range workerManager.Failed() {
		log.Error("Worker exited with error", zap.String("name", name), zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
