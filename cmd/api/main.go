package main

// @title Place Resolver API
// @version 1.0.0
// @description Сервис поиска и ранжирования мест для заказа поездок и доставки.
// @description
// @description Основные возможности:
// @description - Поиск мест по тексту: локальное хранилище + Google + Nominatim, дедупликация и ранжирование
// @description - Обратное геокодирование с кешем и точкой-заглушкой
// @description - Привязка координаты к ближайшей проезжей дороге
// @description - Точки посадки с подтверждением пользователями

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/place-resolver/docs"
	"github.com/place-resolver/internal/config"
	httpDelivery "github.com/place-resolver/internal/delivery/http"
	"github.com/place-resolver/internal/delivery/http/handler"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/infrastructure/google"
	"github.com/place-resolver/internal/infrastructure/nominatim"
	"github.com/place-resolver/internal/pkg/logger"
	"github.com/place-resolver/internal/repository/cache"
	"github.com/place-resolver/internal/repository/postgres"
	"github.com/place-resolver/internal/repository/postgresosm"
	redisRepo "github.com/place-resolver/internal/repository/redis"
	"github.com/place-resolver/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Place Resolver")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("cache_write_mode", cfg.Cache.WriteMode),
	)

	// 3. Connect to places PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to OSM PostgreSQL (road network). Без неё координаты не привязываются к дорогам.
	var roadRepo repository.RoadRepository
	osmDB, err := postgresosm.New(&cfg.OSMDB, log)
	if err != nil {
		log.Warn("OSM PostgreSQL unavailable, road snapping disabled", zap.Error(err))
	} else {
		defer func() {
			if err := osmDB.Close(); err != nil {
				log.Error("Failed to close OSM PostgreSQL connection", zap.Error(err))
			}
		}()
		roadRepo = postgresosm.NewRoadRepository(osmDB)
	}

	// 5. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 6. Initialize repositories
	placeRepo := postgres.NewPlaceRepository(db)
	pickupRepo := postgres.NewPickupPointRepository(db)
	personalizationRepo := postgres.NewPersonalizationRepository(db)
	cacheRepo := cache.NewProviderCacheRepository(redisClient)

	// 7. External providers, in fallback order. Ответы кешируются в Redis.
	var providers []repository.PlaceSource
	if cfg.Providers.GoogleAPIKey != "" {
		providers = append(providers, cache.NewCachedSource(
			google.NewGoogleClient(&cfg.Providers, log), cacheRepo, cfg.Cache.SearchCacheTTL, log))
	} else {
		log.Warn("GOOGLE_API_KEY is not set, Google provider disabled")
	}
	providers = append(providers, cache.NewCachedSource(
		nominatim.NewNominatimClient(&cfg.Providers, log), cacheRepo, cfg.Cache.SearchCacheTTL, log))

	log.Info("Repositories initialized", zap.Int("providers", len(providers)))

	// 8. Initialize use cases
	placeCache := usecase.NewPlaceCacheService(placeRepo, log)

	var cacheWriter usecase.CacheWriter
	var inlineWriter *usecase.InlineCacheWriter
	switch cfg.Cache.WriteMode {
	case config.CacheWriteStream:
		streamClient, err := cache.NewRedisStreams(&cfg.RedisStreams, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis Streams", zap.Error(err))
		}
		defer streamClient.Close()
		streamRepo := redisRepo.NewStreamRepository(streamClient, cfg.Worker.StreamReadTimeout, log)
		cacheWriter = usecase.NewStreamCacheWriter(streamRepo, log)
	default:
		inlineWriter = usecase.NewInlineCacheWriter(placeCache)
		cacheWriter = inlineWriter
	}

	aggregator := usecase.NewAggregator(placeRepo, providers, usecase.AggregatorConfig{
		CoverageThreshold: cfg.Resolver.CoverageThreshold,
		SearchRadiusKm:    cfg.Resolver.SearchRadiusKm,
		ProviderTimeout:   cfg.Providers.RequestTimeout,
	}, log)

	ranker := usecase.NewRanker(usecase.RankingConfig{
		ProximityWindowKm: cfg.Ranking.ProximityWindowKm,
		PopularityCeiling: cfg.Ranking.PopularityCeiling,
	})

	resolveUC := usecase.NewResolveUseCase(
		aggregator,
		ranker,
		placeRepo,
		personalizationRepo,
		placeCache,
		cfg.Resolver.DefaultLimit,
		cfg.Resolver.MaxLimit,
		log,
	)
	reverseUC := usecase.NewReverseGeocodeUseCase(placeRepo, providers, cacheWriter, cfg.Providers.RequestTimeout, log)
	roadSnapper := usecase.NewRoadSnapper(roadRepo, cfg.Providers.RequestTimeout, log)
	pickupUC := usecase.NewPickupPointUseCase(pickupRepo, placeRepo, log)
	personalizationUC := usecase.NewPersonalizationUseCase(personalizationRepo, log)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP handlers
	placeHandler := handler.NewPlaceHandler(resolveUC, reverseUC, log)
	locationHandler := handler.NewLocationHandler(roadSnapper, log)
	pickupPointHandler := handler.NewPickupPointHandler(pickupUC, log)
	personalizationHandler := handler.NewPersonalizationHandler(personalizationUC, log)

	healthChecks := map[string]httpDelivery.HealthChecker{
		"postgres": db,
		"redis":    redisClient,
	}
	if osmDB != nil {
		healthChecks["osm_postgres"] = osmDB
	}

	// 10. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		placeHandler,
		locationHandler,
		pickupPointHandler,
		personalizationHandler,
		healthChecks,
	)

	// 11. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	// Дожидаемся фоновых записей в кеш
	if inlineWriter != nil {
		inlineWriter.Wait()
	}

	log.Info("Server stopped successfully")
}
