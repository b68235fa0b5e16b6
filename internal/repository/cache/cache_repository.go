package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type providerCacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewProviderCacheRepository - кеш ответов провайдеров поверх Redis, значения хранятся в JSON
func NewProviderCacheRepository(redis *Redis) repository.ProviderCacheRepository {
	return &providerCacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *providerCacheRepository) GetPlaces(ctx context.Context, key string) ([]*domain.Place, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get error: %w", err)
	}

	var places []*domain.Place
	if err := json.Unmarshal(data, &places); err != nil {
		// битую запись удаляем, чтобы следующий запрос перезаписал её
		r.client.Del(ctx, key)
		return nil, false, fmt.Errorf("corrupted cache entry %s: %w", key, err)
	}

	r.logger.Debug("Provider cache hit", zap.String("key", key), zap.Int("places", len(places)))
	return places, true, nil
}

func (r *providerCacheRepository) SetPlaces(ctx context.Context, key string, places []*domain.Place, ttl time.Duration) error {
	if places == nil {
		places = []*domain.Place{}
	}

	data, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("failed to marshal places: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Provider cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}
