package cache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/utils"
)

const (
	searchKeyPrefix  = "geocode:search"
	reverseKeyPrefix = "geocode:reverse"
)

// cachedSource кеширует ответы внешнего геокодера в Redis
type cachedSource struct {
	source repository.PlaceSource
	cache  repository.ProviderCacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedSource оборачивает провайдера кешем ответов с заданным TTL.
// Ошибки провайдера не кешируются, ошибки кеша не мешают запросу.
func NewCachedSource(source repository.PlaceSource, cache repository.ProviderCacheRepository, ttl time.Duration, logger *zap.Logger) repository.PlaceSource {
	return &cachedSource{
		source: source,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *cachedSource) Name() string {
	return s.source.Name()
}

func (s *cachedSource) ForwardSearch(ctx context.Context, query domain.SearchQuery) ([]*domain.Place, error) {
	key := SearchKey(s.source.Name(), query)

	if cached, ok := s.load(ctx, key); ok {
		return cached, nil
	}

	places, err := s.source.ForwardSearch(ctx, query)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, places)
	return places, nil
}

// ReverseLookup кеширует и пустой ответ: точка без адреса у провайдера
// не перезапрашивается до истечения TTL
func (s *cachedSource) ReverseLookup(ctx context.Context, lat, lon float64) (*domain.Place, error) {
	key := ReverseKey(s.source.Name(), lat, lon)

	if cached, ok := s.load(ctx, key); ok {
		if len(cached) == 0 {
			return nil, nil
		}
		return cached[0], nil
	}

	place, err := s.source.ReverseLookup(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	if place == nil {
		s.store(ctx, key, nil)
	} else {
		s.store(ctx, key, []*domain.Place{place})
	}
	return place, nil
}

// ReverseKey - ключ кеша обратного геокодирования, координата округлена до 4 знаков
func ReverseKey(provider string, lat, lon float64) string {
	return fmt.Sprintf("%s:%s:%s", reverseKeyPrefix, provider, utils.CoordinateKey(lat, lon))
}

// SearchKey - ключ кеша прямого поиска: провайдер, нормализованный запрос,
// точка привязки (2 знака, ~1 км) и лимит
func SearchKey(provider string, query domain.SearchQuery) string {
	bias := "none"
	if query.UserLocation != nil {
		bias = fmt.Sprintf("%.2f,%.2f",
			utils.RoundCoordinate(query.UserLocation.Lat, 2),
			utils.RoundCoordinate(query.UserLocation.Lon, 2))
	}
	return fmt.Sprintf("%s:%s:%s:%s:%d", searchKeyPrefix, provider, utils.FoldName(query.Text), bias, query.Limit)
}

func (s *cachedSource) load(ctx context.Context, key string) ([]*domain.Place, bool) {
	places, ok, err := s.cache.GetPlaces(ctx, key)
	if err != nil {
		s.logger.Warn("Provider cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return places, ok
}

func (s *cachedSource) store(ctx context.Context, key string, places []*domain.Place) {
	if err := s.cache.SetPlaces(ctx, key, places, s.ttl); err != nil {
		s.logger.Warn("Provider cache write failed", zap.String("key", key), zap.Error(err))
	}
}
