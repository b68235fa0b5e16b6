package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/errors"
	"github.com/place-resolver/internal/pkg/utils"
)

const fallbackPlaceName = "Selected Location"

// reverseState - шаг конвейера обратного геокодирования
type reverseState int

const (
	stateCacheLookup reverseState = iota
	stateProvider
	stateFallbackPin
	stateDone
)

func (s reverseState) String() string {
	switch s {
	case stateCacheLookup:
		return "cache_lookup"
	case stateProvider:
		return "provider"
	case stateFallbackPin:
		return "fallback_pin"
	default:
		return "done"
	}
}

// ReverseGeocodeUseCase - координата -> место: кеш, затем провайдеры по очереди, затем pin
type ReverseGeocodeUseCase struct {
	placeRepo       repository.PlaceRepository
	providers       []repository.PlaceSource
	cacheWriter     CacheWriter
	providerTimeout time.Duration
	group           singleflight.Group
	logger          *zap.Logger
}

// NewReverseGeocodeUseCase - создание нового ReverseGeocodeUseCase
func NewReverseGeocodeUseCase(
	placeRepo repository.PlaceRepository,
	providers []repository.PlaceSource,
	cacheWriter CacheWriter,
	providerTimeout time.Duration,
	logger *zap.Logger,
) *ReverseGeocodeUseCase {
	if providerTimeout <= 0 {
		providerTimeout = DefaultProviderTimeout
	}
	return &ReverseGeocodeUseCase{
		placeRepo:       placeRepo,
		providers:       providers,
		cacheWriter:     cacheWriter,
		providerTimeout: providerTimeout,
		logger:          logger,
	}
}

// ResolveByCoordinate всегда возвращает место: при отказе всех источников - fallback pin.
// Одновременные запросы с одинаковой координатой (4 знака) выполняются один раз.
func (uc *ReverseGeocodeUseCase) ResolveByCoordinate(ctx context.Context, lat, lon float64) *domain.Place {
	key := utils.CoordinateKey(lat, lon)

	v, _, _ := uc.group.Do(key, func() (interface{}, error) {
		// Результат разделяется между запросами, отмена первого не должна его портить
		return uc.resolve(context.WithoutCancel(ctx), lat, lon), nil
	})

	place, ok := v.(*domain.Place)
	if !ok || place == nil {
		return fallbackPin(lat, lon, domain.SourceErrorFallback)
	}

	// pin общий для всей ячейки, а координата у каждого вызывающего своя
	if place.Source == domain.SourceFallback || place.Source == domain.SourceErrorFallback {
		return fallbackPin(lat, lon, place.Source)
	}

	cp := *place
	return &cp
}

func (uc *ReverseGeocodeUseCase) resolve(ctx context.Context, lat, lon float64) (result *domain.Place) {
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("Reverse geocode panicked",
				zap.Float64("lat", lat),
				zap.Float64("lon", lon),
				zap.String("panic", fmt.Sprint(r)))
			result = fallbackPin(lat, lon, domain.SourceErrorFallback)
		}
	}()

	if !utils.ValidateCoordinates(lat, lon) {
		uc.logger.Warn("Reverse geocode with invalid coordinates",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon))
		return fallbackPin(lat, lon, domain.SourceErrorFallback)
	}

	state := stateCacheLookup
	next := 0

	for state != stateDone {
		switch state {
		case stateCacheLookup:
			cached, err := uc.placeRepo.FindByCoordinate(ctx, lat, lon)
			if err != nil && err != errors.ErrLocationNotFound {
				uc.logger.Warn("Reverse geocode cache lookup failed", zap.Error(err))
			}
			if err == nil && cached != nil {
				cached.Source = domain.SourceCache
				return cached
			}
			state = stateProvider

		case stateProvider:
			if next >= len(uc.providers) {
				state = stateFallbackPin
				continue
			}
			provider := uc.providers[next]
			next++

			place := uc.lookup(ctx, provider, lat, lon)
			if place == nil {
				continue
			}
			if uc.cacheWriter != nil {
				uc.cacheWriter.Write(ctx, place)
			}
			return place

		case stateFallbackPin:
			uc.logger.Info("All reverse geocode providers failed, returning pin",
				zap.Float64("lat", lat),
				zap.Float64("lon", lon))
			result = fallbackPin(lat, lon, domain.SourceFallback)
			state = stateDone
		}
	}

	return result
}

// lookup - один вызов провайдера со своим таймаутом, без повторов
func (uc *ReverseGeocodeUseCase) lookup(ctx context.Context, provider repository.PlaceSource, lat, lon float64) *domain.Place {
	pctx, cancel := context.WithTimeout(ctx, uc.providerTimeout)
	defer cancel()

	place, err := provider.ReverseLookup(pctx, lat, lon)
	if err != nil {
		uc.logger.Warn("Reverse geocode provider failed",
			zap.String("provider", provider.Name()),
			zap.Error(err))
		return nil
	}
	if place == nil || place.Name == "" {
		return nil
	}

	if place.Source == "" {
		place.Source = provider.Name()
	}
	place.Normalize()
	return place
}

// fallbackPin - синтетическое место с исходной координатой
func fallbackPin(lat, lon float64, source string) *domain.Place {
	rlat := utils.RoundCoordinate(lat, 6)
	rlon := utils.RoundCoordinate(lon, 6)
	return &domain.Place{
		Name:    fallbackPlaceName,
		Address: fmt.Sprintf("%.6f, %.6f", rlat, rlon),
		Lat:     rlat,
		Lon:     rlon,
		Source:  source,
	}
}
