package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/utils"
)

// RoadSnapper - проверка координаты и привязка к ближайшей дороге по правилам категории
type RoadSnapper struct {
	roadRepo repository.RoadRepository
	timeout  time.Duration
	logger   *zap.Logger
}

// NewRoadSnapper - создание нового RoadSnapper. roadRepo может быть nil: тогда координаты не меняются.
func NewRoadSnapper(roadRepo repository.RoadRepository, timeout time.Duration, logger *zap.Logger) *RoadSnapper {
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	return &RoadSnapper{
		roadRepo: roadRepo,
		timeout:  timeout,
		logger:   logger,
	}
}

// ValidateCoordinate никогда не возвращает ошибку: при недоступности источника дорог
// координата считается корректной.
func (s *RoadSnapper) ValidateCoordinate(ctx context.Context, lat, lon float64, category string) (result domain.ValidatedCoordinate) {
	original := domain.ValidatedCoordinate{
		Lat:    lat,
		Lon:    lon,
		Source: domain.CoordinateSourceOriginal,
	}

	if s.roadRepo == nil || !utils.ValidateCoordinates(lat, lon) {
		return original
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Road snapping panicked", zap.String("panic", fmt.Sprint(r)))
			result = original
		}
	}()

	maxMeters := domain.MaxSnapDistance(category)

	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	snap, err := s.roadRepo.NearestRoad(rctx, lat, lon, maxMeters)
	if err != nil {
		s.logger.Warn("Road proximity source unavailable, keeping original coordinate",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err))
		return original
	}

	if snap == nil || snap.DistanceMeters > maxMeters {
		return original
	}

	if snap.DistanceMeters <= domain.OnRoadThresholdMeters {
		return original
	}

	distance := snap.DistanceMeters
	s.logger.Info("Coordinate snapped to road",
		zap.String("category", domain.NormalizeCategory(category)),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.Float64("snapped_lat", snap.Lat),
		zap.Float64("snapped_lon", snap.Lon),
		zap.Float64("distance_m", distance),
		zap.String("road", snap.RoadName))

	return domain.ValidatedCoordinate{
		Lat:            snap.Lat,
		Lon:            snap.Lon,
		Adjusted:       true,
		DistanceMeters: &distance,
		Source:         domain.CoordinateSourceRoadSnapped,
	}
}
