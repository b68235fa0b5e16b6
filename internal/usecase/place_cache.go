package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/errors"
)

const cacheWriteTimeout = 10 * time.Second

// CacheWriter - запись результата геокодирования в локальный кеш мест.
// Ошибки не возвращаются: запись в кеш не должна влиять на ответ.
type CacheWriter interface {
	Write(ctx context.Context, place *domain.Place)
}

// PlaceCacheService - вставка мест в локальное хранилище без дублей
type PlaceCacheService struct {
	placeRepo repository.PlaceRepository
	logger    *zap.Logger
}

// NewPlaceCacheService - создание нового PlaceCacheService
func NewPlaceCacheService(placeRepo repository.PlaceRepository, logger *zap.Logger) *PlaceCacheService {
	return &PlaceCacheService{
		placeRepo: placeRepo,
		logger:    logger,
	}
}

// Store сохраняет место, если в базе ещё нет записи с той же координатой
// (4 знака) или с тем же именем и адресом. Возвращает сохранённую или найденную запись.
func (s *PlaceCacheService) Store(ctx context.Context, place *domain.Place) (*domain.Place, error) {
	if !place.Valid() {
		return nil, errors.ErrInvalidCoordinates
	}

	existing, err := s.placeRepo.FindByCoordinate(ctx, place.Lat, place.Lon)
	if err != nil && err != errors.ErrLocationNotFound {
		return nil, err
	}
	if existing != nil {
		s.logger.Debug("Place already cached by coordinate", zap.String("id", existing.ID))
		return existing, nil
	}

	existing, err = s.placeRepo.FindByNameAddress(ctx, place.Name, place.Address)
	if err != nil && err != errors.ErrLocationNotFound {
		return nil, err
	}
	if existing != nil {
		s.logger.Debug("Place already cached by name and address", zap.String("id", existing.ID))
		return existing, nil
	}

	stored := *place
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	stored.Normalize()
	stored.SearchCount = 0
	stored.DistanceKm = nil
	stored.Similarity = nil
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	if err := s.placeRepo.Insert(ctx, &stored); err != nil {
		return nil, err
	}

	s.logger.Info("Place cached",
		zap.String("id", stored.ID),
		zap.String("name", stored.Name),
		zap.String("source", place.Source))

	stored.Source = domain.SourceLocal
	return &stored, nil
}

// Write - Store с подавлением ошибок
func (s *PlaceCacheService) Write(ctx context.Context, place *domain.Place) {
	if _, err := s.Store(ctx, place); err != nil {
		s.logger.Warn("Failed to cache place",
			zap.String("name", place.Name),
			zap.Float64("lat", place.Lat),
			zap.Float64("lon", place.Lon),
			zap.Error(err))
	}
}

// InlineCacheWriter пишет в кеш в фоновой горутине, после ответа клиенту
type InlineCacheWriter struct {
	service *PlaceCacheService
	wg      sync.WaitGroup
}

// NewInlineCacheWriter - создание нового InlineCacheWriter
func NewInlineCacheWriter(service *PlaceCacheService) *InlineCacheWriter {
	return &InlineCacheWriter{service: service}
}

func (w *InlineCacheWriter) Write(ctx context.Context, place *domain.Place) {
	cp := *place
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		// Запрос уже завершён, его отмена не должна прерывать запись
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
		defer cancel()
		w.service.Write(wctx, &cp)
	}()
}

// Wait ожидает завершения фоновых записей
func (w *InlineCacheWriter) Wait() {
	w.wg.Wait()
}

// StreamCacheWriter публикует задание в Redis Stream, запись выполняет воркер
type StreamCacheWriter struct {
	streamRepo repository.StreamRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewStreamCacheWriter - создание нового StreamCacheWriter
func NewStreamCacheWriter(streamRepo repository.StreamRepository, logger *zap.Logger) *StreamCacheWriter {
	return &StreamCacheWriter{
		streamRepo: streamRepo,
		logger:     logger,
		now:        time.Now,
	}
}

func (w *StreamCacheWriter) Write(ctx context.Context, place *domain.Place) {
	event := domain.GeocodeCacheEvent{
		Place:      *place,
		ResolvedAt: w.now().UTC(),
	}
	if err := w.streamRepo.PublishToStream(ctx, domain.StreamGeocodeCache, event); err != nil {
		w.logger.Warn("Failed to publish cache event",
			zap.String("name", place.Name),
			zap.Error(err))
	}
}
