package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/worker"
	"go.uber.org/zap"
)

const retryBackoff = 200 * time.Millisecond

// PlaceStore - дедуплицирующая запись места в локальное хранилище
type PlaceStore interface {
	Store(ctx context.Context, place *domain.Place) (*domain.Place, error)
}

// CacheWorker дописывает результаты обратного геокодирования в локальное хранилище.
// Сообщения публикует StreamCacheWriter, когда запись вынесена из API.
type CacheWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	store      PlaceStore
	maxRetries int
}

// NewCacheWorker создает новый CacheWorker
func NewCacheWorker(
	streamRepo repository.StreamRepository,
	store PlaceStore,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *CacheWorker {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &CacheWorker{
		BaseWorker: worker.NewBaseWorker("geocode-cache", consumerGroup, logger),
		streamRepo: streamRepo,
		store:      store,
		maxRetries: maxRetries,
	}
}

// Start запускает воркер, блокируется до остановки
func (w *CacheWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting geocode cache worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamGeocodeCache, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	if backlog, err := w.streamRepo.Backlog(ctx, domain.StreamGeocodeCache, w.ConsumerGroup()); err != nil {
		logger.Warn("Failed to read stream backlog", zap.Error(err))
	} else if backlog > 0 {
		logger.Info("Resuming with unacknowledged cache events", zap.Int64("backlog", backlog))
	}

	// Stop() должен прервать чтение из стрима
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-w.StopChan():
			cancel()
		case <-ctx.Done():
		}
	}()

	messages, err := w.streamRepo.ConsumeStream(ctx, domain.StreamGeocodeCache, w.ConsumerGroup(), w.ConsumerName())
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return nil

		case msg, ok := <-messages:
			if !ok {
				logger.Info("Stream closed")
				return nil
			}
			w.handle(ctx, msg)
		}
	}
}

// handle обрабатывает одно сообщение. Сообщение подтверждается всегда:
// битое или не записанное после всех попыток место не должно блокировать стрим.
func (w *CacheWorker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	var event domain.GeocodeCacheEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse message, skipping", zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	if !event.Place.Valid() || event.Place.Name == "" {
		logger.Warn("Invalid place in cache event, skipping",
			zap.String("name", event.Place.Name),
			zap.Float64("lat", event.Place.Lat),
			zap.Float64("lon", event.Place.Lon))
		w.ack(ctx, msg.ID)
		return
	}

	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		stored, err := w.store.Store(ctx, &event.Place)
		if err == nil {
			logger.Debug("Place cached",
				zap.String("place_id", stored.ID),
				zap.Duration("lag", time.Since(event.ResolvedAt)))
			break
		}

		logger.Warn("Failed to store place",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", w.maxRetries),
			zap.Error(err))

		if attempt == w.maxRetries {
			logger.Error("Giving up on cache event", zap.String("name", event.Place.Name))
			break
		}
		if !w.Sleep(ctx, retryBackoff*time.Duration(attempt)) {
			// Без ack: сообщение останется в pending и будет перечитано после рестарта
			return
		}
	}

	w.ack(ctx, msg.ID)
}

func (w *CacheWorker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamGeocodeCache, w.ConsumerGroup(), id); err != nil {
		w.Logger().Error("Failed to ack message", zap.String("message_id", id), zap.Error(err))
	}
}
