package repository

import (
	"context"
	"time"

	"github.com/place-resolver/internal/domain"
)

// ProviderCacheRepository - кеш ответов внешних геокодеров
type ProviderCacheRepository interface {
	// GetPlaces возвращает закешированный ответ; ok=false при промахе
	GetPlaces(ctx context.Context, key string) (places []*domain.Place, ok bool, err error)

	// SetPlaces сохраняет ответ провайдера с TTL. Пустой ответ тоже кешируется.
	SetPlaces(ctx context.Context, key string, places []*domain.Place, ttl time.Duration) error
}
