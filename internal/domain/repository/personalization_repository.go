package repository

import (
	"context"

	"github.com/place-resolver/internal/domain"
)

// PersonalizationRepository - персональные сигналы пользователя
type PersonalizationRepository interface {
	// SavedPlaces - сохранённые места пользователя
	SavedPlaces(ctx context.Context, userID string) ([]domain.SavedPlace, error)

	// PlaceUseCounts - сколько раз пользователь выбирал каждое из мест
	PlaceUseCounts(ctx context.Context, userID string, placeIDs []string) (map[string]int, error)

	// FrequentLocations - агрегат часто посещаемых мест
	FrequentLocations(ctx context.Context, userID string) ([]domain.FrequentLocation, error)

	// AppendHistory добавляет запись в журнал
	AppendHistory(ctx context.Context, entry *domain.LocationHistoryEntry) error
}
