package repository

import (
	"context"

	"github.com/place-resolver/internal/domain"
)

// PlaceSource - источник мест для агрегатора: локальное хранилище или внешний геокодер
type PlaceSource interface {
	// Name - имя источника, попадает в Place.Source и в логи
	Name() string

	// ForwardSearch ищет места по тексту
	ForwardSearch(ctx context.Context, query domain.SearchQuery) ([]*domain.Place, error)

	// ReverseLookup ищет место по координате, nil если ничего не найдено
	ReverseLookup(ctx context.Context, lat, lon float64) (*domain.Place, error)
}

// PlaceRepository - локальное хранилище мест (PostGIS + pg_trgm)
type PlaceRepository interface {
	// Search - текстовый поиск по триграммам, сортировка по similarity, затем популярности
	Search(ctx context.Context, query string, limit int) ([]*domain.Place, error)

	// SearchNearby - текстовый поиск в радиусе radiusKm, сортировка по similarity, затем расстоянию
	SearchNearby(ctx context.Context, query string, lat, lon, radiusKm float64, limit int) ([]*domain.Place, error)

	// FindByCoordinate ищет место с той же координатой, округлённой до 4 знаков
	FindByCoordinate(ctx context.Context, lat, lon float64) (*domain.Place, error)

	// FindByNameAddress ищет место с точным совпадением имени и адреса
	FindByNameAddress(ctx context.Context, name, address string) (*domain.Place, error)

	GetByID(ctx context.Context, id string) (*domain.Place, error)

	Insert(ctx context.Context, place *domain.Place) error

	// IncrementPopularity увеличивает search_count на 1
	IncrementPopularity(ctx context.Context, id string) error
}
