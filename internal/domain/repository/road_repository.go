package repository

import (
	"context"

	"github.com/place-resolver/internal/domain"
)

// RoadRepository - источник ближайших дорожных рёбер
type RoadRepository interface {
	// NearestRoad возвращает ближайшую точку на проезжей дороге в пределах maxMeters,
	// nil если такой дороги нет
	NearestRoad(ctx context.Context, lat, lon, maxMeters float64) (*domain.RoadSnap, error)
}
