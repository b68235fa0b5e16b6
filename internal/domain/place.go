package domain

import (
	"time"

	"github.com/place-resolver/internal/pkg/utils"
)

// Источники, из которых получено место
const (
	SourceLocal         = "local"
	SourceCache         = "cache"
	SourceGoogle        = "google"
	SourceNominatim     = "nominatim"
	SourceFallback      = "fallback"
	SourceErrorFallback = "error_fallback"
)

// Place - найденная точка интереса
type Place struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Address     string    `json:"address" db:"address"`
	Lat         float64   `json:"lat" db:"lat"`
	Lon         float64   `json:"lon" db:"lon"`
	Category    string    `json:"category" db:"category"`
	Geohash     string    `json:"geohash" db:"geohash"`
	SearchCount int64     `json:"search_count" db:"search_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Вычисляемые поля, не хранятся
	DistanceKm *float64 `json:"distance_km,omitempty" db:"-"`
	Similarity *float64 `json:"-" db:"-"`
	Source     string   `json:"source" db:"-"`
}

// Normalize пересчитывает geohash из координат, чтобы он не устаревал
func (p *Place) Normalize() {
	p.Geohash = utils.EncodeGeohash(p.Lat, p.Lon, utils.GeohashPrecision)
}

// Valid проверяет диапазоны координат
func (p *Place) Valid() bool {
	return utils.ValidateCoordinates(p.Lat, p.Lon)
}

// RankedPlace - место с оценками ранжирования
type RankedPlace struct {
	*Place
	TextScore            float64 `json:"text_score"`
	ProximityScore       float64 `json:"proximity_score"`
	PopularityScore      float64 `json:"popularity_score"`
	PersonalizationScore float64 `json:"personalization_score"`
	Score                float64 `json:"score"`
}

// SearchQuery - параметры прямого поиска по источнику
type SearchQuery struct {
	Text         string
	UserLocation *Point
	RadiusKm     float64
	Limit        int
}
