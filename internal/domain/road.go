package domain

import "strings"

const (
	// OnRoadThresholdMeters - точка ближе к дороге считается стоящей на ней
	OnRoadThresholdMeters = 20.0

	// DefaultMaxSnapMeters - для неизвестных категорий ("general")
	DefaultMaxSnapMeters = 50.0

	CoordinateSourceOriginal    = "original"
	CoordinateSourceRoadSnapped = "road_snapped"
)

// maxSnapDistance - максимальное расстояние привязки к дороге по категории POI, м
var maxSnapDistance = map[string]float64{
	"school":          100,
	"university":      100,
	"college":         100,
	"mall":            150,
	"shopping_centre": 150,
	"shopping_center": 150,
	"supermarket":     100,
	"airport":         200,
	"aerodrome":       200,
	"station":         50,
	"railway_station": 50,
	"subway_entrance": 50,
	"hospital":        100,
}

// NormalizeCategory приводит категорию к ключу таблицы: нижний регистр, "-" и пробелы -> "_"
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	c = strings.NewReplacer("-", "_", " ", "_").Replace(c)
	return c
}

// MaxSnapDistance возвращает допустимое расстояние привязки для категории
func MaxSnapDistance(category string) float64 {
	if d, ok := maxSnapDistance[NormalizeCategory(category)]; ok {
		return d
	}
	return DefaultMaxSnapMeters
}

// RoadSnap - ближайшая точка на дорожном ребре
type RoadSnap struct {
	Lat            float64 `db:"lat"`
	Lon            float64 `db:"lon"`
	DistanceMeters float64 `db:"distance"`
	RoadName       string  `db:"name"`
	Highway        string  `db:"highway"`
}

// ValidatedCoordinate - результат проверки координаты
type ValidatedCoordinate struct {
	Lat            float64  `json:"latitude"`
	Lon            float64  `json:"longitude"`
	Adjusted       bool     `json:"adjusted"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
	Source         string   `json:"source"`
}
