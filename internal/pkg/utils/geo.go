package utils

import (
	"fmt"
	"math"
)

const (
	earthRadiusKm = 6371.0

	// CoordinateKeyDecimals - точность ключа координат (~11 м)
	CoordinateKeyDecimals = 4
)

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// RoundCoordinate округляет значение до заданного числа знаков после запятой
func RoundCoordinate(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if r == 0 {
		// избавляемся от -0, чтобы ключи совпадали
		return 0
	}
	return r
}

// CoordinateKey - ключ идентичности точки, координаты округлены до 4 знаков
func CoordinateKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f",
		RoundCoordinate(lat, CoordinateKeyDecimals),
		RoundCoordinate(lon, CoordinateKeyDecimals))
}
