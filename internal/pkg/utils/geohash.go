package utils

import "strings"

const (
	geohashAlphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

	// GeohashPrecision - точность геохеша мест и точек посадки (~4.8 м)
	GeohashPrecision = 9
)

// EncodeGeohash кодирует координаты в geohash заданной точности.
// Биты чередуются: чётные - долгота, нечётные - широта.
func EncodeGeohash(lat, lon float64, precision int) string {
	if precision <= 0 {
		precision = GeohashPrecision
	}
	if precision > 12 {
		precision = 12
	}

	minLat, maxLat := -90.0, 90.0
	minLon, maxLon := -180.0, 180.0

	var hash strings.Builder
	hash.Grow(precision)

	isLon := true
	bit := 0
	ch := 0

	for hash.Len() < precision {
		if isLon {
			mid := (minLon + maxLon) / 2
			if lon >= mid {
				ch |= 1 << (4 - bit)
				minLon = mid
			} else {
				maxLon = mid
			}
		} else {
			mid := (minLat + maxLat) / 2
			if lat >= mid {
				ch |= 1 << (4 - bit)
				minLat = mid
			} else {
				maxLat = mid
			}
		}
		isLon = !isLon

		bit++
		if bit == 5 {
			hash.WriteByte(geohashAlphabet[ch])
			bit = 0
			ch = 0
		}
	}

	return hash.String()
}

// DecodeGeohash возвращает центр ячейки geohash
func DecodeGeohash(hash string) (lat, lon float64, ok bool) {
	minLat, maxLat := -90.0, 90.0
	minLon, maxLon := -180.0, 180.0
	isLon := true

	for i := 0; i < len(hash); i++ {
		idx := strings.IndexByte(geohashAlphabet, hash[i])
		if idx < 0 {
			return 0, 0, false
		}
		for b := 4; b >= 0; b-- {
			set := idx&(1<<b) != 0
			if isLon {
				mid := (minLon + maxLon) / 2
				if set {
					minLon = mid
				} else {
					maxLon = mid
				}
			} else {
				mid := (minLat + maxLat) / 2
				if set {
					minLat = mid
				} else {
					maxLat = mid
				}
			}
			isLon = !isLon
		}
	}

	return (minLat + maxLat) / 2, (minLon + maxLon) / 2, len(hash) > 0
}
