package postgresosm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/lib/pq"
	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	apperrors "github.com/place-resolver/internal/pkg/errors"
	"go.uber.org/zap"
)

type roadRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewRoadRepository создает репозиторий ближайших дорог поверх planet_osm_line
func NewRoadRepository(db *DB) repository.RoadRepository {
	return &roadRepository{
		db:     db,
		logger: db.logger,
	}
}

// NearestRoad ищет ближайшую точку на проезжей дороге.
// Геометрия osm2pgsql хранится в EPSG:3857, где метр растянут в 1/cos(lat) раз,
// поэтому радиус предфильтра по индексу расширяется, а точная дистанция
// считается по geography.
func (r *roadRepository) NearestRoad(ctx context.Context, lat, lon, maxMeters float64) (*domain.RoadSnap, error) {
	if maxMeters <= 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		WITH point AS (
			SELECT
				ST_Transform(ST_SetSRID(ST_MakePoint($1, $2), %[1]d), %[2]d) AS merc,
				ST_SetSRID(ST_MakePoint($1, $2), %[1]d)::geography AS geog
		),
		candidates AS (
			SELECT
				ST_Transform(ST_ClosestPoint(l.way, point.merc), %[1]d) AS snapped,
				COALESCE(NULLIF(l.name, ''), NULLIF(l.ref, ''), '') AS name,
				l.highway
			FROM %[3]s l, point
			WHERE l.highway = ANY($3)
			  AND ST_DWithin(l.way, point.merc, $4)
			ORDER BY l.way <-> point.merc
			LIMIT 5
		)
		SELECT
			ST_Y(c.snapped) AS lat,
			ST_X(c.snapped) AS lon,
			ST_Distance(c.snapped::geography, point.geog) AS distance,
			c.name,
			c.highway
		FROM candidates c, point
		ORDER BY distance
		LIMIT 1
	`, SRID4326, SRID3857, planetLineTable)

	var snap domain.RoadSnap
	err := r.db.GetContext(ctx, &snap, query,
		lon, lat,
		pq.Array(drivableHighways),
		mercatorRadius(lat, maxMeters),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find nearest road",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	if snap.DistanceMeters > maxMeters {
		return nil, nil
	}

	return &snap, nil
}

// mercatorRadius переводит метры на местности в единицы EPSG:3857 на широте lat
func mercatorRadius(lat, meters float64) float64 {
	cos := math.Cos(lat * math.Pi / 180)
	if cos < 0.01 {
		cos = 0.01
	}
	return meters / cos
}
