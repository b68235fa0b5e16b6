package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	apperrors "github.com/place-resolver/internal/pkg/errors"
	"go.uber.org/zap"
)

const placeColumns = `id, name, address, lat, lon, category, geohash, search_count, created_at`

// placeRow - строка places с вычисляемыми колонками поиска
type placeRow struct {
	domain.Place
	Similarity sql.NullFloat64 `db:"similarity"`
	DistanceM  sql.NullFloat64 `db:"distance_m"`
}

func (r placeRow) toDomain() *domain.Place {
	p := r.Place
	if r.Similarity.Valid {
		sim := r.Similarity.Float64
		p.Similarity = &sim
	}
	if r.DistanceM.Valid {
		km := r.DistanceM.Float64 / 1000
		p.DistanceKm = &km
	}
	p.Source = domain.SourceLocal
	return &p
}

type placeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPlaceRepository(db *DB) repository.PlaceRepository {
	return &placeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *placeRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Place, error) {
	q := `
		SELECT ` + placeColumns + `,
			similarity(lower(name), lower($1)) AS similarity
		FROM places
		WHERE lower(name) % lower($1)
		   OR strpos(lower(name), lower($1)) > 0
		ORDER BY similarity DESC, search_count DESC
		LIMIT $2
	`

	var rows []placeRow
	if err := r.db.SelectContext(ctx, &rows, q, query, limit); err != nil {
		r.logger.Error("Failed to search places", zap.String("query", query), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return toPlaces(rows), nil
}

func (r *placeRepository) SearchNearby(
	ctx context.Context,
	query string,
	lat, lon, radiusKm float64,
	limit int,
) ([]*domain.Place, error) {
	q := `
		WITH point AS (
			SELECT ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography AS geom
		)
		SELECT ` + placeColumns + `,
			similarity(lower(name), lower($1)) AS similarity,
			ST_Distance(geometry::geography, point.geom) AS distance_m
		FROM places, point
		WHERE ST_DWithin(geometry::geography, point.geom, $4)
		  AND (lower(name) % lower($1) OR strpos(lower(name), lower($1)) > 0)
		ORDER BY similarity DESC, distance_m ASC
		LIMIT $5
	`

	var rows []placeRow
	if err := r.db.SelectContext(ctx, &rows, q, query, lon, lat, radiusKm*1000, limit); err != nil {
		r.logger.Error("Failed to search nearby places",
			zap.String("query", query),
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return toPlaces(rows), nil
}

// FindByCoordinate - совпадение координаты с точностью 4 знака (~11 м)
func (r *placeRepository) FindByCoordinate(ctx context.Context, lat, lon float64) (*domain.Place, error) {
	q := `
		SELECT ` + placeColumns + `
		FROM places
		WHERE round(lat::numeric, 4) = round($1::numeric, 4)
		  AND round(lon::numeric, 4) = round($2::numeric, 4)
		ORDER BY search_count DESC
		LIMIT 1
	`
	return r.getOne(ctx, q, lat, lon)
}

func (r *placeRepository) FindByNameAddress(ctx context.Context, name, address string) (*domain.Place, error) {
	q := `
		SELECT ` + placeColumns + `
		FROM places
		WHERE name = $1 AND address = $2
		LIMIT 1
	`
	return r.getOne(ctx, q, name, address)
}

func (r *placeRepository) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	q := `SELECT ` + placeColumns + ` FROM places WHERE id = $1`
	return r.getOne(ctx, q, id)
}

func (r *placeRepository) Insert(ctx context.Context, place *domain.Place) error {
	q := `
		INSERT INTO places (id, name, address, lat, lon, category, geohash, search_count, created_at)
		VALUES (:id, :name, :address, :lat, :lon, :category, :geohash, :search_count, :created_at)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.NamedExecContext(ctx, q, place); err != nil {
		r.logger.Error("Failed to insert place", zap.String("id", place.ID), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	return nil
}

func (r *placeRepository) IncrementPopularity(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE places SET search_count = search_count + 1 WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to increment popularity", zap.String("id", id), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrLocationNotFound
	}
	return nil
}

func (r *placeRepository) getOne(ctx context.Context, q string, args ...interface{}) (*domain.Place, error) {
	var row placeRow
	err := r.db.GetContext(ctx, &row, q, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrLocationNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get place", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return row.toDomain(), nil
}

func toPlaces(rows []placeRow) []*domain.Place {
	places := make([]*domain.Place, 0, len(rows))
	for _, row := range rows {
		places = append(places, row.toDomain())
	}
	return places
}
