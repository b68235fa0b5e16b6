package testhelpers

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/place-resolver/internal/domain"
)

// SeedPlaces inserts places directly, bypassing the repository
func SeedPlaces(ctx context.Context, db *sqlx.DB, places ...domain.Place) error {
	q := `
		INSERT INTO places (id, name, address, lat, lon, category, geohash, search_count, created_at)
		VALUES (:id, :name, :address, :lat, :lon, :category, :geohash, :search_count, :created_at)
	`
	for i := range places {
		p := places[i]
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now().UTC()
		}
		p.Normalize()
		if _, err := db.NamedExecContext(ctx, q, &p); err != nil {
			return fmt.Errorf("seed place %s: %w", p.ID, err)
		}
	}
	return nil
}

// SeedSavedPlace marks a place as saved by the user
func SeedSavedPlace(ctx context.Context, db *sqlx.DB, userID, placeID, kind string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO saved_places (user_id, place_id, kind) VALUES ($1, $2, $3)`,
		userID, placeID, kind)
	if err != nil {
		return fmt.Errorf("seed saved place %s: %w", placeID, err)
	}
	return nil
}

// SeedFrequentLocation inserts a row of the externally maintained aggregate
func SeedFrequentLocation(ctx context.Context, db *sqlx.DB, loc domain.FrequentLocation) error {
	q := `
		INSERT INTO frequent_locations (user_id, place_id, name, visit_count, typical_hour, centroid_lat, centroid_lon)
		VALUES (:user_id, :place_id, :name, :visit_count, :typical_hour, :centroid_lat, :centroid_lon)
	`
	if _, err := db.NamedExecContext(ctx, q, loc); err != nil {
		return fmt.Errorf("seed frequent location: %w", err)
	}
	return nil
}
