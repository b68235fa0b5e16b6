package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	apperrors "github.com/place-resolver/internal/pkg/errors"
	"go.uber.org/zap"
)

type personalizationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPersonalizationRepository(db *DB) repository.PersonalizationRepository {
	return &personalizationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *personalizationRepository) SavedPlaces(ctx context.Context, userID string) ([]domain.SavedPlace, error) {
	var saved []domain.SavedPlace
	err := r.db.SelectContext(ctx, &saved,
		`SELECT user_id, place_id, kind FROM saved_places WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error("Failed to load saved places", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return saved, nil
}

func (r *personalizationRepository) PlaceUseCounts(ctx context.Context, userID string, placeIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(placeIDs))
	if len(placeIDs) == 0 {
		return counts, nil
	}

	q := `
		SELECT place_id, COUNT(*) AS uses
		FROM location_history
		WHERE user_id = $1 AND place_id = ANY($2)
		GROUP BY place_id
	`
	rows, err := r.db.QueryContext(ctx, q, userID, pq.Array(placeIDs))
	if err != nil {
		r.logger.Error("Failed to load place use counts", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		var placeID string
		var uses int
		if err := rows.Scan(&placeID, &uses); err != nil {
			r.logger.Error("Failed to scan use count", zap.Error(err))
			continue
		}
		counts[placeID] = uses
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.ErrDatabaseError
	}

	return counts, nil
}

func (r *personalizationRepository) FrequentLocations(ctx context.Context, userID string) ([]domain.FrequentLocation, error) {
	q := `
		SELECT user_id, place_id, name, visit_count, typical_hour, centroid_lat, centroid_lon
		FROM frequent_locations
		WHERE user_id = $1
		ORDER BY visit_count DESC
	`
	var locations []domain.FrequentLocation
	if err := r.db.SelectContext(ctx, &locations, q, userID); err != nil {
		r.logger.Error("Failed to load frequent locations", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return locations, nil
}

func (r *personalizationRepository) AppendHistory(ctx context.Context, entry *domain.LocationHistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	q := `
		INSERT INTO location_history (id, user_id, place_id, lat, lon, action, hour_of_day, day_of_week, created_at)
		VALUES (:id, :user_id, :place_id, :lat, :lon, :action, :hour_of_day, :day_of_week, :created_at)
	`
	if _, err := r.db.NamedExecContext(ctx, q, entry); err != nil {
		r.logger.Error("Failed to append history",
			zap.String("user_id", entry.UserID),
			zap.String("action", entry.Action),
			zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	return nil
}
