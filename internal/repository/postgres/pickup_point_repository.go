package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	apperrors "github.com/place-resolver/internal/pkg/errors"
	"go.uber.org/zap"
)

const pickupPointColumns = `
	id, place_id, lat, lon, geohash, kind, name, notes,
	verified, verification_count, verified_at, verified_by,
	accessible, use_count, last_used_at, created_by, created_at`

type pickupPointRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPickupPointRepository(db *DB) repository.PickupPointRepository {
	return &pickupPointRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *pickupPointRepository) ListByParent(ctx context.Context, placeID string) ([]*domain.PickupPoint, error) {
	q := `SELECT ` + pickupPointColumns + ` FROM pickup_points WHERE place_id = $1`

	var points []*domain.PickupPoint
	if err := r.db.SelectContext(ctx, &points, q, placeID); err != nil {
		r.logger.Error("Failed to list pickup points", zap.String("place_id", placeID), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return points, nil
}

func (r *pickupPointRepository) GetByID(ctx context.Context, id string) (*domain.PickupPoint, error) {
	q := `SELECT ` + pickupPointColumns + ` FROM pickup_points WHERE id = $1`

	var point domain.PickupPoint
	err := r.db.GetContext(ctx, &point, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrPickupPointNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get pickup point", zap.String("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return &point, nil
}

func (r *pickupPointRepository) Create(ctx context.Context, point *domain.PickupPoint) error {
	q := `
		INSERT INTO pickup_points (
			id, place_id, lat, lon, geohash, kind, name, notes,
			verified, verification_count, accessible, use_count, created_by, created_at
		) VALUES (
			:id, :place_id, :lat, :lon, :geohash, :kind, :name, :notes,
			:verified, :verification_count, :accessible, :use_count, :created_by, :created_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, q, point); err != nil {
		r.logger.Error("Failed to create pickup point",
			zap.String("id", point.ID),
			zap.String("place_id", point.PlaceID),
			zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	return nil
}

// InsertVerification - повторное подтверждение того же пользователя гасится первичным ключом
func (r *pickupPointRepository) InsertVerification(ctx context.Context, pointID, userID string) (bool, error) {
	q := `
		INSERT INTO pickup_point_verifications (pickup_point_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (pickup_point_id, user_id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, q, pointID, userID)
	if err != nil {
		r.logger.Error("Failed to insert verification",
			zap.String("pickup_point_id", pointID),
			zap.String("user_id", userID),
			zap.Error(err))
		return false, apperrors.ErrDatabaseError
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.ErrDatabaseError
	}
	return n == 1, nil
}

// CompareAndSwapVerification - оптимистичная блокировка по verification_count
func (r *pickupPointRepository) CompareAndSwapVerification(
	ctx context.Context,
	point *domain.PickupPoint,
	expectedCount int,
) (bool, error) {
	q := `
		UPDATE pickup_points
		SET verification_count = $2,
			verified = $3,
			verified_at = COALESCE(verified_at, $4),
			verified_by = COALESCE(verified_by, $5)
		WHERE id = $1 AND verification_count = $6
	`
	res, err := r.db.ExecContext(ctx, q,
		point.ID,
		point.VerificationCount,
		point.Verified,
		point.VerifiedAt,
		point.VerifiedBy,
		expectedCount,
	)
	if err != nil {
		r.logger.Error("Failed to update verification", zap.String("id", point.ID), zap.Error(err))
		return false, apperrors.ErrDatabaseError
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.ErrDatabaseError
	}
	return n == 1, nil
}

func (r *pickupPointRepository) DeleteVerification(ctx context.Context, pointID, userID string) error {
	q := `DELETE FROM pickup_point_verifications WHERE pickup_point_id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, q, pointID, userID); err != nil {
		r.logger.Error("Failed to delete verification",
			zap.String("pickup_point_id", pointID),
			zap.String("user_id", userID),
			zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	return nil
}

func (r *pickupPointRepository) IncrementUse(ctx context.Context, id string, at time.Time) error {
	q := `UPDATE pickup_points SET use_count = use_count + 1, last_used_at = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, q, id, at)
	if err != nil {
		r.logger.Error("Failed to increment pickup point use", zap.String("id", id), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrPickupPointNotFound
	}
	return nil
}
