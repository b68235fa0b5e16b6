package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/errors"
	"github.com/place-resolver/internal/pkg/utils"
	"github.com/place-resolver/internal/usecase/dto"
)

const (
	defaultPickupPointsLimit = 10
	maxConfirmAttempts       = 3
)

// PickupPointUseCase - точки посадки: выдача, предложение, подтверждение, выбор
type PickupPointUseCase struct {
	pickupRepo repository.PickupPointRepository
	placeRepo  repository.PlaceRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewPickupPointUseCase - создание нового PickupPointUseCase
func NewPickupPointUseCase(
	pickupRepo repository.PickupPointRepository,
	placeRepo repository.PlaceRepository,
	logger *zap.Logger,
) *PickupPointUseCase {
	return &PickupPointUseCase{
		pickupRepo: pickupRepo,
		placeRepo:  placeRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// GetPickupPoints - точки места: сначала проверенные, затем ближайшие (если задана координата),
// затем самые используемые
func (uc *PickupPointUseCase) GetPickupPoints(ctx context.Context, placeID string, req dto.PickupPointsRequest) (*dto.PickupPointsResponse, error) {
	points, err := uc.pickupRepo.ListByParent(ctx, placeID)
	if err != nil {
		uc.logger.Error("Failed to list pickup points", zap.String("place_id", placeID), zap.Error(err))
		return nil, err
	}

	hasLocation := req.Lat != nil && req.Lon != nil
	if hasLocation {
		for _, p := range points {
			d := utils.HaversineDistance(*req.Lat, *req.Lon, p.Lat, p.Lon)
			p.DistanceKm = &d
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.Verified != b.Verified {
			return a.Verified
		}
		if hasLocation && *a.DistanceKm != *b.DistanceKm {
			return *a.DistanceKm < *b.DistanceKm
		}
		return a.UseCount > b.UseCount
	})

	limit := req.Limit
	if limit <= 0 {
		limit = defaultPickupPointsLimit
	}
	if len(points) > limit {
		points = points[:limit]
	}

	return &dto.PickupPointsResponse{
		PickupPoints: points,
		Total:        len(points),
	}, nil
}

// SuggestPickupPoint - создание непроверенной точки у существующего места
func (uc *PickupPointUseCase) SuggestPickupPoint(ctx context.Context, placeID, userID string, req dto.SuggestPickupPointRequest) (*dto.PickupPointResponse, error) {
	if req.Lat == nil || req.Lon == nil || !utils.ValidateCoordinates(*req.Lat, *req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	if _, err := uc.placeRepo.GetByID(ctx, placeID); err != nil {
		return nil, err
	}

	point := &domain.PickupPoint{
		ID:         uuid.New().String(),
		PlaceID:    placeID,
		Lat:        *req.Lat,
		Lon:        *req.Lon,
		Kind:       req.Kind,
		Name:       strings.TrimSpace(req.Name),
		Notes:      req.Notes,
		Accessible: req.Accessible,
		CreatedAt:  uc.now().UTC(),
	}
	if userID != "" {
		by := userID
		point.CreatedBy = &by
	}
	point.Normalize()

	if err := uc.pickupRepo.Create(ctx, point); err != nil {
		uc.logger.Error("Failed to create pickup point", zap.String("place_id", placeID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Pickup point suggested",
		zap.String("id", point.ID),
		zap.String("place_id", placeID),
		zap.String("kind", point.Kind))

	return &dto.PickupPointResponse{PickupPoint: point}, nil
}

// ConfirmPickupPoint - независимое подтверждение точки пользователем.
// Повторное подтверждение тем же пользователем ничего не меняет.
func (uc *PickupPointUseCase) ConfirmPickupPoint(ctx context.Context, pointID, userID string) (*dto.ConfirmPickupPointResponse, error) {
	if userID == "" {
		return nil, errors.ErrUserRequired
	}

	point, err := uc.pickupRepo.GetByID(ctx, pointID)
	if err != nil {
		return nil, err
	}

	inserted, err := uc.pickupRepo.InsertVerification(ctx, pointID, userID)
	if err != nil {
		uc.logger.Error("Failed to record verification", zap.String("pickup_point_id", pointID), zap.Error(err))
		return nil, err
	}
	if !inserted {
		return &dto.ConfirmPickupPointResponse{PickupPoint: point, Counted: false}, nil
	}

	for attempt := 1; attempt <= maxConfirmAttempts; attempt++ {
		expected := point.VerificationCount
		transition := point.ApplyConfirmation(userID, uc.now().UTC())

		swapped, err := uc.pickupRepo.CompareAndSwapVerification(ctx, point, expected)
		if err != nil {
			uc.logger.Error("Failed to update verification count", zap.String("pickup_point_id", pointID), zap.Error(err))
			uc.rollbackVerification(ctx, pointID, userID)
			return nil, err
		}
		if swapped {
			if transition == domain.TransitionVerified {
				uc.logger.Info("Pickup point verified",
					zap.String("pickup_point_id", pointID),
					zap.Int("verification_count", point.VerificationCount))
			}
			return &dto.ConfirmPickupPointResponse{
				PickupPoint:  point,
				Counted:      true,
				JustVerified: transition == domain.TransitionVerified,
			}, nil
		}

		uc.logger.Debug("Verification count changed concurrently, retrying",
			zap.String("pickup_point_id", pointID),
			zap.Int("attempt", attempt))

		point, err = uc.pickupRepo.GetByID(ctx, pointID)
		if err != nil {
			uc.rollbackVerification(ctx, pointID, userID)
			return nil, err
		}
	}

	uc.logger.Warn("Gave up updating verification count", zap.String("pickup_point_id", pointID))
	uc.rollbackVerification(ctx, pointID, userID)
	return nil, errors.ErrConcurrentUpdate
}

// rollbackVerification - подтверждение без счётчика снимается, чтобы повтор пользователя засчитался
func (uc *PickupPointUseCase) rollbackVerification(ctx context.Context, pointID, userID string) {
	if err := uc.pickupRepo.DeleteVerification(context.WithoutCancel(ctx), pointID, userID); err != nil {
		uc.logger.Error("Failed to roll back verification",
			zap.String("pickup_point_id", pointID),
			zap.String("user_id", userID),
			zap.Error(err))
	}
}

// SelectPickupPoint - точка выбрана для посадки/высадки, счётчик использования не критичен
func (uc *PickupPointUseCase) SelectPickupPoint(ctx context.Context, pointID string) (*dto.PickupPointResponse, error) {
	point, err := uc.pickupRepo.GetByID(ctx, pointID)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	if err := uc.pickupRepo.IncrementUse(ctx, pointID, now); err != nil {
		uc.logger.Warn("Failed to increment pickup point use", zap.String("pickup_point_id", pointID), zap.Error(err))
	} else {
		point.MarkUsed(now)
	}

	return &dto.PickupPointResponse{PickupPoint: point}, nil
}
