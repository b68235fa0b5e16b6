package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/errors"
	"github.com/place-resolver/internal/pkg/utils"
	"github.com/place-resolver/internal/usecase/dto"
)

const (
	homeHoursFrom = 20
	homeHoursTo   = 6
	workHoursFrom = 8
	workHoursTo   = 18

	// minHomeWorkDistanceKm - работа ближе к дому считается тем же местом
	minHomeWorkDistanceKm = 0.2
)

// PersonalizationUseCase - выводы из истории посещений пользователя
type PersonalizationUseCase struct {
	repo   repository.PersonalizationRepository
	logger *zap.Logger
}

// NewPersonalizationUseCase - создание нового PersonalizationUseCase
func NewPersonalizationUseCase(repo repository.PersonalizationRepository, logger *zap.Logger) *PersonalizationUseCase {
	return &PersonalizationUseCase{
		repo:   repo,
		logger: logger,
	}
}

// InferHomeWork - дом: самое посещаемое место с типичным часом 20:00-06:59,
// работа: самое посещаемое место с типичным часом 08:00-18:59 не ближе 200 м от дома
func (uc *PersonalizationUseCase) InferHomeWork(ctx context.Context, userID string) (*dto.InferredPlacesResponse, error) {
	if userID == "" {
		return nil, errors.ErrUserRequired
	}

	locations, err := uc.repo.FrequentLocations(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to load frequent locations", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	var home, work *domain.FrequentLocation

	for i := range locations {
		loc := &locations[i]
		if isHomeHour(loc.TypicalHour) && (home == nil || loc.VisitCount > home.VisitCount) {
			home = loc
		}
	}

	for i := range locations {
		loc := &locations[i]
		if !isWorkHour(loc.TypicalHour) {
			continue
		}
		if home != nil && utils.HaversineDistance(home.Lat, home.Lon, loc.Lat, loc.Lon) < minHomeWorkDistanceKm {
			continue
		}
		if work == nil || loc.VisitCount > work.VisitCount {
			work = loc
		}
	}

	return &dto.InferredPlacesResponse{
		Home: toInferredPlace(home),
		Work: toInferredPlace(work),
	}, nil
}

func isHomeHour(h int) bool {
	return h >= homeHoursFrom || h <= homeHoursTo
}

func isWorkHour(h int) bool {
	return h >= workHoursFrom && h <= workHoursTo
}

func toInferredPlace(loc *domain.FrequentLocation) *dto.InferredPlace {
	if loc == nil {
		return nil
	}
	return &dto.InferredPlace{
		PlaceID:     loc.PlaceID,
		Name:        loc.Name,
		Lat:         loc.Lat,
		Lon:         loc.Lon,
		VisitCount:  loc.VisitCount,
		TypicalHour: loc.TypicalHour,
	}
}
