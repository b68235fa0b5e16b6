package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/errors"
	"github.com/place-resolver/internal/usecase/dto"
)

const maxQueryLength = 200

// ResolveUseCase - поиск мест по тексту: сбор, слияние, ранжирование
type ResolveUseCase struct {
	aggregator      *Aggregator
	ranker          *Ranker
	placeRepo       repository.PlaceRepository
	personalization repository.PersonalizationRepository
	placeCache      *PlaceCacheService
	defaultLimit    int
	maxLimit        int
	logger          *zap.Logger
	now             func() time.Time
}

// NewResolveUseCase - создание нового ResolveUseCase
func NewResolveUseCase(
	aggregator *Aggregator,
	ranker *Ranker,
	placeRepo repository.PlaceRepository,
	personalization repository.PersonalizationRepository,
	placeCache *PlaceCacheService,
	defaultLimit, maxLimit int,
	logger *zap.Logger,
) *ResolveUseCase {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &ResolveUseCase{
		aggregator:      aggregator,
		ranker:          ranker,
		placeRepo:       placeRepo,
		personalization: personalization,
		placeCache:      placeCache,
		defaultLimit:    defaultLimit,
		maxLimit:        maxLimit,
		logger:          logger,
		now:             time.Now,
	}
}

// ResolveByText - поиск и ранжирование мест по тексту
func (uc *ResolveUseCase) ResolveByText(ctx context.Context, req dto.SearchPlacesRequest, userID string) (*dto.SearchPlacesResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" || len(query) > maxQueryLength {
		return nil, errors.ErrInvalidQuery
	}

	limit := req.Limit
	if limit <= 0 {
		limit = uc.defaultLimit
	}
	if limit > uc.maxLimit {
		limit = uc.maxLimit
	}

	var userLoc *domain.Point
	if req.Lat != nil && req.Lon != nil {
		userLoc = &domain.Point{Lat: *req.Lat, Lon: *req.Lon}
	}

	set, err := uc.aggregator.Collect(ctx, domain.SearchQuery{
		Text:         query,
		UserLocation: userLoc,
		Limit:        limit,
	})
	if err != nil {
		return nil, err
	}

	merged := MergeCandidates(set)

	now := uc.now()
	qc := QueryContext{
		Query:        query,
		UserLocation: userLoc,
		UserID:       userID,
		HourOfDay:    now.Hour(),
		DayOfWeek:    int(now.Weekday()),
	}

	ranked := uc.ranker.Rank(merged, qc, uc.loadPersonalization(ctx, userID, merged), limit)

	uc.logger.Debug("Resolved query",
		zap.String("query", query),
		zap.Int("candidates", set.Total()),
		zap.Int("merged", len(merged)),
		zap.Int("returned", len(ranked)))

	return &dto.SearchPlacesResponse{
		Results: ranked,
		Total:   len(ranked),
	}, nil
}

// loadPersonalization - ошибки не критичны, без сигналов персонализация равна 0
func (uc *ResolveUseCase) loadPersonalization(ctx context.Context, userID string, places []*domain.Place) *domain.Personalization {
	if userID == "" || uc.personalization == nil || len(places) == 0 {
		return nil
	}

	signals := &domain.Personalization{
		SavedPlaceIDs: make(map[string]string),
		UseCounts:     make(map[string]int),
	}

	saved, err := uc.personalization.SavedPlaces(ctx, userID)
	if err != nil {
		uc.logger.Warn("Failed to load saved places", zap.String("user_id", userID), zap.Error(err))
	}
	for _, sp := range saved {
		signals.SavedPlaceIDs[sp.PlaceID] = sp.Kind
	}

	ids := make([]string, 0, len(places))
	for _, p := range places {
		ids = append(ids, p.ID)
	}
	counts, err := uc.personalization.PlaceUseCounts(ctx, userID, ids)
	if err != nil {
		uc.logger.Warn("Failed to load place use counts", zap.String("user_id", userID), zap.Error(err))
	}
	for id, n := range counts {
		signals.UseCounts[id] = n
	}

	return signals
}

// SelectPlace - пользователь выбрал место: рост популярности и запись в историю.
// Место провайдера, которого нет в базе, сохраняется локально из req.Place.
func (uc *ResolveUseCase) SelectPlace(ctx context.Context, placeID, userID string, req dto.SelectPlaceRequest) (*dto.PlaceResponse, error) {
	action := req.Action
	if action == "" {
		action = domain.ActionSelect
	}

	place, err := uc.placeRepo.GetByID(ctx, placeID)
	if err != nil {
		if err != errors.ErrLocationNotFound || req.Place == nil {
			return nil, err
		}

		place = &domain.Place{
			ID:       placeID,
			Name:     req.Place.Name,
			Address:  req.Place.Address,
			Lat:      req.Place.Lat,
			Lon:      req.Place.Lon,
			Category: req.Place.Category,
		}
		place, err = uc.placeCache.Store(ctx, place)
		if err != nil {
			return nil, err
		}
	}

	if err := uc.placeRepo.IncrementPopularity(ctx, place.ID); err != nil {
		uc.logger.Warn("Failed to increment popularity", zap.String("place_id", place.ID), zap.Error(err))
	} else {
		place.SearchCount++
	}

	if userID != "" && uc.personalization != nil {
		now := uc.now()
		id := place.ID
		entry := &domain.LocationHistoryEntry{
			UserID:    userID,
			PlaceID:   &id,
			Lat:       place.Lat,
			Lon:       place.Lon,
			Action:    action,
			HourOfDay: now.Hour(),
			DayOfWeek: int(now.Weekday()),
			CreatedAt: now,
		}
		if err := uc.personalization.AppendHistory(ctx, entry); err != nil {
			uc.logger.Warn("Failed to append location history", zap.String("user_id", userID), zap.Error(err))
		}
	}

	return &dto.PlaceResponse{Place: place}, nil
}
