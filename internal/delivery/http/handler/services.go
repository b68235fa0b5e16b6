package handler

import (
	"context"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/usecase/dto"
)

// PlaceResolver - поиск и выбор мест
type PlaceResolver interface {
	ResolveByText(ctx context.Context, req dto.SearchPlacesRequest, userID string) (*dto.SearchPlacesResponse, error)
	SelectPlace(ctx context.Context, placeID, userID string, req dto.SelectPlaceRequest) (*dto.PlaceResponse, error)
}

// ReverseGeocoder - адрес по координате, всегда возвращает место
type ReverseGeocoder interface {
	ResolveByCoordinate(ctx context.Context, lat, lon float64) *domain.Place
}

// CoordinateValidator - привязка координаты к дороге
type CoordinateValidator interface {
	ValidateCoordinate(ctx context.Context, lat, lon float64, category string) domain.ValidatedCoordinate
}

// PickupPointService - точки посадки
type PickupPointService interface {
	GetPickupPoints(ctx context.Context, placeID string, req dto.PickupPointsRequest) (*dto.PickupPointsResponse, error)
	SuggestPickupPoint(ctx context.Context, placeID, userID string, req dto.SuggestPickupPointRequest) (*dto.PickupPointResponse, error)
	ConfirmPickupPoint(ctx context.Context, pointID, userID string) (*dto.ConfirmPickupPointResponse, error)
	SelectPickupPoint(ctx context.Context, pointID string) (*dto.PickupPointResponse, error)
}

// HomeWorkInferrer - вывод дома и работы из истории
type HomeWorkInferrer interface {
	InferHomeWork(ctx context.Context, userID string) (*dto.InferredPlacesResponse, error)
}
