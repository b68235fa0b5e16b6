package handler_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/usecase/dto"
)

type MockPlaceResolver struct {
	mock.Mock
}

func (m *MockPlaceResolver) ResolveByText(ctx context.Context, req dto.SearchPlacesRequest, userID string) (*dto.SearchPlacesResponse, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SearchPlacesResponse), args.Error(1)
}

func (m *MockPlaceResolver) SelectPlace(ctx context.Context, placeID, userID string, req dto.SelectPlaceRequest) (*dto.PlaceResponse, error) {
	args := m.Called(ctx, placeID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PlaceResponse), args.Error(1)
}

type MockReverseGeocoder struct {
	mock.Mock
}

func (m *MockReverseGeocoder) ResolveByCoordinate(ctx context.Context, lat, lon float64) *domain.Place {
	args := m.Called(ctx, lat, lon)
	return args.Get(0).(*domain.Place)
}

type MockCoordinateValidator struct {
	mock.Mock
}

func (m *MockCoordinateValidator) ValidateCoordinate(ctx context.Context, lat, lon float64, category string) domain.ValidatedCoordinate {
	args := m.Called(ctx, lat, lon, category)
	return args.Get(0).(domain.ValidatedCoordinate)
}

type MockPickupPointService struct {
	mock.Mock
}

func (m *MockPickupPointService) GetPickupPoints(ctx context.Context, placeID string, req dto.PickupPointsRequest) (*dto.PickupPointsResponse, error) {
	args := m.Called(ctx, placeID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PickupPointsResponse), args.Error(1)
}

func (m *MockPickupPointService) SuggestPickupPoint(ctx context.Context, placeID, userID string, req dto.SuggestPickupPointRequest) (*dto.PickupPointResponse, error) {
	args := m.Called(ctx, placeID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PickupPointResponse), args.Error(1)
}

func (m *MockPickupPointService) ConfirmPickupPoint(ctx context.Context, pointID, userID string) (*dto.ConfirmPickupPointResponse, error) {
	args := m.Called(ctx, pointID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConfirmPickupPointResponse), args.Error(1)
}

func (m *MockPickupPointService) SelectPickupPoint(ctx context.Context, pointID string) (*dto.PickupPointResponse, error) {
	args := m.Called(ctx, pointID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PickupPointResponse), args.Error(1)
}

type MockHomeWorkInferrer struct {
	mock.Mock
}

func (m *MockHomeWorkInferrer) InferHomeWork(ctx context.Context, userID string) (*dto.InferredPlacesResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.InferredPlacesResponse), args.Error(1)
}
