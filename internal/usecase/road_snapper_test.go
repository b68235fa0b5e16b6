package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/usecase"
)

func TestRoadSnapper_ValidateCoordinate(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	lat, lon := 14.6537, 121.0685

	t.Run("school 80m from road is snapped", func(t *testing.T) {
		roads := &MockRoadRepository{}
		roads.On("NearestRoad", mock.Anything, lat, lon, 100.0).
			Return(&domain.RoadSnap{Lat: 14.6544, Lon: 121.0687, DistanceMeters: 80, RoadName: "Commonwealth Ave"}, nil)

		res := usecase.NewRoadSnapper(roads, time.Second, logger).ValidateCoordinate(ctx, lat, lon, "school")

		assert.True(t, res.Adjusted)
		assert.Equal(t, domain.CoordinateSourceRoadSnapped, res.Source)
		require.NotNil(t, res.DistanceMeters)
		assert.InDelta(t, 80, *res.DistanceMeters, 0.01)
		assert.Equal(t, 14.6544, res.Lat)
	})

	t.Run("general category leaves 80m coordinate untouched", func(t *testing.T) {
		roads := &MockRoadRepository{}
		roads.On("NearestRoad", mock.Anything, lat, lon, 50.0).Return(nil, nil)

		res := usecase.NewRoadSnapper(roads, time.Second, logger).ValidateCoordinate(ctx, lat, lon, "bakery")

		assert.False(t, res.Adjusted)
		assert.Equal(t, lat, res.Lat)
		assert.Equal(t, lon, res.Lon)
		assert.Nil(t, res.DistanceMeters)
		assert.Equal(t, domain.CoordinateSourceOriginal, res.Source)
	})

	t.Run("already on road", func(t *testing.T) {
		roads := &MockRoadRepository{}
		roads.On("NearestRoad", mock.Anything, lat, lon, 150.0).
			Return(&domain.RoadSnap{Lat: 14.65371, Lon: 121.06851, DistanceMeters: 12}, nil)

		res := usecase.NewRoadSnapper(roads, time.Second, logger).ValidateCoordinate(ctx, lat, lon, "Shopping-Centre")

		assert.False(t, res.Adjusted)
		assert.Equal(t, lat, res.Lat)
	})

	t.Run("source error fails open", func(t *testing.T) {
		roads := &MockRoadRepository{}
		roads.On("NearestRoad", mock.Anything, lat, lon, 200.0).Return(nil, errors.New("connection refused"))

		res := usecase.NewRoadSnapper(roads, time.Second, logger).ValidateCoordinate(ctx, lat, lon, "airport")

		assert.False(t, res.Adjusted)
		assert.Equal(t, lat, res.Lat)
		assert.Equal(t, domain.CoordinateSourceOriginal, res.Source)
	})

	t.Run("no road source configured", func(t *testing.T) {
		res := usecase.NewRoadSnapper(nil, time.Second, logger).ValidateCoordinate(ctx, lat, lon, "school")

		assert.False(t, res.Adjusted)
		assert.Equal(t, lon, res.Lon)
	})
}
