package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain"
	apperrors "github.com/place-resolver/internal/pkg/errors"
	"github.com/place-resolver/internal/usecase"
)

func TestPlaceCacheService_Store(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	candidate := &domain.Place{
		ID:      "google:abc",
		Name:    "Robinsons Galleria",
		Address: "EDSA cor. Ortigas Ave, Quezon City",
		Lat:     14.6186,
		Lon:     121.0567,
		Source:  domain.SourceGoogle,
	}

	t.Run("existing coordinate is reused", func(t *testing.T) {
		places := &MockPlaceRepository{}
		existing := &domain.Place{ID: "loc-1"}
		places.On("FindByCoordinate", ctx, candidate.Lat, candidate.Lon).Return(existing, nil)

		stored, err := usecase.NewPlaceCacheService(places, logger).Store(ctx, candidate)

		require.NoError(t, err)
		assert.Same(t, existing, stored)
		places.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("existing name and address is reused", func(t *testing.T) {
		places := &MockPlaceRepository{}
		existing := &domain.Place{ID: "loc-2"}
		places.On("FindByCoordinate", ctx, candidate.Lat, candidate.Lon).Return(nil, apperrors.ErrLocationNotFound)
		places.On("FindByNameAddress", ctx, candidate.Name, candidate.Address).Return(existing, nil)

		stored, err := usecase.NewPlaceCacheService(places, logger).Store(ctx, candidate)

		require.NoError(t, err)
		assert.Equal(t, "loc-2", stored.ID)
		places.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("new place inserted with geohash", func(t *testing.T) {
		places := &MockPlaceRepository{}
		places.On("FindByCoordinate", ctx, candidate.Lat, candidate.Lon).Return(nil, apperrors.ErrLocationNotFound)
		places.On("FindByNameAddress", ctx, candidate.Name, candidate.Address).Return(nil, apperrors.ErrLocationNotFound)
		places.On("Insert", ctx, mock.MatchedBy(func(p *domain.Place) bool {
			return p.ID == "google:abc" && len(p.Geohash) == 9 && !p.CreatedAt.IsZero()
		})).Return(nil)

		stored, err := usecase.NewPlaceCacheService(places, logger).Store(ctx, candidate)

		require.NoError(t, err)
		assert.Equal(t, domain.SourceLocal, stored.Source)
		assert.Equal(t, domain.SourceGoogle, candidate.Source)
		places.AssertExpectations(t)
	})

	t.Run("lookup error propagates from Store and is swallowed by Write", func(t *testing.T) {
		places := &MockPlaceRepository{}
		places.On("FindByCoordinate", ctx, candidate.Lat, candidate.Lon).Return(nil, errors.New("timeout"))

		svc := usecase.NewPlaceCacheService(places, logger)
		_, err := svc.Store(ctx, candidate)
		assert.Error(t, err)

		assert.NotPanics(t, func() { svc.Write(ctx, candidate) })
	})
}

func TestInlineCacheWriter_WritesInBackground(t *testing.T) {
	places := &MockPlaceRepository{}
	place := &domain.Place{Name: "Ayala Triangle", Address: "Makati", Lat: 14.5566, Lon: 121.0233}

	places.On("FindByCoordinate", mock.Anything, place.Lat, place.Lon).Return(nil, apperrors.ErrLocationNotFound)
	places.On("FindByNameAddress", mock.Anything, place.Name, place.Address).Return(nil, apperrors.ErrLocationNotFound)
	places.On("Insert", mock.Anything, mock.AnythingOfType("*domain.Place")).Return(nil)

	writer := usecase.NewInlineCacheWriter(usecase.NewPlaceCacheService(places, zap.NewNop()))

	ctx, cancel := context.WithCancel(context.Background())
	writer.Write(ctx, place)
	cancel()
	writer.Wait()

	places.AssertCalled(t, "Insert", mock.Anything, mock.AnythingOfType("*domain.Place"))
}

func TestStreamCacheWriter_Publishes(t *testing.T) {
	stream := &MockStreamRepository{}
	place := &domain.Place{ID: "osm:N1", Name: "Rizal Park", Lat: 14.5826, Lon: 120.9787}

	stream.On("PublishToStream", mock.Anything, domain.StreamGeocodeCache, mock.MatchedBy(func(ev domain.GeocodeCacheEvent) bool {
		return ev.Place.ID == "osm:N1" && !ev.ResolvedAt.IsZero()
	})).Return(errors.New("redis down")).Once()

	writer := usecase.NewStreamCacheWriter(stream, zap.NewNop())

	assert.NotPanics(t, func() { writer.Write(context.Background(), place) })
	stream.AssertExpectations(t)
}
