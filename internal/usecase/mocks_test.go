package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/place-resolver/internal/domain"
)

// MockPlaceRepository is a mock of PlaceRepository
type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Place, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Place), args.Error(1)
}

func (m *MockPlaceRepository) SearchNearby(ctx context.Context, query string, lat, lon, radiusKm float64, limit int) ([]*domain.Place, error) {
	args := m.Called(ctx, query, lat, lon, radiusKm, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Place), args.Error(1)
}

func (m *MockPlaceRepository) FindByCoordinate(ctx context.Context, lat, lon float64) (*domain.Place, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

func (m *MockPlaceRepository) FindByNameAddress(ctx context.Context, name, address string) (*domain.Place, error) {
	args := m.Called(ctx, name, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

func (m *MockPlaceRepository) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

func (m *MockPlaceRepository) Insert(ctx context.Context, place *domain.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) IncrementPopularity(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPlaceSource is a mock of PlaceSource
type MockPlaceSource struct {
	mock.Mock
	name  string
	delay time.Duration
}

func (m *MockPlaceSource) Name() string {
	return m.name
}

func (m *MockPlaceSource) ForwardSearch(ctx context.Context, query domain.SearchQuery) ([]*domain.Place, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Place), args.Error(1)
}

func (m *MockPlaceSource) ReverseLookup(ctx context.Context, lat, lon float64) (*domain.Place, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

// MockPickupPointRepository is a mock of PickupPointRepository
type MockPickupPointRepository struct {
	mock.Mock
}

func (m *MockPickupPointRepository) ListByParent(ctx context.Context, placeID string) ([]*domain.PickupPoint, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PickupPoint), args.Error(1)
}

func (m *MockPickupPointRepository) GetByID(ctx context.Context, id string) (*domain.PickupPoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PickupPoint), args.Error(1)
}

func (m *MockPickupPointRepository) Create(ctx context.Context, point *domain.PickupPoint) error {
	args := m.Called(ctx, point)
	return args.Error(0)
}

func (m *MockPickupPointRepository) InsertVerification(ctx context.Context, pointID, userID string) (bool, error) {
	args := m.Called(ctx, pointID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPickupPointRepository) CompareAndSwapVerification(ctx context.Context, point *domain.PickupPoint, expectedCount int) (bool, error) {
	args := m.Called(ctx, point, expectedCount)
	return args.Bool(0), args.Error(1)
}

func (m *MockPickupPointRepository) DeleteVerification(ctx context.Context, pointID, userID string) error {
	args := m.Called(ctx, pointID, userID)
	return args.Error(0)
}

func (m *MockPickupPointRepository) IncrementUse(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockPersonalizationRepository is a mock of PersonalizationRepository
type MockPersonalizationRepository struct {
	mock.Mock
}

func (m *MockPersonalizationRepository) SavedPlaces(ctx context.Context, userID string) ([]domain.SavedPlace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedPlace), args.Error(1)
}

func (m *MockPersonalizationRepository) PlaceUseCounts(ctx context.Context, userID string, placeIDs []string) (map[string]int, error) {
	args := m.Called(ctx, userID, placeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockPersonalizationRepository) FrequentLocations(ctx context.Context, userID string) ([]domain.FrequentLocation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FrequentLocation), args.Error(1)
}

func (m *MockPersonalizationRepository) AppendHistory(ctx context.Context, entry *domain.LocationHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockRoadRepository is a mock of RoadRepository
type MockRoadRepository struct {
	mock.Mock
}

func (m *MockRoadRepository) NearestRoad(ctx context.Context, lat, lon, maxMeters float64) (*domain.RoadSnap, error) {
	args := m.Called(ctx, lat, lon, maxMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoadSnap), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func (m *MockStreamRepository) Backlog(ctx context.Context, stream, group string) (int64, error) {
	args := m.Called(ctx, stream, group)
	return args.Get(0).(int64), args.Error(1)
}
