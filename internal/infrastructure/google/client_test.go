package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/place-resolver/internal/config"
	"github.com/place-resolver/internal/domain"
)

func testConfig(baseURL string) *config.ProvidersConfig {
	return &config.ProvidersConfig{
		GoogleAPIKey:   "test_key",
		GoogleBaseURL:  baseURL,
		UserAgent:      "place-resolver-test/1.0",
		RequestTimeout: 2 * time.Second,
		CountryCode:    "ph",
		Region:         config.BoundingBox{MinLat: 4.5, MinLon: 116.9, MaxLat: 21.2, MaxLon: 126.7},
	}
}

func TestClient_ForwardSearch(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful request with region bias", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/place/textsearch/json", r.URL.Path)
			assert.Equal(t, "jollibee", r.URL.Query().Get("query"))
			assert.Equal(t, "ph", r.URL.Query().Get("region"))
			assert.Equal(t, "14.554700,121.024400", r.URL.Query().Get("location"))
			assert.Equal(t, "50000", r.URL.Query().Get("radius"))
			assert.Equal(t, "place-resolver-test/1.0", r.Header.Get("User-Agent"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"status": "OK",
				"results": [
					{"place_id": "ChIJ1", "name": "Jollibee Ayala", "formatted_address": "Ayala Ave, Makati",
					 "geometry": {"location": {"lat": 14.5560, "lng": 121.0230}}, "types": ["restaurant", "food"]},
					{"place_id": "ChIJ2", "name": "Jollibee Tokyo", "formatted_address": "Tokyo",
					 "geometry": {"location": {"lat": 35.6762, "lng": 139.6503}}, "types": ["restaurant"]},
					{"place_id": "", "name": "Broken", "geometry": {"location": {"lat": 14.5, "lng": 121.0}}}
				]
			}`))
		}))
		defer server.Close()

		c := NewGoogleClient(testConfig(server.URL), logger)
		places, err := c.ForwardSearch(context.Background(), domain.SearchQuery{
			Text:         "jollibee",
			UserLocation: &domain.Point{Lat: 14.5547, Lon: 121.0244},
			RadiusKm:     50,
		})

		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "google:ChIJ1", places[0].ID)
		assert.Equal(t, "Jollibee Ayala", places[0].Name)
		assert.Equal(t, "restaurant", places[0].Category)
		assert.Equal(t, domain.SourceGoogle, places[0].Source)
		assert.Len(t, places[0].Geohash, 9)
	})

	t.Run("zero results is not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
		}))
		defer server.Close()

		places, err := NewGoogleClient(testConfig(server.URL), logger).
			ForwardSearch(context.Background(), domain.SearchQuery{Text: "nowhere"})

		require.NoError(t, err)
		assert.Empty(t, places)
	})

	t.Run("denied status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "invalid key"}`))
		}))
		defer server.Close()

		_, err := NewGoogleClient(testConfig(server.URL), logger).
			ForwardSearch(context.Background(), domain.SearchQuery{Text: "sm"})

		assert.ErrorContains(t, err, "REQUEST_DENIED")
	})

	t.Run("http error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := NewGoogleClient(testConfig(server.URL), logger).
			ForwardSearch(context.Background(), domain.SearchQuery{Text: "sm"})

		assert.Error(t, err)
	})

	t.Run("malformed payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status": `))
		}))
		defer server.Close()

		_, err := NewGoogleClient(testConfig(server.URL), logger).
			ForwardSearch(context.Background(), domain.SearchQuery{Text: "sm"})

		assert.Error(t, err)
	})

	t.Run("context deadline", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{"status": "OK", "results": []}`))
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := NewGoogleClient(testConfig(server.URL), logger).ForwardSearch(ctx, domain.SearchQuery{Text: "sm"})

		assert.Error(t, err)
	})
}

func TestClient_ReverseLookup(t *testing.T) {
	logger := zap.NewNop()

	t.Run("uses establishment component as name", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/geocode/json", r.URL.Path)
			assert.Equal(t, "14.618600,121.056700", r.URL.Query().Get("latlng"))

			_, _ = w.Write([]byte(`{
				"status": "OK",
				"results": [{
					"place_id": "ChIJrg",
					"formatted_address": "Robinsons Galleria, EDSA, Quezon City",
					"geometry": {"location": {"lat": 14.6190, "lng": 121.0570}},
					"types": ["shopping_mall"],
					"address_components": [
						{"long_name": "Robinsons Galleria", "types": ["establishment", "point_of_interest"]},
						{"long_name": "Quezon City", "types": ["locality"]}
					]
				}]
			}`))
		}))
		defer server.Close()

		place, err := NewGoogleClient(testConfig(server.URL), logger).ReverseLookup(context.Background(), 14.6186, 121.0567)

		require.NoError(t, err)
		require.NotNil(t, place)
		assert.Equal(t, "google:ChIJrg", place.ID)
		assert.Equal(t, "Robinsons Galleria", place.Name)
		assert.Equal(t, "shopping_mall", place.Category)
	})

	t.Run("falls back to first address segment", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status": "OK", "results": [{
				"place_id": "ChIJx", "formatted_address": "123 Ortigas Ave, Pasig",
				"geometry": {"location": {"lat": 14.58, "lng": 121.06}}, "types": ["street_address"]
			}]}`))
		}))
		defer server.Close()

		place, err := NewGoogleClient(testConfig(server.URL), logger).ReverseLookup(context.Background(), 14.58, 121.06)

		require.NoError(t, err)
		assert.Equal(t, "123 Ortigas Ave", place.Name)
	})

	t.Run("skips results without place_id or geometry", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status": "OK", "results": [
				{"formatted_address": "No Id, Pasig", "geometry": {"location": {"lat": 14.58, "lng": 121.06}}},
				{"place_id": "ChIJnogeom", "formatted_address": "No Geometry, Pasig"},
				{"place_id": "ChIJbad", "formatted_address": "Bad Geometry, Pasig", "geometry": {"location": {"lat": 95.0, "lng": 121.06}}},
				{"place_id": "ChIJok", "formatted_address": "Capitol Commons, Pasig", "geometry": {"location": {"lat": 14.5786, "lng": 121.0614}}}
			]}`))
		}))
		defer server.Close()

		place, err := NewGoogleClient(testConfig(server.URL), logger).ReverseLookup(context.Background(), 14.58, 121.06)

		require.NoError(t, err)
		require.NotNil(t, place)
		assert.Equal(t, "google:ChIJok", place.ID)
		assert.Equal(t, "Capitol Commons", place.Name)
		assert.InDelta(t, 14.5786, place.Lat, 1e-9)
	})

	t.Run("only malformed results is not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status": "OK", "results": [{"formatted_address": "Somewhere"}]}`))
		}))
		defer server.Close()

		place, err := NewGoogleClient(testConfig(server.URL), logger).ReverseLookup(context.Background(), 14.58, 121.06)

		require.NoError(t, err)
		assert.Nil(t, place)
	})

	t.Run("no results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
		}))
		defer server.Close()

		place, err := NewGoogleClient(testConfig(server.URL), logger).ReverseLookup(context.Background(), 0, 0)

		require.NoError(t, err)
		assert.Nil(t, place)
	})
}

func TestBoundsCircle(t *testing.T) {
	lat, lon, radius := boundsCircle(config.BoundingBox{MinLat: 14.35, MinLon: 120.90, MaxLat: 14.80, MaxLon: 121.15})

	assert.InDelta(t, 14.575, lat, 1e-9)
	assert.InDelta(t, 121.025, lon, 1e-9)
	assert.Greater(t, radius, 20000.0)
	assert.LessOrEqual(t, radius, 50000.0)
}
