package nominatim

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
		NominatimBaseURL: baseURL,
		NominatimEmail:   "ops@example.com",
		UserAgent:        "place-resolver-test/1.0",
		RequestTimeout:   2 * time.Second,
		CountryCode:      "ph",
		Region:           config.BoundingBox{MinLat: 4.5, MinLon: 116.9, MaxLat: 21.2, MaxLon: 126.7},
	}
}

func TestClient_ForwardSearch(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "greenbelt", q.Get("q"))
			assert.Equal(t, "jsonv2", q.Get("format"))
			assert.Equal(t, "ph", q.Get("countrycodes"))
			assert.Equal(t, "1", q.Get("bounded"))
			assert.Equal(t, "116.900000,21.200000,126.700000,4.500000", q.Get("viewbox"))
			assert.Equal(t, "5", q.Get("limit"))
			assert.Equal(t, "ops@example.com", q.Get("email"))
			assert.Equal(t, "place-resolver-test/1.0", r.Header.Get("User-Agent"))

			_, _ = w.Write([]byte(`[
				{"place_id": 1, "osm_type": "way", "osm_id": 123, "lat": "14.5520", "lon": "121.0210",
				 "category": "shop", "type": "mall", "name": "Greenbelt", "display_name": "Greenbelt, Makati, Philippines"},
				{"place_id": 2, "osm_type": "node", "osm_id": 456, "lat": "14.5530", "lon": "121.0220",
				 "category": "amenity", "type": "parking", "name": "", "display_name": "Greenbelt Parking, Makati"},
				{"place_id": 3, "osm_type": "node", "osm_id": 789, "lat": "not-a-number", "lon": "121.0"}
			]`))
		}))
		defer server.Close()

		places, err := NewNominatimClient(testConfig(server.URL), logger).
			ForwardSearch(context.Background(), domain.SearchQuery{Text: "greenbelt", Limit: 5})

		require.NoError(t, err)
		require.Len(t, places, 2)
		assert.Equal(t, "osm:W123", places[0].ID)
		assert.Equal(t, "mall", places[0].Category)
		assert.Equal(t, domain.SourceNominatim, places[0].Source)
		assert.Equal(t, "osm:N456", places[1].ID)
		assert.Equal(t, "Greenbelt Parking", places[1].Name)
	})

	t.Run("rate limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := NewNominatimClient(testConfig(server.URL), logger).
			ForwardSearch(context.Background(), domain.SearchQuery{Text: "greenbelt"})

		assert.ErrorContains(t, err, "429")
	})
}

func TestClient_ReverseLookup(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/reverse", r.URL.Path)
			assert.Equal(t, "14.5826", r.URL.Query().Get("lat"))
			assert.Equal(t, "18", r.URL.Query().Get("zoom"))

			_, _ = w.Write([]byte(`{"place_id": 9, "osm_type": "relation", "osm_id": 42, "lat": "14.5826", "lon": "120.9787",
				"type": "park", "name": "Rizal Park", "display_name": "Rizal Park, Ermita, Manila"}`))
		}))
		defer server.Close()

		place, err := NewNominatimClient(testConfig(server.URL), logger).
			ReverseLookup(context.Background(), 14.5826, 120.9787)

		require.NoError(t, err)
		require.NotNil(t, place)
		assert.Equal(t, "osm:R42", place.ID)
		assert.Equal(t, "Rizal Park", place.Name)
		assert.Equal(t, "Rizal Park, Ermita, Manila", place.Address)
	})

	t.Run("unable to geocode", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error": "Unable to geocode"}`))
		}))
		defer server.Close()

		place, err := NewNominatimClient(testConfig(server.URL), logger).ReverseLookup(context.Background(), 0, 0)

		require.NoError(t, err)
		assert.Nil(t, place)
	})

	t.Run("malformed payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"osm_id": 1, "lat": "x", "lon": "y"}`))
		}))
		defer server.Close()

		_, err := NewNominatimClient(testConfig(server.URL), logger).ReverseLookup(context.Background(), 1, 1)

		assert.Error(t, err)
	})
}
