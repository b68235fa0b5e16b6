package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/place-resolver/internal/config"
	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/utils"
)

const (
	idPrefix = "google:"

	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"

	maxRadiusMeters = 50000
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
	region     string
	bounds     config.BoundingBox
	logger     *zap.Logger
}

// NewGoogleClient создает клиент Google Places / Geocoding API
func NewGoogleClient(cfg *config.ProvidersConfig, logger *zap.Logger) repository.PlaceSource {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:   strings.TrimRight(cfg.GoogleBaseURL, "/"),
		apiKey:    cfg.GoogleAPIKey,
		userAgent: cfg.UserAgent,
		region:    cfg.CountryCode,
		bounds:    cfg.Region,
		logger:    logger,
	}
}

func (c *client) Name() string {
	return domain.SourceGoogle
}

type geometry struct {
	Location *struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}

// point - координаты результата; ok=false, если геометрия отсутствует или вне диапазона
func (g geometry) point() (lat, lon float64, ok bool) {
	if g.Location == nil {
		return 0, 0, false
	}
	lat, lon = g.Location.Lat, g.Location.Lng
	return lat, lon, utils.ValidateCoordinates(lat, lon)
}

type textSearchResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		PlaceID          string   `json:"place_id"`
		Name             string   `json:"name"`
		FormattedAddress string   `json:"formatted_address"`
		Geometry         geometry `json:"geometry"`
		Types            []string `json:"types"`
	} `json:"results"`
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		PlaceID           string   `json:"place_id"`
		FormattedAddress  string   `json:"formatted_address"`
		Geometry          geometry `json:"geometry"`
		Types             []string `json:"types"`
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
}

// ForwardSearch - Places Text Search с привязкой к региону обслуживания
func (c *client) ForwardSearch(ctx context.Context, query domain.SearchQuery) ([]*domain.Place, error) {
	params := url.Values{}
	params.Set("query", query.Text)
	params.Set("key", c.apiKey)
	if c.region != "" {
		params.Set("region", c.region)
	}

	if query.UserLocation != nil {
		radius := query.RadiusKm * 1000
		if radius <= 0 || radius > maxRadiusMeters {
			radius = maxRadiusMeters
		}
		params.Set("location", fmt.Sprintf("%f,%f", query.UserLocation.Lat, query.UserLocation.Lon))
		params.Set("radius", fmt.Sprintf("%.0f", radius))
	} else if !c.bounds.IsZero() {
		lat, lon, radius := boundsCircle(c.bounds)
		params.Set("location", fmt.Sprintf("%f,%f", lat, lon))
		params.Set("radius", fmt.Sprintf("%.0f", radius))
	}

	var resp textSearchResponse
	if err := c.get(ctx, "/place/textsearch/json", params, &resp); err != nil {
		return nil, err
	}

	if err := checkStatus(resp.Status, resp.ErrorMessage); err != nil {
		c.logger.Warn("Google text search returned error status",
			zap.String("status", resp.Status),
			zap.String("message", resp.ErrorMessage))
		return nil, err
	}

	places := make([]*domain.Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		lat, lon, ok := r.Geometry.point()
		if r.PlaceID == "" || r.Name == "" || !ok {
			continue
		}
		if !c.inBounds(lat, lon) {
			continue
		}
		p := &domain.Place{
			ID:       idPrefix + r.PlaceID,
			Name:     r.Name,
			Address:  r.FormattedAddress,
			Lat:      lat,
			Lon:      lon,
			Category: firstType(r.Types),
			Source:   domain.SourceGoogle,
		}
		p.Normalize()
		places = append(places, p)

		if query.Limit > 0 && len(places) >= query.Limit {
			break
		}
	}

	c.logger.Debug("Google text search successful",
		zap.String("query", query.Text),
		zap.Int("results", len(places)))

	return places, nil
}

// ReverseLookup - Geocoding API latlng, nil если адрес не найден
func (c *client) ReverseLookup(ctx context.Context, lat, lon float64) (*domain.Place, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", lat, lon))
	params.Set("key", c.apiKey)
	if c.region != "" {
		params.Set("region", c.region)
	}

	var resp geocodeResponse
	if err := c.get(ctx, "/geocode/json", params, &resp); err != nil {
		return nil, err
	}

	if err := checkStatus(resp.Status, resp.ErrorMessage); err != nil {
		c.logger.Warn("Google reverse geocode returned error status",
			zap.String("status", resp.Status),
			zap.String("message", resp.ErrorMessage))
		return nil, err
	}
	// первый результат с place_id и корректной геометрией
	for _, r := range resp.Results {
		rlat, rlon, ok := r.Geometry.point()
		if r.PlaceID == "" || !ok {
			continue
		}

		name := ""
		for _, comp := range r.AddressComponents {
			if hasAnyType(comp.Types, "point_of_interest", "establishment", "premise", "route") {
				name = comp.LongName
				break
			}
		}
		if name == "" {
			name = strings.TrimSpace(strings.SplitN(r.FormattedAddress, ",", 2)[0])
		}
		if name == "" {
			continue
		}

		p := &domain.Place{
			ID:       idPrefix + r.PlaceID,
			Name:     name,
			Address:  r.FormattedAddress,
			Lat:      rlat,
			Lon:      rlon,
			Category: firstType(r.Types),
			Source:   domain.SourceGoogle,
		}
		p.Normalize()
		return p, nil
	}

	if len(resp.Results) > 0 {
		c.logger.Warn("Google reverse geocode returned no usable results",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Int("results", len(resp.Results)))
	}
	return nil, nil
}

func (c *client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Google request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Warn("Google API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("google API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Warn("Failed to decode Google response", zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("Google API call successful",
		zap.String("path", path),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (c *client) inBounds(lat, lon float64) bool {
	return c.bounds.Contains(lat, lon)
}

func checkStatus(status, message string) error {
	switch status {
	case statusOK, statusZeroResults:
		return nil
	default:
		if message != "" {
			return fmt.Errorf("google status %s: %s", status, message)
		}
		return fmt.Errorf("google status %s", status)
	}
}

// boundsCircle - окружность вокруг bbox для location/radius, радиус ограничен 50 км
func boundsCircle(b config.BoundingBox) (lat, lon, radius float64) {
	lat = (b.MinLat + b.MaxLat) / 2
	lon = (b.MinLon + b.MaxLon) / 2
	radius = utils.HaversineDistance(lat, lon, b.MaxLat, b.MaxLon) * 1000
	return lat, lon, math.Min(radius, maxRadiusMeters)
}

func firstType(types []string) string {
	if len(types) == 0 {
		return ""
	}
	return types[0]
}

func hasAnyType(types []string, want ...string) bool {
	for _, t := range types {
		for _, w := range want {
			if t == w {
				return true
			}
		}
	}
	return false
}
