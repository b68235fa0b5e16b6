package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/place-resolver/internal/config"
	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/utils"
)

const (
	idPrefix = "osm:"

	defaultLimit = 10
	reverseZoom  = 18
)

type client struct {
	httpClient   *http.Client
	baseURL      string
	email        string
	userAgent    string
	countryCodes string
	viewbox      string
	logger       *zap.Logger
}

// NewNominatimClient создает клиент Nominatim (OpenStreetMap)
func NewNominatimClient(cfg *config.ProvidersConfig, logger *zap.Logger) repository.PlaceSource {
	c := &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:      strings.TrimRight(cfg.NominatimBaseURL, "/"),
		email:        cfg.NominatimEmail,
		userAgent:    cfg.UserAgent,
		countryCodes: cfg.CountryCode,
		logger:       logger,
	}
	if b := cfg.Region; !b.IsZero() {
		// viewbox: left,top,right,bottom
		c.viewbox = fmt.Sprintf("%f,%f,%f,%f", b.MinLon, b.MaxLat, b.MaxLon, b.MinLat)
	}
	return c
}

func (c *client) Name() string {
	return domain.SourceNominatim
}

// place - элемент ответа format=jsonv2
type place struct {
	PlaceID     int64  `json:"place_id"`
	OSMType     string `json:"osm_type"`
	OSMID       int64  `json:"osm_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// ForwardSearch - /search с ограничением по viewbox и стране
func (c *client) ForwardSearch(ctx context.Context, query domain.SearchQuery) ([]*domain.Place, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	params := c.baseParams()
	params.Set("q", query.Text)
	params.Set("limit", strconv.Itoa(limit))
	if c.countryCodes != "" {
		params.Set("countrycodes", c.countryCodes)
	}
	if c.viewbox != "" {
		params.Set("viewbox", c.viewbox)
		params.Set("bounded", "1")
	}

	var results []place
	if err := c.get(ctx, "/search", params, &results); err != nil {
		return nil, err
	}

	places := make([]*domain.Place, 0, len(results))
	for i := range results {
		p, ok := c.toPlace(&results[i])
		if !ok {
			continue
		}
		places = append(places, p)
	}

	c.logger.Debug("Nominatim search successful",
		zap.String("query", query.Text),
		zap.Int("results", len(places)))

	return places, nil
}

// ReverseLookup - /reverse, nil если по координате ничего нет
func (c *client) ReverseLookup(ctx context.Context, lat, lon float64) (*domain.Place, error) {
	params := c.baseParams()
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("zoom", strconv.Itoa(reverseZoom))

	var result place
	if err := c.get(ctx, "/reverse", params, &result); err != nil {
		return nil, err
	}
	if result.Error != "" {
		c.logger.Debug("Nominatim reverse found nothing", zap.String("error", result.Error))
		return nil, nil
	}

	p, ok := c.toPlace(&result)
	if !ok {
		return nil, fmt.Errorf("malformed nominatim reverse payload")
	}
	return p, nil
}

func (c *client) baseParams() url.Values {
	params := url.Values{}
	params.Set("format", "jsonv2")
	if c.email != "" {
		params.Set("email", c.email)
	}
	return params
}

func (c *client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}
	// Nominatim usage policy требует идентифицирующий User-Agent
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Nominatim request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Warn("Nominatim returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("nominatim error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Warn("Failed to decode Nominatim response", zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *client) toPlace(r *place) (*domain.Place, bool) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return nil, false
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return nil, false
	}
	if !utils.ValidateCoordinates(lat, lon) || r.OSMID == 0 {
		return nil, false
	}

	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = strings.TrimSpace(strings.SplitN(r.DisplayName, ",", 2)[0])
	}
	if name == "" {
		return nil, false
	}

	p := &domain.Place{
		ID:       idPrefix + osmTypeLetter(r.OSMType) + strconv.FormatInt(r.OSMID, 10),
		Name:     name,
		Address:  r.DisplayName,
		Lat:      lat,
		Lon:      lon,
		Category: r.Type,
		Source:   domain.SourceNominatim,
	}
	p.Normalize()
	return p, true
}

// osmTypeLetter - N/W/R как в OSM-идентификаторах
func osmTypeLetter(osmType string) string {
	switch strings.ToLower(osmType) {
	case "node", "n":
		return "N"
	case "way", "w":
		return "W"
	case "relation", "r":
		return "R"
	default:
		return strings.ToUpper(osmType)
	}
}
