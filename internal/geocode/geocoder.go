// Package geocode resolves free-form place names to coordinates using a
// Nominatim-compatible search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hiddengems/internal/cache"
	"hiddengems/internal/geo"
	"hiddengems/internal/middleware"
	"hiddengems/internal/observability"
)

// Result is a resolved place.
type Result struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"displayName"`
}

// Coordinate returns the result as a geo.Coordinate.
func (r *Result) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: r.Lat, Lon: r.Lon}
}

// nominatimPlace matches the wire format of a Nominatim search result.
// Nominatim returns lat/lon as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Client is a Nominatim-compatible geocoding client with Redis-backed
// result caching.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// New creates a geocoding client. baseURL is the service root, without
// the /search path.
func New(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
	}
}

// HTTPClient exposes the underlying http.Client. Used by tests to
// install transport-level mocks.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Lookup resolves a place name to coordinates. A lookup that finds no
// match, or that fails at the transport level, returns (nil, nil): the
// caller degrades to an un-geocoded listing rather than failing the
// request. Only context cancellation is surfaced as an error.
func (c *Client) Lookup(ctx context.Context, place string) (*Result, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, nil
	}

	key := cache.GeocodeKey(place)
	var cached Result
	if found, err := cache.GetJSON(ctx, key, &cached); err == nil && found {
		observability.GeocodeLookups.WithLabelValues("cached").Inc()
		return &cached, nil
	}

	start := time.Now()
	result, err := c.fetch(ctx, place)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		observability.ObserveGeocode("error", start)
		middleware.Logger.WarnContext(ctx, "Geocoder lookup failed",
			slog.String("place", place),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	if result == nil {
		observability.ObserveGeocode("miss", start)
		return nil, nil
	}

	observability.ObserveGeocode("hit", start)
	_ = cache.SetJSON(ctx, key, result, cache.GeocodeTTL)
	return result, nil
}

func (c *Client) fetch(ctx context.Context, place string) (*Result, error) {
	q := url.Values{}
	q.Set("q", place)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder returned invalid latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder returned invalid longitude %q: %w", places[0].Lon, err)
	}

	return &Result{Lat: lat, Lon: lon, DisplayName: places[0].DisplayName}, nil
}
