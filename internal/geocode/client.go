package geocode

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// Client geocodes addresses through a Nominatim instance. Requests are
// paced with a fixed delay so the public service is not hammered; the
// shared cache short-circuits addresses seen on earlier runs.
type Client struct {
	baseURL    string
	userAgent  string
	delay      time.Duration
	httpClient *http.Client
	cache      *Cache
	logger     *zap.Logger
}

// NewClient creates a new geocoding client
func NewClient(baseURL, userAgent string, delay time.Duration, cache *Cache, logger *zap.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		delay:     delay,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		cache:  cache,
		logger: logger,
	}
}

// nominatimResult is one hit in the Nominatim search response
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Lookup geocodes one address. The boolean result is false when the
// service has no match for the address; that is a reportable miss, not
// an error.
func (c *Client) Lookup(address string) (Coord, bool, error) {
	if coord, ok := c.cache.Get(address); ok {
		c.logger.Debug("Using cached coordinate",
			zap.String("address", address))
		return coord, true, nil
	}

	c.logger.Info("Geocoding", zap.String("address", address))

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequest("GET", c.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return Coord{}, false, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	// Pace requests regardless of outcome.
	time.Sleep(c.delay)
	if err != nil {
		return Coord{}, false, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coord{}, false, fmt.Errorf("geocode API returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Coord{}, false, fmt.Errorf("failed to parse geocode response: %w", err)
	}

	if len(results) == 0 {
		c.logger.Warn("Could not geocode address",
			zap.String("address", address))
		return Coord{}, false, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coord{}, false, fmt.Errorf("invalid latitude %q in geocode response: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coord{}, false, fmt.Errorf("invalid longitude %q in geocode response: %w", results[0].Lon, err)
	}

	coord := Coord{Lat: lat, Lon: lon}
	c.cache.Put(address, coord)

	c.logger.Info("Geocoded",
		zap.String("address", address),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))

	return coord, true, nil
}
