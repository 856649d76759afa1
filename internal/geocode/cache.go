package geocode

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Coord is a cached geocoding result
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Cache is the on-disk geocode cache, keyed by cleaned address string.
// It avoids re-hitting the geocoding API on subsequent runs; single
// process, single writer.
type Cache struct {
	path    string
	entries map[string]Coord
	logger  *zap.Logger
}

// NewCache creates a cache backed by the given file
func NewCache(path string, logger *zap.Logger) *Cache {
	return &Cache{
		path:    path,
		entries: make(map[string]Coord),
		logger:  logger,
	}
}

// Load loads the cache from file. A missing file is an empty cache.
func (c *Cache) Load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read geocode cache: %w", err)
	}

	if err := json.Unmarshal(data, &c.entries); err != nil {
		return fmt.Errorf("failed to parse geocode cache: %w", err)
	}

	c.logger.Info("Geocode cache loaded",
		zap.String("file", c.path),
		zap.Int("entries", len(c.entries)))

	return nil
}

// Save saves the cache to file
func (c *Cache) Save() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal geocode cache: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write geocode cache: %w", err)
	}

	c.logger.Info("Geocode cache saved",
		zap.String("file", c.path),
		zap.Int("entries", len(c.entries)))

	return nil
}

// Get returns the cached coordinate for an address, if any
func (c *Cache) Get(address string) (Coord, bool) {
	coord, ok := c.entries[address]
	return coord, ok
}

// Put stores a coordinate for an address
func (c *Cache) Put(address string, coord Coord) {
	c.entries[address] = coord
}

// Len returns the number of cached addresses
func (c *Cache) Len() int {
	return len(c.entries)
}
