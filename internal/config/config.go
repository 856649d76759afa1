package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Kommune KommuneConfig `mapstructure:"kommune"`
	Geocode GeocodeConfig `mapstructure:"geocode"`
	DAWA    DAWAConfig    `mapstructure:"dawa"`
	Kort    KortConfig    `mapstructure:"kort"`
	Log     LogConfig     `mapstructure:"log"`
}

// KommuneConfig identifies the home municipality
type KommuneConfig struct {
	Navn string `mapstructure:"navn"`
}

// GeocodeConfig configures the Nominatim geocoder
type GeocodeConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"`
	CacheFile string `mapstructure:"cache_file"`
	Delay     string `mapstructure:"delay"`
}

// DAWAConfig configures the address registry client
type DAWAConfig struct {
	BaseURL string `mapstructure:"base_url"`
	PerPage int    `mapstructure:"per_page"`
	Delay   string `mapstructure:"delay"`
}

// KortConfig configures the member map
type KortConfig struct {
	CenterLat    float64 `mapstructure:"center_lat"`
	CenterLon    float64 `mapstructure:"center_lon"`
	Zoom         int     `mapstructure:"zoom"`
	GeoJSONURL   string  `mapstructure:"geojson_url"`
	GeoJSONCache string  `mapstructure:"geojson_cache"`
}

// LogConfig configures optional file logging
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// The defaults mirror the constants the association has always used:
// Gladsaxe, its map center, and the public Danish data services.
const (
	defaultGeoJSONURL = "https://raw.githubusercontent.com/magnuslarsen/geoJSON-Danish-municipalities/refs/heads/master/municipalities/municipalities.geojson"
	defaultDAWAURL    = "https://api.dataforsyningen.dk"
	defaultNominatim  = "https://nominatim.openstreetmap.org"
)

// Load loads configuration from file. A missing config file is not an
// error: every setting has a default, so all commands run unconfigured.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("kommune.navn", "Gladsaxe")
	v.SetDefault("geocode.base_url", defaultNominatim)
	v.SetDefault("geocode.user_agent", "grv-scripts member_geocoder")
	v.SetDefault("geocode.cache_file", ".geocache.json")
	v.SetDefault("geocode.delay", "1s")
	v.SetDefault("dawa.base_url", defaultDAWAURL)
	v.SetDefault("dawa.per_page", 1000)
	v.SetDefault("dawa.delay", "2s")
	v.SetDefault("kort.center_lat", 55.7333)
	v.SetDefault("kort.center_lon", 12.4667)
	v.SetDefault("kort.zoom", 12)
	v.SetDefault("kort.geojson_url", defaultGeoJSONURL)
	v.SetDefault("kort.geojson_cache", ".municipalities.json")
	v.SetDefault("log.level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("grv")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.grv-scripts")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Kommune.Navn == "" {
		return fmt.Errorf("kommune.navn is required")
	}
	if c.Geocode.BaseURL == "" {
		return fmt.Errorf("geocode.base_url is required")
	}
	if c.DAWA.BaseURL == "" {
		return fmt.Errorf("dawa.base_url is required")
	}
	if c.DAWA.PerPage <= 0 {
		return fmt.Errorf("dawa.per_page must be positive")
	}
	if c.Kort.Zoom <= 0 {
		return fmt.Errorf("kort.zoom must be positive")
	}
	return nil
}

// GetDelay returns the pause between geocoding requests
func (c *GeocodeConfig) GetDelay() time.Duration {
	return parseDelay(c.Delay, time.Second)
}

// GetDelay returns the pause between address registry pages
func (c *DAWAConfig) GetDelay() time.Duration {
	return parseDelay(c.Delay, 2*time.Second)
}

func parseDelay(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
