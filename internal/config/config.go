package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Location LocationConfig `json:"location"`
	Map      MapConfig      `json:"map"`
}

// LocationConfig holds the home position used when the app starts.
// A terminal has no positioning hardware, so this stands in for the
// one-shot geolocation request.
type LocationConfig struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MapConfig holds map display settings
type MapConfig struct {
	Zoom int `json:"zoom"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Map: MapConfig{
			Zoom: 14,
		},
	}
}

// Load reads the configuration from ~/.waylog/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Map.Zoom == 0 {
		cfg.Map.Zoom = defaults.Map.Zoom
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.waylog/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := Config{
		Location: LocationConfig{
			Lat: 51.505,
			Lng: -0.09,
		},
		Map: MapConfig{
			Zoom: 14,
		},
	}

	return Save(&example)
}

// Validate checks if the config has sensible values
func (c *Config) Validate() error {
	if c.Location.Lat < -90 || c.Location.Lat > 90 {
		return fmt.Errorf("location.lat must be between -90 and 90, got %v", c.Location.Lat)
	}
	if c.Location.Lng < -180 || c.Location.Lng > 180 {
		return fmt.Errorf("location.lng must be between -180 and 180, got %v", c.Location.Lng)
	}
	if c.Map.Zoom != 0 && (c.Map.Zoom < 1 || c.Map.Zoom > 18) {
		return fmt.Errorf("map.zoom must be between 1 and 18, got %d", c.Map.Zoom)
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".waylog", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".waylog"), nil
}
