package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds application configuration.
type Config struct {
	// MaxSequenceChars is the maximum character count for a single input
	// sequence (reference or sample), measured after normalization.
	// Requests with a larger sequence are rejected before alignment.
	MaxSequenceChars int `json:"max_sequence_chars"`

	// Bind is the interface the web server listens on. Anything other
	// than a loopback address logs a warning at startup.
	Bind string `json:"bind,omitempty"`

	// Port is the web server port.
	Port int `json:"port,omitempty"`

	// RatePerSecond is the sustained rate of analyze requests the web
	// server accepts before answering 429.
	RatePerSecond float64 `json:"rate_per_second,omitempty"`

	// RateBurst is the analyze request burst the web server absorbs on
	// top of the sustained rate.
	RateBurst int `json:"rate_burst,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxSequenceChars: 10000,
		Bind:             "127.0.0.1",
		Port:             8080,
		RatePerSecond:    5,
		RateBurst:        10,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.varwatch.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// File doesn't exist, return zero config
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence when non-zero.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.MaxSequenceChars = overlay.MaxSequenceChars
	if result.MaxSequenceChars == 0 {
		result.MaxSequenceChars = base.MaxSequenceChars
	}

	result.Bind = overlay.Bind
	if result.Bind == "" {
		result.Bind = base.Bind
	}

	result.Port = overlay.Port
	if result.Port == 0 {
		result.Port = base.Port
	}

	result.RatePerSecond = overlay.RatePerSecond
	if result.RatePerSecond == 0 {
		result.RatePerSecond = base.RatePerSecond
	}

	result.RateBurst = overlay.RateBurst
	if result.RateBurst == 0 {
		result.RateBurst = base.RateBurst
	}

	return result
}
