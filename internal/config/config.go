package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	stemserrors "github.com/tessro/stems/internal/errors"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.stemsrc, $XDG_CONFIG_HOME/stems/config.toml, ~/.config/stems/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := FindConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", stemserrors.ErrInvalidConfig, path, err)
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", stemserrors.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", stemserrors.ErrInvalidConfig, path, err)
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// FindConfigFile returns the first existing config file path.
func FindConfigFile() string {
	for _, p := range searchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func searchPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	paths := []string{
		filepath.Join(home, ".stemsrc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	return append(paths, filepath.Join(xdgConfig, "stems", "config.toml"))
}

// CacheDir returns the configured cache directory or the default
// ($XDG_CACHE_HOME/stems).
func (c *Config) CacheDir() (string, error) {
	if c.Source.CacheDir != "" {
		return c.Source.CacheDir, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get cache directory: %w", err)
	}
	return filepath.Join(dir, "stems"), nil
}

// ProgressInterval returns the progress cadence as a duration.
func (c *Config) ProgressInterval() time.Duration {
	return time.Duration(c.Playback.ProgressInterval) * time.Millisecond
}

// FetchTimeout returns the remote fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Source.FetchTimeout) * time.Second
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Audio
	if v := os.Getenv("STEMS_AUDIO_SAMPLE_RATE"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Audio.SampleRate = i
		}
	}
	if v := os.Getenv("STEMS_AUDIO_BUFFER_MS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Audio.BufferMS = i
		}
	}

	// Playback
	if v := os.Getenv("STEMS_PLAYBACK_PROGRESS_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Playback.ProgressInterval = i
		}
	}
	if v := os.Getenv("STEMS_PLAYBACK_REFERENCE_TRACK"); v != "" {
		cfg.Playback.ReferenceTrack = v
	}

	// Mixer
	if v := os.Getenv("STEMS_MIXER_UNKNOWN_TRACK"); v != "" {
		cfg.Mixer.UnknownTrack = v
	}

	// Source
	if v := os.Getenv("STEMS_SOURCE_CACHE_DIR"); v != "" {
		cfg.Source.CacheDir = v
	}
	if v := os.Getenv("STEMS_SOURCE_FETCH_TIMEOUT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Source.FetchTimeout = i
		}
	}

	// Log
	if v := os.Getenv("STEMS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("STEMS_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
