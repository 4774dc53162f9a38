package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Audio.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("audio: %w", err))
	}
	if err := c.Playback.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("playback: %w", err))
	}
	if err := c.Mixer.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("mixer: %w", err))
	}
	if err := c.Source.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("source: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks AudioConfig for errors.
func (c *AudioConfig) Validate() error {
	if c.SampleRate < 0 {
		return errors.New("sample_rate must be non-negative")
	}
	if c.SampleRate != 0 && (c.SampleRate < 8000 || c.SampleRate > 192000) {
		return fmt.Errorf("sample_rate %d out of range (8000-192000)", c.SampleRate)
	}
	if c.BufferMS < 0 {
		return errors.New("buffer_ms must be non-negative")
	}
	if c.ResampleQuality < 0 || c.ResampleQuality > 64 {
		return errors.New("resample_quality must be between 1 and 64")
	}
	return nil
}

// Validate checks PlaybackConfig for errors.
func (c *PlaybackConfig) Validate() error {
	if c.ProgressInterval < 0 {
		return errors.New("progress_interval must be non-negative")
	}
	switch c.ReferenceTrack {
	case "", ReferenceFirstLoaded, ReferenceLongest:
		// valid
	default:
		return fmt.Errorf("invalid reference_track: %s (must be first-loaded or longest)", c.ReferenceTrack)
	}
	return nil
}

// Validate checks MixerConfig for errors.
func (c *MixerConfig) Validate() error {
	switch c.UnknownTrack {
	case "", UnknownTrackIgnore, UnknownTrackError:
		// valid
	default:
		return fmt.Errorf("invalid unknown_track: %s (must be ignore or error)", c.UnknownTrack)
	}
	return nil
}

// Validate checks SourceConfig for errors.
func (c *SourceConfig) Validate() error {
	if c.FetchTimeout < 0 {
		return errors.New("fetch_timeout must be non-negative")
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	return nil
}
