package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	stemserrors "github.com/tessro/stems/internal/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[audio]
sample_rate = 48000

[playback]
progress_interval = 250
reference_track = "longest"

[mixer]
unknown_track = "error"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Audio.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want 48000", cfg.Audio.SampleRate)
	}
	if cfg.Audio.BufferMS != 100 {
		t.Errorf("BufferMS = %d, want default 100", cfg.Audio.BufferMS)
	}
	if got := cfg.ProgressInterval(); got != 250*time.Millisecond {
		t.Errorf("ProgressInterval() = %v, want 250ms", got)
	}
	if cfg.Playback.ReferenceTrack != ReferenceLongest {
		t.Errorf("ReferenceTrack = %q, want %q", cfg.Playback.ReferenceTrack, ReferenceLongest)
	}
	if cfg.Mixer.UnknownTrack != UnknownTrackError {
		t.Errorf("UnknownTrack = %q, want %q", cfg.Mixer.UnknownTrack, UnknownTrackError)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadFromMissing(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, stemserrors.ErrConfigNotFound) {
		t.Errorf("LoadFrom() error = %v, want ErrConfigNotFound", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STEMS_LOG_LEVEL", "warn")
	t.Setenv("STEMS_PLAYBACK_PROGRESS_INTERVAL", "500")
	t.Setenv("STEMS_SOURCE_CACHE_DIR", "/tmp/stems-cache")

	cfg := &Config{}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Playback.ProgressInterval != 500 {
		t.Errorf("ProgressInterval = %d, want 500", cfg.Playback.ProgressInterval)
	}
	dir, err := cfg.CacheDir()
	if err != nil || dir != "/tmp/stems-cache" {
		t.Errorf("CacheDir() = %q, %v, want /tmp/stems-cache", dir, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"low sample rate", func(c *Config) { c.Audio.SampleRate = 100 }, true},
		{"negative interval", func(c *Config) { c.Playback.ProgressInterval = -1 }, true},
		{"bad reference", func(c *Config) { c.Playback.ReferenceTrack = "loudest" }, true},
		{"bad unknown track policy", func(c *Config) { c.Mixer.UnknownTrack = "panic" }, true},
		{"negative timeout", func(c *Config) { c.Source.FetchTimeout = -5 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
