package core

import "fmt"

// Track represents one independently sourced audio stream of a Song.
type Track struct {
	ID     string  `json:"id" toml:"id" yaml:"id"`
	Name   string  `json:"name,omitempty" toml:"name" yaml:"name"`
	Source string  `json:"source" toml:"source" yaml:"source"`
	Gain   float64 `json:"gain" toml:"gain" yaml:"gain"`
	Muted  bool    `json:"muted" toml:"muted" yaml:"muted"`
}

// DisplayName returns the track name, falling back to its ID.
func (t *Track) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

// Validate checks that the track can be handed to a loader.
func (t *Track) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("track id is required")
	}
	if t.Source == "" {
		return fmt.Errorf("track %q: source is required", t.ID)
	}
	if t.Gain < 0 || t.Gain > 1 {
		return fmt.Errorf("track %q: gain %.2f out of range [0,1]", t.ID, t.Gain)
	}
	return nil
}
