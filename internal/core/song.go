package core

import "fmt"

// Song is an ordered collection of tracks meant to play together.
type Song struct {
	ID     string  `json:"id" toml:"id" yaml:"id"`
	Title  string  `json:"title" toml:"title" yaml:"title"`
	Tracks []Track `json:"tracks" toml:"tracks" yaml:"tracks"`
}

// Len returns the number of tracks in the song.
func (s *Song) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Tracks)
}

// IsEmpty returns true if the song has no tracks.
func (s *Song) IsEmpty() bool {
	return s.Len() == 0
}

// Track returns the track with the given ID, or nil if it is not part of the song.
func (s *Song) Track(id string) *Track {
	if s == nil {
		return nil
	}
	for i := range s.Tracks {
		if s.Tracks[i].ID == id {
			return &s.Tracks[i]
		}
	}
	return nil
}

// TrackIDs returns the track IDs in song order.
func (s *Song) TrackIDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, len(s.Tracks))
	for i, t := range s.Tracks {
		ids[i] = t.ID
	}
	return ids
}

// Validate checks the song for missing fields and duplicate track IDs.
func (s *Song) Validate() error {
	if s == nil {
		return fmt.Errorf("song is nil")
	}
	if s.ID == "" {
		return fmt.Errorf("song id is required")
	}
	if len(s.Tracks) == 0 {
		return fmt.Errorf("song %q has no tracks", s.ID)
	}

	seen := make(map[string]bool, len(s.Tracks))
	for i := range s.Tracks {
		t := &s.Tracks[i]
		if err := t.Validate(); err != nil {
			return fmt.Errorf("song %q: %w", s.ID, err)
		}
		if seen[t.ID] {
			return fmt.Errorf("song %q: duplicate track id %q", s.ID, t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate a loaded song.
func (s *Song) Clone() *Song {
	if s == nil {
		return nil
	}
	c := *s
	c.Tracks = append([]Track(nil), s.Tracks...)
	return &c
}
