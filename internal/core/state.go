package core

import "time"

// TransportState is the coordinator's current phase.
type TransportState int

const (
	StateIdle TransportState = iota
	StateLoading
	StateReady
	StatePlaying
	StatePaused
	StateStopped
)

var stateNames = map[TransportState]string{
	StateIdle:    "idle",
	StateLoading: "loading",
	StateReady:   "ready",
	StatePlaying: "playing",
	StatePaused:  "paused",
	StateStopped: "stopped",
}

func (s TransportState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// HasSong returns true if a song is loaded in this state.
func (s TransportState) HasSong() bool {
	switch s {
	case StateReady, StatePlaying, StatePaused, StateStopped:
		return true
	}
	return false
}

// Progress is one sample of the reference track's position.
type Progress struct {
	Position time.Duration `json:"position"`
	Duration time.Duration `json:"duration"`
}

// Seconds returns position and duration in seconds.
func (p Progress) Seconds() (current, duration float64) {
	return p.Position.Seconds(), p.Duration.Seconds()
}

// Percent returns playback progress as a percentage (0-100).
func (p Progress) Percent() float64 {
	if p.Duration <= 0 {
		return 0
	}
	pct := float64(p.Position) / float64(p.Duration) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Done returns true once the position has reached the duration.
func (p Progress) Done() bool {
	return p.Duration > 0 && p.Position >= p.Duration
}
