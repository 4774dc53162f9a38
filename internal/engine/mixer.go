package engine

import (
	"fmt"
	"sync"

	"github.com/tessro/stems/internal/core"
	stemserrors "github.com/tessro/stems/internal/errors"
)

// UnknownTrackPolicy decides what mixer calls do with a track ID that is not
// part of the loaded song.
type UnknownTrackPolicy string

const (
	// UnknownTrackIgnore makes such calls a silent no-op.
	UnknownTrackIgnore UnknownTrackPolicy = "ignore"
	// UnknownTrackError makes such calls return ErrUnknownTrack.
	UnknownTrackError UnknownTrackPolicy = "error"
)

// Level is the mixer state of one channel.
type Level struct {
	Gain  float64 `json:"gain"`
	Muted bool    `json:"muted"`
}

// Effective returns the gain actually applied at the output.
func (l Level) Effective() float64 {
	if l.Muted {
		return 0
	}
	return l.Gain
}

type channel struct {
	mu     sync.Mutex
	level  Level
	handle core.DecoderHandle
}

func newChannel(h core.DecoderHandle, level Level) *channel {
	h.SetGain(level.Gain)
	h.SetMuted(level.Muted)
	return &channel{level: level, handle: h}
}

// SetTrackGain sets a track's gain in [0,1]. The stored gain survives muting.
func (s *Session) SetTrackGain(trackID string, gain float64) error {
	if gain < 0 || gain > 1 {
		return fmt.Errorf("%w: %v", stemserrors.ErrInvalidGain, gain)
	}
	ch, err := s.channel(trackID)
	if ch == nil {
		return err
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.level.Gain = gain
	ch.handle.SetGain(gain)
	return nil
}

// SetTrackMuted mutes or unmutes a track without touching its gain.
func (s *Session) SetTrackMuted(trackID string, muted bool) error {
	ch, err := s.channel(trackID)
	if ch == nil {
		return err
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.level.Muted = muted
	ch.handle.SetMuted(muted)
	return nil
}

// TrackLevel returns the mixer level of a loaded track.
func (s *Session) TrackLevel(trackID string) (Level, bool) {
	e := s.ens.Load()
	if e == nil {
		return Level{}, false
	}
	ch, ok := e.channels[trackID]
	if !ok {
		return Level{}, false
	}
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.level, true
}

// Levels returns the mixer level of every loaded track keyed by track ID.
func (s *Session) Levels() map[string]Level {
	e := s.ens.Load()
	if e == nil {
		return nil
	}
	levels := make(map[string]Level, len(e.channels))
	for id, ch := range e.channels {
		ch.mu.Lock()
		levels[id] = ch.level
		ch.mu.Unlock()
	}
	return levels
}

// channel looks up a loaded track. A nil channel with a nil error means the
// call should be ignored.
func (s *Session) channel(trackID string) (*channel, error) {
	e := s.ens.Load()
	if e != nil {
		if ch, ok := e.channels[trackID]; ok {
			return ch, nil
		}
	}
	if s.unknownTrack == UnknownTrackError {
		return nil, fmt.Errorf("%w: %s", stemserrors.ErrUnknownTrack, trackID)
	}
	s.log.Debug("ignoring mixer call for unknown track", "track", trackID)
	return nil, nil
}
