package engine

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tessro/stems/internal/core"
	"github.com/tessro/stems/internal/logging"
)

// Options configures a Session.
type Options struct {
	Loader core.Loader

	// Clock, when set, groups batched transport commands onto one audio frame.
	Clock core.Clock

	Logger *slog.Logger

	// ProgressInterval is the progress callback cadence. Defaults to one second.
	ProgressInterval time.Duration

	Reference    ReferencePolicy
	UnknownTrack UnknownTrackPolicy
}

// ensemble is the immutable view of a loaded song. It is swapped atomically so
// readers never take the session lock.
type ensemble struct {
	song        *core.Song
	handles     map[string]core.DecoderHandle
	channels    map[string]*channel
	order       []core.DecoderHandle
	reference   core.DecoderHandle
	referenceID string
}

// Session is the live playback state for one song.
//
// Transport methods are safe for concurrent use. The progress callback runs on
// its own goroutine; it may call State, CurrentSong and the mixer methods, but
// must not call transport methods synchronously.
type Session struct {
	id     string
	loader core.Loader
	clock  core.Clock
	log    *slog.Logger

	reference    ReferencePolicy
	unknownTrack UnknownTrackPolicy

	mu         sync.Mutex
	gen        uint64
	cancelLoad context.CancelFunc
	onProgress ProgressFunc
	progress   *ProgressReporter

	state atomic.Int32
	ens   atomic.Pointer[ensemble]
}

// New creates an idle session.
func New(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	if opts.Reference == "" {
		opts.Reference = ReferenceFirstLoaded
	}
	if opts.UnknownTrack == "" {
		opts.UnknownTrack = UnknownTrackIgnore
	}

	id := uuid.NewString()
	return &Session{
		id:           id,
		loader:       opts.Loader,
		clock:        opts.Clock,
		log:          log.With("session", id),
		reference:    opts.Reference,
		unknownTrack: opts.UnknownTrack,
		progress:     NewProgressReporter(opts.ProgressInterval),
	}
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string {
	return s.id
}

// State returns the current transport state.
func (s *Session) State() core.TransportState {
	return core.TransportState(s.state.Load())
}

// CurrentSong returns a copy of the loaded song, or nil when none is loaded.
func (s *Session) CurrentSong() *core.Song {
	e := s.ens.Load()
	if e == nil {
		return nil
	}
	return e.song.Clone()
}

// ReferenceTrack returns the ID of the track sampled for progress.
func (s *Session) ReferenceTrack() (string, bool) {
	e := s.ens.Load()
	if e == nil || e.reference == nil {
		return "", false
	}
	return e.referenceID, true
}

// Handles returns the number of decoder handles retained by the session.
func (s *Session) Handles() int {
	e := s.ens.Load()
	if e == nil {
		return 0
	}
	return len(e.handles)
}

// Progress samples the reference track.
func (s *Session) Progress() (core.Progress, bool) {
	e := s.ens.Load()
	if e == nil || e.reference == nil {
		return core.Progress{}, false
	}
	return core.Progress{Position: e.reference.Position(), Duration: e.reference.Duration()}, true
}

// TrackDurations returns the decoded length of every loaded track.
func (s *Session) TrackDurations() map[string]time.Duration {
	e := s.ens.Load()
	if e == nil {
		return nil
	}
	out := make(map[string]time.Duration, len(e.handles))
	for id, h := range e.handles {
		out[id] = h.Duration()
	}
	return out
}

// OnProgress registers the progress callback, replacing any previous one.
// Registering while playing restarts the reporter with the new callback.
func (s *Session) OnProgress(fn ProgressFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onProgress = fn
	if s.State() == core.StatePlaying {
		s.startProgressLocked()
	}
}

func (s *Session) setStateLocked(to core.TransportState) {
	from := s.State()
	if from == to {
		return
	}
	s.state.Store(int32(to))
	s.log.Debug("transport state changed", "from", from, "to", to)
}

// startProgressLocked starts sampling the reference handle, if there is one
// and a callback is registered.
func (s *Session) startProgressLocked() {
	s.progress.Stop()

	e := s.ens.Load()
	if e == nil || e.reference == nil || s.onProgress == nil {
		return
	}
	s.progress.Start(e.reference, s.onProgress)
}

// sync runs fn on the session clock, or directly when there is none.
func (s *Session) sync(fn func()) {
	if s.clock == nil {
		fn()
		return
	}
	s.clock.Sync(fn)
}
