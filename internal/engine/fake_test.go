package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tessro/stems/internal/core"
)

type fakeHandle struct {
	id string

	mu       sync.Mutex
	startErr error
	playing  bool
	paused   bool
	released bool
	starts   int
	resumes  int
	stops    int
	releases int
	gain     float64
	muted    bool
	pos      time.Duration
	dur      time.Duration
}

func (h *fakeHandle) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts++
	if h.startErr != nil {
		return h.startErr
	}
	h.playing, h.paused = true, false
	return nil
}

func (h *fakeHandle) Pause() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paused = true
	return nil
}

func (h *fakeHandle) Resume() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resumes++
	h.paused = false
	return nil
}

func (h *fakeHandle) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stops++
	h.playing, h.paused = false, false
	h.pos = 0
	return nil
}

func (h *fakeHandle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.releases++
	h.released = true
	h.playing = false
	return nil
}

func (h *fakeHandle) Position() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.playing && !h.paused {
		h.pos += 10 * time.Millisecond
	}
	return h.pos
}

func (h *fakeHandle) Duration() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dur
}

func (h *fakeHandle) SetGain(gain float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gain = gain
}

func (h *fakeHandle) SetMuted(muted bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.muted = muted
}

func (h *fakeHandle) isPlaying() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.playing && !h.paused
}

func (h *fakeHandle) isReleased() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

// fakeLoader hands out fakeHandles. Tracks listed in fail return an error;
// tracks listed in startFail load but refuse to start. When gate is set,
// every load blocks until it is closed.
type fakeLoader struct {
	fail      map[string]error
	startFail map[string]error
	durations map[string]time.Duration
	gate      chan struct{}
	entered   chan string

	mu      sync.Mutex
	handles map[string][]*fakeHandle
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		fail:      map[string]error{},
		startFail: map[string]error{},
		durations: map[string]time.Duration{},
		handles:   map[string][]*fakeHandle{},
	}
}

func (l *fakeLoader) Load(ctx context.Context, t core.Track) (core.DecoderHandle, error) {
	if l.entered != nil {
		l.entered <- t.ID
	}
	if l.gate != nil {
		<-l.gate
	}
	if err, ok := l.fail[t.ID]; ok {
		return nil, err
	}

	dur := l.durations[t.ID]
	if dur == 0 {
		dur = 3 * time.Minute
	}
	h := &fakeHandle{id: t.ID, startErr: l.startFail[t.ID], dur: dur}

	l.mu.Lock()
	l.handles[t.ID] = append(l.handles[t.ID], h)
	l.mu.Unlock()
	return h, nil
}

// handle returns the most recent handle loaded for a track.
func (l *fakeLoader) handle(id string) *fakeHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	hs := l.handles[id]
	if len(hs) == 0 {
		return nil
	}
	return hs[len(hs)-1]
}

func (l *fakeLoader) all() []*fakeHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*fakeHandle
	for _, hs := range l.handles {
		out = append(out, hs...)
	}
	return out
}

type countingClock struct {
	mu    sync.Mutex
	syncs int
}

func (c *countingClock) Sync(fn func()) {
	c.mu.Lock()
	c.syncs++
	c.mu.Unlock()
	fn()
}

var errBroken = errors.New("corrupt source")

func testSong(ids ...string) *core.Song {
	song := &core.Song{ID: "song-1", Title: "Test Song"}
	for _, id := range ids {
		song.Tracks = append(song.Tracks, core.Track{ID: id, Source: id + ".wav", Gain: 0.8})
	}
	return song
}
