package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/tessro/stems/internal/core"
	stemserrors "github.com/tessro/stems/internal/errors"
)

// Handle is one decoded track in the output mix. Transport and gain changes
// are atomic flags picked up by the audio callback, so they are cheap to apply
// while the output is locked.
type Handle struct {
	trackID string
	out     Output

	file    *os.File
	decoder beep.StreamSeekCloser
	format  beep.Format
	volume  *effects.Volume

	playing  atomic.Bool
	rewind   atomic.Bool
	ended    atomic.Bool
	released atomic.Bool
	frames   atomic.Int64
	gain     atomic.Uint64
	muted    atomic.Bool

	streamErr atomic.Pointer[error]
	closeOnce sync.Once
	closeErr  error
}

func newHandle(trackID string, out Output, file *os.File, dec beep.StreamSeekCloser, format beep.Format, quality int) *Handle {
	var src beep.Streamer = dec
	if format.SampleRate != out.SampleRate() {
		src = beep.Resample(quality, format.SampleRate, out.SampleRate(), dec)
	}

	h := &Handle{
		trackID: trackID,
		out:     out,
		file:    file,
		decoder: dec,
		format:  format,
		volume:  &effects.Volume{Streamer: src, Base: 2},
	}
	h.SetGain(1)
	return h
}

// TrackID returns the track this handle plays.
func (h *Handle) TrackID() string {
	return h.trackID
}

// Stream implements beep.Streamer. It runs on the audio callback.
func (h *Handle) Stream(samples [][2]float64) (int, bool) {
	if h.released.Load() {
		return 0, false
	}
	if h.rewind.Swap(false) {
		if err := h.decoder.Seek(0); err != nil {
			err = fmt.Errorf("rewind failed: %w", err)
			h.streamErr.Store(&err)
		}
		h.frames.Store(0)
		h.ended.Store(false)
	}
	if !h.playing.Load() || h.ended.Load() {
		silence(samples)
		return len(samples), true
	}

	gain := h.Gain()
	h.volume.Silent = h.muted.Load() || gain <= 0
	if !h.volume.Silent {
		h.volume.Volume = math.Log2(gain)
	}

	n, ok := h.volume.Stream(samples)
	silence(samples[n:])
	h.frames.Add(int64(n))
	if !ok {
		h.ended.Store(true)
		if err := h.volume.Err(); err != nil {
			h.streamErr.Store(&err)
		}
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (h *Handle) Err() error {
	if p := h.streamErr.Load(); p != nil {
		return *p
	}
	return nil
}

func (h *Handle) usable() error {
	if h.released.Load() {
		return fmt.Errorf("track %s: %w", h.trackID, stemserrors.ErrReleased)
	}
	if err := h.Err(); err != nil {
		return fmt.Errorf("track %s: %w", h.trackID, err)
	}
	return nil
}

// Start begins playback from the current position.
func (h *Handle) Start() error {
	if err := h.usable(); err != nil {
		return err
	}
	h.playing.Store(true)
	return nil
}

// Pause halts playback, keeping the position.
func (h *Handle) Pause() error {
	if err := h.usable(); err != nil {
		return err
	}
	h.playing.Store(false)
	return nil
}

// Resume continues from the paused position.
func (h *Handle) Resume() error {
	if err := h.usable(); err != nil {
		return err
	}
	h.playing.Store(true)
	return nil
}

// Stop halts playback and rewinds to the beginning.
func (h *Handle) Stop() error {
	if h.released.Load() {
		return nil
	}
	h.playing.Store(false)
	h.rewind.Store(true)
	h.frames.Store(0)
	return nil
}

// Release removes the handle from the mix and closes its decoder and file.
// It must not be called while the output is locked.
func (h *Handle) Release() error {
	if h.released.Swap(true) {
		return nil
	}
	h.out.Lock()
	err := h.close()
	h.out.Unlock()
	return err
}

// close releases the decoder and file. Safe before the handle joins the mix.
func (h *Handle) close() error {
	h.closeOnce.Do(func() {
		h.playing.Store(false)
		h.released.Store(true)
		var errs []error
		if err := h.decoder.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
		if h.file != nil {
			if err := h.file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
				errs = append(errs, err)
			}
		}
		h.closeErr = errors.Join(errs...)
	})
	return h.closeErr
}

// Position returns the playback position.
func (h *Handle) Position() time.Duration {
	pos := h.out.SampleRate().D(int(h.frames.Load()))
	if d := h.Duration(); pos > d {
		return d
	}
	return pos
}

// Duration returns the decoded length of the track.
func (h *Handle) Duration() time.Duration {
	return h.format.SampleRate.D(h.decoder.Len())
}

// Gain returns the stored linear gain.
func (h *Handle) Gain() float64 {
	return math.Float64frombits(h.gain.Load())
}

// SetGain sets the linear gain, clamped to [0,1].
func (h *Handle) SetGain(gain float64) {
	gain = math.Max(0, math.Min(1, gain))
	h.gain.Store(math.Float64bits(gain))
}

// Muted reports whether the output stage is silenced.
func (h *Handle) Muted() bool {
	return h.muted.Load()
}

// SetMuted silences the output without changing the stored gain.
func (h *Handle) SetMuted(muted bool) {
	h.muted.Store(muted)
}

func silence(samples [][2]float64) {
	for i := range samples {
		samples[i] = [2]float64{}
	}
}

// Ensure Handle implements core.DecoderHandle
var _ core.DecoderHandle = (*Handle)(nil)
