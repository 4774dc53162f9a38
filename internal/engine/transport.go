package engine

import (
	"context"
	"fmt"

	"github.com/tessro/stems/internal/core"
	stemserrors "github.com/tessro/stems/internal/errors"
)

// LoadSong releases the current song and loads every track of song
// concurrently. Loading is all-or-nothing: if any track fails, the tracks that
// did load are released and the session returns to Idle.
func (s *Session) LoadSong(ctx context.Context, song *core.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("%w: %v", stemserrors.ErrLoad, err)
	}
	song = song.Clone()

	s.mu.Lock()
	switch st := s.State(); st {
	case core.StateLoading:
		s.mu.Unlock()
		return stemserrors.ErrAlreadyLoading
	case core.StatePlaying, core.StatePaused:
		s.mu.Unlock()
		return &stemserrors.InvalidStateError{Op: "load", State: st}
	}

	s.releaseLocked()
	s.gen++
	gen := s.gen
	loadCtx, cancel := context.WithCancel(ctx)
	s.cancelLoad = cancel
	s.setStateLocked(core.StateLoading)
	s.mu.Unlock()

	log := s.log.With("song", song.ID)
	log.Info("loading song", "tracks", song.Len())

	handles, err := loadAll(loadCtx, s.loader, song.Tracks, log)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		// Released while loading; the results belong to nobody.
		releaseAll(handles, log)
		log.Info("discarded load after release")
		return stemserrors.ErrReleased
	}
	s.cancelLoad = nil

	if err != nil {
		s.setStateLocked(core.StateIdle)
		log.Warn("song failed to load", "error", err)
		return err
	}

	s.ens.Store(s.buildEnsemble(song, handles))
	s.setStateLocked(core.StateReady)
	log.Info("song ready")
	return nil
}

// Play starts every track as one batch. If any track fails to start, the
// tracks that did start are stopped again and the session stays Ready.
func (s *Session) Play(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.State()
	if st != core.StateReady && st != core.StateStopped {
		return &stemserrors.InvalidStateError{Op: "play", State: st}
	}
	e := s.ens.Load()
	if e == nil {
		return &stemserrors.InvalidStateError{Op: "play", State: st}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	ids := e.song.TrackIDs()
	var (
		started   []bool
		failedIDs []string
		errs      []error
	)
	s.sync(func() {
		started, failedIDs, errs = runAll(e.order, ids, core.DecoderHandle.Start)
		if len(errs) == 0 {
			return
		}
		for i, h := range e.order {
			if !started[i] {
				continue
			}
			if err := h.Stop(); err != nil {
				s.log.Warn("failed to stop track after partial start", "track", ids[i], "error", err)
			}
		}
	})

	if len(errs) > 0 {
		s.setStateLocked(core.StateReady)
		err := &stemserrors.PlayError{TrackIDs: failedIDs, Errs: errs}
		s.log.Warn("play rolled back", "error", err)
		return err
	}

	s.setStateLocked(core.StatePlaying)
	s.startProgressLocked()
	return nil
}

// Pause pauses every track. Pausing while already paused is a no-op.
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch st := s.State(); st {
	case core.StatePaused:
		return nil
	case core.StatePlaying:
	default:
		return &stemserrors.InvalidStateError{Op: "pause", State: st}
	}

	s.progress.Stop()
	s.transportLocked("pause", core.DecoderHandle.Pause)
	s.setStateLocked(core.StatePaused)
	return nil
}

// Resume continues every paused track without repeating the start sequence.
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st := s.State(); st != core.StatePaused {
		return &stemserrors.InvalidStateError{Op: "resume", State: st}
	}

	s.transportLocked("resume", core.DecoderHandle.Resume)
	s.setStateLocked(core.StatePlaying)
	s.startProgressLocked()
	return nil
}

// Stop stops every track and rewinds the session to Stopped. It is a no-op
// when Idle; while Loading it abandons the load and returns to Idle.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.State() {
	case core.StateIdle:
		return nil
	case core.StateLoading:
		s.abortLoadLocked()
		return nil
	}

	s.progress.Stop()
	s.transportLocked("stop", core.DecoderHandle.Stop)
	s.setStateLocked(core.StateStopped)
	return nil
}

// Release stops playback, releases every handle and returns to Idle. It is
// safe to call at any time and any number of times.
func (s *Session) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseLocked()
	return nil
}

// releaseLocked tears down whatever the session holds.
func (s *Session) releaseLocked() {
	s.progress.Stop()

	switch s.State() {
	case core.StateLoading:
		s.abortLoadLocked()
		return
	case core.StatePlaying, core.StatePaused:
		s.transportLocked("stop", core.DecoderHandle.Stop)
	}

	if e := s.ens.Swap(nil); e != nil {
		releaseAll(e.order, s.log)
		s.log.Info("song released", "song", e.song.ID)
	}
	s.setStateLocked(core.StateIdle)
}

// abortLoadLocked invalidates the in-flight load. Its results are released
// by LoadSong when they arrive.
func (s *Session) abortLoadLocked() {
	s.gen++
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
	s.setStateLocked(core.StateIdle)
}

// transportLocked applies a best-effort command to every handle. Failures are
// logged; the ensemble still moves as one.
func (s *Session) transportLocked(name string, op func(core.DecoderHandle) error) {
	e := s.ens.Load()
	if e == nil {
		return
	}
	ids := e.song.TrackIDs()
	var (
		failedIDs []string
		errs      []error
	)
	s.sync(func() {
		_, failedIDs, errs = runAll(e.order, ids, op)
	})
	for i, err := range errs {
		s.log.Warn("track command failed", "command", name, "track", failedIDs[i], "error", err)
	}
}

func (s *Session) buildEnsemble(song *core.Song, handles []core.DecoderHandle) *ensemble {
	e := &ensemble{
		song:     song,
		handles:  make(map[string]core.DecoderHandle, len(handles)),
		channels: make(map[string]*channel, len(handles)),
		order:    handles,
	}
	for i, h := range handles {
		t := song.Tracks[i]
		e.handles[t.ID] = h
		e.channels[t.ID] = newChannel(h, Level{Gain: t.Gain, Muted: t.Muted})
	}
	e.referenceID, e.reference = s.reference.pick(song, handles)
	return e
}
