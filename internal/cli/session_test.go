package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tessro/stems/internal/core"
	"github.com/tessro/stems/internal/engine"
	stemserrors "github.com/tessro/stems/internal/errors"
)

type stubHandle struct{}

func (stubHandle) Start() error            { return nil }
func (stubHandle) Pause() error            { return nil }
func (stubHandle) Resume() error           { return nil }
func (stubHandle) Stop() error             { return nil }
func (stubHandle) Release() error          { return nil }
func (stubHandle) Position() time.Duration { return 0 }
func (stubHandle) Duration() time.Duration { return time.Minute }
func (stubHandle) SetGain(float64)         {}
func (stubHandle) SetMuted(bool)           {}

func newTestShell(t *testing.T) (*shell, *bytes.Buffer) {
	t.Helper()
	loader := core.LoaderFunc(func(ctx context.Context, tr core.Track) (core.DecoderHandle, error) {
		return stubHandle{}, nil
	})
	song := &core.Song{ID: "intro", Title: "Intro", Tracks: []core.Track{
		{ID: "click", Source: "click.wav", Gain: 1},
		{ID: "bass", Name: "Bass", Source: "bass.wav", Gain: 0.8},
	}}

	var out bytes.Buffer
	sh := &shell{
		ctx:     context.Background(),
		session: engine.New(engine.Options{Loader: loader, UnknownTrack: engine.UnknownTrackError}),
		load:    func() (*core.Song, error) { return song.Clone(), nil },
		out:     &out,
	}
	t.Cleanup(func() { _ = sh.session.Release() })
	if err := sh.exec("reload"); err != nil {
		t.Fatalf("reload error = %v", err)
	}
	return sh, &out
}

func TestShellTransport(t *testing.T) {
	sh, _ := newTestShell(t)

	steps := []struct {
		line string
		want core.TransportState
	}{
		{"play", core.StatePlaying},
		{"pause", core.StatePaused},
		{"PAUSE", core.StatePaused},
		{"resume", core.StatePlaying},
		{"stop", core.StateStopped},
		{"play", core.StatePlaying},
		{"reload", core.StateReady},
	}
	for _, step := range steps {
		if err := sh.exec(step.line); err != nil {
			t.Fatalf("%s: error = %v", step.line, err)
		}
		if got := sh.session.State(); got != step.want {
			t.Fatalf("%s: State() = %v, want %v", step.line, got, step.want)
		}
	}
}

func TestShellMixer(t *testing.T) {
	sh, out := newTestShell(t)

	for _, line := range []string{"gain click 0.25", "gain bass 50%", "mute bass"} {
		if err := sh.exec(line); err != nil {
			t.Fatalf("%s: error = %v", line, err)
		}
	}
	if lv, _ := sh.session.TrackLevel("click"); lv.Gain != 0.25 || lv.Muted {
		t.Errorf("click level = %+v", lv)
	}
	if lv, _ := sh.session.TrackLevel("bass"); lv.Gain != 0.5 || !lv.Muted {
		t.Errorf("bass level = %+v", lv)
	}
	if err := sh.exec("unmute bass"); err != nil {
		t.Fatal(err)
	}
	if lv, _ := sh.session.TrackLevel("bass"); lv.Muted {
		t.Error("bass still muted")
	}

	out.Reset()
	if err := sh.exec("tracks"); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); !strings.Contains(got, "Bass") || !strings.Contains(got, "click") {
		t.Errorf("tracks output = %q", got)
	}
}

func TestShellErrors(t *testing.T) {
	sh, _ := newTestShell(t)

	tests := []struct {
		line   string
		target error
	}{
		{"gain keys 0.5", stemserrors.ErrUnknownTrack},
		{"gain click 2", stemserrors.ErrInvalidGain},
		{"resume", stemserrors.ErrInvalidState},
		{"quit", errQuit},
		{"exit", errQuit},
	}
	for _, tt := range tests {
		if err := sh.exec(tt.line); !errors.Is(err, tt.target) {
			t.Errorf("%s: error = %v, want %v", tt.line, err, tt.target)
		}
	}

	for _, line := range []string{"gain click", "mute", "dance"} {
		if err := sh.exec(line); err == nil {
			t.Errorf("%s: succeeded, want error", line)
		}
	}
	if err := sh.exec("   "); err != nil {
		t.Errorf("blank line error = %v", err)
	}
}

func TestShellStatus(t *testing.T) {
	sh, out := newTestShell(t)

	out.Reset()
	if err := sh.exec("status"); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "ready") || !strings.Contains(got, "0:00 / 1:00") || !strings.Contains(got, "ref click") {
		t.Errorf("status output = %q", got)
	}
}
