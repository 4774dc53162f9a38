package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tessro/stems/internal/core"
)

func TestLoadErrorIs(t *testing.T) {
	cause := fmt.Errorf("open bass.wav: %w", ErrSourceNotFound)
	err := fmt.Errorf("loading song: %w", NewLoadError("bass", cause))

	if !errors.Is(err, ErrLoad) {
		t.Error("errors.Is(err, ErrLoad) = false, want true")
	}
	if !errors.Is(err, ErrSourceNotFound) {
		t.Error("errors.Is(err, ErrSourceNotFound) = false, want true")
	}
	if errors.Is(err, ErrPlay) {
		t.Error("errors.Is(err, ErrPlay) = true, want false")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatal("errors.As(*LoadError) = false")
	}
	if len(loadErr.TrackIDs) != 1 || loadErr.TrackIDs[0] != "bass" {
		t.Errorf("TrackIDs = %v, want [bass]", loadErr.TrackIDs)
	}
}

func TestAggregatedMessage(t *testing.T) {
	err := &PlayError{
		TrackIDs: []string{"drums", "keys"},
		Errs:     []error{errors.New("device busy"), errors.New("closed")},
	}

	msg := err.Error()
	for _, want := range []string{"2 tracks", "track drums: device busy", "track keys: closed"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestInvalidStateError(t *testing.T) {
	err := &InvalidStateError{Op: "pause", State: core.StateIdle}

	if got, want := err.Error(), "cannot pause while idle"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("errors.Is(err, ErrInvalidState) = false, want true")
	}
}

func TestGetSuggestion(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"explicit", WithSuggestion(errors.New("x"), "do y"), "do y"},
		{"format", NewLoadError("a", ErrUnsupportedFormat), "Convert the track to WAV or MP3"},
		{"load", NewLoadError("a", errors.New("boom")), "Run 'stems check <manifest>' to see which tracks fail to load"},
		{"already loading", ErrAlreadyLoading, "Wait for the current song to finish loading"},
		{"timeout", errors.New("Get http://x: Timeout exceeded"), "Check your internet connection and try again"},
		{"unknown", errors.New("something else"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetSuggestion(tt.err); got != tt.want {
				t.Errorf("GetSuggestion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
	if got, want := Format(errors.New("plain")), "Error: plain"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
	got := Format(ErrAlreadyLoading)
	if !strings.Contains(got, "Suggestion: Wait") {
		t.Errorf("Format() = %q, want suggestion", got)
	}
}
