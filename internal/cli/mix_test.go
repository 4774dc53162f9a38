package cli

import (
	"errors"
	"testing"

	"github.com/tessro/stems/internal/core"
	stemserrors "github.com/tessro/stems/internal/errors"
)

func TestParseGain(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0.5", 0.5, false},
		{" 1 ", 1, false},
		{"0", 0, false},
		{"25%", 0.25, false},
		{"100%", 1, false},
		{"1.5", 0, true},
		{"-0.1", 0, true},
		{"120%", 0, true},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		got, err := parseGain(tt.in)
		if tt.wantErr {
			if !errors.Is(err, stemserrors.ErrInvalidGain) {
				t.Errorf("parseGain(%q) error = %v, want ErrInvalidGain", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseGain(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestParseGains(t *testing.T) {
	gains, err := parseGains([]string{"click=0.3", "vocals=50%"})
	if err != nil {
		t.Fatalf("parseGains() error = %v", err)
	}
	if gains["click"] != 0.3 || gains["vocals"] != 0.5 {
		t.Errorf("parseGains() = %v", gains)
	}

	for _, bad := range []string{"click", "=0.5", "click=2"} {
		if _, err := parseGains([]string{bad}); err == nil {
			t.Errorf("parseGains(%q) succeeded, want error", bad)
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	song := &core.Song{ID: "s", Tracks: []core.Track{
		{ID: "click", Source: "click.wav", Gain: 1},
		{ID: "vocals", Source: "vocals.wav", Gain: 1},
	}}

	if err := applyOverrides(song, map[string]float64{"click": 0.2}, []string{"vocals"}); err != nil {
		t.Fatalf("applyOverrides() error = %v", err)
	}
	if got := song.Track("click").Gain; got != 0.2 {
		t.Errorf("click gain = %v, want 0.2", got)
	}
	if !song.Track("vocals").Muted {
		t.Error("vocals not muted")
	}

	err := applyOverrides(song, nil, []string{"keys"})
	if !errors.Is(err, stemserrors.ErrUnknownTrack) {
		t.Errorf("unknown mute error = %v, want ErrUnknownTrack", err)
	}
	err = applyOverrides(song, map[string]float64{"keys": 1}, nil)
	if !errors.Is(err, stemserrors.ErrUnknownTrack) {
		t.Errorf("unknown gain error = %v, want ErrUnknownTrack", err)
	}
}
