package components

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{1500 * time.Millisecond, "0:01"},
		{90 * time.Second, "1:30"},
		{61 * time.Minute, "61:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestMixerSelection(t *testing.T) {
	m := NewMixer()
	m.MoveUp()
	if m.Selected() != 0 {
		t.Errorf("MoveUp at top = %d", m.Selected())
	}
	m.MoveDown(3)
	m.MoveDown(3)
	m.MoveDown(3)
	if m.Selected() != 2 {
		t.Errorf("MoveDown past end = %d, want 2", m.Selected())
	}
	m.Clamp(1)
	if m.Selected() != 0 {
		t.Errorf("Clamp(1) = %d, want 0", m.Selected())
	}
	m.Clamp(0)
	if m.Selected() != 0 {
		t.Errorf("Clamp(0) = %d, want 0", m.Selected())
	}
}
