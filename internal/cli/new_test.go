package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTrackID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Drums", "drums"},
		{"Backing Vocals", "backing-vocals"},
		{"  lead__gtr (L) ", "lead-gtr-l"},
		{"01 Click", "01-click"},
		{"???", "track"},
	}
	for _, tt := range tests {
		if got := trackID(tt.in); got != tt.want {
			t.Errorf("trackID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScanStems(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "My Song")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Drums.wav", "bass.MP3", "drums.mp3", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "old.wav"), 0755); err != nil {
		t.Fatal(err)
	}

	song, err := scanStems(dir)
	if err != nil {
		t.Fatalf("scanStems() error = %v", err)
	}
	if song.ID != "my-song" || song.Title != "My Song" {
		t.Errorf("song = %q %q, want my-song / My Song", song.ID, song.Title)
	}

	want := []struct{ id, source string }{
		{"drums", "Drums.wav"},
		{"bass", "bass.MP3"},
		{"drums-2", "drums.mp3"},
	}
	if len(song.Tracks) != len(want) {
		t.Fatalf("tracks = %+v, want %d", song.Tracks, len(want))
	}
	for i, w := range want {
		got := song.Tracks[i]
		if got.ID != w.id || got.Source != w.source || got.Gain != 1 {
			t.Errorf("track %d = %+v, want %s from %s", i, got, w.id, w.source)
		}
	}
	if err := song.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestScanStemsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "readme.md"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := scanStems(dir); err == nil {
		t.Error("scanStems() on a directory without audio succeeded")
	}
}
