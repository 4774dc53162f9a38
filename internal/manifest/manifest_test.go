package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tessro/stems/internal/core"
)

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "intro.toml", `
title = "Intro"

[[tracks]]
id = "click"
source = "stems/click.wav"
gain = 0.5
muted = true

[[tracks]]
id = "bass"
name = "Bass DI"
source = "https://example.com/bass.mp3"
`)

	song, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if song.ID != "intro" {
		t.Errorf("ID = %q, want intro from file name", song.ID)
	}
	if song.Title != "Intro" {
		t.Errorf("Title = %q, want Intro", song.Title)
	}
	if song.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", song.Len())
	}

	click := song.Track("click")
	if click.Source != filepath.Join(dir, "stems", "click.wav") {
		t.Errorf("click source = %q, want resolved against manifest dir", click.Source)
	}
	if click.Gain != 0.5 || !click.Muted {
		t.Errorf("click gain=%v muted=%v, want 0.5 true", click.Gain, click.Muted)
	}

	bass := song.Track("bass")
	if bass.Source != "https://example.com/bass.mp3" {
		t.Errorf("bass source = %q, want URL untouched", bass.Source)
	}
	if bass.Gain != 1 {
		t.Errorf("bass gain = %v, want default 1", bass.Gain)
	}
	if bass.DisplayName() != "Bass DI" {
		t.Errorf("DisplayName() = %q, want Bass DI", bass.DisplayName())
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "song.yaml", `
id: verse
title: Verse
tracks:
  - id: drums
    source: /abs/drums.wav
    gain: 0
  - id: keys
    source: keys.wav
`)

	song, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if song.ID != "verse" {
		t.Errorf("ID = %q, want verse", song.ID)
	}
	if got := song.TrackIDs(); strings.Join(got, ",") != "drums,keys" {
		t.Errorf("TrackIDs() = %v, want [drums keys]", got)
	}
	if d := song.Track("drums"); d.Source != "/abs/drums.wav" || d.Gain != 0 {
		t.Errorf("drums = %+v, want absolute source and explicit zero gain", d)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name, file, data string
	}{
		{"bad extension", "song.json", `{}`},
		{"bad toml", "bad.toml", `tracks = [`},
		{"unknown yaml field", "bad.yaml", "id: x\nbogus: 1\n"},
		{"no tracks", "empty.toml", `title = "Nothing"`},
		{"duplicate ids", "dup.toml", "[[tracks]]\nid = \"a\"\nsource = \"a.wav\"\n[[tracks]]\nid = \"a\"\nsource = \"b.wav\"\n"},
		{"gain out of range", "loud.toml", "[[tracks]]\nid = \"a\"\nsource = \"a.wav\"\ngain = 1.5\n"},
		{"missing source", "nosrc.toml", "[[tracks]]\nid = \"a\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write(t, dir, tt.file, tt.data)
			if _, err := Load(path); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load(missing) error = nil, want error")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	song := &core.Song{
		ID:    "outro",
		Title: "Outro",
		Tracks: []core.Track{
			{ID: "pad", Source: filepath.Join(dir, "pad.wav"), Gain: 0.3, Muted: true},
		},
	}
	path := filepath.Join(dir, "outro.toml")

	if err := Write(path, song); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if pad := got.Track("pad"); pad == nil || pad.Gain != 0.3 || !pad.Muted {
		t.Errorf("pad = %+v, want gain 0.3 muted", pad)
	}
}
