// Package manifest reads song definitions from TOML or YAML files.
//
// A manifest names the song and lists its tracks:
//
//	id = "intro"
//	title = "Intro (rehearsal mix)"
//
//	[[tracks]]
//	id = "click"
//	source = "stems/click.wav"
//	gain = 0.6
//
// Relative sources are resolved against the manifest's directory. Omitted
// gains default to 1.
package manifest

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tessro/stems/internal/core"
)

// File is the on-disk shape of a song manifest.
type File struct {
	ID     string      `toml:"id" yaml:"id"`
	Title  string      `toml:"title" yaml:"title"`
	Tracks []TrackFile `toml:"tracks" yaml:"tracks"`
}

// TrackFile is one track entry. Gain is a pointer so an omitted gain can
// default to unity.
type TrackFile struct {
	ID     string   `toml:"id" yaml:"id"`
	Name   string   `toml:"name" yaml:"name"`
	Source string   `toml:"source" yaml:"source"`
	Gain   *float64 `toml:"gain" yaml:"gain"`
	Muted  bool     `toml:"muted" yaml:"muted"`
}

// Load reads and validates the manifest at path.
func Load(path string) (*core.Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q (want .toml, .yaml or .yml)", ext)
	}

	if f.ID == "" {
		f.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	song := f.Song(filepath.Dir(abs))
	if err := song.Validate(); err != nil {
		return nil, err
	}
	return song, nil
}

// Song converts the manifest to a core.Song, resolving relative local
// sources against baseDir.
func (f *File) Song(baseDir string) *core.Song {
	song := &core.Song{
		ID:     f.ID,
		Title:  f.Title,
		Tracks: make([]core.Track, 0, len(f.Tracks)),
	}
	if song.Title == "" {
		song.Title = song.ID
	}

	for _, t := range f.Tracks {
		gain := 1.0
		if t.Gain != nil {
			gain = *t.Gain
		}
		song.Tracks = append(song.Tracks, core.Track{
			ID:     t.ID,
			Name:   t.Name,
			Source: resolveSource(baseDir, t.Source),
			Gain:   gain,
			Muted:  t.Muted,
		})
	}
	return song
}

// Write encodes song as TOML to path.
func Write(path string, song *core.Song) error {
	f := File{ID: song.ID, Title: song.Title}
	for _, t := range song.Tracks {
		gain := t.Gain
		f.Tracks = append(f.Tracks, TrackFile{
			ID:     t.ID,
			Name:   t.Name,
			Source: t.Source,
			Gain:   &gain,
			Muted:  t.Muted,
		})
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func resolveSource(baseDir, source string) string {
	if source == "" {
		return ""
	}
	if u, err := url.Parse(source); err == nil && len(u.Scheme) > 1 {
		return source
	}
	if filepath.IsAbs(source) {
		return source
	}
	return filepath.Join(baseDir, source)
}
