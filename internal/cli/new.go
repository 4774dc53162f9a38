package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tessro/stems/internal/audio"
	"github.com/tessro/stems/internal/core"
	"github.com/tessro/stems/internal/manifest"
)

var (
	newOutput string
	newYes    bool
)

var newCmd = &cobra.Command{
	Use:   "new <dir>",
	Short: "Write a manifest for a directory of stems",
	Long: `Scan a directory for audio files and write a song manifest listing them.
On a terminal you can pick the tracks and title before writing.`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVarP(&newOutput, "output", "o", "", "manifest path (default: <dir>/song.toml)")
	newCmd.Flags().BoolVarP(&newYes, "yes", "y", false, "skip prompts and include every track")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	dir := args[0]
	song, err := scanStems(dir)
	if err != nil {
		return err
	}

	if !newYes && term.IsTerminal(int(os.Stdin.Fd())) {
		if err := promptSong(song); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
	}
	if err := song.Validate(); err != nil {
		return err
	}

	out := newOutput
	if out == "" {
		out = filepath.Join(dir, "song.toml")
	}
	if err := manifest.Write(out, song); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d tracks)\n", out, song.Len())
	return nil
}

// scanStems builds a song from the supported audio files in dir. Sources are
// relative to dir.
func scanStems(dir string) (*core.Song, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	song := &core.Song{ID: trackID(filepath.Base(abs)), Title: filepath.Base(abs)}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !audio.SupportedFormat(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	used := make(map[string]bool)
	for _, name := range names {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		stem := trackID(base)
		id := stem
		for n := 2; used[id]; n++ {
			id = fmt.Sprintf("%s-%d", stem, n)
		}
		used[id] = true
		song.Tracks = append(song.Tracks, core.Track{
			ID:     id,
			Name:   base,
			Source: name,
			Gain:   1,
		})
	}
	if song.IsEmpty() {
		return nil, fmt.Errorf("no .wav or .mp3 files in %s", dir)
	}
	return song, nil
}

// trackID lowercases name and replaces anything but letters and digits
// with dashes.
func trackID(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	id := strings.TrimSuffix(b.String(), "-")
	if id == "" {
		return "track"
	}
	return id
}

// promptSong lets the user rename the song and drop tracks.
func promptSong(song *core.Song) error {
	title := song.Title
	selected := song.TrackIDs()
	options := make([]huh.Option[string], 0, song.Len())
	for _, t := range song.Tracks {
		options = append(options, huh.NewOption(t.Name, t.ID).Selected(true))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Song title").
				Value(&title),
			huh.NewMultiSelect[string]().
				Title("Tracks").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	keep := make(map[string]bool, len(selected))
	for _, id := range selected {
		keep[id] = true
	}
	tracks := song.Tracks[:0]
	for _, t := range song.Tracks {
		if keep[t.ID] {
			tracks = append(tracks, t)
		}
	}
	song.Tracks = tracks
	if strings.TrimSpace(title) != "" {
		song.Title = strings.TrimSpace(title)
	}
	return nil
}
