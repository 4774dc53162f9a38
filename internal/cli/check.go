package cli

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/tessro/stems/internal/manifest"
)

var checkCmd = &cobra.Command{
	Use:   "check <manifest>",
	Short: "Resolve and decode every track without playing",
	Long: `Load every track in the manifest on a silent output, print each track's
length, then release them. Exits non-zero if any track fails to load.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

type checkedTrack struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Source   string  `json:"source"`
	Duration float64 `json:"duration"`
	Gain     float64 `json:"gain"`
	Muted    bool    `json:"muted"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	song, err := manifest.Load(args[0])
	if err != nil {
		return err
	}

	p, err := newPlayer(cfg, true)
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.session.LoadSong(cmd.Context(), song); err != nil {
		return err
	}

	durations := p.session.TrackDurations()
	ref, _ := p.session.ReferenceTrack()
	tracks := make([]checkedTrack, 0, song.Len())
	for _, t := range song.Tracks {
		tracks = append(tracks, checkedTrack{
			ID:       t.ID,
			Name:     t.DisplayName(),
			Source:   t.Source,
			Duration: durations[t.ID].Seconds(),
			Gain:     t.Gain,
			Muted:    t.Muted,
		})
	}

	if JSONOutput() {
		return PrintJSON(map[string]any{
			"song":      song.ID,
			"title":     song.Title,
			"reference": ref,
			"tracks":    tracks,
		})
	}

	table := NewTable("", "TRACK", "LENGTH", "GAIN", "SOURCE")
	for _, t := range tracks {
		table.Row(
			StatusIcon(t.ID == ref),
			TruncateString(t.Name, 24),
			FormatDuration(int(math.Round(t.Duration))),
			gainLabel(t.Gain, t.Muted),
			TruncateString(t.Source, 48),
		)
	}
	table.Flush()
	return nil
}

func gainLabel(gain float64, muted bool) string {
	if muted {
		return mutedStyle.Render("muted")
	}
	return FormatGain(gain)
}
