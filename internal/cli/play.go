package cli

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tessro/stems/internal/manifest"
)

var (
	playGains []string
	playMutes []string
)

var playCmd = &cobra.Command{
	Use:   "play <manifest>",
	Short: "Play every track of a song in sync",
	Long: `Load every track in the manifest and play them together until the
reference track ends or the command is interrupted.

Examples:
  stems play intro.toml
  stems play intro.toml --gain click=0.3 --mute vocals`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringArrayVarP(&playGains, "gain", "g", nil, "initial track gain as <track>=<0..1> (repeatable)")
	playCmd.Flags().StringSliceVarP(&playMutes, "mute", "m", nil, "tracks to start muted")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	song, err := manifest.Load(args[0])
	if err != nil {
		return err
	}
	gains, err := parseGains(playGains)
	if err != nil {
		return err
	}
	if err := applyOverrides(song, gains, playMutes); err != nil {
		return err
	}

	p, err := newPlayer(cfg, false)
	if err != nil {
		return err
	}
	defer p.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := p.session.LoadSong(ctx, song); err != nil {
		return err
	}

	title := song.Title
	if title == "" {
		title = song.ID
	}
	line := newProgressLine(os.Stdout, title)
	ended := make(chan struct{})
	var once sync.Once
	p.session.OnProgress(func(current, duration float64) {
		line.Update(current, duration)
		if duration > 0 && current >= duration {
			once.Do(func() { close(ended) })
		}
	})

	if err := p.session.Play(ctx); err != nil {
		return err
	}
	if !JSONOutput() {
		fmt.Printf("%s %s (%d tracks)\n", StateLabel(p.session.State()), titleStyle.Render(title), song.Len())
	}

	select {
	case <-ended:
	case <-ctx.Done():
	}
	prog, _ := p.session.Progress()
	if err := p.session.Stop(); err != nil {
		return err
	}
	line.Finish()

	if JSONOutput() {
		return PrintJSON(map[string]any{
			"song":     song.ID,
			"state":    p.session.State().String(),
			"position": prog.Position.Seconds(),
			"duration": prog.Duration.Seconds(),
		})
	}
	return nil
}
