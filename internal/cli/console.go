package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/stems/internal/manifest"
	"github.com/tessro/stems/internal/tui"
)

var consoleRefresh time.Duration

var consoleCmd = &cobra.Command{
	Use:   "console <manifest>",
	Short: "Rehearse a song in a full-screen mixer",
	Long: `Load a song and open a full-screen console with the transport and a
mixer strip per track.`,
	Args: cobra.ExactArgs(1),
	RunE: runConsole,
}

func init() {
	consoleCmd.Flags().DurationVar(&consoleRefresh, "refresh", 250*time.Millisecond, "screen refresh interval")
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(cmd *cobra.Command, args []string) error {
	song, err := manifest.Load(args[0])
	if err != nil {
		return err
	}

	p, err := newPlayer(cfg, false)
	if err != nil {
		return err
	}
	defer p.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := p.session.LoadSong(ctx, song); err != nil {
		return err
	}

	err = tui.Run(ctx, p.session, consoleRefresh)
	if err != nil && errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return err
}
