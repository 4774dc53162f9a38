package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/tessro/stems/internal/core"
	"github.com/tessro/stems/internal/engine"
	"github.com/tessro/stems/internal/manifest"
)

var sessionCmd = &cobra.Command{
	Use:   "session <manifest>",
	Short: "Open an interactive rehearsal shell for a song",
	Long: `Load a song and control it from a prompt.

Commands:
  play, pause, resume, stop     transport
  gain <track> <0..1|N%>        set a track's gain
  mute <track>, unmute <track>  toggle a track
  status, tracks                show the transport and mixer
  reload                        re-read the manifest and load it again
  quit                          release everything and exit`,
	Args: cobra.ExactArgs(1),
	RunE: runSession,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	path := args[0]
	p, err := newPlayer(cfg, false)
	if err != nil {
		return err
	}
	defer p.Close()

	sh := &shell{
		ctx:     cmd.Context(),
		session: p.session,
		load:    func() (*core.Song, error) { return manifest.Load(path) },
		out:     cmd.OutOrStdout(),
	}
	if err := sh.exec("reload"); err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "stems> ",
		AutoComplete:    sh.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("failed to start shell: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := sh.exec(line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintln(sh.out, errorStyle.Render(err.Error()))
		}
	}
}

var errQuit = errors.New("quit")

// shell dispatches prompt commands to a session.
type shell struct {
	ctx     context.Context
	session *engine.Session
	load    func() (*core.Song, error)
	out     io.Writer
}

func (sh *shell) completer() *readline.PrefixCompleter {
	tracks := readline.PcItemDynamic(func(string) []string {
		return sh.session.CurrentSong().TrackIDs()
	})
	return readline.NewPrefixCompleter(
		readline.PcItem("play"),
		readline.PcItem("pause"),
		readline.PcItem("resume"),
		readline.PcItem("stop"),
		readline.PcItem("gain", tracks),
		readline.PcItem("mute", tracks),
		readline.PcItem("unmute", tracks),
		readline.PcItem("status"),
		readline.PcItem("tracks"),
		readline.PcItem("reload"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// exec runs one command line. It returns errQuit when the shell should exit.
func (sh *shell) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "play":
		return sh.transport(sh.session.Play(sh.ctx))
	case "pause":
		return sh.transport(sh.session.Pause())
	case "resume":
		return sh.transport(sh.session.Resume())
	case "stop":
		return sh.transport(sh.session.Stop())
	case "gain":
		if len(args) != 2 {
			return errors.New("usage: gain <track> <0..1|N%>")
		}
		gain, err := parseGain(args[1])
		if err != nil {
			return err
		}
		return sh.session.SetTrackGain(args[0], gain)
	case "mute", "unmute":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <track>", name)
		}
		return sh.session.SetTrackMuted(args[0], name == "mute")
	case "status":
		sh.printStatus()
		return nil
	case "tracks":
		sh.printTracks()
		return nil
	case "reload":
		return sh.reload()
	case "help", "?":
		fmt.Fprintln(sh.out, "play pause resume stop | gain <track> <v> | mute <track> | unmute <track> | status | tracks | reload | quit")
		return nil
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", name)
	}
}

func (sh *shell) transport(err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, StateLabel(sh.session.State()))
	return nil
}

// reload stops playback and loads the manifest again.
func (sh *shell) reload() error {
	song, err := sh.load()
	if err != nil {
		return err
	}
	if st := sh.session.State(); st == core.StatePlaying || st == core.StatePaused {
		if err := sh.session.Stop(); err != nil {
			return err
		}
	}
	if err := sh.session.LoadSong(sh.ctx, song); err != nil {
		return err
	}
	title := song.Title
	if title == "" {
		title = song.ID
	}
	fmt.Fprintf(sh.out, "%s %s (%d tracks)\n", StateLabel(sh.session.State()), titleStyle.Render(title), song.Len())
	return nil
}

func (sh *shell) printStatus() {
	state := sh.session.State()
	prog, ok := sh.session.Progress()
	if !ok {
		fmt.Fprintln(sh.out, StateLabel(state))
		return
	}
	cur, dur := prog.Seconds()
	ref, _ := sh.session.ReferenceTrack()
	fmt.Fprintf(sh.out, "%s %s %s / %s %s\n",
		StateLabel(state),
		FormatProgress(cur, dur, progressWidth),
		FormatSeconds(cur),
		FormatSeconds(dur),
		labelStyle.Render("ref "+ref),
	)
}

func (sh *shell) printTracks() {
	song := sh.session.CurrentSong()
	if song == nil {
		fmt.Fprintln(sh.out, mutedStyle.Render("no song loaded"))
		return
	}
	levels := sh.session.Levels()
	table := NewTableWriter(sh.out, "TRACK", "GAIN", "ID")
	for _, t := range song.Tracks {
		lv := levels[t.ID]
		table.Row(TruncateString(t.DisplayName(), 24), gainLabel(lv.Gain, lv.Muted), t.ID)
	}
	table.Flush()
}
