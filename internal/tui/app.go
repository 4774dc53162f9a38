// Package tui is a full-screen rehearsal console over a playback session.
package tui

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/stems/internal/core"
	"github.com/tessro/stems/internal/engine"
	"github.com/tessro/stems/internal/tui/components"
	"github.com/tessro/stems/internal/tui/styles"
)

// GainStep is the gain change per key press.
const GainStep = 0.05

const errorDisplay = 5 * time.Second

// Controller is the part of a session the console drives.
type Controller interface {
	State() core.TransportState
	CurrentSong() *core.Song
	Progress() (core.Progress, bool)
	Levels() map[string]engine.Level

	Play(ctx context.Context) error
	Pause() error
	Resume() error
	Stop() error
	SetTrackGain(trackID string, gain float64) error
	SetTrackMuted(trackID string, muted bool) error
}

var _ Controller = (*engine.Session)(nil)

// Model is the console model.
type Model struct {
	ctx         context.Context
	ctl         Controller
	refreshRate time.Duration
	width       int
	height      int

	// Snapshot of the session, refreshed on every tick and after every action.
	state    core.TransportState
	song     *core.Song
	progress core.Progress
	levels   map[string]engine.Level

	transport *components.Transport
	mixer     *components.Mixer
	keys      keyMap
	help      help.Model
	showHelp  bool

	lastError   error
	errorExpiry time.Time

	quitting bool
}

// NewModel creates a console for ctl, redrawing every refreshRate.
func NewModel(ctx context.Context, ctl Controller, refreshRate time.Duration) Model {
	if refreshRate <= 0 {
		refreshRate = 250 * time.Millisecond
	}
	m := Model{
		ctx:         ctx,
		ctl:         ctl,
		refreshRate: refreshRate,
		transport:   components.NewTransport(),
		mixer:       components.NewMixer(),
		keys:        defaultKeys(),
		help:        help.New(),
	}
	m.refresh()
	return m
}

// Messages
type tickMsg time.Time
type actionMsg struct{ err error }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.refresh()
		if m.lastError != nil && time.Now().After(m.errorExpiry) {
			m.lastError = nil
		}
		return m, m.tick()

	case actionMsg:
		m.refresh()
		if msg.err != nil {
			m.lastError = msg.err
			m.errorExpiry = time.Now().Add(errorDisplay)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) refresh() {
	m.state = m.ctl.State()
	m.song = m.ctl.CurrentSong()
	m.progress, _ = m.ctl.Progress()
	m.levels = m.ctl.Levels()
	m.mixer.Clamp(m.song.Len())
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggle()
	case key.Matches(msg, m.keys.Stop):
		return m, m.action(m.ctl.Stop)
	case key.Matches(msg, m.keys.Up):
		m.mixer.MoveUp()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.mixer.MoveDown(m.song.Len())
		return m, nil
	case key.Matches(msg, m.keys.GainUp):
		return m, m.nudgeGain(GainStep)
	case key.Matches(msg, m.keys.GainDown):
		return m, m.nudgeGain(-GainStep)
	case key.Matches(msg, m.keys.Mute):
		return m, m.toggleMute()
	}
	return m, nil
}

func (m Model) action(fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{err: fn()}
	}
}

// toggle plays, pauses or resumes depending on the transport state.
func (m Model) toggle() tea.Cmd {
	switch m.state {
	case core.StatePlaying:
		return m.action(m.ctl.Pause)
	case core.StatePaused:
		return m.action(m.ctl.Resume)
	default:
		return m.action(func() error { return m.ctl.Play(m.ctx) })
	}
}

func (m Model) selectedTrack() (string, bool) {
	i := m.mixer.Selected()
	if m.song == nil || i >= m.song.Len() {
		return "", false
	}
	return m.song.Tracks[i].ID, true
}

func (m Model) nudgeGain(delta float64) tea.Cmd {
	id, ok := m.selectedTrack()
	if !ok {
		return nil
	}
	gain := m.levels[id].Gain + delta
	gain = math.Max(0, math.Min(1, math.Round(gain*100)/100))
	return m.action(func() error { return m.ctl.SetTrackGain(id, gain) })
}

func (m Model) toggleMute() tea.Cmd {
	id, ok := m.selectedTrack()
	if !ok {
		return nil
	}
	muted := !m.levels[id].Muted
	return m.action(func() error { return m.ctl.SetTrackMuted(id, muted) })
}

// View renders the console
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	topHeight := 7
	helpView := m.help.View(m.keys)
	bottomHeight := m.height - topHeight - lipgloss.Height(helpView) - 5
	if bottomHeight < 3 {
		bottomHeight = 3
	}

	transport := m.transport.Render(m.song, m.state, m.progress, m.width-2, topHeight)
	mixer := m.mixer.Render(m.song, m.levels, m.width-2, bottomHeight)

	return lipgloss.JoinVertical(lipgloss.Left, transport, mixer, m.renderStatusBar(helpView))
}

func (m Model) renderStatusBar(helpView string) string {
	status := helpView
	if m.lastError != nil {
		status = styles.Failure.Render("Error: " + m.lastError.Error())
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

// Run starts the console and blocks until the user quits.
func Run(ctx context.Context, ctl Controller, refreshRate time.Duration) error {
	p := tea.NewProgram(NewModel(ctx, ctl, refreshRate), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
