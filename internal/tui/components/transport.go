package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/stems/internal/core"
	"github.com/tessro/stems/internal/tui/styles"
)

// Transport displays the song, its transport state and progress.
type Transport struct{}

// NewTransport creates a Transport component.
func NewTransport() *Transport {
	return &Transport{}
}

// Render renders the transport panel.
func (t *Transport) Render(song *core.Song, state core.TransportState, progress core.Progress, width, height int) string {
	title := styles.PanelTitle("Transport", true)

	var content string
	if song == nil {
		content = styles.Muted.Render("No song loaded")
	} else {
		content = t.renderSong(song, state, progress, width-4)
	}

	panel := styles.Panel(true).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (t *Transport) renderSong(song *core.Song, state core.TransportState, progress core.Progress, width int) string {
	name := song.Title
	if name == "" {
		name = song.ID
	}
	heading := StateIcon(state) + " " + styles.Title.Render(name)
	sub := styles.Subtitle.Render(fmt.Sprintf("%s · %d tracks", state, song.Len()))

	barWidth := width - 14
	if barWidth < 10 {
		barWidth = 10
	}
	bar := fmt.Sprintf("%s %s %s",
		FormatDuration(progress.Position),
		styles.ProgressBar(progress.Percent(), barWidth),
		FormatDuration(progress.Duration),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		heading,
		"  "+sub,
		"",
		bar,
	)
}

// StateIcon returns an icon for a transport state.
func StateIcon(state core.TransportState) string {
	switch state {
	case core.StatePlaying:
		return styles.Playing.Render("▶")
	case core.StatePaused:
		return styles.Paused.Render("⏸")
	case core.StateLoading:
		return styles.Paused.Render("…")
	case core.StateReady, core.StateStopped:
		return styles.Dim.Render("■")
	default:
		return styles.Dim.Render("○")
	}
}

// FormatDuration formats d as m:ss, truncating to the second.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d", m, s)
}
