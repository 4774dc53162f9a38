package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/stems/internal/core"
	"github.com/tessro/stems/internal/engine"
	"github.com/tessro/stems/internal/tui/styles"
)

// Mixer lists the song's tracks with their gain and mute state.
type Mixer struct {
	offset   int
	selected int
}

// NewMixer creates a Mixer component.
func NewMixer() *Mixer {
	return &Mixer{}
}

// Selected returns the selected row.
func (m *Mixer) Selected() int {
	return m.selected
}

// MoveDown selects the next of n rows.
func (m *Mixer) MoveDown(n int) {
	if m.selected < n-1 {
		m.selected++
	}
}

// MoveUp selects the previous row.
func (m *Mixer) MoveUp() {
	if m.selected > 0 {
		m.selected--
	}
}

// Clamp keeps the selection inside n rows.
func (m *Mixer) Clamp(n int) {
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// Render renders the mixer panel.
func (m *Mixer) Render(song *core.Song, levels map[string]engine.Level, width, height int) string {
	title := styles.PanelTitle("Mixer", false)

	var content string
	if song.IsEmpty() {
		content = styles.Muted.Render("No tracks")
	} else {
		content = m.renderTracks(song, levels, width-4, height-4)
	}

	panel := styles.Panel(false).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (m *Mixer) renderTracks(song *core.Song, levels map[string]engine.Level, width, rows int) string {
	if rows < 1 {
		rows = 1
	}
	m.Clamp(song.Len())
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}

	nameWidth := 18
	barWidth := width - nameWidth - 14
	if barWidth < 8 {
		barWidth = 8
	}

	var lines []string
	for i := m.offset; i < song.Len() && i < m.offset+rows; i++ {
		t := song.Tracks[i]
		lv := levels[t.ID]

		cursor := "  "
		nameStyle := styles.Subtitle
		if i == m.selected {
			cursor = styles.Highlight.Render("▸ ")
			nameStyle = styles.Title
		}

		name := t.DisplayName()
		if len(name) > nameWidth {
			name = name[:nameWidth-1] + "…"
		}

		fill := styles.Success
		status := fmt.Sprintf("%3.0f%%", lv.Gain*100)
		if lv.Muted {
			fill = styles.Border
			status = styles.Failure.Render("mute")
		}

		lines = append(lines, fmt.Sprintf("%s%s %s %s",
			cursor,
			nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
			styles.Bar(lv.Gain, barWidth, fill),
			status,
		))
	}
	return strings.Join(lines, "\n")
}
