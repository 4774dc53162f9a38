package cli

import (
	"github.com/tessro/stems/internal/core"
	"github.com/tessro/stems/internal/tui/styles"
)

var (
	titleStyle   = styles.Title
	labelStyle   = styles.Label
	mutedStyle   = styles.Muted
	errorStyle   = styles.Failure
	playingStyle = styles.Playing
	pausedStyle  = styles.Paused
)

// StateLabel renders a transport state with its color.
func StateLabel(state core.TransportState) string {
	switch state {
	case core.StatePlaying:
		return playingStyle.Render(state.String())
	case core.StatePaused, core.StateLoading:
		return pausedStyle.Render(state.String())
	case core.StateStopped, core.StateIdle:
		return mutedStyle.Render(state.String())
	default:
		return state.String()
	}
}
