package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tessro/stems/internal/core"
	stemserrors "github.com/tessro/stems/internal/errors"
)

// parseGains parses id=value pairs from --gain flags.
func parseGains(values []string) (map[string]float64, error) {
	gains := make(map[string]float64, len(values))
	for _, v := range values {
		id, raw, ok := strings.Cut(v, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid gain %q: expected <track>=<0..1>", v)
		}
		gain, err := parseGain(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid gain for %s: %w", id, err)
		}
		gains[id] = gain
	}
	return gains, nil
}

// parseGain accepts a fraction ("0.5") or a percentage ("50%").
func parseGain(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	scale := 1.0
	if pct, ok := strings.CutSuffix(raw, "%"); ok {
		raw, scale = pct, 100
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", stemserrors.ErrInvalidGain, raw)
	}
	v /= scale
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("%w: %g", stemserrors.ErrInvalidGain, v)
	}
	return v, nil
}

// applyOverrides sets initial gain and mute on the song's tracks before
// loading. Naming a track the song lacks is an error.
func applyOverrides(song *core.Song, gains map[string]float64, mutes []string) error {
	for id, gain := range gains {
		t := song.Track(id)
		if t == nil {
			return fmt.Errorf("%w: %s", stemserrors.ErrUnknownTrack, id)
		}
		t.Gain = gain
	}
	for _, id := range mutes {
		t := song.Track(id)
		if t == nil {
			return fmt.Errorf("%w: %s", stemserrors.ErrUnknownTrack, id)
		}
		t.Muted = true
	}
	return nil
}
