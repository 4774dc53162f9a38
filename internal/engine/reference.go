package engine

import "github.com/tessro/stems/internal/core"

// ReferencePolicy selects the track whose position represents the ensemble.
type ReferencePolicy string

const (
	// ReferenceFirstLoaded picks the first loaded track in song order.
	ReferenceFirstLoaded ReferencePolicy = "first-loaded"
	// ReferenceLongest picks the loaded track with the longest duration.
	ReferenceLongest ReferencePolicy = "longest"
)

// pick returns the reference track ID and handle. handles is in song order and
// may contain nil entries for tracks that did not load.
func (p ReferencePolicy) pick(song *core.Song, handles []core.DecoderHandle) (string, core.DecoderHandle) {
	var (
		id   string
		best core.DecoderHandle
	)
	for i, h := range handles {
		if h == nil {
			continue
		}
		if best == nil {
			id, best = song.Tracks[i].ID, h
			if p != ReferenceLongest {
				break
			}
			continue
		}
		if h.Duration() > best.Duration() {
			id, best = song.Tracks[i].ID, h
		}
	}
	return id, best
}
