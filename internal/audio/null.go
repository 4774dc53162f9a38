package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// NullOutput accepts streamers without pulling them. It lets tracks be
// decoded and measured on machines without an audio device.
type NullOutput struct {
	rate beep.SampleRate
	mu   sync.Mutex
}

// NewNullOutput creates a silent output at rate.
func NewNullOutput(rate beep.SampleRate) *NullOutput {
	return &NullOutput{rate: rate}
}

func (o *NullOutput) SampleRate() beep.SampleRate { return o.rate }

func (o *NullOutput) Play(beep.Streamer) error { return nil }

func (o *NullOutput) Lock()   { o.mu.Lock() }
func (o *NullOutput) Unlock() { o.mu.Unlock() }

var _ Output = (*NullOutput)(nil)
