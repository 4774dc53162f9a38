package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Output is the device every handle is mixed into.
type Output interface {
	SampleRate() beep.SampleRate
	Play(s beep.Streamer) error

	// Lock and Unlock exclude the audio callback.
	Lock()
	Unlock()
}

// Speaker is the system audio device. It is initialized on first use.
type Speaker struct {
	rate   beep.SampleRate
	buffer time.Duration

	once sync.Once
	err  error
}

// NewSpeaker creates a speaker output. buffer trades latency for robustness.
func NewSpeaker(rate beep.SampleRate, buffer time.Duration) *Speaker {
	if buffer <= 0 {
		buffer = 100 * time.Millisecond
	}
	return &Speaker{rate: rate, buffer: buffer}
}

func (s *Speaker) SampleRate() beep.SampleRate {
	return s.rate
}

func (s *Speaker) init() error {
	s.once.Do(func() {
		if err := speaker.Init(s.rate, s.rate.N(s.buffer)); err != nil {
			s.err = fmt.Errorf("failed to open audio device: %w", err)
		}
	})
	return s.err
}

// Play adds a streamer to the device mix.
func (s *Speaker) Play(st beep.Streamer) error {
	if err := s.init(); err != nil {
		return err
	}
	speaker.Play(st)
	return nil
}

func (s *Speaker) Lock() {
	speaker.Lock()
}

func (s *Speaker) Unlock() {
	speaker.Unlock()
}

// Close drops every streamer and closes the device.
func (s *Speaker) Close() {
	if s.init() != nil {
		return
	}
	speaker.Clear()
	speaker.Close()
}
