package cli

import (
	"time"

	"github.com/faiface/beep"

	"github.com/tessro/stems/internal/audio"
	"github.com/tessro/stems/internal/config"
	"github.com/tessro/stems/internal/engine"
	"github.com/tessro/stems/internal/source"
)

// player bundles a session with the output and resolver it was built on.
type player struct {
	resolver *source.Resolver
	output   audio.Output
	backend  *audio.Backend
	session  *engine.Session
}

// newResolver builds the track source resolver from config.
func newResolver(c *config.Config) (*source.Resolver, error) {
	dir, err := c.CacheDir()
	if err != nil {
		return nil, err
	}
	return source.New(dir, c.FetchTimeout(), source.WithLogger(logger)), nil
}

// newPlayer builds a session. A silent player decodes tracks without opening
// the audio device.
func newPlayer(c *config.Config, silent bool) (*player, error) {
	res, err := newResolver(c)
	if err != nil {
		return nil, err
	}

	rate := beep.SampleRate(c.Audio.SampleRate)
	var out audio.Output
	if silent {
		out = audio.NewNullOutput(rate)
	} else {
		out = audio.NewSpeaker(rate, time.Duration(c.Audio.BufferMS)*time.Millisecond)
	}

	backend := audio.NewBackend(out, res, c.Audio.ResampleQuality, logger)
	session := engine.New(engine.Options{
		Loader:           backend,
		Clock:            backend,
		Logger:           logger,
		ProgressInterval: c.ProgressInterval(),
		Reference:        engine.ReferencePolicy(c.Playback.ReferenceTrack),
		UnknownTrack:     engine.UnknownTrackPolicy(c.Mixer.UnknownTrack),
	})

	return &player{
		resolver: res,
		output:   out,
		backend:  backend,
		session:  session,
	}, nil
}

// Close releases the session and shuts the device down.
func (p *player) Close() {
	if err := p.session.Release(); err != nil {
		logger.Warn("release failed", "error", err)
	}
	if sp, ok := p.output.(*audio.Speaker); ok {
		sp.Close()
	}
}
