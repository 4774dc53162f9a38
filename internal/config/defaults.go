package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Audio: AudioConfig{
			SampleRate:      44100,
			BufferMS:        100,
			ResampleQuality: 4,
		},
		Playback: PlaybackConfig{
			ProgressInterval: 1000,
			ReferenceTrack:   ReferenceFirstLoaded,
		},
		Mixer: MixerConfig{
			UnknownTrack: UnknownTrackIgnore,
		},
		Source: SourceConfig{
			FetchTimeout: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Audio
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = d.Audio.SampleRate
	}
	if c.Audio.BufferMS == 0 {
		c.Audio.BufferMS = d.Audio.BufferMS
	}
	if c.Audio.ResampleQuality == 0 {
		c.Audio.ResampleQuality = d.Audio.ResampleQuality
	}

	// Playback
	if c.Playback.ProgressInterval == 0 {
		c.Playback.ProgressInterval = d.Playback.ProgressInterval
	}
	if c.Playback.ReferenceTrack == "" {
		c.Playback.ReferenceTrack = d.Playback.ReferenceTrack
	}

	// Mixer
	if c.Mixer.UnknownTrack == "" {
		c.Mixer.UnknownTrack = d.Mixer.UnknownTrack
	}

	// Source
	if c.Source.FetchTimeout == 0 {
		c.Source.FetchTimeout = d.Source.FetchTimeout
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
