package config

// Config is the root configuration structure.
type Config struct {
	Audio    AudioConfig    `toml:"audio"`
	Playback PlaybackConfig `toml:"playback"`
	Mixer    MixerConfig    `toml:"mixer"`
	Source   SourceConfig   `toml:"source"`
	Log      LogConfig      `toml:"log"`
}

// AudioConfig holds output device settings.
type AudioConfig struct {
	SampleRate      int `toml:"sample_rate"`
	BufferMS        int `toml:"buffer_ms"`
	ResampleQuality int `toml:"resample_quality"`
}

// PlaybackConfig holds transport and progress settings.
type PlaybackConfig struct {
	// ProgressInterval is the progress callback cadence in milliseconds.
	ProgressInterval int    `toml:"progress_interval"`
	ReferenceTrack   string `toml:"reference_track"`
}

// MixerConfig holds per-track gain settings.
type MixerConfig struct {
	UnknownTrack string `toml:"unknown_track"`
}

// SourceConfig holds track source resolution settings.
type SourceConfig struct {
	CacheDir string `toml:"cache_dir"`
	// FetchTimeout is the remote fetch timeout in seconds.
	FetchTimeout int `toml:"fetch_timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

const (
	ReferenceFirstLoaded = "first-loaded"
	ReferenceLongest     = "longest"

	UnknownTrackIgnore = "ignore"
	UnknownTrackError  = "error"
)
