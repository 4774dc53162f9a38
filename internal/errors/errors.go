package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tessro/stems/internal/core"
)

// Error types for common failure scenarios.
var (
	ErrLoad              = errors.New("load failed")
	ErrPlay              = errors.New("play failed")
	ErrInvalidState      = errors.New("invalid transport state")
	ErrAlreadyLoading    = errors.New("a song is already loading")
	ErrUnknownTrack      = errors.New("unknown track")
	ErrInvalidGain       = errors.New("gain must be between 0 and 1")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrSourceNotFound    = errors.New("source not found")
	ErrReleased          = errors.New("session released")
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// LoadError reports the tracks that could not be fetched or decoded.
type LoadError struct {
	TrackIDs []string
	Errs     []error
}

// NewLoadError creates a LoadError for a single track.
func NewLoadError(trackID string, err error) *LoadError {
	return &LoadError{TrackIDs: []string{trackID}, Errs: []error{err}}
}

func (e *LoadError) Error() string {
	return "load failed: " + describe(e.TrackIDs, e.Errs)
}

// Is matches ErrLoad so callers can classify without a type assertion.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

func (e *LoadError) Unwrap() []error {
	return e.Errs
}

// PlayError reports the tracks whose native start failed after a successful load.
type PlayError struct {
	TrackIDs []string
	Errs     []error
}

func (e *PlayError) Error() string {
	return "play failed: " + describe(e.TrackIDs, e.Errs)
}

func (e *PlayError) Is(target error) bool {
	return target == ErrPlay
}

func (e *PlayError) Unwrap() []error {
	return e.Errs
}

// InvalidStateError reports an operation requested from a state that forbids it.
type InvalidStateError struct {
	Op    string
	State core.TransportState
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Op, e.State)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// TrackError ties a per-track failure to its track ID.
type TrackError struct {
	TrackID string
	Err     error
}

func (e *TrackError) Error() string {
	return fmt.Sprintf("track %s: %v", e.TrackID, e.Err)
}

func (e *TrackError) Unwrap() error {
	return e.Err
}

func describe(ids []string, errs []error) string {
	if len(errs) == 1 {
		return fmt.Sprintf("track %s: %v", ids[0], errs[0])
	}
	parts := make([]string, 0, len(errs))
	for i, err := range errs {
		id := "?"
		if i < len(ids) {
			id = ids[i]
		}
		parts = append(parts, fmt.Sprintf("track %s: %v", id, err))
	}
	return fmt.Sprintf("%d tracks: %s", len(errs), strings.Join(parts, "; "))
}

// StemsError wraps an error with a user-friendly suggestion.
type StemsError struct {
	Err        error
	Suggestion string
}

func (e *StemsError) Error() string {
	return e.Err.Error()
}

func (e *StemsError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &StemsError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var stemsErr *StemsError
	if errors.As(err, &stemsErr) && stemsErr.Suggestion != "" {
		return stemsErr.Suggestion
	}

	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return "Convert the track to WAV or MP3"
	case errors.Is(err, ErrSourceNotFound):
		return "Check the source paths in the song manifest"
	case errors.Is(err, ErrLoad):
		return "Run 'stems check <manifest>' to see which tracks fail to load"
	case errors.Is(err, ErrPlay):
		return "The audio device refused to start; check your output device and try again"
	case errors.Is(err, ErrAlreadyLoading):
		return "Wait for the current song to finish loading"
	case errors.Is(err, ErrInvalidState):
		return "Run 'status' to see the current transport state"
	case errors.Is(err, ErrUnknownTrack):
		return "Run 'status' to list the track ids of the loaded song"
	case errors.Is(err, ErrConfigNotFound), errors.Is(err, ErrInvalidConfig):
		return "Run 'stems config path' to locate your configuration"
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "connection refused") {
		return "Check your internet connection and try again"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
