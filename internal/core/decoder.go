package core

import (
	"context"
	"time"
)

// DecoderHandle is a loaded, playable track owned by the coordinator.
type DecoderHandle interface {
	// Transport
	Start() error
	Pause() error
	Resume() error
	Stop() error
	Release() error

	// Sampling
	Position() time.Duration
	Duration() time.Duration

	// Output stage
	SetGain(gain float64)
	SetMuted(muted bool)
}

// Loader resolves a track into a ready, not yet started handle.
//
// On failure a Loader must release anything it allocated before returning.
type Loader interface {
	Load(ctx context.Context, track Track) (DecoderHandle, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, track Track) (DecoderHandle, error)

// Load calls f(ctx, track).
func (f LoaderFunc) Load(ctx context.Context, track Track) (DecoderHandle, error) {
	return f(ctx, track)
}

// Resolver turns a track's source locator into a local, readable path.
type Resolver interface {
	Resolve(ctx context.Context, locator string) (string, error)
}

// Clock groups transport commands so they take effect on the same audio frame.
//
// Sync must run fn synchronously. fn must not call Release on a handle.
type Clock interface {
	Sync(fn func())
}
