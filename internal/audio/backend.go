package audio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
	"github.com/tessro/stems/internal/core"
	stemserrors "github.com/tessro/stems/internal/errors"
	"github.com/tessro/stems/internal/logging"
)

// DefaultResampleQuality is a reasonable quality/cost tradeoff for beep.Resample.
const DefaultResampleQuality = 4

type decodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	".wav": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return wav.Decode(f)
	},
	".mp3": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return mp3.Decode(f)
	},
}

// SupportedFormat returns true if the file extension can be decoded.
func SupportedFormat(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Formats lists the decodable file extensions.
func Formats() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Backend loads tracks into an Output and groups transport commands on it.
type Backend struct {
	out      Output
	resolver core.Resolver
	quality  int
	log      *slog.Logger
}

// NewBackend creates a backend mixing into out. Track sources are resolved
// with resolver before decoding.
func NewBackend(out Output, resolver core.Resolver, quality int, log *slog.Logger) *Backend {
	if quality <= 0 {
		quality = DefaultResampleQuality
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Backend{out: out, resolver: resolver, quality: quality, log: log}
}

// Load resolves, opens and decodes track. The returned handle is in the mix
// but silent until started. On failure nothing stays open.
func (b *Backend) Load(ctx context.Context, track core.Track) (core.DecoderHandle, error) {
	h, err := b.load(ctx, track)
	if err != nil {
		return nil, stemserrors.NewLoadError(track.ID, err)
	}
	return h, nil
}

func (b *Backend) load(ctx context.Context, track core.Track) (*Handle, error) {
	path, err := b.resolver.Resolve(ctx, track.Source)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", stemserrors.ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", stemserrors.ErrSourceNotFound, path)
		}
		return nil, err
	}

	dec, format, err := decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if dec.Len() <= 0 {
		dec.Close()
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), io.ErrUnexpectedEOF)
	}

	h := newHandle(track.ID, b.out, f, dec, format, b.quality)
	h.SetGain(track.Gain)
	h.SetMuted(track.Muted)

	if err := ctx.Err(); err != nil {
		h.close()
		return nil, err
	}
	if err := b.out.Play(h); err != nil {
		h.close()
		return nil, err
	}

	b.log.Debug("track loaded",
		"track", track.ID,
		"format", ext,
		"sample_rate", int(format.SampleRate),
		"duration", h.Duration(),
	)
	return h, nil
}

// Sync runs fn with the audio callback excluded.
func (b *Backend) Sync(fn func()) {
	b.out.Lock()
	defer b.out.Unlock()
	fn()
}

// Ensure Backend implements core.Loader and core.Clock
var (
	_ core.Loader = (*Backend)(nil)
	_ core.Clock  = (*Backend)(nil)
)
