// Package source resolves track locators into local, readable files.
package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tessro/stems/internal/core"
	stemserrors "github.com/tessro/stems/internal/errors"
	"github.com/tessro/stems/internal/logging"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultTimeout bounds one remote fetch.
	DefaultTimeout = 30 * time.Second

	partialSuffix = ".part"
)

// Resolver maps local paths, file:// URLs and http(s):// URLs to local files.
// Remote sources are downloaded once into the cache directory.
type Resolver struct {
	cacheDir   string
	httpClient *http.Client
	log        *slog.Logger
	group      singleflight.Group
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient replaces the HTTP client used for remote fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) { r.httpClient = c }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// New creates a resolver caching remote sources under cacheDir.
func New(cacheDir string, timeout time.Duration, opts ...Option) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	r := &Resolver{
		cacheDir:   cacheDir,
		httpClient: &http.Client{Timeout: timeout},
		log:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CacheDir returns the directory remote sources are cached in.
func (r *Resolver) CacheDir() string {
	return r.cacheDir
}

// Resolve returns a local path for locator.
func (r *Resolver) Resolve(ctx context.Context, locator string) (string, error) {
	u, err := url.Parse(locator)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain path; a one-letter scheme is a Windows drive.
		return statLocal(locator)
	}

	switch u.Scheme {
	case "file":
		return statLocal(filepath.FromSlash(u.Path))
	case "http", "https":
		return r.fetch(ctx, u)
	default:
		return "", fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
}

func statLocal(p string) (string, error) {
	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", stemserrors.ErrSourceNotFound, p)
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("source %s is a directory", p)
	}
	return p, nil
}

// CachePath returns where a remote locator is cached.
func (r *Resolver) CachePath(u *url.URL) string {
	sum := sha256.Sum256([]byte(u.String()))
	name := hex.EncodeToString(sum[:12]) + strings.ToLower(path.Ext(u.Path))
	return filepath.Join(r.cacheDir, name)
}

func (r *Resolver) fetch(ctx context.Context, u *url.URL) (string, error) {
	if r.cacheDir == "" {
		return "", fmt.Errorf("no cache directory configured for remote source %s", u.Redacted())
	}
	dest := r.CachePath(u)
	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	}

	// Concurrent loads of the same locator share one download.
	v, err, _ := r.group.Do(dest, func() (interface{}, error) {
		if _, err := os.Stat(dest); err == nil {
			return dest, nil
		}
		return dest, r.download(ctx, u, dest)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (r *Resolver) download(ctx context.Context, u *url.URL, dest string) error {
	start := time.Now()
	if err := os.MkdirAll(r.cacheDir, 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", u.Redacted(), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", stemserrors.ErrSourceNotFound, u.Redacted())
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("fetch %s: unexpected status %s", u.Redacted(), resp.Status)
	}

	tmp, err := os.CreateTemp(r.cacheDir, filepath.Base(dest)+"-*"+partialSuffix)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("fetch %s: %w", u.Redacted(), err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to store cache file: %w", err)
	}

	r.log.Debug("fetched source", "url", u.Redacted(), "bytes", n, "elapsed", time.Since(start))
	return nil
}

// CacheEntry describes one cached remote source.
type CacheEntry struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Entries lists the cache contents, newest first.
func (r *Resolver) Entries() ([]CacheEntry, error) {
	if r.cacheDir == "" {
		return nil, nil
	}
	dirents, err := os.ReadDir(r.cacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var entries []CacheEntry
	for _, d := range dirents {
		if d.IsDir() || strings.HasSuffix(d.Name(), partialSuffix) {
			continue
		}
		info, err := d.Info()
		if err != nil {
			continue
		}
		entries = append(entries, CacheEntry{
			Path:    filepath.Join(r.cacheDir, d.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModTime.After(entries[j].ModTime)
	})
	return entries, nil
}

// Clear removes every cached source and returns how many bytes were freed.
func (r *Resolver) Clear() (int64, error) {
	entries, err := r.Entries()
	if err != nil {
		return 0, err
	}
	var freed int64
	for _, e := range entries {
		if err := os.Remove(e.Path); err != nil && !os.IsNotExist(err) {
			return freed, fmt.Errorf("failed to remove %s: %w", e.Path, err)
		}
		freed += e.Size
	}
	return freed, nil
}

// Ensure Resolver implements core.Resolver
var _ core.Resolver = (*Resolver)(nil)
