package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tessro/stems/internal/core"
	stemserrors "github.com/tessro/stems/internal/errors"
	"golang.org/x/sync/errgroup"
)

// loadAll loads every track concurrently and joins the results. The returned
// handles are in track order. On any failure the handles that did load are
// released and a LoadError naming every failed track is returned.
func loadAll(ctx context.Context, loader core.Loader, tracks []core.Track, log *slog.Logger) ([]core.DecoderHandle, error) {
	handles := make([]core.DecoderHandle, len(tracks))
	errs := make([]error, len(tracks))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range tracks {
		g.Go(func() error {
			h, err := loader.Load(gctx, t)
			if err != nil {
				errs[i] = err
				return err
			}
			if h == nil {
				errs[i] = errors.New("loader returned no handle")
				return errs[i]
			}
			handles[i] = h
			return nil
		})
	}

	if err := g.Wait(); err == nil {
		return handles, nil
	}

	releaseAll(handles, log)
	return nil, collectLoadErrors(ctx, tracks, errs)
}

// collectLoadErrors builds a LoadError from per-track results. Cancellations
// caused by a sibling failure are dropped so the error names the real culprits.
func collectLoadErrors(ctx context.Context, tracks []core.Track, errs []error) *stemserrors.LoadError {
	var all, real stemserrors.LoadError
	for i, err := range errs {
		if err == nil {
			continue
		}
		err = unwrapLoadError(err)
		all.TrackIDs = append(all.TrackIDs, tracks[i].ID)
		all.Errs = append(all.Errs, err)
		if ctx.Err() == nil && errors.Is(err, context.Canceled) {
			continue
		}
		real.TrackIDs = append(real.TrackIDs, tracks[i].ID)
		real.Errs = append(real.Errs, err)
	}
	if len(real.Errs) == 0 {
		return &all
	}
	return &real
}

// unwrapLoadError strips a loader's single-track LoadError so the aggregated
// error does not repeat the track ID.
func unwrapLoadError(err error) error {
	var le *stemserrors.LoadError
	if errors.As(err, &le) && len(le.Errs) == 1 {
		return le.Errs[0]
	}
	return err
}

// runAll applies op to every handle concurrently and joins. It reports which
// handles succeeded, and returns a PlayError-shaped failure list.
func runAll(handles []core.DecoderHandle, ids []string, op func(core.DecoderHandle) error) (ok []bool, failedIDs []string, errs []error) {
	ok = make([]bool, len(handles))
	results := make([]error, len(handles))

	var g errgroup.Group
	for i, h := range handles {
		g.Go(func() error {
			if err := op(h); err != nil {
				results[i] = err
				return err
			}
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range results {
		if err != nil {
			failedIDs = append(failedIDs, ids[i])
			errs = append(errs, err)
		}
	}
	return ok, failedIDs, errs
}

// releaseAll releases every non-nil handle, logging failures.
func releaseAll(handles []core.DecoderHandle, log *slog.Logger) {
	for _, h := range handles {
		if h == nil {
			continue
		}
		if err := h.Release(); err != nil {
			log.Warn("failed to release handle", "error", err)
		}
	}
}
