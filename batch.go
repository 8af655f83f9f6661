package splinify

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// FitFunc fits the curve of a freshly created session, for example by
// calling one of its modes or [Session.Optimize].
type FitFunc func(ctx context.Context, s *Session) (*SplineCurve, error)

// FitAll fits every request in its own [Session], running up to GOMAXPROCS
// fits at a time. The curves are returned in the order of the requests.
// The first error cancels the fits that have not started yet and is
// returned, annotated with the index of its request.
//
// The options apply to every session; a solver passed with [WithSolver]
// must be safe for concurrent use, as [fitpack.Native] is.
func FitAll(ctx context.Context, reqs []Request, fit FitFunc, opts ...SessionOption) ([]*SplineCurve, error) {
	curves := make([]*SplineCurve, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := NewSession(req, opts...)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			c, err := fit(gctx, s)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			curves[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return curves, nil
}
