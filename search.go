package splinify

import (
	"cmp"
	"context"
	"errors"
	"math"
)

// ErrSearchOption reports unusable [SearchOptions].
var ErrSearchOption = errors.New("invalid search option")

// DefaultScaleRatio is the factor by which [Session.Optimize] shrinks the
// rms target in each step.
const DefaultScaleRatio = 0.8

// DefaultMaxIter is the number of steps after which [Session.Optimize]
// gives up.
const DefaultMaxIter = 40

// SearchOptions configures [Session.Optimize].
type SearchOptions struct {
	// RMSStart is the rms target of the initial smoothing fit.
	RMSStart float64
	// ScaleRatio, in (0, 1), multiplies the achieved rms to form the next
	// target. Zero selects DefaultScaleRatio.
	ScaleRatio float64
	// MaxIter is the maximum number of tightening steps. Zero selects
	// DefaultMaxIter.
	MaxIter int
	// Converged is called after every step with the knot count, its
	// change, the achieved rms and its decrease. Returning true ends the
	// search with the previous step's rms.
	Converged func(knots, dKnots int, rms, dRMS float64) bool
}

// MaxKnots returns a convergence predicate that stops once the curve needs
// more than n knots.
func MaxKnots(n int) func(int, int, float64, float64) bool {
	return func(knots, _ int, _, _ float64) bool { return knots > n }
}

// Optimize searches for a trade-off between fit error and knot count. It
// fits a smoothing spline with opts.RMSStart, then repeatedly continues
// from the current knots with the achieved rms scaled by opts.ScaleRatio,
// until opts.Converged accepts a step. The result is then refitted from
// scratch with the rms of the step before, the last one that was not yet
// accepted.
//
// Solver failures abort the search. If the predicate never holds, Optimize
// returns a [*SearchError] wrapping [ErrNotConverged]. The context is
// checked before every solver call.
func (s *Session) Optimize(ctx context.Context, opts SearchOptions) (*SplineCurve, error) {
	ratio := cmp.Or(opts.ScaleRatio, DefaultScaleRatio)
	maxIter := cmp.Or(opts.MaxIter, DefaultMaxIter)
	switch {
	case !(ratio > 0 && ratio < 1):
		return nil, invalid("ScaleRatio", ErrSearchOption, ratio)
	case maxIter < 1:
		return nil, invalid("MaxIter", ErrSearchOption, maxIter)
	case opts.Converged == nil:
		return nil, invalid("Converged", ErrSearchOption, nil)
	case !(opts.RMSStart >= 0) || math.IsInf(opts.RMSStart, 0):
		return nil, invalid("RMSStart", ErrSmoothingTarget, opts.RMSStart)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.Smooth(opts.RMSStart); err != nil {
		return nil, err
	}
	knots := s.Knots()
	rms, _ := s.RMSError()
	for i := range maxIter {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		prevKnots, prevRMS := knots, rms
		if _, err := s.SmoothMore(rms * ratio); err != nil {
			return nil, err
		}
		knots = s.Knots()
		rms, _ = s.RMSError()
		s.log.Debug("smoothing search",
			"iteration", i+1,
			"knots", knots,
			"dknots", knots-prevKnots,
			"rms", rms,
			"drms", prevRMS-rms,
		)
		if opts.Converged(knots, knots-prevKnots, rms, prevRMS-rms) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return s.Smooth(prevRMS)
		}
	}
	return nil, &SearchError{Iterations: maxIter, Knots: knots, RMS: rms}
}
