package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"
)

// DefaultDetectTimeout bounds how long the aggregator waits for each
// detector's result when the caller passes no timeout.
const DefaultDetectTimeout = 5 * time.Second

// maxConcurrentDetectors bounds how many detectors run at once;
// detectors beyond the limit queue for a worker slot.
const maxConcurrentDetectors = 4

// ErrDetectorTimeout reports that a detector did not produce a result
// within the per-detector timeout.
var ErrDetectorTimeout = errors.New("detector timed out")

type detectResult struct {
	res *Resource
	err error
}

// GetAggregatedResources runs every detector concurrently and folds
// the results into a single Resource.
//
// The built-in environment detector is prepended to detectors, and
// results are folded strictly in list order, never completion order:
// initial (Empty if nil) is merged first and therefore has the highest
// precedence, then the environment detector, then the supplied
// detectors. Under Merge semantics an earlier detector's attribute
// survives a later detector's value for the same key unless it is the
// empty string.
//
// Each detector is waited on for at most timeout
// (DefaultDetectTimeout if timeout is not positive). A detector that
// fails, panics or times out contributes the empty resource and is
// logged at warn level, unless it reports RaiseOnError, in which case
// aggregation stops and the error is returned. The timeout is
// cooperative: in-flight detectors are not interrupted, their late
// results are simply discarded.
func GetAggregatedResources(ctx context.Context, detectors []Detector, initial *Resource, timeout time.Duration) (*Resource, error) {
	if initial == nil {
		initial = Empty()
	}
	if timeout <= 0 {
		timeout = DefaultDetectTimeout
	}

	all := make([]Detector, 0, len(detectors)+1)
	all = append(all, NewEnvDetector(false))
	all = append(all, detectors...)

	// Workers write each result to a dedicated buffered channel, so a
	// result that arrives after its wait expired never blocks the
	// worker and never leaks into another detector's slot.
	sem := semaphore.NewWeighted(maxConcurrentDetectors)
	results := make([]chan detectResult, len(all))
	for i, d := range all {
		ch := make(chan detectResult, 1)
		results[i] = ch
		go func(d Detector, ch chan<- detectResult) {
			if err := sem.Acquire(ctx, 1); err != nil {
				ch <- detectResult{err: err}
				return
			}
			defer sem.Release(1)
			ch <- runDetector(ctx, d)
		}(d, ch)
	}

	final := initial
	for i, d := range all {
		detected, err := waitForResult(ctx, results[i], timeout)
		if err != nil {
			if d.RaiseOnError() {
				return nil, fmt.Errorf("detector %T: %w", d, err)
			}
			slog.Warn("resource detector failed, ignoring",
				"detector", fmt.Sprintf("%T", d),
				"error", err)
			detected = Empty()
		}
		final = final.Merge(detected)
	}
	return final, nil
}

// runDetector invokes d.Detect, converting a panic into an error so a
// misbehaving detector cannot take down the aggregation.
func runDetector(ctx context.Context, d Detector) (result detectResult) {
	defer func() {
		if r := recover(); r != nil {
			result = detectResult{err: fmt.Errorf("detector panicked: %v", r)}
		}
	}()
	res, err := d.Detect(ctx)
	return detectResult{res: res, err: err}
}

// waitForResult blocks for one detector's result, bounded by timeout
// and the caller's context.
func waitForResult(ctx context.Context, ch <-chan detectResult, timeout time.Duration) (*Resource, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, r.err
		}
		if r.res == nil {
			return Empty(), nil
		}
		return r.res, nil
	case <-timer.C:
		return nil, ErrDetectorTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
