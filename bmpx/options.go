package bmpx

import (
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type resizeOptions struct {
	// number of target rows in each job
	// handed to a worker (go routine)
	pChunk int
	// parallel limit
	pLimit int
}

func newResizeOptions(opts []ResizeOption) (resizeOptions, error) {
	o := resizeOptions{
		pChunk: 16,
		pLimit: runtime.GOMAXPROCS(0),
	}
	for i := range opts {
		opts[i].apply(&o)
	}
	return o, o.validate()
}

func (o *resizeOptions) validate() error {
	if o.pChunk <= 0 {
		return errors.New(
			"invalid value for parallel batch size, must be greater than 0",
		)
	}
	if o.pLimit < 0 {
		return errors.New(
			"invalid value for parallel limit, must be greater or equal to 0",
		)
	}
	return nil
}

// parallel splits [start, stop) into chunks of o.pChunk and runs fn over
// them on at most o.pLimit goroutines. The first error is returned after
// all started chunks finish.
func (o *resizeOptions) parallel(start, stop int, fn func(start, stop int) error) error {
	if stop <= start {
		return nil
	}
	if o.pLimit <= 1 || stop-start <= o.pChunk {
		return fn(start, stop)
	}
	var g errgroup.Group
	g.SetLimit(o.pLimit)
	for i := start; i < stop; i += o.pChunk {
		lo, hi := i, min(i+o.pChunk, stop)
		g.Go(func() error {
			return fn(lo, hi)
		})
	}
	return g.Wait()
}

type ResizeOption interface {
	apply(*resizeOptions)
}

type resizeOptionFunc func(*resizeOptions)

func (f resizeOptionFunc) apply(opts *resizeOptions) {
	f(opts)
}

// Maximum number of parallel workers (go routines).
// A limit of 0 or 1 resizes on the calling goroutine.
func WithParallelLimit(limit int) ResizeOption {
	return resizeOptionFunc(func(opts *resizeOptions) {
		opts.pLimit = limit
	})
}

// Number of target rows in each job that the
// workers (go routines) take on.
func WithParallelBatchSize(rows int) ResizeOption {
	return resizeOptionFunc(func(opts *resizeOptions) {
		opts.pChunk = rows
	})
}
