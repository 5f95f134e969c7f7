package tilepath

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Request is one search in a FindPaths batch.
type Request struct {
	Mover   Mover
	StartX  int
	StartY  int
	TargetX int
	TargetY int
}

// Response pairs a Request with its outcome. Err carries per-search failures
// such as ErrNoPath or ErrOutOfBounds.
type Response struct {
	Request Request
	Result  Result
	Err     error
}

// FindPaths runs every request against m on a pool of worker goroutines, each
// with its own Finder. Responses are returned in request order. The returned
// error is only set when the context ends the batch early.
//
// m is shared by all workers, so its methods, Visited included, must be safe
// for concurrent use.
func FindPaths(contextObject context.Context, m TileMap, requests []Request, options ...Option) ([]Response, error) {
	searchOptions, err := buildOptions(options)
	if err != nil {
		return nil, err
	}
	numberOfWorkers := min(searchOptions.NumberOfWorkers, max(len(requests), 1))

	finders := make([]*Finder, numberOfWorkers)
	for i := range finders {
		if finders[i], err = NewFinder(m, options...); err != nil {
			return nil, err
		}
	}

	responses := make([]Response, len(requests))
	group, groupContext := errgroup.WithContext(contextObject)
	jobs := make(chan int)

	group.Go(func() error {
		defer close(jobs)
		for i := range requests {
			select {
			case <-groupContext.Done():
				return groupContext.Err()
			case jobs <- i:
			}
		}
		return nil
	})

	for _, finder := range finders {
		finder := finder
		group.Go(func() error {
			for i := range jobs {
				request := requests[i]
				result, err := finder.FindPathContext(groupContext, request.Mover,
					request.StartX, request.StartY, request.TargetX, request.TargetY)
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				responses[i] = Response{Request: request, Result: result, Err: err}
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return responses, err
	}
	return responses, nil
}
