package model

import (
	"context"
	"errors"
	"runtime"

	"github.com/samber/lo"
)

// Jobs per worker the candidate space of each size is split into
const jobsPerWorker = 4

type parallelPlanner struct {
	workers int
}

// NewParallelPlanner returns a planner that splits the candidate space into disjoint index ranges examined by workers goroutines.
// Its results are the same as the sequential planner's. A non-positive workers stands for runtime.NumCPU()
func NewParallelPlanner(workers int) Planner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &parallelPlanner{workers: workers}
}

// rankRange is a job: combinations of the given size whose lexicographic index lies in [from, to)
type rankRange struct {
	indexer  indexer
	from, to uint64
	offset   uint64 // Amount of candidates of smaller sizes, so that offset+index is a global discovery sequence
}

type workerResult struct {
	selector *topKSelector
	examined uint64
	err      error
}

func (planner *parallelPlanner) Plan(parent context.Context, catalog Catalog, request Request) ([]PlanResult, error) {
	state, err := prepare(catalog, request)
	if err != nil {
		return nil, err
	} else if request.TopK == 0 {
		return []PlanResult{}, nil
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	jobs := make(chan rankRange)
	resultsChannel := make(chan workerResult, planner.workers)

	// Execute jobs on different goroutines, each one keeping its own top-k
	for range planner.workers {
		go func() {
			result := workerResult{selector: newTopKSelector(request.TopK)}
			for job := range jobs {
				// Keep draining jobs after a failure so that the producer is never blocked
				if result.err != nil {
					continue
				}
				examined, err := examine(ctx, state, job, result.selector)
				result.examined += examined
				if err != nil {
					result.err = err
					cancel()
				}
			}
			resultsChannel <- result
		}()
	}

	// Produce jobs
	offset := uint64(0)
produce:
	for size := state.minSize; size <= state.maxSize; size++ {
		indexer := newIndexer(len(state.eligible), size)
		total := indexer.Total()
		chunk := max(batchSize, total/uint64(planner.workers*jobsPerWorker))

		for from := uint64(0); from < total; from += chunk {
			select {
			case jobs <- rankRange{indexer: indexer, from: from, to: min(from+chunk, total), offset: offset}:
			case <-ctx.Done():
				break produce
			}
		}
		offset += total
	}
	close(jobs)

	// Collect and merge workers' selectors
	selector := newTopKSelector(request.TopK)
	examined := uint64(0)
	var workerErr error
	for range planner.workers {
		result := <-resultsChannel
		workerErr = causeOf(workerErr, result.err)
		examined += result.examined
		selector.Merge(result.selector)
	}

	if workerErr != nil {
		return nil, workerErr
	} else if err := parent.Err(); err != nil {
		return nil, err
	}

	if request.Logger != nil {
		request.Logger.Printf("examined %v candidate schedules on %v workers", examined, planner.workers)
	}
	return selector.Results(), nil
}

// Picks the error to report among the workers'. A worker failure cancels the others, so their context errors never hide it
func causeOf(current, incoming error) error {
	if current == nil {
		return incoming
	} else if incoming != nil && isContextError(current) && !isContextError(incoming) {
		return incoming
	}
	return current
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Examines the job's combinations, offering the valid ones to the selector. Returns the amount of examined combinations
func examine(ctx context.Context, state planningState, job rankRange, selector *topKSelector) (uint64, error) {
	if job.from >= job.to {
		return 0, nil
	}

	items := len(state.eligible)
	positions := job.indexer.Combination(job.from)
	examined := uint64(0)
	for index := job.from; index < job.to; index++ {
		if examined%batchSize == 0 {
			if err := ctx.Err(); err != nil {
				return examined, err
			}
		}
		examined++

		schedule := lo.Map(positions, func(position int, _ int) string { return state.eligible[position] })
		valid, err := state.validator.IsValid(schedule)
		if err != nil {
			return examined, err
		} else if valid {
			selector.Offer(state.scorer.Score(schedule), schedule, job.offset+index)
		}

		if !nextCombination(positions, items) {
			break
		}
	}
	return examined, nil
}

func (planner *parallelPlanner) Verify(results []PlanResult, catalog Catalog, request Request) bool {
	return verify(results, catalog, request)
}
