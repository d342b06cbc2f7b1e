package model

import (
	"context"
)

type sequentialPlanner struct{}

func NewSequentialPlanner() Planner {
	return &sequentialPlanner{}
}

func (planner *sequentialPlanner) Plan(ctx context.Context, catalog Catalog, request Request) ([]PlanResult, error) {
	state, err := prepare(catalog, request)
	if err != nil {
		return nil, err
	} else if request.TopK == 0 {
		return []PlanResult{}, nil
	}

	selector := newTopKSelector(request.TopK)
	generator := newCombinationGenerator(state.eligible, state.minSize, state.maxSize)

	// Adding a course never lowers the units, so partial schedules above the maximum are pruned
	constraints := []func(combination []string) bool{
		unitsCapConstraint(catalog, request.MaxUnits),
	}

	examined := uint64(0)
	for schedule := range generator.Combinations(constraints) {
		if examined%batchSize == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		examined++

		valid, err := state.validator.IsValid(schedule)
		if err != nil {
			return nil, err
		} else if !valid {
			continue
		}
		selector.Offer(state.scorer.Score(schedule), schedule, examined)
	}

	if request.Logger != nil {
		request.Logger.Printf("examined %v candidate schedules", examined)
	}
	return selector.Results(), nil
}

func (planner *sequentialPlanner) Verify(results []PlanResult, catalog Catalog, request Request) bool {
	return verify(results, catalog, request)
}
