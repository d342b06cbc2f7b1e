package model

import (
	"fmt"
	"math"
	"slices"
)

// planningState holds everything a planning run derives from the catalog and the request. It's read-only once built
type planningState struct {
	catalog  Catalog
	request  Request
	eligible []string

	minSize, maxSize int
	candidates       uint64

	validator scheduleValidator
	scorer    scorer
}

func prepare(catalog Catalog, request Request) (planningState, error) {
	//** Validate request
	if request.TopK < 0 {
		return planningState{}, fmt.Errorf("top-k must not be negative: %v", request.TopK)
	} else if request.CourseCount < 0 {
		return planningState{}, fmt.Errorf("course count must not be negative: %v", request.CourseCount)
	} else if request.MinUnits > request.MaxUnits {
		return planningState{}, fmt.Errorf("minimum units (%v) must not exceed maximum units (%v)", request.MinUnits, request.MaxUnits)
	} else if request.CourseCount == 0 && request.MinSize > 0 && request.MaxSize > 0 && request.MinSize > request.MaxSize {
		return planningState{}, fmt.Errorf("minimum size (%v) must not exceed maximum size (%v)", request.MinSize, request.MaxSize)
	}
	if err := request.Interests.Validate(); err != nil {
		return planningState{}, err
	}
	if err := request.Weights.validate(); err != nil {
		return planningState{}, err
	}
	if err := request.Completed.validate(catalog); err != nil {
		return planningState{}, err
	}

	//** Initialize dependencies
	evaluator := newRequirementEvaluator(catalog, request.Completed)
	filter := newEligibilityFilter(catalog, request.Completed, evaluator)
	var checker conflictChecker = newNoConflictChecker()
	if request.CheckConflicts {
		checker = newSectionConflictChecker()
	}

	eligible, err := filter.Eligible(request.Term)
	if err != nil {
		return planningState{}, err
	}

	//** Extract sizes' domain
	minSize, maxSize := request.CourseCount, request.CourseCount
	if request.CourseCount == 0 {
		minSize, maxSize = max(request.MinSize, 1), request.MaxSize
		if maxSize <= 0 {
			maxSize = len(eligible)
		}
	}
	maxSize = min(maxSize, len(eligible))

	state := planningState{
		catalog:   catalog,
		request:   request,
		eligible:  eligible,
		minSize:   minSize,
		maxSize:   maxSize,
		validator: newScheduleValidator(catalog, request.MinUnits, request.MaxUnits, checker),
		scorer:    newScorer(catalog, request.Interests, request.Weights),
	}
	state.candidates = CountCombinations(len(eligible), minSize, maxSize)

	if request.TopK > 0 && (state.candidates == math.MaxUint64 || (request.MaxCandidates > 0 && state.candidates > request.MaxCandidates)) {
		limit := request.MaxCandidates
		if limit == 0 {
			limit = math.MaxUint64
		}
		return planningState{}, CandidateLimitError{Eligible: len(eligible), Candidates: state.candidates, Limit: limit}
	}

	if request.Logger != nil {
		request.Logger.Printf("eligible courses: %v, sizes: [%v, %v], candidate schedules: %v", len(eligible), minSize, maxSize, state.candidates)
	}

	return state, nil
}

func verify(results []PlanResult, catalog Catalog, request Request) bool {
	state, err := prepare(catalog, request)
	if err != nil || len(results) > request.TopK {
		return false
	}

	eligible := make(map[string]bool, len(state.eligible))
	for _, id := range state.eligible {
		eligible[id] = true
	}

	for i, result := range results {
		schedule := result.Schedule

		// Check that:
		// - Schedule's size is within the requested sizes
		// - Schedule is sorted and holds no duplicates
		// - Every course is eligible
		// - Schedule is valid
		// - Score is exactly the one the scoring function gives
		// - Results are sorted by descending score
		if len(schedule) < state.minSize || len(schedule) > state.maxSize ||
			!slices.IsSorted(schedule) ||
			len(slices.Compact(slices.Clone(schedule))) != len(schedule) ||
			slices.ContainsFunc(schedule, func(id string) bool { return !eligible[id] }) ||
			(i > 0 && results[i-1].Score < result.Score) {
			return false
		}

		valid, err := state.validator.IsValid(schedule)
		if err != nil || !valid || state.scorer.Score(schedule) != result.Score {
			return false
		}
	}
	return true
}
