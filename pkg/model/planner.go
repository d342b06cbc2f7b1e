package model

import (
	"context"
	"log"
)

const DefaultMaxCandidates uint64 = 1_000_000

// Amount of candidates examined between two cancellation checks
const batchSize = 1024

type Request struct {
	Completed CompletedSet
	Term      *Term // If nil, every course is considered regardless of the terms it's offered in

	// Fixed-size mode is used when CourseCount is positive, otherwise every size in [MinSize, MaxSize] is considered.
	// MinSize defaults to 1 and a non-positive MaxSize stands for the amount of eligible courses
	CourseCount int
	MinSize     int
	MaxSize     int

	MinUnits float64
	MaxUnits float64
	TopK     int

	Interests InterestProfile
	Weights   Weights

	MaxCandidates  uint64 // 0 stands for no limit
	CheckConflicts bool   // Reject schedules whose courses cannot be given distinct sections

	Logger *log.Logger // Optional diagnostics
}

// DefaultRequest returns a request with the default bounds: 8 to 12 units, the 5 best plans and at most 1000000 candidates
func DefaultRequest() Request {
	return Request{
		Completed:     NewCompletedSet(),
		MinUnits:      DefaultMinUnits,
		MaxUnits:      DefaultMaxUnits,
		TopK:          DefaultTopK,
		Interests:     InterestProfile{},
		MaxCandidates: DefaultMaxCandidates,
	}
}

type Planner interface {
	// Returns the best plans sorted by descending score
	Plan(ctx context.Context, catalog Catalog, request Request) ([]PlanResult, error)

	// Checks whether the results are consistent with the request: every schedule is eligible and valid, scores are exact and sorted, and there are at most TopK results
	Verify(results []PlanResult, catalog Catalog, request Request) bool
}
