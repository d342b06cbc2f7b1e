package model

import (
	"container/heap"
	"iter"
	"slices"
)

const DefaultTopK = 5

type PlanResult struct {
	Score    float64  `json:"score"`
	Schedule []string `json:"schedule"`
}

type candidate struct {
	result   PlanResult
	sequence uint64 // Discovery order, used to break ties in favor of the first seen candidate
}

// Checks whether a ranks strictly before b: higher score first, then earlier discovery
func (a candidate) before(b candidate) bool {
	if a.result.Score != b.result.Score {
		return a.result.Score > b.result.Score
	}
	return a.sequence < b.sequence
}

// candidateHeap is a min-heap whose root is the worst retained candidate
type candidateHeap []candidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return h[j].before(h[i]) }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)        { *h = append(*h, x.(candidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	last := old[len(old)-1]
	*h = old[:len(old)-1]
	return last
}

// topKSelector retains the k best candidates offered so far without holding the others
type topKSelector struct {
	k          int
	candidates candidateHeap
}

func newTopKSelector(k int) *topKSelector {
	k = max(k, 0)
	return &topKSelector{
		k:          k,
		candidates: make(candidateHeap, 0, k),
	}
}

// Offer retains the candidate if it ranks before the worst retained one (or there's room left). Returns whether it was retained
func (selector *topKSelector) Offer(score float64, schedule []string, sequence uint64) bool {
	return selector.offer(candidate{PlanResult{score, schedule}, sequence})
}

func (selector *topKSelector) offer(incoming candidate) bool {
	if selector.k == 0 {
		return false
	}

	if len(selector.candidates) < selector.k {
		heap.Push(&selector.candidates, incoming)
		return true
	}

	if !incoming.before(selector.candidates[0]) {
		return false
	}
	selector.candidates[0] = incoming
	heap.Fix(&selector.candidates, 0)
	return true
}

// Merge offers every candidate retained by other. Since candidates keep their discovery sequence, the outcome does not depend on the merge order
func (selector *topKSelector) Merge(other *topKSelector) {
	for _, incoming := range other.candidates {
		selector.offer(incoming)
	}
}

func (selector *topKSelector) Len() int {
	return len(selector.candidates)
}

// Results returns the retained candidates sorted by descending score, ties by discovery order
func (selector *topKSelector) Results() []PlanResult {
	sorted := slices.Clone(selector.candidates)
	slices.SortFunc(sorted, func(a, b candidate) int {
		if a.before(b) {
			return -1
		} else if b.before(a) {
			return 1
		}
		return 0
	})

	results := make([]PlanResult, 0, len(sorted))
	for _, retained := range sorted {
		results = append(results, retained.result)
	}
	return results
}

// TopK consumes a stream of (score, schedule) pairs and returns the k highest-scoring ones sorted by descending score.
// Ties are ranked by their position in the stream
func TopK(k int, candidates iter.Seq2[float64, []string]) []PlanResult {
	selector := newTopKSelector(k)
	sequence := uint64(0)
	for score, schedule := range candidates {
		selector.Offer(score, schedule, sequence)
		sequence++
	}
	return selector.Results()
}
