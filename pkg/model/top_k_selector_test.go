package model

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

type scoredSchedule struct {
	score    float64
	schedule []string
}

func stream(candidates []scoredSchedule) func(yield func(float64, []string) bool) {
	return func(yield func(float64, []string) bool) {
		for _, candidate := range candidates {
			if !yield(candidate.score, candidate.schedule) {
				return
			}
		}
	}
}

func TestTopK(t *testing.T) {
	candidates := []scoredSchedule{
		{0.5, []string{"A"}},
		{2.0, []string{"B"}},
		{1.0, []string{"C"}},
		{2.0, []string{"D"}},
		{-1.0, []string{"E"}},
		{1.5, []string{"F"}},
	}

	t.Run("Bounded and sorted", func(t *testing.T) {
		//** Act
		results := TopK(3, stream(candidates))

		//** Assert
		assert.Equal(t, []PlanResult{
			{Score: 2.0, Schedule: []string{"B"}},
			{Score: 2.0, Schedule: []string{"D"}},
			{Score: 1.5, Schedule: []string{"F"}},
		}, results)
	})

	t.Run("Fewer candidates than k", func(t *testing.T) {
		results := TopK(10, stream(candidates))
		assert.Len(t, results, len(candidates))
		assert.True(t, slices.IsSortedFunc(results, func(a, b PlanResult) int {
			switch {
			case a.Score > b.Score:
				return -1
			case a.Score < b.Score:
				return 1
			}
			return 0
		}))
	})

	t.Run("Zero k", func(t *testing.T) {
		results := TopK(0, stream(candidates))
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("Ties favor the first seen", func(t *testing.T) {
		tied := []scoredSchedule{
			{1, []string{"first"}},
			{1, []string{"second"}},
			{1, []string{"third"}},
		}

		results := TopK(2, stream(tied))

		assert.Equal(t, []PlanResult{
			{Score: 1, Schedule: []string{"first"}},
			{Score: 1, Schedule: []string{"second"}},
		}, results)
	})

	t.Run("Dominance", func(t *testing.T) {
		random := rand.New(rand.NewPCG(7, 8))
		for range 50 {
			//** Arrange
			all := make([]scoredSchedule, random.IntN(40))
			for i := range all {
				all[i] = scoredSchedule{float64(random.IntN(10)), []string{fmt.Sprint(i)}}
			}
			k := random.IntN(8)

			//** Act
			results := TopK(k, stream(all))

			//** Assert
			assert.Len(t, results, min(k, len(all)))
			if len(results) == 0 {
				continue
			}
			worst := results[len(results)-1].Score
			retained := make(map[string]bool)
			for _, result := range results {
				retained[result.Schedule[0]] = true
			}
			for _, candidate := range all {
				if !retained[candidate.schedule[0]] {
					assert.LessOrEqual(t, candidate.score, worst)
				}
			}
		}
	})
}

func TestTopKSelectorMerge(t *testing.T) {
	//** Arrange
	random := rand.New(rand.NewPCG(9, 10))
	whole := newTopKSelector(4)
	parts := []*topKSelector{newTopKSelector(4), newTopKSelector(4), newTopKSelector(4)}
	for sequence := range uint64(60) {
		score := float64(random.IntN(6))
		schedule := []string{fmt.Sprint(sequence)}
		whole.Offer(score, schedule, sequence)
		parts[random.IntN(len(parts))].Offer(score, schedule, sequence)
	}

	//** Act
	merged := newTopKSelector(4)
	for _, i := range []int{2, 0, 1} {
		merged.Merge(parts[i])
	}

	//** Assert
	assert.Equal(t, 4, merged.Len())
	assert.Equal(t, whole.Results(), merged.Results())
}

func TestTopKSelectorOffer(t *testing.T) {
	selector := newTopKSelector(1)

	assert.True(t, selector.Offer(1, []string{"A"}, 0))
	assert.False(t, selector.Offer(1, []string{"B"}, 1))
	assert.False(t, selector.Offer(0.5, []string{"C"}, 2))
	assert.True(t, selector.Offer(1.5, []string{"D"}, 3))
	assert.Equal(t, []PlanResult{{Score: 1.5, Schedule: []string{"D"}}}, selector.Results())

	assert.False(t, newTopKSelector(0).Offer(1, []string{"A"}, 0))
	assert.False(t, newTopKSelector(-3).Offer(1, []string{"A"}, 0))
}
