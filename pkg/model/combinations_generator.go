package model

import "iter"

type combinationGenerator interface {
	// Returns the amount of combinations the generator yields when no constraint is given (saturates at math.MaxUint64)
	Count() uint64

	// Lazily yields every combination (sizes ascending, each size in lexicographic order) whose prefixes hold all the constraints.
	// Constraints receive a partial combination, if a constraint rejects it then none of its extensions is yielded, hence constraints must be monotonic.
	// Every yielded slice is a fresh copy that can be retained by the caller. The sequence can be iterated more than once
	//
	// Example:
	//
	//	generator := newCombinationGenerator([]string{"A", "B", "C"}, 1, 2)
	//
	//	for combination := range generator.Combinations([]func(combination []string) bool{
	//		func(combination []string) bool {
	//			// Reject every combination holding both "A" and "B"
	//			return !(slices.Contains(combination, "A") && slices.Contains(combination, "B"))
	//		},
	//	}) {
	//		fmt.Println(combination) // [A] [B] [C] [A C] [B C]
	//	}
	Combinations(constraints []func(combination []string) bool) iter.Seq[[]string]
}

// minSize and maxSize are inclusive and are clamped to [0, len(items)]
func newCombinationGenerator(items []string, minSize, maxSize int) combinationGenerator {
	return &combinationGeneratorImplementation{
		items:   items,
		minSize: max(minSize, 0),
		maxSize: min(maxSize, len(items)),
	}
}

type combinationGeneratorImplementation struct {
	items            []string
	minSize, maxSize int
}

func (generator *combinationGeneratorImplementation) Count() uint64 {
	return CountCombinations(len(generator.items), generator.minSize, generator.maxSize)
}

func (generator *combinationGeneratorImplementation) Combinations(constraints []func(combination []string) bool) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for size := generator.minSize; size <= generator.maxSize; size++ {
			combination := make([]string, 0, size)
			if !generator.combinations(constraints, size, 0, combination, yield) {
				return
			}
		}
	}
}

// Returns false when the consumer stopped the iteration
func (generator *combinationGeneratorImplementation) combinations(
	constraints []func(combination []string) bool,
	size int,
	start int,
	combination []string,
	yield func([]string) bool) bool {

	if len(combination) == size {
		combinationCopy := make([]string, len(combination))
		copy(combinationCopy, combination)
		return yield(combinationCopy)
	}

	// Leave enough items to complete the combination
	for i := start; i <= len(generator.items)-(size-len(combination)); i++ {
		combination = append(combination, generator.items[i])
		constraintViolated := false
		for _, constraint := range constraints {
			if !constraint(combination) {
				constraintViolated = true
				break
			}
		}

		if !constraintViolated && !generator.combinations(constraints, size, i+1, combination, yield) {
			return false
		}
		combination = combination[:len(combination)-1]
	}

	return true
}
