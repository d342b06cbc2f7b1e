package model

import (
	"math"
	"math/bits"
)

type indexerImplementation struct {
	items     int
	size      int
	binomials [][]uint64
}

func (indexer *indexerImplementation) Index(combination []int) uint64 {
	index := uint64(0)
	previous := -1
	for i, position := range combination {
		// Count the combinations that share the prefix but have a smaller item at position i
		for j := previous + 1; j < position; j++ {
			index = saturatingAdd(index, indexer.binomial(indexer.items-1-j, indexer.size-1-i))
		}
		previous = position
	}
	return index
}

func (indexer *indexerImplementation) Combination(index uint64) []int {
	combination := make([]int, indexer.size)
	previous := -1
	for i := range indexer.size {
		for j := previous + 1; j < indexer.items; j++ {
			count := indexer.binomial(indexer.items-1-j, indexer.size-1-i)
			if index < count {
				combination[i] = j
				previous = j
				break
			}
			index -= count
		}
	}
	return combination
}

func (indexer *indexerImplementation) Total() uint64 {
	return indexer.binomial(indexer.items, indexer.size)
}

func (indexer *indexerImplementation) binomial(n, k int) uint64 {
	if k < 0 || n < 0 || k > n {
		return 0
	}
	return indexer.binomials[n][k]
}

// Advances the combination to its lexicographic successor in place. Returns false if it was the last one
func nextCombination(combination []int, items int) bool {
	size := len(combination)
	i := size - 1
	for i >= 0 && combination[i] == items-size+i {
		i--
	}
	if i < 0 {
		return false
	}
	combination[i]++
	for j := i + 1; j < size; j++ {
		combination[j] = combination[j-1] + 1
	}
	return true
}

// Builds Pascal's triangle up to n, saturating at math.MaxUint64
func binomialTable(n int) [][]uint64 {
	table := make([][]uint64, n+1)
	for i := range n + 1 {
		table[i] = make([]uint64, i+1)
		table[i][0], table[i][i] = 1, 1
		for j := 1; j < i; j++ {
			table[i][j] = saturatingAdd(table[i-1][j-1], table[i-1][j])
		}
	}
	return table
}

func saturatingAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}

// CountCombinations returns the amount of combinations with sizes in [minSize, maxSize] drawn from items (saturates at math.MaxUint64)
func CountCombinations(items, minSize, maxSize int) uint64 {
	table := binomialTable(items)
	total := uint64(0)
	for size := max(minSize, 0); size <= min(maxSize, items); size++ {
		total = saturatingAdd(total, table[items][size])
	}
	return total
}
