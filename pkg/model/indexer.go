package model

// indexer interface is design to give a unique index to a combination of a fixed size (drawn from a fixed amount of items) and vice versa.
// Indexes follow the lexicographic order of the combinations, starting at 0
type indexer interface {
	// Returns the lexicographic index of a combination given as increasing item positions
	Index(combination []int) uint64
	// Returns the combination (as increasing item positions) that has the given lexicographic index
	Combination(index uint64) []int
	// Returns the amount of combinations (saturates at math.MaxUint64)
	Total() uint64
}

func newIndexer(items, size int) indexer {
	return &indexerImplementation{
		items:     items,
		size:      size,
		binomials: binomialTable(items),
	}
}
