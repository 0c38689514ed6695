package solver

// LetterIndex answers "words of length L with letter c at position p"
// as a constant-time lookup of a precomputed set (spec.md §4.2). It is
// read-only once built; multiple solver runs may share one safely.
type LetterIndex struct {
	// byLength[L] holds all words of length L, in the order they were
	// inserted (the escalation controller inserts tier words in
	// descending frequency order, so this preserves that order).
	byLength map[int][]string
	// buckets[L][p][c] is the set of words of length L with letter c
	// at position p, keyed by word for O(1) membership and iteration.
	buckets map[int][]map[byte]map[string]struct{}
}

// BuildLetterIndex constructs the three-level index from a
// length-keyed mapping of uppercase word lists. Each word is inserted
// into every one of its L position buckets.
func BuildLetterIndex(wordsByLength map[int][]string) *LetterIndex {
	idx := &LetterIndex{
		byLength: make(map[int][]string, len(wordsByLength)),
		buckets:  make(map[int][]map[byte]map[string]struct{}, len(wordsByLength)),
	}

	for length, words := range wordsByLength {
		positions := make([]map[byte]map[string]struct{}, length)
		for p := range positions {
			positions[p] = make(map[byte]map[string]struct{})
		}

		cp := make([]string, len(words))
		copy(cp, words)
		idx.byLength[length] = cp

		for _, word := range words {
			if len(word) != length {
				continue
			}
			for p := 0; p < length; p++ {
				c := word[p]
				set, ok := positions[p][c]
				if !ok {
					set = make(map[string]struct{})
					positions[p][c] = set
				}
				set[word] = struct{}{}
			}
		}
		idx.buckets[length] = positions
	}

	return idx
}

// WordsOfLength returns every word of the given length known to the
// index, in insertion order.
func (idx *LetterIndex) WordsOfLength(length int) []string {
	return idx.byLength[length]
}

// Bucket returns the set of words of the given length with letter c at
// position p. The returned map must not be mutated by the caller.
func (idx *LetterIndex) Bucket(length, p int, c byte) map[string]struct{} {
	positions, ok := idx.buckets[length]
	if !ok || p < 0 || p >= len(positions) {
		return nil
	}
	return positions[p][c]
}

// HasLength reports whether the index has any words of the given
// length at all.
func (idx *LetterIndex) HasLength(length int) bool {
	words, ok := idx.byLength[length]
	return ok && len(words) > 0
}
