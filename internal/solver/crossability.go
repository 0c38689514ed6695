package solver

// DefaultLetterWeights is the fixed letter-frequency table spec.md
// §4.3 mandates for crossability scoring. It is treated as the
// canonical weighting referenced by property 7 (determinism under a
// fixed seed) — spec.md §9 leaves room for a different weighting, but
// this one is what the solver ships with.
func DefaultLetterWeights() map[byte]int {
	return map[byte]int{
		'E': 12, 'T': 9, 'A': 8, 'O': 7, 'I': 7, 'N': 6, 'S': 6, 'H': 5,
		'R': 5, 'D': 4, 'L': 4, 'C': 3, 'U': 3, 'M': 3, 'W': 2, 'F': 2,
		'G': 2, 'Y': 2, 'P': 2, 'B': 2, 'V': 1, 'K': 1, 'J': 1, 'X': 1,
		'Q': 1, 'Z': 1,
	}
}

// crossabilityScore is the average letter-frequency weight of a word's
// letters (spec.md §4.3 step 5, before the per-candidate random jitter
// is added by the caller).
func crossabilityScore(word string, weights map[byte]int) float64 {
	if len(word) == 0 {
		return 0
	}
	total := 0
	for i := 0; i < len(word); i++ {
		total += weights[word[i]]
	}
	return float64(total) / float64(len(word))
}
