package solver

import (
	"math/rand"
	"sort"
	"time"
)

// MaxCandidates is the default cap on how many candidate words a slot
// considers before truncating the ranked list (spec.md §4.3 step 5).
const MaxCandidates = 5000

// DefaultMaxAttempts is the default recursion budget.
const DefaultMaxAttempts = 500_000

// DefaultTimeout is the default wall-clock budget.
const DefaultTimeout = 60 * time.Second

// Limits bounds a single Solve call (spec.md §4.3, §9's "Configuration"
// parameters).
type Limits struct {
	MaxAttempts   int
	Timeout       time.Duration
	MaxCandidates int
	LetterWeights map[byte]int
	// Seed makes candidate-ordering jitter reproducible. The zero
	// value is a valid seed (not a "use default" sentinel) — callers
	// that want non-determinism must supply one themselves, per
	// spec.md §4.3's "seeded externally" note.
	Seed uint64
}

// DefaultLimits returns the recommended defaults from spec.md §4.3.
func DefaultLimits(seed uint64) Limits {
	return Limits{
		MaxAttempts:   DefaultMaxAttempts,
		Timeout:       DefaultTimeout,
		MaxCandidates: MaxCandidates,
		LetterWeights: DefaultLetterWeights(),
		Seed:          seed,
	}
}

func (l Limits) normalized() Limits {
	if l.MaxAttempts <= 0 {
		l.MaxAttempts = DefaultMaxAttempts
	}
	if l.Timeout <= 0 {
		l.Timeout = DefaultTimeout
	}
	if l.MaxCandidates <= 0 {
		l.MaxCandidates = MaxCandidates
	}
	if l.LetterWeights == nil {
		l.LetterWeights = DefaultLetterWeights()
	}
	return l
}

// Status discriminates a Result between a completed grid and a
// failure.
type Status int

const (
	// StatusSolution means Grid, AcrossWords, and DownWords are
	// populated and valid.
	StatusSolution Status = iota
	// StatusFailure means Reason explains why, and no grid fields
	// should be read.
	StatusFailure
)

// Result is the solver's discriminated return value (spec.md §4.3's
// public contract): either a SOLUTION with a completed grid and word
// list, or a FAILURE with a reason.
type Result struct {
	Status Status
	Reason FailureReason // meaningful only when Status == StatusFailure

	Grid        [Size][Size]byte // 0 for BLOCK, 'A'-'Z' for a filled cell
	AcrossWords map[int]string   // clue number -> word, present only on SOLUTION
	DownWords   map[int]string   // clue number -> word, present only on SOLUTION

	Attempts   int
	Backtracks int
	Elapsed    time.Duration
}

// Solve fills template using words drawn from index, honoring limits,
// and returns either a SOLUTION or a FAILURE (spec.md §4.3).
func Solve(t *Template, index *LetterIndex, limits Limits) Result {
	start := time.Now()
	limits = limits.normalized()

	slots, err := ExtractSlots(t)
	if err != nil {
		return Result{Status: StatusFailure, Reason: ReasonInvalidTemplate, Elapsed: time.Since(start)}
	}

	requiredLengths := make(map[int]bool)
	for _, s := range slots {
		requiredLengths[s.Length()] = true
	}
	for length := range requiredLengths {
		if !index.HasLength(length) {
			return Result{Status: StatusFailure, Reason: ReasonEmptyDictionary, Elapsed: time.Since(start)}
		}
	}

	sc := &searchContext{
		slots:  slots,
		order:  mostConstrainedOrder(slots),
		index:  index,
		limits: limits,
		rng:    rand.New(rand.NewSource(int64(limits.Seed))),
		used:   make(map[string]bool),
		start:  start,
	}

	if sc.search(0) {
		return sc.solution(time.Since(start))
	}

	reason := sc.stopReason
	if reason == "" {
		reason = ReasonExhausted
	}
	return Result{
		Status:     StatusFailure,
		Reason:     reason,
		Attempts:   sc.attempts,
		Backtracks: sc.backtracks,
		Elapsed:    time.Since(start),
	}
}

// mostConstrainedOrder decides, once before search begins, the fixed
// order in which slots are filled: most intersections first, ties
// broken by longer slots first (spec.md §4.3's most-constrained-first
// rule — the mandated replacement for an earlier fewest-intersections
// variant, per spec.md §9).
func mostConstrainedOrder(slots []Slot) []int {
	order := make([]int, len(slots))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := slots[order[i]], slots[order[j]]
		if len(a.Intersections) != len(b.Intersections) {
			return len(a.Intersections) > len(b.Intersections)
		}
		return a.Length() > b.Length()
	})
	return order
}

// searchContext carries everything the backtracking search mutates and
// restores in place: the grid state, the used-word set, and the
// attempt/backtrack counters (spec.md §3's "Search context").
type searchContext struct {
	slots  []Slot
	order  []int
	index  *LetterIndex
	limits Limits
	rng    *rand.Rand
	start  time.Time

	grid [Size][Size]byte
	used map[string]bool

	attempts   int
	backtracks int
	stopReason FailureReason
}

func (sc *searchContext) timedOut() bool {
	return time.Since(sc.start) > sc.limits.Timeout
}

// search tries to fill sc.order[pos:], returning true on a complete,
// consistent assignment. It leaves the grid exactly as it found it on
// any returned false (spec.md §3 lifecycle, §8 property 5).
func (sc *searchContext) search(pos int) bool {
	sc.attempts++
	if sc.attempts > sc.limits.MaxAttempts {
		sc.stopReason = ReasonMaxAttempts
		return false
	}
	if sc.timedOut() {
		sc.stopReason = ReasonTimeout
		return false
	}
	if pos == len(sc.order) {
		return true
	}

	slot := &sc.slots[sc.order[pos]]
	candidates := sc.candidatesFor(slot)

	for _, word := range candidates {
		preFilled := sc.place(slot, word)

		succeeded := sc.forwardCheck(slot) && sc.search(pos+1)
		if succeeded {
			return true
		}

		sc.unplace(slot, word, preFilled)
		sc.backtracks++

		if sc.stopReason != "" {
			return false
		}
	}

	return false
}

// pattern reads the slot's current letters off the grid, with 0 for an
// unfilled position (spec.md §4.3 step 3's wildcard pattern, kept as
// raw bytes rather than a string to avoid an allocation per probe).
func (sc *searchContext) pattern(slot *Slot) []byte {
	p := make([]byte, slot.Length())
	for i, pos := range slot.Positions {
		p[i] = sc.grid[pos.Row][pos.Col]
	}
	return p
}

// candidatesFor computes the scored, jittered, capped candidate list
// for slot given the grid's current state (spec.md §4.3 steps 3-5).
func (sc *searchContext) candidatesFor(slot *Slot) []string {
	length := slot.Length()
	pattern := sc.pattern(slot)

	var base []string
	fixedCount := 0
	for _, c := range pattern {
		if c != 0 {
			fixedCount++
		}
	}

	if fixedCount == 0 {
		words := sc.index.WordsOfLength(length)
		base = make([]string, len(words))
		copy(base, words)
	} else {
		type bucket struct {
			set map[string]struct{}
		}
		buckets := make([]bucket, 0, fixedCount)
		for p, c := range pattern {
			if c == 0 {
				continue
			}
			set := sc.index.Bucket(length, p, c)
			if len(set) == 0 {
				return nil
			}
			buckets = append(buckets, bucket{set: set})
		}
		sort.Slice(buckets, func(i, j int) bool { return len(buckets[i].set) < len(buckets[j].set) })

		base = make([]string, 0, len(buckets[0].set))
		for word := range buckets[0].set {
			inAll := true
			for _, b := range buckets[1:] {
				if _, ok := b.set[word]; !ok {
					inAll = false
					break
				}
			}
			if inAll {
				base = append(base, word)
			}
		}
	}

	candidates := base[:0:0]
	for _, word := range base {
		if sc.used[word] {
			continue
		}
		candidates = append(candidates, word)
	}
	if len(candidates) == 0 {
		return nil
	}

	// Candidates drawn from a bucket intersection arrive in Go's
	// randomized map-iteration order. Without a canonical order here,
	// the sequence in which sc.rng is drawn from would vary run to
	// run even under a fixed seed, breaking reproducibility (spec.md
	// §4.3's determinism guarantee).
	sort.Strings(candidates)

	weights := sc.limits.LetterWeights
	scores := make(map[string]float64, len(candidates))
	for _, word := range candidates {
		scores[word] = crossabilityScore(word, weights) + sc.rng.Float64()*2
	}
	sort.Slice(candidates, func(i, j int) bool { return scores[candidates[i]] > scores[candidates[j]] })

	if len(candidates) > sc.limits.MaxCandidates {
		candidates = candidates[:sc.limits.MaxCandidates]
	}
	return candidates
}

// place writes word into slot's cells and records the word as used,
// returning a mask of which cells already held a letter before this
// call (spec.md §4.3 step 8's "shared with an earlier slot" check).
func (sc *searchContext) place(slot *Slot, word string) []bool {
	preFilled := make([]bool, len(slot.Positions))
	for i, pos := range slot.Positions {
		preFilled[i] = sc.grid[pos.Row][pos.Col] != 0
		sc.grid[pos.Row][pos.Col] = word[i]
	}
	sc.used[word] = true
	return preFilled
}

// unplace undoes place: cells not shared with an earlier placement are
// cleared, and the word is freed for reuse elsewhere.
func (sc *searchContext) unplace(slot *Slot, word string, preFilled []bool) {
	for i, pos := range slot.Positions {
		if !preFilled[i] {
			sc.grid[pos.Row][pos.Col] = 0
		}
	}
	delete(sc.used, word)
}

// isFull reports whether every cell of slot already holds a letter.
func (sc *searchContext) isFull(slot *Slot) bool {
	for _, pos := range slot.Positions {
		if sc.grid[pos.Row][pos.Col] == 0 {
			return false
		}
	}
	return true
}

// forwardCheck requires every not-yet-full slot intersecting the one
// just placed to still have at least one candidate (spec.md §4.3 step
// 7). The timeout is polled here too, per spec.md §5's "evaluated on
// each recursion and on each forward-check probe".
func (sc *searchContext) forwardCheck(placed *Slot) bool {
	for _, isec := range placed.Intersections {
		if sc.timedOut() {
			sc.stopReason = ReasonTimeout
			return false
		}
		other := &sc.slots[isec.OtherSlot]
		if sc.isFull(other) {
			continue
		}
		if len(sc.candidatesFor(other)) == 0 {
			return false
		}
	}
	return true
}

// solution assembles the public Result from a completed search.
func (sc *searchContext) solution(elapsed time.Duration) Result {
	res := Result{
		Status:      StatusSolution,
		Grid:        sc.grid,
		AcrossWords: make(map[int]string),
		DownWords:   make(map[int]string),
		Attempts:    sc.attempts,
		Backtracks:  sc.backtracks,
		Elapsed:     elapsed,
	}
	for _, slot := range sc.slots {
		word := make([]byte, slot.Length())
		for i, pos := range slot.Positions {
			word[i] = sc.grid[pos.Row][pos.Col]
		}
		switch slot.Direction {
		case Across:
			res.AcrossWords[slot.Index] = string(word)
		case Down:
			res.DownWords[slot.Index] = string(word)
		}
	}
	return res
}
