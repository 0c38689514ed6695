package solver

// Tier is a dictionary size/quality level (spec.md §4.4, §6): tier 0
// is the strict subset (~5,000 words by frequency), tier 1 the full
// curated list (~10,000 words). The controller never widens beyond
// tier 1 to an uncurated dictionary.
const (
	TierStrict = 0
	TierFull   = 1
)

// tierOrder is the fixed sequence the escalation controller walks.
var tierOrder = []int{TierStrict, TierFull}

// TierWordLists is a single tier's dictionary, partitioned by word
// length.
type TierWordLists map[int][]string

// EscalationConfig configures the escalation controller.
type EscalationConfig struct {
	// AttemptsPerTier maps tier -> how many times to retry that tier
	// with an advancing seed before moving on. Defaults to 5 per tier
	// when a tier is absent from the map.
	AttemptsPerTier map[int]int
	// Seed is the base seed for the first attempt; it advances by one
	// for every subsequent attempt across the whole escalation run, so
	// no two attempts (even across tiers) share a candidate ordering.
	Seed uint64
	// Limits bounds each individual Solve call. Its Seed field is
	// overwritten per attempt and need not be set by the caller.
	Limits Limits
}

// DefaultAttemptsPerTier returns the recommended 5-attempts-per-tier
// default (spec.md §4.4).
func DefaultAttemptsPerTier() map[int]int {
	return map[int]int{TierStrict: 5, TierFull: 5}
}

// EscalationResult is a Solve Result plus the tier that produced it.
// Tier is -1 when Status is StatusFailure with ReasonGenerationFailed,
// since no tier succeeded.
type EscalationResult struct {
	Result
	Tier int
}

// Escalate runs the solver under tier 0, retrying up to
// cfg.AttemptsPerTier[0] times with an advancing seed; on exhaustion it
// moves to tier 1 and repeats. It records which tier produced the
// solution, or surfaces ReasonGenerationFailed after both tiers are
// spent (spec.md §4.4, §7).
func Escalate(t *Template, tiers map[int]TierWordLists, cfg EscalationConfig) EscalationResult {
	attemptsPerTier := cfg.AttemptsPerTier
	if attemptsPerTier == nil {
		attemptsPerTier = DefaultAttemptsPerTier()
	}

	seed := cfg.Seed
	var last Result

	for _, tier := range tierOrder {
		words, ok := tiers[tier]
		if !ok {
			continue
		}
		index := BuildLetterIndex(words)

		attempts := attemptsPerTier[tier]
		if attempts <= 0 {
			attempts = 5
		}

		for i := 0; i < attempts; i++ {
			limits := cfg.Limits
			limits.Seed = seed
			seed++

			res := Solve(t, index, limits)
			last = res
			if res.Status == StatusSolution {
				return EscalationResult{Result: res, Tier: tier}
			}
			if res.Reason == ReasonInvalidTemplate {
				// Fatal regardless of tier or attempt count; no retry
				// can fix a malformed template.
				return EscalationResult{Result: res, Tier: -1}
			}
		}
	}

	last.Status = StatusFailure
	last.Reason = ReasonGenerationFailed
	return EscalationResult{Result: last, Tier: -1}
}
