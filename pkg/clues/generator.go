package clues

import (
	"context"
	"fmt"
	"sort"

	"github.com/tcstacks/minixword/internal/solver"
	"github.com/tcstacks/minixword/pkg/clues/providers"
)

// WeekdayDifficulty maps a template identifier (solver.WeekdayTemplateIDs)
// onto a clue difficulty, grounded on internal/puzzle/clues.go's
// DayMonday..DaySunday calibration: Monday/Tuesday read as straight
// definitions, Wednesday/Thursday/Sunday add moderate wordplay,
// Friday/Saturday go cryptic.
func WeekdayDifficulty(templateID string) Difficulty {
	switch templateID {
	case "monday", "tuesday":
		return DifficultyEasy
	case "friday", "saturday":
		return DifficultyHard
	default: // wednesday, thursday, sunday
		return DifficultyMedium
	}
}

// placeholderClue is used whenever clue generation can't reach an LLM
// (no client configured, or every provider call failed). The core grid
// is still valid and complete; a placeholder clue just means the
// puzzle isn't ready for a human solver yet, which is preferable to
// failing the whole generation run over a collaborator outage.
func placeholderClue(word string) string {
	return fmt.Sprintf("Placeholder clue for %s", word)
}

// Generator orchestrates clue generation with caching, consuming a
// solved grid from the core solver package rather than the teacher's
// arbitrary-size grid.Entry list.
type Generator struct {
	cache      *ClueCache
	llmClient  providers.LLMClient
	difficulty Difficulty
}

// NewGenerator creates a new clue generator.
func NewGenerator(cache *ClueCache, llmClient providers.LLMClient, difficulty Difficulty) *Generator {
	return &Generator{
		cache:      cache,
		llmClient:  llmClient,
		difficulty: difficulty,
	}
}

// Difficulty reports the difficulty level this generator clues at.
func (g *Generator) Difficulty() Difficulty {
	return g.difficulty
}

// Clue is one generated clue, keyed the way a solver presents it.
type Clue struct {
	Number    int
	Direction solver.Direction
	Answer    string
	Text      string
	// Placeholder is true when Text could not be produced by the LLM
	// pipeline (no client, cache miss, or a failed completion) and is
	// a filled-in stand-in instead.
	Placeholder bool
}

// Key renders the clue's lookup key the way the teacher's cache keys
// entries: "1-across", "2-down".
func (c Clue) Key() string {
	return fmt.Sprintf("%d-%s", c.Number, c.Direction)
}

// GenerateClues produces a clue for every across and down word in a
// solved result. It checks the cache first, batches cache misses into
// LLM calls, saves newly generated clues back to the cache, and
// substitutes a placeholder for any word the LLM pipeline could not
// cover — the core's output always has every slot clued, even if some
// clues are placeholders (spec.md §6: the core must remain operable
// if clue generation fails).
func (g *Generator) GenerateClues(ctx context.Context, res solver.Result) ([]Clue, error) {
	if res.Status != solver.StatusSolution {
		return nil, fmt.Errorf("clues: cannot clue a %v result", res.Status)
	}

	type pending struct {
		number int
		dir    solver.Direction
		word   string
	}

	var all []pending
	for num, word := range res.AcrossWords {
		all = append(all, pending{num, solver.Across, word})
	}
	for num, word := range res.DownWords {
		all = append(all, pending{num, solver.Down, word})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].number != all[j].number {
			return all[i].number < all[j].number
		}
		return all[i].dir < all[j].dir
	})

	clues := make([]Clue, len(all))
	var needLLM []string
	wordToIndices := make(map[string][]int)

	for i, p := range all {
		clues[i] = Clue{Number: p.number, Direction: p.dir, Answer: p.word}

		if g.cache != nil {
			if text, found := g.cache.GetClue(p.word, string(g.difficulty)); found {
				clues[i].Text = text
				continue
			}
		}
		if _, exists := wordToIndices[p.word]; !exists {
			needLLM = append(needLLM, p.word)
		}
		wordToIndices[p.word] = append(wordToIndices[p.word], i)
	}

	if len(needLLM) == 0 {
		return clues, nil
	}

	if g.llmClient == nil {
		g.fillPlaceholders(clues, needLLM, wordToIndices)
		return clues, nil
	}

	generated, err := g.generateWithLLM(ctx, needLLM)
	if err != nil {
		g.fillPlaceholders(clues, needLLM, wordToIndices)
		return clues, nil
	}

	var stillMissing []string
	for _, word := range needLLM {
		text, ok := generated[word]
		if !ok {
			stillMissing = append(stillMissing, word)
			continue
		}
		if g.cache != nil {
			_ = g.cache.SaveClue(word, text, string(g.difficulty)) // cache-write failure must not fail generation
		}
		for _, idx := range wordToIndices[word] {
			clues[idx].Text = text
		}
	}
	if len(stillMissing) > 0 {
		g.fillPlaceholders(clues, stillMissing, wordToIndices)
	}

	return clues, nil
}

func (g *Generator) fillPlaceholders(clues []Clue, words []string, wordToIndices map[string][]int) {
	for _, word := range words {
		for _, idx := range wordToIndices[word] {
			clues[idx].Text = placeholderClue(word)
			clues[idx].Placeholder = true
		}
	}
}

// generateWithLLM batches words and generates clues using the LLM client.
func (g *Generator) generateWithLLM(ctx context.Context, words []string) (map[string]string, error) {
	allClues := make(map[string]string)

	for i := 0; i < len(words); i += MaxWordsPerBatch {
		end := i + MaxWordsPerBatch
		if end > len(words) {
			end = len(words)
		}
		batch := words[i:end]

		prompt, err := buildPrompt(batch, g.difficulty)
		if err != nil {
			return nil, fmt.Errorf("failed to build prompt: %w", err)
		}

		response, err := g.llmClient.Complete(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("LLM completion failed: %w", err)
		}

		batchClues, err := ParseClueResponse(response, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to parse LLM response: %w", err)
		}

		for word, clue := range batchClues {
			allClues[word] = clue
		}
	}

	return allClues, nil
}
