// Package puzzle orchestrates the end-to-end mini crossword generation
// pipeline: acquiring a dictionary, running the core solver under
// escalation, generating clues, and assembling the final document.
// None of these stages is itself the core (internal/solver); this
// package is the out-of-core collaborator spec.md §6 describes wiring
// them together.
package puzzle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tcstacks/minixword/internal/models"
	"github.com/tcstacks/minixword/internal/solver"
	"github.com/tcstacks/minixword/pkg/assemble"
	"github.com/tcstacks/minixword/pkg/clues"
	"github.com/tcstacks/minixword/pkg/wordlist"
)

var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("puzzle: invalid configuration")
	// ErrGenerationFailed wraps a GRID_GENERATION_FAILED outcome from
	// the escalation controller: every tier and attempt was spent
	// without a solution.
	ErrGenerationFailed = errors.New("puzzle: grid generation failed")
)

// puzzleTimezone is the default zone puzzle dates are stamped in,
// matching the original generation script's PUZZLE_TIMEZONE.
var puzzleTimezone = mustLoadLocation("America/Chicago")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Config holds everything needed to produce one puzzle.
type Config struct {
	// TemplateID selects the weekday layout (solver.WeekdayTemplateIDs).
	TemplateID string
	// Seed is the base seed handed to the escalation controller; 0
	// picks a seed derived from the current time.
	Seed uint64
	// AttemptsPerTier overrides solver.DefaultAttemptsPerTier when set.
	AttemptsPerTier map[int]int
	// Limits overrides solver.DefaultLimits' Timeout/MaxAttempts; Seed
	// on this value is ignored (the escalation controller manages it).
	Limits solver.Limits

	Title  string
	Author string
	Theme  string
	// Date is stamped into the final document in puzzleTimezone; the
	// zero value means "now".
	Date time.Time
}

// Generator orchestrates the complete pipeline: dictionary
// acquisition, escalated solving, clue generation, and assembly.
type Generator struct {
	provider      *wordlist.Provider
	clueGenerator *clues.Generator
}

// NewGenerator creates a new puzzle generator.
func NewGenerator(provider *wordlist.Provider, clueGenerator *clues.Generator) *Generator {
	return &Generator{provider: provider, clueGenerator: clueGenerator}
}

// GenerationResult bundles every shape assemble can produce from one
// generation run, so a caller needing both the wire document and a
// models.Puzzle (for .puz/.ipuz export) never has to re-run the
// pipeline — doing so would draw a different puzzle, since the
// escalation controller advances its seed across attempts.
type GenerationResult struct {
	Document *assemble.Document
	Puzzle   *models.Puzzle
}

// GeneratePuzzle runs the full pipeline:
//  1. Look up the requested template.
//  2. Load and tier the dictionary.
//  3. Run the escalation controller (tier 0, then tier 1 if needed).
//  4. Generate clues for the solved grid (placeholder-clue fallback on
//     any LLM failure — a clueing outage never fails generation).
//  5. Assemble the final document, in both the wire shape and the
//     models.Puzzle shape pkg/output's exporters consume.
func (g *Generator) GeneratePuzzle(ctx context.Context, cfg Config) (*GenerationResult, error) {
	cfg = setDefaults(cfg)
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	tmpl, ok := solver.TemplateByID(cfg.TemplateID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown template id %q", ErrInvalidConfig, cfg.TemplateID)
	}

	wl, err := g.provider.Load()
	if err != nil {
		return nil, fmt.Errorf("puzzle: load dictionary: %w", err)
	}
	tiers := g.provider.Tiers(wl)

	escCfg := solver.EscalationConfig{
		AttemptsPerTier: cfg.AttemptsPerTier,
		Seed:            cfg.Seed,
		Limits:          cfg.Limits,
	}
	escResult := solver.Escalate(tmpl, tiers, escCfg)
	if escResult.Status != solver.StatusSolution {
		return nil, fmt.Errorf("%w: %s", ErrGenerationFailed, escResult.Reason)
	}

	generatedClues, err := g.clueGenerator.GenerateClues(ctx, escResult.Result)
	if err != nil {
		// GenerateClues only errors on a malformed Result, which
		// can't happen here since escResult.Status == StatusSolution.
		return nil, fmt.Errorf("puzzle: generate clues: %w", err)
	}

	meta := assemble.Meta{
		ID:         uuid.New().String(),
		Date:       cfg.Date,
		Author:     cfg.Author,
		Difficulty: g.clueGenerator.Difficulty(),
		Theme:      cfg.Theme,
		TemplateID: cfg.TemplateID,
		Tier:       escResult.Tier,
	}

	doc, err := assemble.Build(escResult.Result, generatedClues, meta)
	if err != nil {
		return nil, fmt.Errorf("puzzle: assemble document: %w", err)
	}
	puz, err := assemble.BuildPuzzle(escResult.Result, generatedClues, meta)
	if err != nil {
		return nil, fmt.Errorf("puzzle: assemble puzzle: %w", err)
	}
	return &GenerationResult{Document: doc, Puzzle: puz}, nil
}

func validateConfig(cfg Config) error {
	found := false
	for _, id := range solver.WeekdayTemplateIDs {
		if id == cfg.TemplateID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("template id must be one of %v, got %q", solver.WeekdayTemplateIDs, cfg.TemplateID)
	}
	return nil
}

func setDefaults(cfg Config) Config {
	if cfg.Title == "" {
		cfg.Title = fmt.Sprintf("Mini Crossword - %s", cfg.TemplateID)
	}
	if cfg.Author == "" {
		cfg.Author = "Mini Crossword Generator"
	}
	if cfg.Date.IsZero() {
		cfg.Date = time.Now().In(puzzleTimezone)
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	return cfg
}
