package models

import (
	"time"
)

// Difficulty levels for puzzles
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Puzzle represents a generated crossword puzzle. Narrowed from the
// teacher's arbitrary-size, multiplayer-aware Puzzle to the fixed 5x5
// shape this repo's core solver produces: no AvgSolveTime/Status
// lifecycle, since there's no moderation queue or solve-time telemetry
// collaborator in scope here.
type Puzzle struct {
	ID          string       `json:"id"`
	Date        *string      `json:"date,omitempty"` // YYYY-MM-DD, null for archive-only
	Title       string       `json:"title"`
	Author      string       `json:"author"`
	Difficulty  Difficulty   `json:"difficulty"`
	GridWidth   int          `json:"gridWidth"`
	GridHeight  int          `json:"gridHeight"`
	Grid        [][]GridCell `json:"grid"`
	CluesAcross []Clue       `json:"cluesAcross"`
	CluesDown   []Clue       `json:"cluesDown"`
	Theme       *string      `json:"theme,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	PublishedAt *time.Time   `json:"publishedAt,omitempty"`
}

// GridCell represents a single cell in the puzzle grid
type GridCell struct {
	Letter    *string `json:"letter"`           // null = black square
	Number    *int    `json:"number,omitempty"` // clue number if start of word
	IsCircled bool    `json:"isCircled,omitempty"`
}

// Clue represents a single clue
type Clue struct {
	Number    int    `json:"number"`
	Text      string `json:"text"`
	Answer    string `json:"answer"`
	PositionX int    `json:"positionX"` // starting cell column
	PositionY int    `json:"positionY"` // starting cell row
	Length    int    `json:"length"`
	Direction string `json:"direction"` // "across" or "down"
}

// GenerationRun records one escalation attempt for observability: which
// template and tier were tried, how much search it took, and whether it
// succeeded. Persisted alongside the puzzle archive so quality and
// performance regressions across template/tier combinations are
// queryable after the fact.
type GenerationRun struct {
	ID            string    `json:"id"`
	PuzzleID      *string   `json:"puzzleId,omitempty"`
	TemplateID    string    `json:"templateId"`
	Seed          int64     `json:"seed"`
	Tier          int       `json:"tier"`
	Attempts      int       `json:"attempts"`
	Backtracks    int       `json:"backtracks"`
	DurationMS    int64     `json:"durationMs"`
	Succeeded     bool      `json:"succeeded"`
	FailureReason string    `json:"failureReason,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
