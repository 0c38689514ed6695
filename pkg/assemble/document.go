// Package assemble builds the final, shippable puzzle document from
// the core solver's Result and the clue generator's output (spec.md
// §6: "Final document (assembled outside the core)"). Neither the
// solver nor the clue generator produce this shape themselves; this
// package is the out-of-core collaborator that does.
package assemble

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tcstacks/minixword/internal/models"
	"github.com/tcstacks/minixword/internal/solver"
	"github.com/tcstacks/minixword/pkg/clues"
)

// Meta is the caller-supplied metadata the core never produces:
// publication details and the tier/template identity the solver ran
// under (spec.md §6's "meta (date, author, difficulty, theme,
// template id, word tier)").
type Meta struct {
	ID          string
	Date        time.Time
	Author      string
	Difficulty  clues.Difficulty
	Theme       string
	TemplateID  string
	Tier        int
	PublishedAt *time.Time
}

// GridEntry is one solved cell of the final document's grid map
// (spec.md §6): the letter, plus the clue number it starts if it
// starts one.
type GridEntry struct {
	Char      string `json:"char"`
	ClueIndex *int   `json:"clueIndex,omitempty"`
}

// DocumentMeta is the JSON shape of Document.Meta.
type DocumentMeta struct {
	Date       string `json:"date"`
	Author     string `json:"author"`
	Difficulty string `json:"difficulty"`
	Theme      string `json:"theme"`
	TemplateID string `json:"templateId"`
	WordTier   int    `json:"wordTier"`
}

// Dimensions is always {5, 5} for this generator's grids, but is
// carried explicitly since spec.md §6 names it as part of the
// document shape rather than assuming a reader already knows the
// size.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ClueSet holds the across/down clue text keyed by stringified clue
// number, matching spec.md §6's "clues.{across,down} keyed by
// stringified clue number".
type ClueSet struct {
	Across map[string]string `json:"across"`
	Down   map[string]string `json:"down"`
}

// Document is the final assembled puzzle: the shape spec.md §6
// describes as built outside the core, from the core's solved Result
// plus a separate clue generator's output.
type Document struct {
	Meta       DocumentMeta         `json:"meta"`
	Dimensions Dimensions           `json:"dimensions"`
	Grid       map[string]GridEntry `json:"grid"`
	Clues      ClueSet              `json:"clues"`
}

// ErrNotSolved is returned by Build/BuildPuzzle when handed a
// solver.Result that isn't a SOLUTION; there is no partial document to
// assemble from a FAILURE (spec.md §7: "no placeholder grid is
// returned").
var ErrNotSolved = fmt.Errorf("assemble: cannot build a document from a non-solution result")

// slotStarts maps every cell that begins a slot to its clue number,
// by re-deriving the template's slot geometry. The solver's Result
// only carries the finished letters and the across/down word maps
// keyed by clue number; the per-cell starting positions come from the
// same slot extractor the solver itself used.
func slotStarts(t *solver.Template) (map[solver.Coord]int, error) {
	slots, err := solver.ExtractSlots(t)
	if err != nil {
		return nil, err
	}
	starts := make(map[solver.Coord]int)
	for _, s := range slots {
		starts[s.Positions[0]] = s.Index
	}
	return starts, nil
}

// Build assembles the final JSON document from a solved grid, the
// clues generated for it, and caller-supplied metadata.
func Build(res solver.Result, generated []clues.Clue, meta Meta) (*Document, error) {
	if res.Status != solver.StatusSolution {
		return nil, ErrNotSolved
	}

	tmpl, ok := solver.TemplateByID(meta.TemplateID)
	if !ok {
		return nil, fmt.Errorf("assemble: unknown template id %q", meta.TemplateID)
	}
	starts, err := slotStarts(tmpl)
	if err != nil {
		return nil, err
	}

	grid := make(map[string]GridEntry, solver.Size*solver.Size)
	for row := 0; row < solver.Size; row++ {
		for col := 0; col < solver.Size; col++ {
			b := res.Grid[row][col]
			if b == 0 {
				continue // BLOCK cells are simply absent from the map
			}
			key := formatGridKey(row, col)
			entry := GridEntry{Char: string(b)}
			if num, isStart := starts[solver.Coord{Row: row, Col: col}]; isStart {
				n := num
				entry.ClueIndex = &n
			}
			grid[key] = entry
		}
	}

	across := make(map[string]string, len(res.AcrossWords))
	down := make(map[string]string, len(res.DownWords))
	for _, c := range generated {
		key := fmt.Sprintf("%d", c.Number)
		switch c.Direction {
		case solver.Across:
			across[key] = c.Text
		case solver.Down:
			down[key] = c.Text
		}
	}

	return &Document{
		Meta: DocumentMeta{
			Date:       meta.Date.Format("2006-01-02"),
			Author:     meta.Author,
			Difficulty: string(meta.Difficulty),
			Theme:      meta.Theme,
			TemplateID: meta.TemplateID,
			WordTier:   meta.Tier,
		},
		Dimensions: Dimensions{Width: solver.Size, Height: solver.Size},
		Grid:       grid,
		Clues:      ClueSet{Across: across, Down: down},
	}, nil
}

// BuildPuzzle assembles a models.Puzzle from the same inputs as Build,
// for collaborators (pkg/output's .ipuz/.puz exporters) that need the
// richer per-clue position/length fields rather than the flat final
// document shape.
func BuildPuzzle(res solver.Result, generated []clues.Clue, meta Meta) (*models.Puzzle, error) {
	if res.Status != solver.StatusSolution {
		return nil, ErrNotSolved
	}

	tmpl, ok := solver.TemplateByID(meta.TemplateID)
	if !ok {
		return nil, fmt.Errorf("assemble: unknown template id %q", meta.TemplateID)
	}
	slots, err := solver.ExtractSlots(tmpl)
	if err != nil {
		return nil, err
	}
	grid := make([][]models.GridCell, solver.Size)
	for row := 0; row < solver.Size; row++ {
		grid[row] = make([]models.GridCell, solver.Size)
		for col := 0; col < solver.Size; col++ {
			b := res.Grid[row][col]
			if b == 0 {
				continue
			}
			letter := string(b)
			grid[row][col] = models.GridCell{Letter: &letter}
		}
	}
	for _, s := range slots {
		start := s.Positions[0]
		num := s.Index
		grid[start.Row][start.Col].Number = &num
	}

	var across, down []models.Clue
	byKey := make(map[string]clues.Clue, len(generated))
	for _, c := range generated {
		byKey[c.Key()] = c
	}
	for _, s := range slots {
		key := fmt.Sprintf("%d-%s", s.Index, s.Direction)
		c, ok := byKey[key]
		if !ok {
			continue
		}
		pos := s.Positions[0]
		mc := models.Clue{
			Number:    s.Index,
			Text:      c.Text,
			Answer:    c.Answer,
			PositionX: pos.Col,
			PositionY: pos.Row,
			Length:    s.Length(),
			Direction: s.Direction.String(),
		}
		if s.Direction == solver.Across {
			across = append(across, mc)
		} else {
			down = append(down, mc)
		}
	}
	sort.Slice(across, func(i, j int) bool { return across[i].Number < across[j].Number })
	sort.Slice(down, func(i, j int) bool { return down[i].Number < down[j].Number })

	date := meta.Date.Format("2006-01-02")
	return &models.Puzzle{
		ID:          meta.ID,
		Date:        &date,
		Title:       fmt.Sprintf("Mini Crossword: %s", capitalize(meta.TemplateID)),
		Author:      meta.Author,
		Difficulty:  models.Difficulty(meta.Difficulty),
		GridWidth:   solver.Size,
		GridHeight:  solver.Size,
		Grid:        grid,
		CluesAcross: across,
		CluesDown:   down,
		Theme:       themePtr(meta.Theme),
		CreatedAt:   meta.Date,
		PublishedAt: meta.PublishedAt,
	}, nil
}

func themePtr(theme string) *string {
	if theme == "" {
		return nil
	}
	return &theme
}

// formatGridKey renders a cell coordinate the way spec.md §6 keys the
// grid map: "row,col".
func formatGridKey(row, col int) string {
	return fmt.Sprintf("%d,%d", row, col)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
