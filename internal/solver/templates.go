// Package solver implements the grid-filling constraint solver at the
// heart of the mini crossword generator: given a 5x5 block template and
// an indexed dictionary, it produces a completed letter grid in which
// every maximal horizontal and vertical run of at least two cells spells
// a distinct, valid dictionary word.
package solver

import "fmt"

// Size is the fixed grid dimension. Grid sizes other than 5x5 are a
// non-goal.
const Size = 5

// CellKind is the state of a single template or grid cell.
type CellKind int

const (
	// Block marks a cell that never holds a letter.
	Block CellKind = iota
	// Playable marks a cell a slot may cover.
	Playable
)

// Coord is a zero-indexed (row, col) grid position.
type Coord struct {
	Row, Col int
}

// Template is a 5x5 layout of BLOCK and PLAYABLE cells. It is
// immutable once constructed.
type Template struct {
	ID    string
	cells [Size][Size]CellKind
}

// At reports the kind of the cell at (row, col).
func (t *Template) At(row, col int) CellKind {
	return t.cells[row][col]
}

// newTemplate parses a 5x5 pattern of '.' (playable) and '#' (block)
// rows into a Template. Panics on malformed input — the catalog below
// is fixed at compile time, so a malformed entry is a programming
// error, not a runtime condition.
func newTemplate(id string, rows [Size]string) *Template {
	t := &Template{ID: id}
	for r, row := range rows {
		if len(row) != Size {
			panic(fmt.Sprintf("solver: template %q row %d has length %d, want %d", id, r, len(row), Size))
		}
		for c, ch := range row {
			switch ch {
			case '.':
				t.cells[r][c] = Playable
			case '#':
				t.cells[r][c] = Block
			default:
				panic(fmt.Sprintf("solver: template %q has invalid cell %q at (%d,%d)", id, ch, r, c))
			}
		}
	}
	return t
}

// templateCatalog is the closed set of seven weekday templates (spec.md
// §6). Each is a curated 5x5 layout; every playable cell belongs to a
// slot of length >= 2 in at least one direction.
var templateCatalog = map[string]*Template{
	"monday": newTemplate("monday", [Size]string{
		".....",
		".....",
		"..#..",
		".....",
		".....",
	}),
	"tuesday": newTemplate("tuesday", [Size]string{
		"#...#",
		".....",
		".....",
		".....",
		"#...#",
	}),
	"wednesday": newTemplate("wednesday", [Size]string{
		"..#..",
		"..#..",
		"..#..",
		"..#..",
		"..#..",
	}),
	"thursday": newTemplate("thursday", [Size]string{
		"...#.",
		"...#.",
		".....",
		".#...",
		".#...",
	}),
	"friday": newTemplate("friday", [Size]string{
		"##...",
		"#....",
		".....",
		"....#",
		"...##",
	}),
	"saturday": newTemplate("saturday", [Size]string{
		// Fully open: every slot is length 5 (5 across rows, 5 down
		// columns), the hardest template to fill since nothing
		// shortens a run (spec.md §8 scenario B/D).
		".....",
		".....",
		".....",
		".....",
		".....",
	}),
	"sunday": newTemplate("sunday", [Size]string{
		".#.#.",
		".....",
		"#...#",
		".....",
		".#.#.",
	}),
}

// WeekdayTemplateIDs is the closed set of seven valid template
// identifiers, in weekday order.
var WeekdayTemplateIDs = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// Templates returns the catalog's full set of template identifiers,
// unordered. Use WeekdayTemplateIDs for a stable, meaningful order.
func Templates() []string {
	ids := make([]string, 0, len(templateCatalog))
	for id := range templateCatalog {
		ids = append(ids, id)
	}
	return ids
}

// TemplateByID looks up a template by its weekday identifier. The
// second return value is false for any identifier outside the closed
// catalog.
func TemplateByID(id string) (*Template, bool) {
	t, ok := templateCatalog[id]
	return t, ok
}
