package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/tcstacks/minixword/internal/solver"
	"github.com/spf13/cobra"
)

// documentJSON mirrors pkg/assemble.Document's wire shape without
// importing the package's exported types directly, since validate
// only needs the raw fields to check them against the template the
// document claims to be built from.
type documentJSON struct {
	Meta struct {
		TemplateID string `json:"templateId"`
	} `json:"meta"`
	Dimensions struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"dimensions"`
	Grid map[string]struct {
		Char      string `json:"char"`
		ClueIndex *int   `json:"clueIndex,omitempty"`
	} `json:"grid"`
	Clues struct {
		Across map[string]string `json:"across"`
		Down   map[string]string `json:"down"`
	} `json:"clues"`
}

var (
	validateInput string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate mini crossword puzzle documents",
	Long: `Validate one or more generated puzzle documents against the core's testable properties.

Checks include:
  - Soundness: every slot has a clue entry, and the words spelled in the grid are pairwise distinct
    (the document carries no answers, so words are not compared against a dictionary or answer list)
  - Grid totality: every playable cell of the named template is filled, every block cell is absent
  - Intersection consistency: every pair of crossing slots agrees on the shared letter
  - Numbering law: the named template's clue numbers are dense from 1 (the document's own
    clueIndex values are not checked)

Examples:
  # Validate a single puzzle file
  crossgen validate --input puzzle.json

  # Validate all puzzles in a directory
  crossgen validate --input ./puzzles`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "input file or directory to validate (required)")
	validateCmd.MarkFlagRequired("input")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if verbosity > 0 {
		fmt.Printf("Validating: %s\n", validateInput)
	}

	info, err := os.Stat(validateInput)
	if err != nil {
		return fmt.Errorf("failed to access input path: %w", err)
	}

	var filesToValidate []string
	if info.IsDir() {
		files, err := filepath.Glob(filepath.Join(validateInput, "*.json"))
		if err != nil {
			return fmt.Errorf("failed to list directory: %w", err)
		}
		if len(files) == 0 {
			return fmt.Errorf("no .json files found in directory: %s", validateInput)
		}
		filesToValidate = files
	} else {
		filesToValidate = []string{validateInput}
	}

	totalFiles := len(filesToValidate)
	invalidFiles := 0
	validFiles := 0

	for _, filePath := range filesToValidate {
		if verbosity > 0 {
			fmt.Printf("\nValidating: %s\n", filePath)
		}

		valid, err := validatePuzzleFile(filePath)
		if err != nil {
			fmt.Printf("FAIL %s: ERROR - %v\n", filepath.Base(filePath), err)
			invalidFiles++
		} else if !valid {
			invalidFiles++
		} else {
			if verbosity > 0 {
				fmt.Printf("OK %s: VALID\n", filepath.Base(filePath))
			}
			validFiles++
		}
	}

	fmt.Printf("\n")
	fmt.Printf("Validation Summary:\n")
	fmt.Printf("  Total files:   %d\n", totalFiles)
	fmt.Printf("  Valid:         %d\n", validFiles)
	fmt.Printf("  Invalid:       %d\n", invalidFiles)

	if invalidFiles > 0 {
		os.Exit(1)
	}

	return nil
}

// validatePuzzleFile validates a single puzzle document against
// spec.md §8 properties 1-4 (soundness, grid totality, intersection
// consistency, numbering law). Returns true if valid, false if
// invalid, and an error if the file can't be read or parsed at all.
func validatePuzzleFile(filePath string) (bool, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return false, fmt.Errorf("failed to read file: %w", err)
	}

	var doc documentJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf("invalid JSON format: %w", err)
	}

	tmpl, ok := solver.TemplateByID(doc.Meta.TemplateID)
	if !ok {
		fmt.Printf("FAIL %s: INVALID - unknown template id %q\n", filepath.Base(filePath), doc.Meta.TemplateID)
		return false, nil
	}
	slots, err := solver.ExtractSlots(tmpl)
	if err != nil {
		return false, fmt.Errorf("failed to extract slots for template %q: %w", doc.Meta.TemplateID, err)
	}

	var errs []string
	errs = append(errs, checkGridTotality(tmpl, doc)...)
	errs = append(errs, checkNumberingLaw(slots, doc)...)
	errs = append(errs, checkSoundnessAndIntersections(slots, doc)...)

	if len(errs) > 0 {
		fmt.Printf("FAIL %s: INVALID\n", filepath.Base(filePath))
		for _, e := range errs {
			fmt.Printf("   - %s\n", e)
		}
		return false, nil
	}

	return true, nil
}

// checkGridTotality verifies property 2: every PLAYABLE cell of the
// template is filled with a single A-Z letter and every BLOCK cell is
// absent from the document's sparse grid map.
func checkGridTotality(tmpl *solver.Template, doc documentJSON) []string {
	var errs []string
	for row := 0; row < solver.Size; row++ {
		for col := 0; col < solver.Size; col++ {
			key := fmt.Sprintf("%d,%d", row, col)
			entry, present := doc.Grid[key]
			playable := tmpl.At(row, col) == solver.Playable
			switch {
			case playable && !present:
				errs = append(errs, fmt.Sprintf("cell %s is playable but missing from the grid", key))
			case !playable && present:
				errs = append(errs, fmt.Sprintf("cell %s is a block but present in the grid", key))
			case playable && len(entry.Char) != 1:
				errs = append(errs, fmt.Sprintf("cell %s has malformed char %q", key, entry.Char))
			case playable && (entry.Char[0] < 'A' || entry.Char[0] > 'Z'):
				errs = append(errs, fmt.Sprintf("cell %s has non-letter char %q", key, entry.Char))
			}
		}
	}
	return errs
}

// checkNumberingLaw verifies that the slot extractor's clue numbers
// for the template are dense from 1. Reading-order monotonicity and the
// document's own clueIndex values are not checked.
func checkNumberingLaw(slots []solver.Slot, doc documentJSON) []string {
	seen := make(map[int]bool)
	for _, s := range slots {
		seen[s.Index] = true
	}
	numbers := make([]int, 0, len(seen))
	for n := range seen {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	var errs []string
	for i, n := range numbers {
		if n != i+1 {
			errs = append(errs, fmt.Sprintf("clue numbering is not dense from 1: got %v", numbers))
			break
		}
	}
	return errs
}

// checkSoundnessAndIntersections checks that every complete slot has a
// clue entry, that the words its grid letters spell are pairwise
// distinct, and that every crossing pair of slots agrees on the shared
// letter. The spelled words are not checked against any word list.
func checkSoundnessAndIntersections(slots []solver.Slot, doc documentJSON) []string {
	var errs []string
	letterAt := func(pos solver.Coord) (byte, bool) {
		entry, ok := doc.Grid[fmt.Sprintf("%d,%d", pos.Row, pos.Col)]
		if !ok || len(entry.Char) != 1 {
			return 0, false
		}
		return entry.Char[0], true
	}

	seenAnswers := make(map[string]bool)

	for _, s := range slots {
		var sb strings.Builder
		complete := true
		for _, pos := range s.Positions {
			c, ok := letterAt(pos)
			if !ok {
				complete = false
				break
			}
			sb.WriteByte(c)
		}
		if !complete {
			continue // already reported by checkGridTotality
		}
		spelled := sb.String()

		if _, hasClue := cluesFor(doc, s.Direction)[strconv.Itoa(s.Index)]; !hasClue {
			errs = append(errs, fmt.Sprintf("slot %d %s has no clue entry", s.Index, s.Direction))
			continue
		}

		if seenAnswers[spelled] {
			errs = append(errs, fmt.Sprintf("answer %q used more than once", spelled))
		}
		seenAnswers[spelled] = true
	}

	for _, a := range slots {
		if a.Direction != solver.Across {
			continue
		}
		for _, b := range slots {
			if b.Direction != solver.Down {
				continue
			}
			for _, in := range a.Intersections {
				if in.OtherSlot != indexOfSlot(slots, b) {
					continue
				}
				ca, aok := letterAt(a.Positions[in.MyOffset])
				cb, bok := letterAt(b.Positions[in.TheirOffset])
				if aok && bok && ca != cb {
					errs = append(errs, fmt.Sprintf("intersection mismatch between across %d and down %d: %q vs %q", a.Index, b.Index, ca, cb))
				}
			}
		}
	}

	return errs
}

func cluesFor(doc documentJSON, dir solver.Direction) map[string]string {
	if dir == solver.Across {
		return doc.Clues.Across
	}
	return doc.Clues.Down
}

func indexOfSlot(slots []solver.Slot, target solver.Slot) int {
	for i, s := range slots {
		if s.Index == target.Index && s.Direction == target.Direction {
			return i
		}
	}
	return -1
}
