package cmd

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tcstacks/minixword/internal/puzzle"
	"github.com/tcstacks/minixword/internal/solver"
	"github.com/tcstacks/minixword/pkg/clues"
	"github.com/tcstacks/minixword/pkg/clues/providers"
	"github.com/tcstacks/minixword/pkg/output"
	"github.com/tcstacks/minixword/pkg/wordlist"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
)

var (
	genCount      int
	genTemplate   string
	genOutput     string
	genFormat     string
	genWordlist   string
	genCacheDir   string
	genLLM        string
	genTheme      string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate mini crossword puzzles",
	Long: `Generate one or more 5x5 mini crossword puzzles using constraint satisfaction and LLM-generated clues.

Examples:
  # Generate one Tuesday-difficulty puzzle in JSON format
  crossgen generate --template tuesday --format json --output ./puzzles

  # Generate a week's worth, one per weekday template, in all formats
  crossgen generate --template all --format all --output ./puzzles

  # Generate using cache-only mode (no LLM API calls)
  crossgen generate --llm cache-only --template friday`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&genCount, "count", "n", 1, "number of puzzles to generate per template")
	generateCmd.Flags().StringVarP(&genTemplate, "template", "t", "monday", "weekday template (monday..sunday, or all)")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", ".", "output directory")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", "json", "output format (json, puz, ipuz, all)")
	generateCmd.Flags().StringVarP(&genWordlist, "wordlist-url", "w", "", "URL to fetch the frequency-ranked word list from (falls back to the built-in list on failure)")
	generateCmd.Flags().StringVar(&genCacheDir, "cache-dir", ".crossgen-cache", "directory the fetched word list is cached in")
	generateCmd.Flags().StringVarP(&genLLM, "llm", "l", "cache-only", "LLM provider for clue generation (anthropic, ollama, cache-only)")
	generateCmd.Flags().StringVar(&genTheme, "theme", "", "optional theme recorded in the puzzle metadata")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	templateIDs, err := parseTemplates(genTemplate)
	if err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	formats, err := parseFormats(genFormat)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	if err := os.MkdirAll(genOutput, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	provider := wordlist.NewProvider(genWordlist, genCacheDir)

	seq := 0
	for _, templateID := range templateIDs {
		clueGen, err := setupClueGenerator(genLLM, templateID)
		if err != nil {
			return fmt.Errorf("failed to setup clue generator: %w", err)
		}
		gen := puzzle.NewGenerator(provider, clueGen)

		for i := 1; i <= genCount; i++ {
			seq++
			startTime := time.Now()
			fmt.Printf("[%d] Generating %s puzzle... ", seq, templateID)

			res, err := gen.GeneratePuzzle(ctx, puzzle.Config{
				TemplateID: templateID,
				Theme:      genTheme,
			})
			if err != nil {
				fmt.Printf("FAILED\n")
				return fmt.Errorf("failed to generate %s puzzle: %w", templateID, err)
			}

			if err := writeOutputFiles(res, genOutput, seq, formats); err != nil {
				fmt.Printf("FAILED\n")
				return fmt.Errorf("failed to write output files for %s puzzle: %w", templateID, err)
			}

			elapsed := time.Since(startTime)
			fmt.Printf("OK (%.1fs)\n", elapsed.Seconds())
		}
	}

	fmt.Printf("\nSuccessfully generated %d puzzle(s) in %s\n", seq, genOutput)
	return nil
}

// parseTemplates resolves the --template flag to a concrete list of
// weekday template ids, expanding "all" to every entry in
// solver.WeekdayTemplateIDs.
func parseTemplates(template string) ([]string, error) {
	template = strings.ToLower(template)
	if template == "all" {
		return solver.WeekdayTemplateIDs, nil
	}
	for _, id := range solver.WeekdayTemplateIDs {
		if id == template {
			return []string{template}, nil
		}
	}
	return nil, fmt.Errorf("invalid template: %s (must be one of %v, or all)", template, solver.WeekdayTemplateIDs)
}

// parseFormats converts format string to list of formats
func parseFormats(format string) ([]string, error) {
	format = strings.ToLower(format)
	if format == "all" {
		return []string{"json", "puz", "ipuz"}, nil
	}

	validFormats := map[string]bool{
		"json": true,
		"puz":  true,
		"ipuz": true,
	}

	if !validFormats[format] {
		return nil, fmt.Errorf("invalid format: %s (must be json, puz, ipuz, or all)", format)
	}

	return []string{format}, nil
}

// setupClueGenerator creates a clue generator based on the LLM provider
func setupClueGenerator(llmProvider string, templateID string) (*clues.Generator, error) {
	// Open clue cache database
	cacheDB, err := sql.Open("sqlite3", filepath.Join(genCacheDir, "clue_cache.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	cache, err := clues.NewClueCache(cacheDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create clue cache: %w", err)
	}

	clueDifficulty := clues.WeekdayDifficulty(templateID)

	var llmClient providers.LLMClient
	switch strings.ToLower(llmProvider) {
	case "cache-only":
		llmClient = nil // No LLM, only use cache (falls back to placeholder clues on a miss)
	case "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		var clientErr error
		llmClient, clientErr = providers.NewAnthropicClient(providers.AnthropicConfig{
			APIKey: apiKey,
			Model:  providers.ModelHaiku,
		})
		if clientErr != nil {
			return nil, fmt.Errorf("failed to create Anthropic client: %w", clientErr)
		}
	case "ollama":
		var clientErr error
		llmClient, clientErr = providers.NewOllamaClient(providers.OllamaConfig{
			BaseURL: "http://localhost:11434/api/generate",
			Model:   providers.ModelLlama2,
		})
		if clientErr != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", clientErr)
		}
	default:
		return nil, fmt.Errorf("invalid LLM provider: %s (must be anthropic, ollama, or cache-only)", llmProvider)
	}

	return clues.NewGenerator(cache, llmClient, clueDifficulty), nil
}

// writeOutputFiles writes a generation result to disk in the
// requested formats: json from the wire assemble.Document, puz/ipuz
// from the accompanying models.Puzzle.
func writeOutputFiles(res *puzzle.GenerationResult, outputDir string, seq int, formats []string) error {
	baseName := fmt.Sprintf("puzzle_%03d_%s", seq, res.Document.Meta.TemplateID)

	for _, format := range formats {
		var filePath string
		var data []byte
		var err error

		switch format {
		case "json":
			filePath = filepath.Join(outputDir, baseName+".json")
			data, err = json.MarshalIndent(res.Document, "", "  ")
		case "puz":
			filePath = filepath.Join(outputDir, baseName+".puz")
			data, err = output.FormatPuz(res.Puzzle)
		case "ipuz":
			filePath = filepath.Join(outputDir, baseName+".ipuz")
			data, err = output.ToIPuz(res.Puzzle)
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return fmt.Errorf("failed to format puzzle as %s: %w", format, err)
		}

		if err := os.WriteFile(filePath, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s file: %w", format, err)
		}
	}

	return nil
}
