package wordlist

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tcstacks/minixword/internal/solver"
)

// minSlotLength and maxSlotLength bound the word lengths the five
// weekday templates ever need (solver/templates.go's catalog spans
// 2-cell to 5-cell slots). Anything outside this range is dropped at
// load time; the core never queries for it.
const (
	minSlotLength = 2
	maxSlotLength = 5
)

// onlyLetters rejects any word containing something other than A-Z
// once uppercased (spec.md §9 Open Question 3: non-A-Z words are
// filtered at load time, not at solve time).
var onlyLetters = regexp.MustCompile(`^[A-Z]+$`)

// Provider fetches a frequency-ranked word list, caches it on disk,
// and slices it into the two escalation tiers the core solver uses.
// Grounded on internal/puzzle/wordlist.go's http.Client-backed
// service and pkg/wordlist.LoadBrodaWordlist's WORD;SCORE parsing —
// generalized from a single scored list into the tiered acquisition
// spec.md §6 describes as an out-of-core collaborator.
type Provider struct {
	httpClient *http.Client
	cacheDir   string
	sourceURL  string

	// StrictSize and FullSize cap how many top-scored words (per
	// length) make it into tier 0 and tier 1 respectively. Tier 1 is a
	// superset of tier 0, per spec.md §4.4's "wider" framing.
	StrictSize int
	FullSize   int
}

// NewProvider builds a Provider that fetches sourceURL (a
// Peter-Broda-format WORD;SCORE frequency file) into cacheDir,
// matching internal/puzzle/wordlist.go's 10-second HTTP timeout.
func NewProvider(sourceURL, cacheDir string) *Provider {
	return &Provider{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cacheDir:   cacheDir,
		sourceURL:  sourceURL,
		StrictSize: 5000,
		FullSize:   10000,
	}
}

// cachePath is where the raw frequency file lands once fetched.
func (p *Provider) cachePath() string {
	return filepath.Join(p.cacheDir, "wordlist.broda.txt")
}

// Load returns the cached frequency file if present, otherwise fetches
// it from p.sourceURL and writes it to the cache before parsing. If
// fetching fails and no cache exists, Load falls back to the built-in
// word list rather than leaving the caller with no dictionary at all.
func (p *Provider) Load() (*Wordlist, error) {
	path := p.cachePath()
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("wordlist: stat cache: %w", err)
		}
		if err := p.fetch(path); err != nil {
			log.Printf("wordlist: fetch failed, using built-in fallback list: %v", err)
			return Fallback(), nil
		}
	}
	return LoadBrodaWordlist(path)
}

func (p *Provider) fetch(destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("wordlist: create cache dir: %w", err)
	}

	resp, err := p.httpClient.Get(p.sourceURL)
	if err != nil {
		return fmt.Errorf("wordlist: fetch %s: %w", p.sourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("wordlist: fetch %s: status %d: %s", p.sourceURL, resp.StatusCode, string(body))
	}

	tmp := destPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("wordlist: create temp cache file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("wordlist: write cache file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("wordlist: close cache file: %w", err)
	}
	return os.Rename(tmp, destPath)
}

// Tiers slices wl into solver.TierWordLists for tier 0 (strict) and
// tier 1 (full), restricted to lengths the catalog's templates
// actually use and filtered to pure A-Z words. Each length's words
// are already score-sorted descending by LoadBrodaWordlist, so
// truncating to StrictSize/FullSize keeps the highest-frequency
// words in each tier.
func (p *Provider) Tiers(wl *Wordlist) map[int]solver.TierWordLists {
	strict := make(solver.TierWordLists)
	full := make(solver.TierWordLists)

	for length := minSlotLength; length <= maxSlotLength; length++ {
		words := wl.GetWordsOfLength(length)

		clean := make([]string, 0, len(words))
		for _, w := range words {
			text := strings.ToUpper(w.Text)
			if len(text) != length || !onlyLetters.MatchString(text) {
				continue
			}
			clean = append(clean, text)
		}

		if len(clean) > 0 {
			full[length] = capSlice(clean, p.FullSize)
			strict[length] = capSlice(clean, p.StrictSize)
		}
	}

	return map[int]solver.TierWordLists{
		solver.TierStrict: strict,
		solver.TierFull:   full,
	}
}

func capSlice(words []string, n int) []string {
	if n <= 0 || n >= len(words) {
		out := make([]string, len(words))
		copy(out, words)
		return out
	}
	out := make([]string, n)
	copy(out, words[:n])
	return out
}
