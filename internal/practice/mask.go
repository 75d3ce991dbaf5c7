package practice

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"

	"github.com/recodelabs/recode/internal/domain"
)

// Token categories worth blanking out, most instructive first.
var maskPatterns = []struct {
	pattern    *regexp.Regexp
	category   string
	importance int
	hint       string
}{
	{regexp.MustCompile(`\b(?:if|else|elif|for|while|return|def|in|not|and|or|is|None|True|False|break|continue)\b`), "keyword", 10, "a Python keyword"},
	{regexp.MustCompile(`\b(?:len|range|enumerate|zip|min|max|sorted|abs|set|dict|list|tuple)\b`), "builtin", 8, "a built-in function or type"},
	{regexp.MustCompile(`\b(?:append|pop|insert|remove|sort|reverse|get|keys|values|items|add|update|join|split)\b`), "method", 7, "a container method"},
	{regexp.MustCompile(`==|!=|<=|>=|\+=|-=|\*=|//=?`), "operator", 6, "a comparison or assignment operator"},
	{regexp.MustCompile(`\b\d+\b`), "number", 4, "a numeric literal"},
}

// Blank is one masked token in a snippet.
type Blank struct {
	ID       int
	Token    string
	Category string
	Hint     string
}

// MaskedSnippet is the result of masking a snippet for unit-test prompts.
type MaskedSnippet struct {
	Code   string
	Blanks []Blank
}

type maskCandidate struct {
	start, end int
	token      string
	category   string
	importance int
	hint       string
}

// blankCount maps difficulty to the number of blanks.
func blankCount(d domain.Difficulty, max int) int {
	var n int
	switch d {
	case domain.DifficultyEasy:
		n = 1
	case domain.DifficultyHard:
		n = 5
	default:
		n = 3
	}
	if n > max {
		n = max
	}
	return n
}

// MaskSnippet replaces selected tokens with numbered blanks. The same seed
// always produces the same blanks, so an attempt can be re-rendered; a new
// seed varies them.
func MaskSnippet(snippet string, difficulty domain.Difficulty, seed int64) MaskedSnippet {
	candidates := findCandidates(snippet)
	if len(candidates) == 0 {
		return MaskedSnippet{Code: snippet}
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	// Higher-importance tokens first; shuffle above breaks ties randomly.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].importance > candidates[j].importance
	})

	chosen := candidates[:blankCount(difficulty, len(candidates))]
	sort.Slice(chosen, func(i, j int) bool { return chosen[i].start < chosen[j].start })

	var b strings.Builder
	var blanks []Blank
	last := 0
	for i, c := range chosen {
		b.WriteString(snippet[last:c.start])
		fmt.Fprintf(&b, "____(%d)", i+1)
		last = c.end
		blanks = append(blanks, Blank{
			ID:       i + 1,
			Token:    c.token,
			Category: c.category,
			Hint:     c.hint,
		})
	}
	b.WriteString(snippet[last:])

	return MaskedSnippet{Code: b.String(), Blanks: blanks}
}

// findCandidates collects non-overlapping maskable tokens in position order.
func findCandidates(snippet string) []maskCandidate {
	var all []maskCandidate
	for _, p := range maskPatterns {
		for _, loc := range p.pattern.FindAllStringIndex(snippet, -1) {
			all = append(all, maskCandidate{
				start:      loc[0],
				end:        loc[1],
				token:      snippet[loc[0]:loc[1]],
				category:   p.category,
				importance: p.importance,
				hint:       p.hint,
			})
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].start < all[j].start })

	var filtered []maskCandidate
	lastEnd := 0
	for _, c := range all {
		if c.start >= lastEnd {
			filtered = append(filtered, c)
			lastEnd = c.end
		}
	}
	return filtered
}
