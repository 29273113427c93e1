// Package classify implements keyword-driven message classification: issue
// categories and sentiment. Both are pure functions of the message text and
// the taxonomy; conversation history never influences the result.
package classify

import (
	"strings"

	"github.com/suporteware/chatminer/internal/taxonomy"
)

// Score counts the distinct keywords from kws that occur as substrings of the
// lowercased text. Each keyword contributes at most 1 regardless of how often
// it repeats. Matching is substring-only, not word-boundary aware; a short
// keyword may match inside a longer unrelated word.
func Score(text string, kws []string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, kw := range kws {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	return score
}

// ContainsAny reports whether any keyword occurs in the lowercased text.
func ContainsAny(text string, kws []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range kws {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Classify returns the tag of the best-matching category for text. The
// category with the strictly highest score wins; ties go to the earliest
// declared category. When every category scores zero the taxonomy's default
// tag is returned.
func Classify(text string, tax *taxonomy.Taxonomy) string {
	best, bestScore := "", 0
	for _, c := range tax.Categories {
		if s := Score(text, c.Keywords); s > bestScore {
			best, bestScore = c.Tag, s
		}
	}
	if bestScore == 0 {
		return tax.DefaultTag
	}
	return best
}
