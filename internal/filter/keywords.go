// Keyword policy for extracted page text.
// Exclusion beats inclusion; must-have-all is a hard gate; include-any is the
// base relevance signal. Matching is case-insensitive substring matching on
// diacritic-folded text.

package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Policy holds the keyword rules applied to a page.
type Policy struct {
	// IncludeAny passes when at least one term occurs. Terms may be wrapped
	// in double quotes (search-engine style); the quotes are ignored here.
	IncludeAny []string
	// IncludeAll terms must every one occur, otherwise the page fails outright.
	IncludeAll []string
	// ExcludeAny fails the page when any term occurs, overriding everything.
	ExcludeAny []string
	// Strip lists false-positive substrings removed from the text before
	// matching, e.g. "facebook" when the search term is "book".
	Strip []string
}

func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(result)
}

// Matches reports whether text satisfies the policy.
func Matches(text string, p Policy) bool {
	text = normalizeText(text)

	for _, word := range p.Strip {
		text = strings.ReplaceAll(text, normalizeText(word), "")
	}

	anyMatch := false
	for _, word := range p.IncludeAny {
		word = normalizeText(strings.ReplaceAll(word, `"`, ""))
		if word != "" && strings.Contains(text, word) {
			anyMatch = true
			break
		}
	}

	if len(p.IncludeAll) > 0 {
		for _, word := range p.IncludeAll {
			if !strings.Contains(text, normalizeText(word)) {
				return false
			}
		}
	}

	for _, word := range p.ExcludeAny {
		word = normalizeText(word)
		if word != "" && strings.Contains(text, word) {
			return false
		}
	}

	return anyMatch
}
