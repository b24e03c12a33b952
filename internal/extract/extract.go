// Turn raw fetched markup into clean plain text for keyword matching and
// LLM prompts. Two modes: everything visible, or a main-content heuristic
// that throws away navigation and boilerplate.

package extract

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Mode selects how much of the page is kept.
type Mode int

const (
	// ModeFull strips markup and keeps all visible text.
	ModeFull Mode = iota
	// ModeMain keeps only the main content block, discarding boilerplate.
	ModeMain
)

// ErrNoText is returned when the input is empty or nothing readable survives
// extraction.
var ErrNoText = errors.New("extract: no readable text")

// boilerplate elements never contain job description text
const boilerplateSelector = "script, style, noscript, iframe, svg, nav, header, footer, aside, form"

// candidate containers for the main content, tried in order
var mainSelectors = []string{"article", "main", "[role=main]", "#content", ".content", "#main"}

var blankRuns = regexp.MustCompile(`\s*\n+\s*`)

var unsmarten = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
)

// Extract converts raw markup into normalized plain text. The output is
// deterministic for identical input: blank-line runs collapse to exactly one
// blank line and smart quotes become their ASCII equivalents.
func Extract(raw string, mode Mode) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrNoText
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", err
	}

	var text string
	switch mode {
	case ModeMain:
		doc.Find(boilerplateSelector).Remove()
		text = mainContent(doc)
	default:
		doc.Find("script, style, noscript").Remove()
		text = doc.Text()
	}

	text = Clean(text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// mainContent returns the text of the first recognized content container,
// falling back to the whole stripped document.
func mainContent(doc *goquery.Document) string {
	for _, sel := range mainSelectors {
		node := doc.Find(sel).First()
		if node.Length() > 0 && strings.TrimSpace(node.Text()) != "" {
			return node.Text()
		}
	}
	return doc.Text()
}

// Clean applies the post-processing invariants: collapsed blank lines and
// unsmartened quotes. Exposed so placeholder text goes through the same
// normalization as extracted text.
func Clean(text string) string {
	text = blankRuns.ReplaceAllString(text, "\n\n")
	text = unsmarten.Replace(text)
	return strings.TrimSpace(text)
}
