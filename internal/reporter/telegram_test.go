package reporter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExcerptKeepsShortSummaries(t *testing.T) {
	assert.Equal(t, "short summary", excerpt("short summary"))
	assert.Equal(t, "", excerpt(""))
}

func TestExcerptTruncatesOnRuneBoundary(t *testing.T) {
	// 3-byte runes offset by one so the byte limit lands mid-sequence
	long := "a" + strings.Repeat("€", maxSummaryExcerpt)
	got := excerpt(long)

	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len(got), maxSummaryExcerpt+len("…"))
}

func TestExcerptTruncatesASCIIExactly(t *testing.T) {
	long := strings.Repeat("a", maxSummaryExcerpt+100)
	got := excerpt(long)
	assert.Equal(t, strings.Repeat("a", maxSummaryExcerpt)+"…", got)
}
