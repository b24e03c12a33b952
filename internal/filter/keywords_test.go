package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		policy   Policy
		expected bool
	}{
		{
			name:     "quoted search term found",
			text:     "Remote MongoDB role",
			policy:   Policy{IncludeAny: []string{`"mongodb"`}, IncludeAll: []string{"remote"}},
			expected: true,
		},
		{
			name:     "exclusion overrides inclusion",
			text:     "Remote MongoDB role",
			policy:   Policy{IncludeAny: []string{`"mongodb"`}, IncludeAll: []string{"remote"}, ExcludeAny: []string{"remote"}},
			expected: false,
		},
		{
			name:     "missing must-have fails despite keyword hit",
			text:     "On-site MongoDB role in Atlanta",
			policy:   Policy{IncludeAny: []string{"mongodb"}, IncludeAll: []string{"remote"}},
			expected: false,
		},
		{
			name:     "no include-any hit fails",
			text:     "Remote position for a plumber",
			policy:   Policy{IncludeAny: []string{"mongodb", "javascript"}},
			expected: false,
		},
		{
			name:     "case insensitive",
			text:     "Senior JAVASCRIPT Developer",
			policy:   Policy{IncludeAny: []string{"javascript"}},
			expected: true,
		},
		{
			name:     "strip removes false positive before matching",
			text:     "Join us on facebook",
			policy:   Policy{IncludeAny: []string{"book"}, Strip: []string{"facebook"}},
			expected: false,
		},
		{
			name:     "diacritics folded",
			text:     "Développeur web à distance",
			policy:   Policy{IncludeAny: []string{"developpeur"}},
			expected: true,
		},
		{
			name:     "empty include-any never passes",
			text:     "anything",
			policy:   Policy{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Matches(tt.text, tt.policy))
		})
	}
}

// Adding an exclusion term can only flip a passing text to failing, never the
// reverse.
func TestExclusionIsMonotonic(t *testing.T) {
	text := "Remote MongoDB role with JavaScript"
	base := Policy{IncludeAny: []string{"mongodb"}}
	assert.True(t, Matches(text, base))

	for _, term := range []string{"remote", "javascript", "mongodb", "unrelated"} {
		p := base
		p.ExcludeAny = []string{term}
		if !Matches(text, base) {
			assert.False(t, Matches(text, p), "exclusion must not turn a failing text passing")
		}
	}

	failing := Policy{IncludeAny: []string{"kubernetes"}}
	assert.False(t, Matches(text, failing))
	failing.ExcludeAny = []string{"anything"}
	assert.False(t, Matches(text, failing))
}

func TestIsRecentPosting(t *testing.T) {
	tests := []struct {
		date     string
		expected bool
	}{
		{"", true},
		{"Recent", true},
		{"1999-01-01", false},
		{"garbage text", true},
		{"Mon, 02 Jan 2006 15:04:05 GMT", false},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRecentPosting(tt.date))
		})
	}
}
