// Search-URL expansion: every configured site prefix crossed with every
// URL-escaped search word.

package search

import (
	"math/rand"
	"net/url"
	"strings"
)

// BuildURLs combines each search site with each search word. Spaces escape to
// %20, not +, because some site prefixes splice the word into a path rather
// than a query string. The result is shuffled so parallel workers don't
// hammer one board in lockstep.
func BuildURLs(sites, words []string) []string {
	urls := make([]string, 0, len(sites)*len(words))
	for _, site := range sites {
		for _, word := range words {
			escaped := strings.ReplaceAll(url.QueryEscape(word), "+", "%20")
			urls = append(urls, site+escaped)
		}
	}
	rand.Shuffle(len(urls), func(i, j int) {
		urls[i], urls[j] = urls[j], urls[i]
	})
	return urls
}
