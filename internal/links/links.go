// Candidate-link harvesting and canonicalization.
// Many URL variants must collapse to one canonical job posting: scheme is
// forced to https, query strings and fragments are stripped, known forwarder
// wrappers are unwrapped, and only configured job-board hosts survive.

package links

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/mmcdole/gofeed"

	"go-scroop-automation/internal/filter"
)

// asset suffixes that are never job postings
var skipExtensions = []string{
	"js", "jpg", "jpeg", "png", "gif", "html", "css", "svg", "pdf",
	"mp4", "mp3", "json", "xml", "ico", "webp",
}

// Harvest pulls every candidate URL out of fetched content. HTML pages
// contribute their anchors; RSS/Atom search feeds contribute item links
// (stale items are skipped); bare absolute URLs in the visible text are
// picked up as a catch-all for feed-ish markup.
func Harvest(content string) []string {
	var urls []string

	if looksLikeFeed(content) {
		if feed, err := gofeed.NewParser().ParseString(content); err == nil {
			for _, item := range feed.Items {
				if item.Link == "" {
					continue
				}
				if !filter.IsRecentPosting(item.Published) {
					continue
				}
				urls = append(urls, item.Link)
			}
			return urls
		}
		// unparseable feed, fall through to the HTML path
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return urls
	}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok && href != "" {
			urls = append(urls, href)
		}
	})

	// bare URLs in the text, one per line
	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.TrimSpace(line)
		if u, err := url.Parse(line); err == nil && u.Scheme != "" && u.Host != "" {
			urls = append(urls, line)
		}
	}

	return urls
}

func looksLikeFeed(content string) bool {
	head := strings.TrimSpace(content)
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(head, "<rss") || strings.Contains(head, "<feed") ||
		strings.HasPrefix(head, "<?xml")
}

// AllowedDomains derives the host allow-list from the configured search-site
// URLs.
func AllowedDomains(searchSites []string) mapset.Set[string] {
	domains := mapset.NewSet[string]()
	for _, site := range searchSites {
		if u, err := url.Parse(site); err == nil && u.Host != "" {
			domains.Add(u.Host)
		}
	}
	return domains
}

// Normalize canonicalizes candidate URLs and filters them down to unique job
// postings on allowed hosts. Order of insertion is not significant.
func Normalize(candidates []string, allowed mapset.Set[string]) mapset.Set[string] {
	clean := mapset.NewSet[string]()

	for _, raw := range candidates {
		canonical, ok := Canonicalize(raw)
		if !ok {
			continue
		}
		u, err := url.Parse(canonical)
		if err != nil || !allowed.Contains(u.Host) {
			continue
		}
		clean.Add(canonical)
	}

	return clean
}

// Canonicalize applies every transform short of the host allow-list: scheme
// force, asset and search-page rejection, forwarder unwrapping, query and
// fragment stripping. It reports false when the link can never be a posting.
func Canonicalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.Replace(raw, "http://", "https://", 1)

	lower := strings.ToLower(raw)

	// search-result pages recurse into the search UI, never postings
	if strings.Contains(lower, "keywords=") || strings.Contains(lower, "academiccareers.com/ajax") {
		return "", false
	}

	for _, ext := range skipExtensions {
		if strings.HasSuffix(lower, "."+ext) {
			return "", false
		}
	}

	// unwrap "external apply" forwarders that embed the real posting URL
	if strings.Contains(lower, "externalapply") {
		target, ok := unwrapForwarder(raw)
		if !ok {
			// malformed forwarder, fail closed
			return "", false
		}
		return Canonicalize(target)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	u.RawQuery = ""
	u.Fragment = ""

	return u.String(), true
}

func unwrapForwarder(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	target := u.Query().Get("url")
	if target == "" {
		return "", false
	}
	return target, true
}
