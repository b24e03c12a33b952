package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-scroop-automation/internal/cache"
	"go-scroop-automation/internal/config"
	"go-scroop-automation/internal/ledger"
)

const searchSite = "https://x.com/jobs/?keywords="

var searchPage = `<html><body>
<a href="https://x.com/job/1">Mongo role</a>
<a href="http://x.com/job/1?ref=email">Mongo role again</a>
<a href="https://x.com/job/2">Plumber role</a>
<a href="https://other.com/job/3">Off-site role</a>
</body></html>`

var jobPages = map[string]string{
	"https://x.com/job/1": `<html><body><article>Remote MongoDB developer role requiring JavaScript and five years of experience building web applications for a university system.</article></body></html>`,
	"https://x.com/job/2": `<html><body><article>Looking for a plumber in Atlanta with pipefitting experience and a valid driving license for service calls.</article></body></html>`,
}

// countingFetcher serves canned pages and records how often each URL is hit.
type countingFetcher struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]bool
	pages map[string]string
}

func newCountingFetcher() *countingFetcher {
	return &countingFetcher{calls: make(map[string]int), fail: make(map[string]bool), pages: jobPages}
}

func (f *countingFetcher) fetch(url string) (string, error) {
	f.mu.Lock()
	f.calls[url]++
	f.mu.Unlock()

	if f.fail[url] {
		return "", fmt.Errorf("browser error for %s", url)
	}
	if url == searchSite+"mongodb" {
		return searchPage, nil
	}
	if page, ok := f.pages[url]; ok {
		return page, nil
	}
	return "", fmt.Errorf("unexpected fetch: %s", url)
}

func (f *countingFetcher) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// scriptedAI answers summary prompts with a fixed digest and match prompts
// with a fixed score.
type scriptedAI struct {
	score string
}

func (s *scriptedAI) Complete(_ context.Context, prompt string) (string, error) {
	if strings.HasPrefix(prompt, "Please read") {
		return "Requires MongoDB, JavaScript, and five years of web development experience.", nil
	}
	return s.score, nil
}

func newTestPipeline(t *testing.T, fetcher *countingFetcher, client *scriptedAI) (*Pipeline, cache.Store, *ledger.Ledger) {
	t.Helper()
	dir := t.TempDir()

	store, err := cache.NewFileStore(filepath.Join(dir, "cached_pages"))
	require.NoError(t, err)

	led, err := ledger.Open(filepath.Join(dir, "scanned_sites.log"))
	require.NoError(t, err)

	cfg := &config.Config{
		SearchSites:    []string{searchSite},
		SearchWords:    []string{"mongodb"},
		Resume:         "Skills: JavaScript, MongoDB, React.js",
		Workers:        2,
		Retries:        1,
		SearchTTLHours: 2,
		PageTTLHours:   720,
	}

	return New(cfg, store, led, fetcher.fetch, client), store, led
}

func TestRunRatesMatchingJobs(t *testing.T) {
	fetcher := newCountingFetcher()
	p, _, led := newTestPipeline(t, fetcher, &scriptedAI{score: "9"})

	jobs, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, jobs, 1)
	assert.Equal(t, "https://x.com/job/1", jobs[0].URL)
	assert.Equal(t, 9, jobs[0].Rating)
	assert.Contains(t, jobs[0].Summary, "MongoDB")

	// both the rated job and the keyword miss are fully processed
	assert.True(t, led.Contains("https://x.com/job/1"))
	assert.True(t, led.Contains("https://x.com/job/2"))
	// off-domain links never entered the pipeline
	assert.False(t, led.Contains("https://other.com/job/3"))
}

func TestSecondRunIsIdempotent(t *testing.T) {
	fetcher := newCountingFetcher()
	p, _, _ := newTestPipeline(t, fetcher, &scriptedAI{score: "9"})

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	fetchesAfterFirst := fetcher.total()

	jobs, err := p.Run(context.Background())
	require.NoError(t, err)

	// everything is ledgered or cached, so no page is refetched and no new
	// jobs surface
	assert.Empty(t, jobs)
	assert.Equal(t, fetchesAfterFirst, fetcher.total())
}

func TestFetchFailureIsRetriedNextRun(t *testing.T) {
	fetcher := newCountingFetcher()
	fetcher.fail["https://x.com/job/1"] = true
	p, _, led := newTestPipeline(t, fetcher, &scriptedAI{score: "9"})

	jobs, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)

	// the failed fetch was not ledgered and nothing was cached for it
	assert.False(t, led.Contains("https://x.com/job/1"))

	// the page recovers on the next run
	fetcher.fail["https://x.com/job/1"] = false
	jobs, err = p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "https://x.com/job/1", jobs[0].URL)
}

func TestInconclusiveClassifierRecordsMinimumRating(t *testing.T) {
	fetcher := newCountingFetcher()
	p, store, _ := newTestPipeline(t, fetcher, &scriptedAI{score: "no idea, somewhere around 1337"})

	jobs, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, jobs, 1)
	assert.Equal(t, 1, jobs[0].Rating)

	rating, err := store.Get(cache.RatingKey("https://x.com/job/1"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(rating))
}

func TestCorruptRatingIsQuarantined(t *testing.T) {
	fetcher := newCountingFetcher()
	p, store, led := newTestPipeline(t, fetcher, &scriptedAI{score: "9"})

	link := "https://x.com/job/1"
	require.NoError(t, led.Append(link))
	require.NoError(t, store.Put(cache.Fingerprint(link), []byte("page")))
	require.NoError(t, store.Put(cache.SummaryKey(link), []byte("a summary")))
	require.NoError(t, store.Put(cache.RatingKey(link), []byte("not a number")))

	jobs := p.Collect([]string{link})
	assert.Empty(t, jobs)

	// pruned from the ledger so the next run retries from scratch
	assert.False(t, led.Contains(link))
	// artifacts relocated, not deleted
	assert.False(t, store.Exists(cache.RatingKey(link)))
	assert.False(t, store.Exists(cache.SummaryKey(link)))
	assert.False(t, store.Exists(cache.Fingerprint(link)))
}

func TestOutOfRangeRatingIsQuarantined(t *testing.T) {
	fetcher := newCountingFetcher()
	p, store, led := newTestPipeline(t, fetcher, &scriptedAI{score: "9"})

	link := "https://x.com/job/1"
	require.NoError(t, led.Append(link))
	require.NoError(t, store.Put(cache.Fingerprint(link), []byte("page")))
	require.NoError(t, store.Put(cache.SummaryKey(link), []byte("a summary")))
	require.NoError(t, store.Put(cache.RatingKey(link), []byte("15")))

	// a rating outside 1..10 must never surface as a RatedJob
	jobs := p.Collect([]string{link})
	assert.Empty(t, jobs)

	assert.False(t, led.Contains(link))
	assert.False(t, store.Exists(cache.RatingKey(link)))
	assert.False(t, store.Exists(cache.SummaryKey(link)))
}

func TestFilterIgnoresBoilerplateKeywords(t *testing.T) {
	fetcher := newCountingFetcher()
	fetcher.pages = map[string]string{
		"https://x.com/job/2": `<html><body>
		<nav>mongodb jobs | python jobs | home</nav>
		<article>Looking for a plumber in Atlanta with pipefitting experience.</article>
		<footer>Browse more mongodb listings</footer>
		</body></html>`,
	}
	p, _, led := newTestPipeline(t, fetcher, &scriptedAI{score: "9"})

	// the keyword only appears in navigation and footer chrome
	matched := p.FilterLinks(context.Background(), []string{"https://x.com/job/2"})
	assert.Empty(t, matched)
	assert.True(t, led.Contains("https://x.com/job/2"))
}

func TestCollectSortsByRatingDescending(t *testing.T) {
	fetcher := newCountingFetcher()
	p, store, _ := newTestPipeline(t, fetcher, &scriptedAI{score: "9"})

	for i, link := range []string{"https://x.com/job/a", "https://x.com/job/b", "https://x.com/job/c"} {
		require.NoError(t, store.Put(cache.SummaryKey(link), []byte("summary")))
		require.NoError(t, store.Put(cache.RatingKey(link), []byte(fmt.Sprintf("%d", i+3))))
	}

	jobs := p.Collect([]string{"https://x.com/job/a", "https://x.com/job/b", "https://x.com/job/c"})
	require.Len(t, jobs, 3)
	assert.Equal(t, 5, jobs[0].Rating)
	assert.Equal(t, 4, jobs[1].Rating)
	assert.Equal(t, 3, jobs[2].Rating)
}
