// Phased orchestration of the job-hunt pipeline.
// Each phase fans out over its work list with a bounded worker pool and
// materializes its full output before the next phase starts, so summarizing
// never begins until the whole batch is keyword-filtered. Every stage reads
// through the cache, which makes an interrupted run safe to resume.

package pipeline

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/sync/errgroup"

	"go-scroop-automation/internal/ai"
	"go-scroop-automation/internal/cache"
	"go-scroop-automation/internal/config"
	"go-scroop-automation/internal/extract"
	"go-scroop-automation/internal/filter"
	"go-scroop-automation/internal/ledger"
	"go-scroop-automation/internal/links"
	"go-scroop-automation/internal/search"
)

// thresholds below which LLM work is pointless
const (
	minSummaryInput  = 50 // page text shorter than this gets a placeholder
	minRatableLength = 25 // summaries shorter than this rate 1 outright
)

// placeholder artifacts keep the results phase crash-free on bad pages
const (
	placeholderNoContent = "No content could be extracted from this page."
	placeholderTooShort  = "Content too short to generate a meaningful summary."
	placeholderFailedGen = "Failed to generate summary for this job listing."
	placeholderNoSummary = "No summary available for this job."
	inconclusiveRating   = 1
)

// FetchFunc is the external fetcher boundary: URL in, raw markup out.
type FetchFunc func(url string) (string, error)

// RatedJob is what the report boundary consumes.
type RatedJob struct {
	URL     string
	Rating  int
	Summary string
}

type Pipeline struct {
	cfg        *config.Config
	store      cache.Store
	ledger     *ledger.Ledger
	fetch      FetchFunc
	client     ai.Client
	classifier *ai.Classifier

	searchTTL time.Duration
	pageTTL   time.Duration
}

func New(cfg *config.Config, store cache.Store, led *ledger.Ledger, fetch FetchFunc, client ai.Client) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		store:      store,
		ledger:     led,
		fetch:      fetch,
		client:     client,
		classifier: ai.NewClassifier(client, cfg.Retries),
		searchTTL:  time.Duration(cfg.SearchTTLHours) * time.Hour,
		pageTTL:    time.Duration(cfg.PageTTLHours) * time.Hour,
	}
}

// Run drives all phases and returns the rated jobs of this batch, highest
// rating first.
func (p *Pipeline) Run(ctx context.Context) ([]RatedJob, error) {
	searchURLs := search.BuildURLs(p.cfg.SearchSites, p.cfg.SearchWords)
	log.Printf("🔍 Searching %d site/keyword combinations with %d workers...", len(searchURLs), p.cfg.Workers)

	discovered := p.Discover(ctx, searchURLs)
	log.Printf("🔗 Total links found: %d", discovered.Cardinality())

	fresh := p.dropLedgered(discovered)
	log.Printf("🔗 Links remaining after previously scanned removed: %d", len(fresh))

	matched := p.FilterLinks(ctx, fresh)
	log.Printf("✂️ Links remaining after pages without keywords removed: %d", len(matched))

	log.Println("📝 Generating job summaries...")
	p.Summarize(ctx, matched)

	log.Println("🤖 Generating resume match ratings...")
	p.Rate(ctx, matched)

	log.Println("📊 Collecting results...")
	return p.Collect(matched), nil
}

// Discover fetches every search URL through the cache and harvests canonical
// candidate links from the results.
func (p *Pipeline) Discover(ctx context.Context, searchURLs []string) mapset.Set[string] {
	allowed := links.AllowedDomains(p.cfg.SearchSites)
	found := mapset.NewSet[string]()

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)
	for _, searchURL := range searchURLs {
		searchURL := searchURL
		g.Go(func() error {
			res := p.fetchPage(searchURL, p.searchTTL)
			if res.Status != StatusOk {
				if res.Err != nil {
					log.Printf("⚠️ search fetch failed: %s: %v", searchURL, res.Err)
				}
				return nil
			}
			for canonical := range links.Normalize(links.Harvest(res.Value), allowed).Iter() {
				found.Add(canonical)
			}
			return nil
		})
	}
	g.Wait()

	return found
}

func (p *Pipeline) dropLedgered(discovered mapset.Set[string]) []string {
	var fresh []string
	for link := range discovered.Iter() {
		if !p.ledger.Contains(link) {
			fresh = append(fresh, link)
		}
	}
	return fresh
}

// FilterLinks fetches each candidate page and keeps only those whose main
// content passes the keyword policy; navigation and boilerplate text never
// count toward a match. Pages that fail the policy are ledgered as
// fully processed; fetch and extraction failures are not, so the next run
// retries them.
func (p *Pipeline) FilterLinks(ctx context.Context, candidates []string) []string {
	policy := filter.Policy{
		IncludeAny: p.cfg.SearchWords,
		IncludeAll: p.cfg.MustHaveWords,
		ExcludeAny: p.cfg.AntiKeywords,
		Strip:      p.cfg.StripWords,
	}

	var mu sync.Mutex
	var matched []string

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)
	for _, link := range candidates {
		link := link
		g.Go(func() error {
			res := p.pageText(link, extract.ModeMain)
			switch res.Status {
			case StatusOk:
				if !filter.Matches(res.Value, policy) {
					// a keyword miss is a decision, not an error: ledger it
					// so future runs skip this page
					if err := p.ledger.Append(link); err != nil {
						log.Printf("⚠️ failed to ledger %s: %v", link, err)
					}
					return nil
				}
				mu.Lock()
				matched = append(matched, link)
				mu.Unlock()
			case StatusEmpty, StatusPermanent:
				log.Printf("⏭️ skipped (no usable text): %s", link)
			case StatusTransient:
				log.Printf("⏭️ skipped (fetch failed, will retry next run): %s: %v", link, res.Err)
			}
			return nil
		})
	}
	g.Wait()

	return matched
}

// Summarize writes a cached summary for every matched link. Summaries are
// immutable once written (cache-as-memoization).
func (p *Pipeline) Summarize(ctx context.Context, matched []string) {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)
	for _, link := range matched {
		link := link
		g.Go(func() error {
			p.summarizeOne(ctx, link)
			return nil
		})
	}
	g.Wait()
}

func (p *Pipeline) summarizeOne(ctx context.Context, link string) {
	if p.store.Exists(cache.SummaryKey(link)) {
		return
	}

	res := p.pageText(link, extract.ModeMain)
	if res.Status != StatusOk {
		log.Printf("⚠️ no content for summary: %s", link)
		p.putPlaceholder(link, placeholderNoContent)
		return
	}
	if len(res.Value) < minSummaryInput {
		p.putPlaceholder(link, placeholderTooShort)
		return
	}

	summary, err := p.client.Complete(ctx, ai.SummaryPrompt(res.Value))
	if err != nil {
		log.Printf("⚠️ summary generation failed for %s: %v", link, err)
		summary = placeholderFailedGen
	}
	if err := p.store.Put(cache.SummaryKey(link), []byte(summary)); err != nil {
		log.Printf("⚠️ failed to cache summary for %s: %v", link, err)
	}
}

// Rate writes a cached 1-10 rating for every matched link, derived from its
// summary and the configured resume.
func (p *Pipeline) Rate(ctx context.Context, matched []string) {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)
	for _, link := range matched {
		link := link
		g.Go(func() error {
			p.rateOne(ctx, link)
			return nil
		})
	}
	g.Wait()
}

func (p *Pipeline) rateOne(ctx context.Context, link string) {
	if p.store.Exists(cache.RatingKey(link)) {
		return
	}

	summary, err := p.store.Get(cache.SummaryKey(link))
	if err != nil {
		// a rating only ever derives from an existing summary
		p.putPlaceholder(link, placeholderNoSummary)
		return
	}

	rating := inconclusiveRating
	if len(summary) >= minRatableLength {
		score, ok := p.classifier.Score(ctx, ai.MatchPrompt(p.cfg.Resume, string(summary)))
		if ok {
			rating = score
		} else {
			log.Printf("🤷 classifier inconclusive for %s, recording minimum rating", link)
		}
	}

	if err := p.store.Put(cache.RatingKey(link), []byte(strconv.Itoa(rating))); err != nil {
		log.Printf("⚠️ failed to cache rating for %s: %v", link, err)
	}
}

// Collect reads back every artifact, ledgers fully processed links, and
// quarantines the artifacts of any link whose rating is unreadable so a
// human can inspect them before the next run retries it.
func (p *Pipeline) Collect(matched []string) []RatedJob {
	var jobs []RatedJob
	for _, link := range matched {
		job, err := p.collectOne(link)
		if err != nil {
			log.Printf("❌ %v", err)
			if err := p.ledger.Remove(link); err != nil {
				log.Printf("⚠️ failed to prune ledger for %s: %v", link, err)
			}
			if err := p.store.Quarantine(cache.Fingerprint(link)); err != nil {
				log.Printf("⚠️ failed to quarantine artifacts for %s: %v", link, err)
			} else {
				log.Printf("   moved cached artifacts to quarantine: %s", link)
			}
			continue
		}

		if err := p.ledger.Append(link); err != nil {
			log.Printf("⚠️ failed to ledger %s: %v", link, err)
		}
		jobs = append(jobs, job)
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].Rating > jobs[j].Rating
	})
	return jobs
}

func (p *Pipeline) collectOne(link string) (RatedJob, error) {
	ratingRaw, err := p.store.Get(cache.RatingKey(link))
	if err != nil {
		return RatedJob{}, fmt.Errorf("rating unreadable for %s: %w", link, err)
	}
	rating, err := strconv.Atoi(strings.TrimSpace(string(ratingRaw)))
	if err != nil {
		return RatedJob{}, fmt.Errorf("rating corrupt for %s: %w", link, err)
	}
	if rating < 1 || rating > 10 {
		return RatedJob{}, fmt.Errorf("rating out of range for %s: %d", link, rating)
	}

	summary, err := p.store.Get(cache.SummaryKey(link))
	if err != nil {
		return RatedJob{}, fmt.Errorf("summary unreadable for %s: %w", link, err)
	}

	return RatedJob{URL: link, Rating: rating, Summary: string(summary)}, nil
}

// fetchPage reads a URL through the cache.
func (p *Pipeline) fetchPage(url string, ttl time.Duration) Result[string] {
	data, err := cache.GetOrFetch(p.store, cache.Fingerprint(url), ttl, func() ([]byte, error) {
		markup, err := p.fetch(url)
		if err != nil {
			return nil, err
		}
		return []byte(markup), nil
	})
	if err != nil {
		return Transient[string](err)
	}
	return Ok(string(data))
}

// pageText fetches a page through the cache and extracts its text.
func (p *Pipeline) pageText(link string, mode extract.Mode) Result[string] {
	res := p.fetchPage(link, p.pageTTL)
	if res.Status != StatusOk {
		return res
	}
	text, err := extract.Extract(res.Value, mode)
	if err != nil {
		return Empty[string]()
	}
	return Ok(text)
}

// putPlaceholder writes placeholder summary and rating artifacts so the
// results phase never trips over a missing file.
func (p *Pipeline) putPlaceholder(link, summary string) {
	if err := p.store.Put(cache.SummaryKey(link), []byte(summary)); err != nil {
		log.Printf("⚠️ failed to cache placeholder summary for %s: %v", link, err)
	}
	if !p.store.Exists(cache.RatingKey(link)) {
		if err := p.store.Put(cache.RatingKey(link), []byte(strconv.Itoa(inconclusiveRating))); err != nil {
			log.Printf("⚠️ failed to cache placeholder rating for %s: %v", link, err)
		}
	}
}
