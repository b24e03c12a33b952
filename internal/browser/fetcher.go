// Headless page fetcher. Waits out dynamic content, simulates light human
// behavior, and rewrites every anchor to an absolute URL before handing the
// markup back, so downstream link harvesting never sees relative paths.

package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-scroop-automation/internal/extract"
	"go-scroop-automation/utils"
)

// minContentLength is the visible-text size below which a page is considered
// still loading.
const minContentLength = 250

const absolutizeScript = `document.querySelectorAll('a[href]').forEach(a => a.setAttribute('href', a.href))`

type Fetcher struct {
	browserCtx playwright.BrowserContext
	debugger   *utils.ScreenShotDebugger
}

func NewFetcher(browserCtx playwright.BrowserContext) *Fetcher {
	return &Fetcher{
		browserCtx: browserCtx,
		debugger:   utils.NewScreenShotDebugger(),
	}
}

// Fetch navigates to pageURL in a fresh page and returns the settled markup.
// A page per call keeps concurrent workers independent.
func (f *Fetcher) Fetch(pageURL string) (string, error) {
	page, err := f.browserCtx.NewPage()
	if err != nil {
		return "", fmt.Errorf("could not create page: %w", err)
	}
	defer page.Close()

	if _, err := page.Goto(pageURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return "", fmt.Errorf("could not navigate to %s: %w", pageURL, err)
	}

	if blocked(page) {
		f.debugger.CaptureAndLog(page, "cloudflare-blocked", "🚨 Blocked by Cloudflare: "+pageURL)
		return "", fmt.Errorf("blocked by bot protection: %s", pageURL)
	}

	//wait for dynamic content, scrolling to trigger lazy loading
	for i := 0; i < 5; i++ {
		utils.MouseJiggle(page)
		utils.SmoothScroll(page)

		content, err := page.Content()
		if err == nil {
			if text, err := extract.Extract(content, extract.ModeFull); err == nil && len(text) >= minContentLength {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}

	//convert all relative links to absolute
	if _, err := page.Evaluate(absolutizeScript); err != nil {
		return "", fmt.Errorf("could not absolutize links: %w", err)
	}

	content, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("could not read page content: %w", err)
	}
	return content, nil
}

func blocked(page playwright.Page) bool {
	title, err := page.Title()
	if err != nil {
		return false
	}
	return strings.Contains(title, "Cloudflare") ||
		strings.Contains(title, "Attention Required") ||
		strings.Contains(title, "Just a moment")
}
