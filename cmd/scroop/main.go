package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-scroop-automation/internal/ai"
	"go-scroop-automation/internal/browser"
	"go-scroop-automation/internal/cache"
	"go-scroop-automation/internal/config"
	"go-scroop-automation/internal/ledger"
	"go-scroop-automation/internal/pipeline"
	"go-scroop-automation/internal/report"
	"go-scroop-automation/internal/reporter"
)

func main() {
	//load config
	cfg := config.Load("configs/config.yaml")
	log.Printf("🔧 Config loaded. Sites: %d, search words: %v", len(cfg.SearchSites), cfg.SearchWords)

	//file-backed cache and resume ledger
	store, err := cache.NewFileStore(cfg.CachePath)
	if err != nil {
		log.Fatalf("❌ Failed to open cache: %v", err)
	}

	led, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		log.Fatalf("❌ Failed to open ledger: %v", err)
	}
	log.Printf("📋 Ledger loaded with %d previously scanned links", led.Len())

	//setup context with timeout = 60 mins
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Minute)
	defer cancel()

	log.Println("🚀 Starting Scroop (Go version)...")

	//init playwright manager
	pwManager, err := browser.NewPlaywright()
	if err != nil {
		log.Fatalf("❌ Failed to init Playwright: %v", err)
	}
	defer pwManager.Close()

	//load cookies, if any are configured
	cookies := loadAllCookies(cfg.CookiesPath)

	//create new browser context with cookies
	browserCtx, err := pwManager.NewContext(cookies)
	if err != nil {
		log.Fatalf("❌ Failed to create browser context: %v", err)
	}
	log.Println("✅ Browser initialized successfully!")

	fetcher := browser.NewFetcher(browserCtx)
	client := ai.NewGrokClient(cfg.GroqAPIKey, cfg.GroqModel)

	//run the pipeline
	pipe := pipeline.New(cfg, store, led, fetcher.Fetch, client)
	jobs, err := pipe.Run(ctx)
	if err != nil {
		log.Fatalf("❌ Pipeline failed: %v", err)
	}

	log.Printf("\n📦 Rated jobs this run: %d", len(jobs))
	for i, job := range jobs {
		indent := strings.Repeat(" ", (10-job.Rating)/2)
		log.Printf("%s%d/%d: %s - %d", indent, i+1, len(jobs), job.URL, job.Rating)
	}

	//save results
	saveReports(cfg, jobs)

	//send top jobs to telegram
	sendToTelegram(cfg, jobs)

	log.Println("🏁 Execution finished.")
}

// loadAllCookies reads every cookie JSON file under dir. Missing dir or
// unreadable files are fine, scraping just runs anonymously.
func loadAllCookies(dir string) []playwright.OptionalCookie {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("⚠️ Could not read cookies dir %s: %v. Continuing.", dir, err)
		return nil
	}

	var all []playwright.OptionalCookie
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		cookies, err := browser.LoadCookies(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("⚠️ Could not load %s cookies: %v. Continuing.", entry.Name(), err)
			continue
		}
		log.Printf("🍪 Loaded %s cookies (%d)", entry.Name(), len(cookies))
		all = append(all, cookies...)
	}
	return all
}

func saveReports(cfg *config.Config, jobs []pipeline.RatedJob) {
	if len(jobs) == 0 {
		log.Println("ℹ️ No jobs to report.")
		return
	}

	csvPath := report.Filename("job_search", "csv")
	if err := report.WriteCSV(csvPath, jobs); err != nil {
		log.Printf("⚠️ Failed to write CSV report: %v", err)
	} else {
		log.Printf("📁 Results saved to %s", csvPath)
	}

	summaryPath := report.Filename("job_match_summaries", "txt")
	if err := report.WriteSummaries(summaryPath, jobs, cfg.RatingThreshold); err != nil {
		log.Printf("⚠️ Failed to write summaries: %v", err)
	} else {
		log.Printf("📁 Summaries saved to %s", summaryPath)
	}

	html, err := report.RenderHTML(jobs)
	if err != nil {
		log.Printf("⚠️ Failed to render HTML report: %v", err)
		return
	}
	htmlPath := report.Filename("job_search", "html")
	if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
		log.Printf("⚠️ Failed to write HTML report: %v", err)
	} else {
		log.Printf("📁 HTML report saved to %s", htmlPath)
	}

	pdfBytes, err := report.RenderPDF(html)
	if err != nil {
		log.Printf("⚠️ Failed to render PDF report: %v", err)
		return
	}
	pdfPath := report.Filename("job_search", "pdf")
	if err := os.WriteFile(pdfPath, pdfBytes, 0644); err != nil {
		log.Printf("⚠️ Failed to write PDF report: %v", err)
	} else {
		log.Printf("📁 PDF report saved to %s", pdfPath)
	}
}

func sendToTelegram(cfg *config.Config, jobs []pipeline.RatedJob) {
	if cfg.TelegramToken == "" || cfg.TelegramChatID == 0 {
		return
	}

	bot, err := reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Printf("⚠️ Failed to init Telegram bot: %v", err)
		return
	}

	sent := 0
	for _, job := range jobs {
		if job.Rating < cfg.RatingThreshold {
			continue
		}
		if err := bot.SendJob(job); err != nil {
			log.Printf("⚠️ Failed to send job to Telegram: %v", err)
			continue
		}
		sent++
		//1 second delay to avoid 429
		time.Sleep(1 * time.Second)
	}

	status := fmt.Sprintf("Rated %d jobs, sent %d above threshold.", len(jobs), sent)
	if len(jobs) == 0 {
		status = "Scroop ran but found nothing new."
	}
	if err := bot.SendStatus(status); err != nil {
		log.Printf("⚠️ Failed to send status to Telegram: %v", err)
	}
}
