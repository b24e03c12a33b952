package main

import (
	"fmt"
	"log"

	"go-scroop-automation/internal/browser"
)

func main() {
	fmt.Println("🌐 Testing Browser Manager...")

	//create playwright manager
	pm, err := browser.NewPlaywright()
	if err != nil {
		log.Fatalf("Failed to create Playwright: %v", err)
	}
	defer pm.Close()

	fmt.Println("✅ Playwright started")

	//create context without cookies
	browserCtx, err := pm.NewContext(nil)
	if err != nil {
		log.Fatalf("Failed to create context: %v", err)
	}
	defer browserCtx.Close()

	fmt.Println("✅ Browser context created")

	//fetch a page through the full fetcher path
	fetcher := browser.NewFetcher(browserCtx)

	fmt.Println("🔍 Fetching example.com...")
	content, err := fetcher.Fetch("https://example.com/")
	if err != nil {
		log.Fatalf("Failed to fetch: %v", err)
	}

	fmt.Printf("✅ Fetched %d bytes of markup\n", len(content))
	fmt.Println("✨ Test complete!")
}
