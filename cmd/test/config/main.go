package main

import (
	"fmt"

	"go-scroop-automation/internal/config"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg := config.Load("configs/config.yaml")
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Search Sites: %d sites\n", len(cfg.SearchSites))
	fmt.Printf("   Search Words: %v\n", cfg.SearchWords)
	fmt.Printf("   Must Have Words: %v\n", cfg.MustHaveWords)
	fmt.Printf("   Anti Keywords: %v\n", cfg.AntiKeywords)
	fmt.Printf("   Cache Path: %s\n", cfg.CachePath)
	fmt.Printf("   Ledger Path: %s\n", cfg.LedgerPath)
	fmt.Printf("   Workers: %d\n", cfg.Workers)
	fmt.Printf("   Rating Threshold: %d\n", cfg.RatingThreshold)
}
