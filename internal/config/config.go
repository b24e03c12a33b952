// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	//Search criteria
	SearchSites   []string `yaml:"search_sites"`
	SearchWords   []string `yaml:"search_words"`
	MustHaveWords []string `yaml:"must_have_words"`
	AntiKeywords  []string `yaml:"anti_keywords"`
	StripWords    []string `yaml:"strip_words"`
	//Resume compared against every job summary
	Resume string `yaml:"resume"`
	//Classifier
	GroqAPIKey string `yaml:"groq_api_key" env:"GROQ_API_KEY"`
	GroqModel  string `yaml:"groq_model"`
	Retries    int    `yaml:"retries"`
	//Reporting (optional; skipped when token is empty)
	TelegramToken   string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID  int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	RatingThreshold int    `yaml:"rating_threshold"`
	//Paths
	CachePath   string `yaml:"cache_path"`
	LedgerPath  string `yaml:"ledger_path"`
	CookiesPath string `yaml:"cookies_path"`
	//Pipeline tuning
	Workers        int `yaml:"workers"`
	SearchTTLHours int `yaml:"search_ttl_hours"`
	PageTTLHours   int `yaml:"page_ttl_hours"`
}

func Load(path string) *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Could not read %s: %v", path, err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", path, err)
		}
	}

	//Override with env vars
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		cfg.GroqAPIKey = key
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	//Set default values if not set
	if cfg.CachePath == "" {
		cfg.CachePath = "cached_pages"
	}

	if cfg.LedgerPath == "" {
		cfg.LedgerPath = "scanned_sites.log"
	}

	if cfg.Workers == 0 {
		cfg.Workers = 8
	}

	if cfg.Retries == 0 {
		cfg.Retries = 3
	}

	if cfg.SearchTTLHours == 0 {
		cfg.SearchTTLHours = 2
	}

	if cfg.PageTTLHours == 0 {
		cfg.PageTTLHours = 720 // 30 days
	}

	if cfg.RatingThreshold == 0 {
		cfg.RatingThreshold = 8
	}

	//Validate required fields
	if cfg.GroqAPIKey == "" {
		log.Fatal("GROQ_API_KEY is required")
	}

	if len(cfg.SearchSites) == 0 {
		log.Fatal("search_sites is required")
	}

	if len(cfg.SearchWords) == 0 {
		log.Fatal("search_words is required")
	}

	return cfg
}
