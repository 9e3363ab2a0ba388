package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// FeedSource is one configured news feed. Selector is an optional CSS
// selector for the article body on that site; sources without one go
// through the readability fallback.
type FeedSource struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Selector string `yaml:"selector"`
}

type sourceFile struct {
	Sources []FeedSource `yaml:"sources"`
}

// Config is built once at startup and passed into each phase. Nothing
// outside this package reads the environment.
type Config struct {
	DatabaseURL string
	RedisURL    string

	OpenAIKey    string
	AnthropicKey string
	FinnhubKey   string

	FrontendURL string

	Sources []FeedSource

	BatchSize   int
	MinTextLen  int
	MaxAttempts int

	Ticker       string
	TickerSuffix string
	StartDate    string
	EndDate      string
}

const (
	defaultBatchSize   = 10
	defaultMinTextLen  = 250
	defaultMaxAttempts = 3
	defaultSourcesPath = "sources.yml"
)

// Load reads the environment and the YAML source list into a Config.
// Required values missing here are fatal to the caller: no phase may run
// with partial configuration.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		FinnhubKey:   os.Getenv("FINNHUB_API_KEY"),
		FrontendURL:  os.Getenv("FRONTEND_URL"),
		Ticker:       os.Getenv("TICKER"),
		TickerSuffix: os.Getenv("TICKER_SUFFIX"),
		StartDate:    os.Getenv("START_DATE"),
		EndDate:      os.Getenv("END_DATE"),
		BatchSize:    intEnv("ANALYSIS_BATCH_SIZE", defaultBatchSize),
		MinTextLen:   intEnv("MIN_TEXT_LENGTH", defaultMinTextLen),
		MaxAttempts:  intEnv("MAX_ANALYSIS_ATTEMPTS", defaultMaxAttempts),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL is not set")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("config: REDIS_URL is not set")
	}

	sourcesPath := os.Getenv("SOURCES_FILE")
	if sourcesPath == "" {
		sourcesPath = defaultSourcesPath
	}

	sources, err := loadSources(sourcesPath)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources

	return cfg, nil
}

// loadSources reads the YAML feed list. A missing file is not an error
// here: only the collector needs feeds, and it refuses to run with an
// empty source list.
func loadSources(path string) ([]FeedSource, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading source list %s: %w", path, err)
	}

	var f sourceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parsing source list %s: %w", path, err)
	}

	for i, s := range f.Sources {
		if s.Name == "" || s.URL == "" {
			return nil, fmt.Errorf("config: source %d in %s is missing name or url", i, path)
		}
	}

	return f.Sources, nil
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
