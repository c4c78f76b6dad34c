package crawler

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gdp-crawler/config"
	"gdp-crawler/fetcher"
	"gdp-crawler/models"
	"gdp-crawler/parser"
)

// Crawler fetches the two Wikipedia GDP pages and builds a combined dataset.
type Crawler struct {
	fetcher       fetcher.Fetcher
	parser        *parser.Parser
	perCapitaURL  string
	growthRateURL string
}

// New creates a Crawler with a colly-backed fetcher.
func New(cfg *config.Config) *Crawler {
	return NewWithFetcher(cfg, fetcher.NewCollyFetcher(cfg.Crawler.UserAgent, cfg.Timeout()))
}

// NewWithFetcher creates a Crawler with a caller-supplied fetcher.
func NewWithFetcher(cfg *config.Config, f fetcher.Fetcher) *Crawler {
	return &Crawler{
		fetcher: f,
		parser: parser.NewParser(cfg.Parser.DefaultYear, parser.Heuristics{
			HeaderKeyword:           cfg.Parser.HeaderKeyword,
			PerCapitaCountryColumn:  cfg.Parser.PerCapitaCountryColumn,
			GrowthRateCountryColumn: cfg.Parser.GrowthRateCountryColumn,
		}),
		perCapitaURL:  cfg.Crawler.PerCapitaURL,
		growthRateURL: cfg.Crawler.GrowthRateURL,
	}
}

// Crawl fetches both pages concurrently, parses them, and returns the
// combined dataset. A failed fetch or parse contributes an empty record set
// for that source only; the crawl never fails as a whole.
func (c *Crawler) Crawl() *models.Dataset {
	perCapitaCh := c.fetchPage(c.perCapitaURL, "GDP per capita")
	growthRateCh := c.fetchPage(c.growthRateURL, "GDP growth rate")

	perCapitaBody := <-perCapitaCh
	growthRateBody := <-growthRateCh

	var perCapita []models.GDPPerCapita
	if perCapitaBody != "" {
		records, err := c.parser.ParsePerCapita(perCapitaBody)
		if err != nil {
			log.Printf("Warning: failed to parse GDP per capita page: %v\n", err)
		} else {
			perCapita = records
			log.Printf("Extracted %d GDP per capita entries\n", len(records))
		}
	}

	var growthRates []models.GDPGrowthRate
	if growthRateBody != "" {
		records, err := c.parser.ParseGrowthRate(growthRateBody)
		if err != nil {
			log.Printf("Warning: failed to parse GDP growth rate page: %v\n", err)
		} else {
			growthRates = records
			log.Printf("Extracted %d GDP growth rate entries\n", len(records))
		}
	}

	return models.NewDataset(perCapita, growthRates)
}

// fetchPage starts a fetch in the background and returns a channel that
// yields the body, or an empty string on failure.
func (c *Crawler) fetchPage(url, label string) <-chan string {
	result := make(chan string, 1)
	go func() {
		body, err := c.fetcher.Fetch(url)
		if err != nil {
			log.Printf("Warning: failed to fetch %s page: %v\n", label, err)
			result <- ""
			return
		}
		result <- body
	}()
	return result
}

// SaveJSON writes the dataset snapshot to path, creating parent directories
// as needed. With pretty set, the JSON is indented for readability.
func SaveJSON(data *models.Dataset, path string, pretty bool) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var out []byte
	var err error
	if pretty {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
