package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the crawler configuration.
type Config struct {
	Crawler struct {
		PerCapitaURL   string `yaml:"per_capita_url"`
		GrowthRateURL  string `yaml:"growth_rate_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		UserAgent      string `yaml:"user_agent"`
	} `yaml:"crawler"`

	Parser struct {
		DefaultYear             int    `yaml:"default_year"`
		HeaderKeyword           string `yaml:"header_keyword"`
		PerCapitaCountryColumn  int    `yaml:"per_capita_country_column"`
		GrowthRateCountryColumn int    `yaml:"growth_rate_country_column"`
	} `yaml:"parser"`

	Summary struct {
		MinGDPPerCapita    float64 `yaml:"min_gdp_per_capita"`
		RequireBothMetrics bool    `yaml:"require_both_metrics"`
	} `yaml:"summary"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := GetDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// GetDefaultConfig returns a configuration matching the live Wikipedia pages.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Crawler.PerCapitaURL = "https://en.wikipedia.org/wiki/List_of_countries_by_GDP_(nominal)_per_capita"
	cfg.Crawler.GrowthRateURL = "https://en.wikipedia.org/wiki/List_of_countries_by_real_GDP_growth_rate"
	cfg.Crawler.TimeoutSeconds = 30
	cfg.Crawler.UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.114 Safari/537.36"
	cfg.Parser.DefaultYear = 2023
	cfg.Parser.HeaderKeyword = "country"
	cfg.Parser.PerCapitaCountryColumn = 0
	cfg.Parser.GrowthRateCountryColumn = 1
	cfg.Summary.MinGDPPerCapita = 0
	cfg.Summary.RequireBothMetrics = false
	return cfg
}

// Timeout returns the per-request fetch timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Crawler.TimeoutSeconds) * time.Second
}
