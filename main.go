package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"gdp-crawler/config"
	"gdp-crawler/crawler"
	"gdp-crawler/filter"
	"gdp-crawler/models"
	"gdp-crawler/sheets"
)

func main() {
	// Parse command line arguments
	output := flag.String("output", "gdp_data.json", "Output file path for the GDP data")
	pretty := flag.Bool("pretty", false, "Output pretty JSON (readable but larger)")
	summary := flag.Bool("summary", false, "Print a summary of the gathered data")
	top := flag.Int("top", 10, "Number of top countries to show in summary")
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	spreadsheetURL := flag.String("spreadsheet", "", "Google Sheets URL to export combined stats to (optional)")
	credentialsPath := flag.String("credentials", "", "Path to Google service account credentials JSON file (or use GOOGLE_SHEETS_CREDENTIALS env var)")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	flag.Parse()

	if *verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	cfg := loadConfig(*configPath)

	log.Println("Starting Wikipedia GDP crawler")
	data := crawler.New(cfg).Crawl()

	if err := crawler.SaveJSON(data, *output, *pretty); err != nil {
		log.Fatalf("Failed to save output: %v\n", err)
	}
	log.Printf("Data saved to %s\n", *output)
	log.Printf("Found %d GDP per capita entries\n", len(data.PerCapita))
	log.Printf("Found %d GDP growth rate entries\n", len(data.GrowthRates))
	log.Printf("Combined data for %d countries\n", len(data.Combined))

	stats := filter.NewFilter(cfg).Apply(data.CombinedInOrder())

	if *summary {
		printSummary(stats, *top)
	}

	if *spreadsheetURL != "" {
		exportToSheets(stats, *spreadsheetURL, *credentialsPath)
	}
}

// loadConfig loads the configuration file, falling back to defaults when the
// file is missing or unreadable.
func loadConfig(path string) *config.Config {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Printf("Could not load config file (%v), using defaults\n", err)
		return config.GetDefaultConfig()
	}
	return cfg
}

// printSummary prints the top-N countries for each metric, sorted descending
// with ties kept in input order.
func printSummary(stats []*models.CountryStats, topN int) {
	byCapita := withMetric(stats, func(s *models.CountryStats) *float64 { return s.GDPPerCapita })
	sort.SliceStable(byCapita, func(i, j int) bool {
		return *byCapita[i].GDPPerCapita > *byCapita[j].GDPPerCapita
	})

	fmt.Println("\n=== Top Countries by GDP per Capita ===")
	for i, s := range byCapita {
		if i >= topN {
			break
		}
		fmt.Printf("%d. %s: $%.2f\n", i+1, s.Country, *s.GDPPerCapita)
	}

	byGrowth := withMetric(stats, func(s *models.CountryStats) *float64 { return s.GDPGrowthRate })
	sort.SliceStable(byGrowth, func(i, j int) bool {
		return *byGrowth[i].GDPGrowthRate > *byGrowth[j].GDPGrowthRate
	})

	fmt.Println("\n=== Top Countries by GDP Growth Rate ===")
	for i, s := range byGrowth {
		if i >= topN {
			break
		}
		fmt.Printf("%d. %s: %.2f%%\n", i+1, s.Country, *s.GDPGrowthRate)
	}
}

// withMetric returns the stats for which the selected metric is present.
func withMetric(stats []*models.CountryStats, metric func(*models.CountryStats) *float64) []*models.CountryStats {
	var out []*models.CountryStats
	for _, s := range stats {
		if metric(s) != nil {
			out = append(out, s)
		}
	}
	return out
}

// exportToSheets writes the combined stats to a Google Sheet. Export errors
// are warnings: the JSON snapshot has already been written at this point.
func exportToSheets(stats []*models.CountryStats, spreadsheetURL, credentialsPath string) {
	spreadsheetID := sheets.ExtractSpreadsheetID(spreadsheetURL)
	if spreadsheetID == "" {
		log.Printf("Warning: Could not extract spreadsheet ID from URL: %s\n", spreadsheetURL)
		return
	}

	writer, err := sheets.NewWriter(spreadsheetID, credentialsPath)
	if err != nil {
		log.Printf("Warning: Could not create Google Sheets writer: %v\n", err)
		return
	}

	if err := writer.WriteStats(stats, true); err != nil {
		log.Printf("Warning: Failed to export to Google Sheets: %v\n", err)
	}
}
