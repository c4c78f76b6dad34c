package models

import (
	"fmt"
	"time"
)

// SourceIMF is the data source label attached to every extracted record.
const SourceIMF = "IMF"

// Date serializes as an ISO date (YYYY-MM-DD) instead of a full timestamp.
type Date struct {
	time.Time
}

// Today returns the current date, truncated to midnight UTC so that two
// values produced on the same day compare equal.
func Today() Date {
	year, month, day := time.Now().UTC().Date()
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.Format("2006-01-02"))), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date value: %s", s)
	}
	t, err := time.Parse("2006-01-02", s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("failed to parse date: %w", err)
	}
	d.Time = t
	return nil
}

// GDPPerCapita represents one row extracted from the GDP per capita table.
// A record is never mutated after construction.
type GDPPerCapita struct {
	Country      string  `json:"country"`
	Rank         int     `json:"rank"` // 0 means unknown
	GDPPerCapita float64 `json:"gdp_per_capita"`
	Year         int     `json:"year"`
	Source       string  `json:"source"`
	Note         string  `json:"note,omitempty"`
}

// GDPGrowthRate represents one row extracted from the real GDP growth rate
// table. The value is a percentage and may be zero or negative.
type GDPGrowthRate struct {
	Country           string  `json:"country"`
	Rank              int     `json:"rank"`
	GrowthRatePercent float64 `json:"growth_rate_percent"`
	Year              int     `json:"year"`
	Source            string  `json:"source"`
	Note              string  `json:"note,omitempty"`
}

// CountryStats holds the combined metrics for a single country. Fields are
// pointers so that a country present in only one source keeps the other
// metric absent rather than zero.
type CountryStats struct {
	Country           string   `json:"country"`
	GDPPerCapita      *float64 `json:"gdp_per_capita,omitempty"`
	GDPPerCapitaRank  *int     `json:"gdp_per_capita_rank,omitempty"`
	GDPGrowthRate     *float64 `json:"gdp_growth_rate,omitempty"`
	GDPGrowthRateRank *int     `json:"gdp_growth_rate_rank,omitempty"`
	LastUpdated       Date     `json:"last_updated"`
}

// Dataset is the full extraction snapshot for one crawl.
type Dataset struct {
	PerCapita      []GDPPerCapita           `json:"per_capita"`
	GrowthRates    []GDPGrowthRate          `json:"growth_rates"`
	ExtractionDate Date                     `json:"extraction_date"`
	Combined       map[string]*CountryStats `json:"combined_data"`
}

// NewDataset creates a dataset from the two record slices and computes the
// combined per-country view. Nil slices are normalized to empty ones so an
// empty source still serializes as a JSON list, not null.
func NewDataset(perCapita []GDPPerCapita, growthRates []GDPGrowthRate) *Dataset {
	if perCapita == nil {
		perCapita = []GDPPerCapita{}
	}
	if growthRates == nil {
		growthRates = []GDPGrowthRate{}
	}
	d := &Dataset{
		PerCapita:      perCapita,
		GrowthRates:    growthRates,
		ExtractionDate: Today(),
	}
	d.Combine()
	return d
}

// Combine recomputes the combined_data mapping from the two record slices.
// Calling it again on the same slices produces an identical mapping: every
// entry is stamped with the dataset's extraction date, not the wall clock.
func (d *Dataset) Combine() {
	if d.ExtractionDate.IsZero() {
		d.ExtractionDate = Today()
	}
	d.Combined = combineAt(d.ExtractionDate, d.PerCapita, d.GrowthRates)
}

// CombinedInOrder returns the combined stats in first-encounter order of
// the underlying records, per-capita entries before growth rate entries.
// The JSON mapping itself is unordered; summaries and exports use this.
func (d *Dataset) CombinedInOrder() []*CountryStats {
	seen := make(map[string]bool)
	var ordered []*CountryStats

	add := func(name string) {
		if seen[name] {
			return
		}
		if stats, ok := d.Combined[name]; ok {
			seen[name] = true
			ordered = append(ordered, stats)
		}
	}

	for _, entry := range d.PerCapita {
		add(entry.Country)
	}
	for _, entry := range d.GrowthRates {
		add(entry.Country)
	}

	return ordered
}

// Combine merges per-capita and growth rate records into per-country stats.
// Keys are the exact cleaned country names; duplicate records for the same
// country overwrite earlier values (last write wins).
func Combine(perCapita []GDPPerCapita, growthRates []GDPGrowthRate) map[string]*CountryStats {
	return combineAt(Today(), perCapita, growthRates)
}

// combineAt stamps every created entry with the same date so a crawl
// crossing midnight cannot produce mixed dates in one snapshot.
func combineAt(updated Date, perCapita []GDPPerCapita, growthRates []GDPGrowthRate) map[string]*CountryStats {
	countries := make(map[string]*CountryStats)

	lookup := func(name string) *CountryStats {
		if stats, ok := countries[name]; ok {
			return stats
		}
		stats := &CountryStats{
			Country:     name,
			LastUpdated: updated,
		}
		countries[name] = stats
		return stats
	}

	for _, entry := range perCapita {
		stats := lookup(entry.Country)
		value := entry.GDPPerCapita
		rank := entry.Rank
		stats.GDPPerCapita = &value
		stats.GDPPerCapitaRank = &rank
	}

	for _, entry := range growthRates {
		stats := lookup(entry.Country)
		value := entry.GrowthRatePercent
		rank := entry.Rank
		stats.GDPGrowthRate = &value
		stats.GDPGrowthRateRank = &rank
	}

	return countries
}
