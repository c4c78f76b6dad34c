package filter

import (
	"gdp-crawler/config"
	"gdp-crawler/models"
)

// Filter applies summary filter criteria to combined country stats.
type Filter struct {
	cfg *config.Config
}

// NewFilter creates a new Filter instance.
func NewFilter(cfg *config.Config) *Filter {
	return &Filter{
		cfg: cfg,
	}
}

// Apply returns the stats matching the configured criteria.
func (f *Filter) Apply(stats []*models.CountryStats) []*models.CountryStats {
	var filtered []*models.CountryStats

	for _, s := range stats {
		if f.matches(s) {
			filtered = append(filtered, s)
		}
	}

	return filtered
}

// matches checks a single country against all criteria.
func (f *Filter) matches(s *models.CountryStats) bool {
	if f.cfg.Summary.RequireBothMetrics {
		if s.GDPPerCapita == nil || s.GDPGrowthRate == nil {
			return false
		}
	}

	// Only apply the per-capita floor when the metric is present; a country
	// known only from the growth rate list is not filtered out by it.
	if f.cfg.Summary.MinGDPPerCapita > 0 && s.GDPPerCapita != nil {
		if *s.GDPPerCapita < f.cfg.Summary.MinGDPPerCapita {
			return false
		}
	}

	return true
}
