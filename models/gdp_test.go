package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perCapitaRecord(country string, rank int, value float64) GDPPerCapita {
	return GDPPerCapita{
		Country:      country,
		Rank:         rank,
		GDPPerCapita: value,
		Year:         2023,
		Source:       SourceIMF,
	}
}

func growthRateRecord(country string, rank int, value float64) GDPGrowthRate {
	return GDPGrowthRate{
		Country:           country,
		Rank:              rank,
		GrowthRatePercent: value,
		Year:              2023,
		Source:            SourceIMF,
	}
}

func TestCombine(t *testing.T) {
	perCapita := []GDPPerCapita{
		perCapitaRecord("A", 1, 100000),
		perCapitaRecord("B", 2, 90000),
	}
	growthRates := []GDPGrowthRate{
		growthRateRecord("A", 5, 2.5),
		growthRateRecord("C", 1, 62.3),
	}

	combined := Combine(perCapita, growthRates)
	require.Len(t, combined, 3)

	a := combined["A"]
	require.NotNil(t, a)
	require.NotNil(t, a.GDPPerCapita)
	assert.Equal(t, 100000.0, *a.GDPPerCapita)
	require.NotNil(t, a.GDPPerCapitaRank)
	assert.Equal(t, 1, *a.GDPPerCapitaRank)
	require.NotNil(t, a.GDPGrowthRate)
	assert.Equal(t, 2.5, *a.GDPGrowthRate)
	require.NotNil(t, a.GDPGrowthRateRank)
	assert.Equal(t, 5, *a.GDPGrowthRateRank)

	b := combined["B"]
	require.NotNil(t, b)
	assert.NotNil(t, b.GDPPerCapita)
	assert.Nil(t, b.GDPGrowthRate)
	assert.Nil(t, b.GDPGrowthRateRank)

	c := combined["C"]
	require.NotNil(t, c)
	assert.Nil(t, c.GDPPerCapita)
	assert.Nil(t, c.GDPPerCapitaRank)
	require.NotNil(t, c.GDPGrowthRate)
	assert.Equal(t, 62.3, *c.GDPGrowthRate)
}

func TestCombineIdempotent(t *testing.T) {
	perCapita := []GDPPerCapita{
		perCapitaRecord("Luxembourg", 1, 128572),
		perCapitaRecord("Ireland", 2, 94392),
	}
	growthRates := []GDPGrowthRate{
		growthRateRecord("Guyana", 1, 62.3),
		growthRateRecord("Ireland", 40, 1.2),
	}

	first := Combine(perCapita, growthRates)
	second := Combine(perCapita, growthRates)

	assert.Equal(t, first, second)
}

func TestCombineLastWriteWins(t *testing.T) {
	perCapita := []GDPPerCapita{
		perCapitaRecord("A", 1, 100000),
		perCapitaRecord("A", 7, 50000),
	}

	combined := Combine(perCapita, nil)
	require.Len(t, combined, 1)
	require.NotNil(t, combined["A"].GDPPerCapita)
	assert.Equal(t, 50000.0, *combined["A"].GDPPerCapita)
	assert.Equal(t, 7, *combined["A"].GDPPerCapitaRank)
}

func TestCombineExactStringKeys(t *testing.T) {
	// Keys are exact cleaned strings: a leftover footnote marker makes a
	// distinct country, not a duplicate.
	perCapita := []GDPPerCapita{
		perCapitaRecord("Switzerland", 3, 84658),
		perCapitaRecord("Switzerland [a]", 3, 84658),
	}

	combined := Combine(perCapita, nil)
	assert.Len(t, combined, 2)
}

func TestDatasetCombineRecompute(t *testing.T) {
	d := NewDataset(
		[]GDPPerCapita{perCapitaRecord("A", 1, 100000)},
		[]GDPGrowthRate{growthRateRecord("B", 1, 3.0)},
	)
	require.Len(t, d.Combined, 2)

	first := d.Combined
	d.Combine()
	assert.Equal(t, first, d.Combined)
}

func TestCombinedInOrder(t *testing.T) {
	d := NewDataset(
		[]GDPPerCapita{
			perCapitaRecord("Luxembourg", 1, 128572),
			perCapitaRecord("Ireland", 2, 94392),
		},
		[]GDPGrowthRate{
			growthRateRecord("Guyana", 1, 62.3),
			growthRateRecord("Ireland", 40, 1.2),
		},
	)

	ordered := d.CombinedInOrder()
	require.Len(t, ordered, 3)

	var names []string
	for _, s := range ordered {
		names = append(names, s.Country)
	}
	// First-encounter order: per-capita records before growth rate records,
	// countries seen in both lists appear once.
	assert.Equal(t, []string{"Luxembourg", "Ireland", "Guyana"}, names)
}

func TestDatasetJSONShape(t *testing.T) {
	d := NewDataset(
		[]GDPPerCapita{perCapitaRecord("Luxembourg", 1, 128572)},
		[]GDPGrowthRate{growthRateRecord("Guyana", 1, 62.3)},
	)

	out, err := json.Marshal(d)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Contains(t, decoded, "per_capita")
	assert.Contains(t, decoded, "growth_rates")
	assert.Contains(t, decoded, "extraction_date")
	assert.Contains(t, decoded, "combined_data")

	// Dates serialize as plain ISO dates.
	date, ok := decoded["extraction_date"].(string)
	require.True(t, ok)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, date)

	combined, ok := decoded["combined_data"].(map[string]interface{})
	require.True(t, ok)
	guyana, ok := combined["Guyana"].(map[string]interface{})
	require.True(t, ok)
	// Absent metrics are omitted, not zeroed.
	assert.NotContains(t, guyana, "gdp_per_capita")
	assert.Contains(t, guyana, "gdp_growth_rate")
}

func TestDatasetEmptySourcesSerializeAsLists(t *testing.T) {
	out, err := json.Marshal(NewDataset(nil, nil))
	require.NoError(t, err)

	// An empty source is still a list in the output, never null.
	assert.Contains(t, string(out), `"per_capita":[]`)
	assert.Contains(t, string(out), `"growth_rates":[]`)
	assert.NotContains(t, string(out), "null")
}

func TestCombinedStampsExtractionDate(t *testing.T) {
	d := NewDataset(
		[]GDPPerCapita{perCapitaRecord("A", 1, 100000)},
		[]GDPGrowthRate{growthRateRecord("B", 1, 2.0)},
	)

	// Every entry carries the snapshot's extraction date, not its own
	// wall-clock reading.
	for _, s := range d.Combined {
		assert.True(t, s.LastUpdated.Equal(d.ExtractionDate.Time),
			"country %s last_updated %v != extraction_date %v", s.Country, s.LastUpdated, d.ExtractionDate)
	}
}

func TestDateRoundTrip(t *testing.T) {
	d := Today()
	out, err := json.Marshal(d)
	require.NoError(t, err)

	var back Date
	require.NoError(t, json.Unmarshal(out, &back))
	assert.True(t, back.Equal(d.Time))
}
