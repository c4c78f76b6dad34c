package parser

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"gdp-crawler/models"

	"github.com/PuerkitoBio/goquery"
)

// Role selects which column-default heuristics apply to a page.
type Role int

const (
	// RolePerCapita parses the GDP (nominal) per capita page.
	RolePerCapita Role = iota
	// RoleGrowthRate parses the real GDP growth rate page.
	RoleGrowthRate
)

// Heuristics holds the table-selection knobs. The per-role country column
// defaults are asymmetric on purpose: the per-capita page usually lists the
// country first, while the growth rate page puts a rank column first.
type Heuristics struct {
	HeaderKeyword           string
	PerCapitaCountryColumn  int
	GrowthRateCountryColumn int
}

// DefaultHeuristics returns the heuristics matching the live Wikipedia pages.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		HeaderKeyword:           "country",
		PerCapitaCountryColumn:  0,
		GrowthRateCountryColumn: 1,
	}
}

var (
	footnoteRegex = regexp.MustCompile(`\[\w+\]`)
	tagRegex      = regexp.MustCompile(`<[^>]+>`)
	spaceRegex    = regexp.MustCompile(`\s+`)
	numericRegex  = regexp.MustCompile(`[^\d.\-+]`)
	yearRegex     = regexp.MustCompile(`\d{4}`)
	rankRegex     = regexp.MustCompile(`^\d+$`)
)

// CleanCountryName removes footnote markers like [a] or [1], any embedded
// markup tags, and extra whitespace from a country name.
func CleanCountryName(name string) string {
	name = footnoteRegex.ReplaceAllString(name, "")
	name = tagRegex.ReplaceAllString(name, "")
	return strings.TrimSpace(spaceRegex.ReplaceAllString(name, " "))
}

// ParseNumeric parses a noisy numeric string ("128,572", "5.4%") into a
// float. On failure it logs a warning and returns 0.0 as a sentinel; callers
// decide whether a zero is acceptable for their column.
func ParseNumeric(value string) float64 {
	cleaned := numericRegex.ReplaceAllString(value, "")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		log.Printf("Warning: failed to parse number from %q (cleaned to %q)\n", value, cleaned)
		return 0.0
	}
	return f
}

// Parser extracts GDP records from Wikipedia HTML pages.
type Parser struct {
	defaultYear int
	heuristics  Heuristics
}

// NewParser creates a Parser. defaultYear is used when no 4-digit year can
// be discovered in the page title or headings.
func NewParser(defaultYear int, heuristics Heuristics) *Parser {
	if heuristics.HeaderKeyword == "" {
		heuristics.HeaderKeyword = DefaultHeuristics().HeaderKeyword
	}
	return &Parser{
		defaultYear: defaultYear,
		heuristics:  heuristics,
	}
}

// columnLayout is the per-table column role assignment, resolved once from
// the header row and reused for every data row.
type columnLayout struct {
	country int
	value   int
}

// tableRow is one accepted data row before it becomes a typed record.
type tableRow struct {
	country string
	rank    int
	value   float64
}

// ParsePerCapita extracts GDP per capita records from a Wikipedia page.
// Rows with an empty country name or a non-positive value are dropped.
func (p *Parser) ParsePerCapita(htmlContent string) ([]models.GDPPerCapita, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	year := p.extractYear(doc)

	var records []models.GDPPerCapita
	for _, row := range p.extractRows(doc, RolePerCapita) {
		records = append(records, models.GDPPerCapita{
			Country:      row.country,
			Rank:         row.rank,
			GDPPerCapita: row.value,
			Year:         year,
			Source:       models.SourceIMF,
		})
	}

	return records, nil
}

// ParseGrowthRate extracts real GDP growth rate records from a Wikipedia
// page. A zero or negative value is kept: negative growth is valid data.
func (p *Parser) ParseGrowthRate(htmlContent string) ([]models.GDPGrowthRate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	year := p.extractYear(doc)

	var records []models.GDPGrowthRate
	for _, row := range p.extractRows(doc, RoleGrowthRate) {
		records = append(records, models.GDPGrowthRate{
			Country:           row.country,
			Rank:              row.rank,
			GrowthRatePercent: row.value,
			Year:              year,
			Source:            models.SourceIMF,
		})
	}

	return records, nil
}

// extractYear discovers the data year: first a 4-digit number in the page
// title, then the first one in an h1-h3 heading in document order, else the
// configured default.
func (p *Parser) extractYear(doc *goquery.Document) int {
	if match := yearRegex.FindString(doc.Find("title").First().Text()); match != "" {
		if year, err := strconv.Atoi(match); err == nil {
			return year
		}
	}

	year := p.defaultYear
	doc.Find("h1, h2, h3").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		if match := yearRegex.FindString(heading.Text()); match != "" {
			if parsed, err := strconv.Atoi(match); err == nil {
				year = parsed
				return false
			}
		}
		return true
	})

	return year
}

// extractRows scans tables in document order and returns the rows of the
// first table whose header mentions the country keyword and that yields at
// least one accepted row. Tables are never merged.
func (p *Parser) extractRows(doc *goquery.Document, role Role) []tableRow {
	var results []tableRow

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		if rows.Length() == 0 {
			return true
		}

		headers := cellTexts(rows.First())
		layout, ok := p.resolveColumns(headers, role)
		if !ok {
			return true
		}

		rows.Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return
			}
			if extracted, ok := p.extractRow(row, layout, role); ok {
				results = append(results, extracted)
			}
		})

		// The first table producing data wins; keep scanning otherwise.
		return len(results) == 0
	})

	return results
}

// resolveColumns decides whether a table qualifies and assigns column roles
// from its header texts. Tables without the country keyword anywhere in the
// header are rejected.
func (p *Parser) resolveColumns(headers []string, role Role) (columnLayout, bool) {
	keyword := strings.ToLower(p.heuristics.HeaderKeyword)

	countryIndex := -1
	for i, header := range headers {
		if strings.Contains(strings.ToLower(header), keyword) {
			countryIndex = i
			break
		}
	}
	if countryIndex == -1 {
		return columnLayout{}, false
	}

	layout := columnLayout{country: countryIndex}
	switch role {
	case RolePerCapita:
		if layout.country == 0 {
			layout.value = 1
		} else {
			layout.value = 2
		}
	case RoleGrowthRate:
		layout.value = layout.country + 1
	}

	return layout, true
}

// extractRow pulls one (country, rank, value) tuple out of a data row.
// Malformed rows report false and are skipped; a single bad row never
// aborts the rest of the table.
func (p *Parser) extractRow(row *goquery.Selection, layout columnLayout, role Role) (tableRow, bool) {
	cells := row.Find("th, td")
	if cells.Length() < 2 {
		return tableRow{}, false
	}

	rank := 0
	if layout.country > 0 {
		first := strings.TrimSpace(cells.Eq(0).Text())
		if rankRegex.MatchString(first) {
			if v, err := strconv.Atoi(first); err == nil {
				rank = v
			}
		}
	}

	if layout.value >= cells.Length() {
		return tableRow{}, false
	}

	countryIndex := layout.country
	if countryIndex >= cells.Length() {
		countryIndex = p.fallbackCountryColumn(role)
	}

	country := CleanCountryName(cells.Eq(countryIndex).Text())
	value := ParseNumeric(strings.TrimSpace(cells.Eq(layout.value).Text()))

	if country == "" {
		return tableRow{}, false
	}
	// Zero is the unparseable sentinel, so a per-capita value must be
	// strictly positive to be accepted.
	if role == RolePerCapita && value <= 0 {
		return tableRow{}, false
	}

	return tableRow{country: country, rank: rank, value: value}, true
}

func (p *Parser) fallbackCountryColumn(role Role) int {
	if role == RoleGrowthRate {
		return p.heuristics.GrowthRateCountryColumn
	}
	return p.heuristics.PerCapitaCountryColumn
}

// cellTexts collects the trimmed text of every cell in a row.
func cellTexts(row *goquery.Selection) []string {
	var texts []string
	row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(cell.Text()))
	})
	return texts
}
