package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"gdp-crawler/models"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Writer handles writing combined country stats to Google Sheets.
type Writer struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewWriter creates a new Google Sheets writer. Credentials come from the
// given file path or, when empty, the GOOGLE_SHEETS_CREDENTIALS environment
// variable.
func NewWriter(spreadsheetID string, credentialsPath string) (*Writer, error) {
	ctx := context.Background()

	var credsJSON []byte
	var err error

	if credentialsPath != "" {
		credsJSON, err = os.ReadFile(credentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
	} else {
		credsEnv := strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_CREDENTIALS"))
		if credsEnv == "" {
			return nil, fmt.Errorf("credentials not found: GOOGLE_SHEETS_CREDENTIALS environment variable is empty or not set")
		}
		credsJSON = []byte(credsEnv)
	}

	var creds map[string]interface{}
	if err := json.Unmarshal(credsJSON, &creds); err != nil {
		return nil, fmt.Errorf("invalid credentials JSON: %w", err)
	}
	if creds["type"] != "service_account" {
		return nil, fmt.Errorf("credentials must be a service account JSON file (type: service_account), got type: %v", creds["type"])
	}

	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(credsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

// WriteStats writes combined country stats to the first sheet. If clearFirst
// is true, existing data is cleared before writing.
func (w *Writer) WriteStats(stats []*models.CountryStats, clearFirst bool) error {
	if len(stats) == 0 {
		log.Println("No country stats to write")
		return nil
	}

	var values [][]interface{}

	header := []interface{}{"Country", "GDP per Capita", "Per Capita Rank", "Growth Rate (%)", "Growth Rate Rank", "Last Updated"}
	values = append(values, header)

	for _, s := range stats {
		row := []interface{}{
			s.Country,
			optionalFloat(s.GDPPerCapita),
			optionalInt(s.GDPPerCapitaRank),
			optionalFloat(s.GDPGrowthRate),
			optionalInt(s.GDPGrowthRateRank),
			s.LastUpdated.Format("2006-01-02"),
		}
		values = append(values, row)
	}

	range_ := "Sheet1!A1"

	if clearFirst {
		clearReq := &sheets.ClearValuesRequest{}
		_, err := w.service.Spreadsheets.Values.Clear(w.spreadsheetID, range_, clearReq).Do()
		if err != nil {
			log.Printf("Warning: Failed to clear existing data: %v\n", err)
			// Continue anyway
		}
	}

	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err := w.service.Spreadsheets.Values.Update(w.spreadsheetID, range_, valueRange).
		ValueInputOption("RAW").
		Do()

	if err != nil {
		return fmt.Errorf("failed to write to sheets: %w", err)
	}

	log.Printf("Successfully wrote %d countries to Google Sheets\n", len(stats))
	return nil
}

// optionalFloat renders an absent metric as an empty cell rather than 0.
func optionalFloat(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func optionalInt(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

// ExtractSpreadsheetID extracts the spreadsheet ID from a Google Sheets URL.
func ExtractSpreadsheetID(url string) string {
	// https://docs.google.com/spreadsheets/d/SPREADSHEET_ID/edit?usp=sharing
	parts := strings.Split(url, "/d/")
	if len(parts) < 2 {
		return ""
	}

	idPart := parts[1]
	if idx := strings.Index(idPart, "/"); idx != -1 {
		idPart = idPart[:idx]
	}
	if idx := strings.Index(idPart, "?"); idx != -1 {
		idPart = idPart[:idx]
	}

	return strings.TrimSpace(idPart)
}
