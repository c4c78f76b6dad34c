package sheets

import "testing"

func TestExtractSpreadsheetID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			"edit url",
			"https://docs.google.com/spreadsheets/d/1FoGJ6ZzDIfFv3ZZ6/edit",
			"1FoGJ6ZzDIfFv3ZZ6",
		},
		{
			"sharing url",
			"https://docs.google.com/spreadsheets/d/1FoGJ6ZzDIfFv3ZZ6/edit?usp=sharing",
			"1FoGJ6ZzDIfFv3ZZ6",
		},
		{
			"bare id url",
			"https://docs.google.com/spreadsheets/d/1FoGJ6ZzDIfFv3ZZ6",
			"1FoGJ6ZzDIfFv3ZZ6",
		},
		{
			"query without path",
			"https://docs.google.com/spreadsheets/d/1FoGJ6ZzDIfFv3ZZ6?usp=sharing",
			"1FoGJ6ZzDIfFv3ZZ6",
		},
		{"not a sheets url", "https://example.com/whatever", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSpreadsheetID(tt.url)
			if got != tt.expected {
				t.Errorf("ExtractSpreadsheetID(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}
