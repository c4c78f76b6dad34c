package fetcher

// Fetcher defines the contract for fetching a single HTML page.
type Fetcher interface {
	// Fetch retrieves the page at the given URL and returns its HTML body.
	Fetch(url string) (string, error)
}
