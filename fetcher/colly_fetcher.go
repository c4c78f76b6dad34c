package fetcher

import (
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

// CollyFetcher implements the Fetcher interface using colly.
type CollyFetcher struct {
	userAgent string
	timeout   time.Duration
}

// NewCollyFetcher creates a new CollyFetcher instance.
func NewCollyFetcher(userAgent string, timeout time.Duration) *CollyFetcher {
	return &CollyFetcher{
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// Fetch implements the Fetcher interface. Each call uses a fresh collector,
// so a single CollyFetcher is safe to share across concurrent fetches.
// Redirects are followed; there are no retries.
func (cf *CollyFetcher) Fetch(url string) (string, error) {
	c := colly.NewCollector(
		colly.UserAgent(cf.userAgent),
	)
	c.SetRequestTimeout(cf.timeout)

	var body string
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})

	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("request to %s failed (status %d): %w", r.Request.URL, r.StatusCode, err)
	})

	if err := c.Visit(url); err != nil {
		return "", fmt.Errorf("failed to visit URL: %w", err)
	}
	c.Wait()

	if fetchErr != nil {
		return "", fetchErr
	}
	if body == "" {
		return "", fmt.Errorf("empty response from %s", url)
	}

	return body, nil
}
