package scraper

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gocolly/colly"
	"github.com/sethvargo/go-retry"
)

// A browser-like user agent; movie-database pages serve a reduced document to
// unknown clients.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

type FetcherInterface interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type PageFetcher struct {
	userAgent string
}

func NewPageFetcher(userAgent string) FetcherInterface {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &PageFetcher{userAgent: userAgent}
}

// Fetch downloads the raw HTML document at url. The JSON-LD block lives in a
// script tag, so the response body is returned untouched rather than reduced
// to element text. Transient failures are retried with fibonacci backoff;
// whatever survives the retries surfaces as a single opaque fetch error.
func (f *PageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		// Each retry must hit the network again instead of colly's
		// visited-URL cache.
		colly.AllowURLRevisit(),
	)

	var body string

	c.OnRequest(func(r *colly.Request) {
		log.Println("Visiting:", r.URL)
	})

	c.OnResponse(func(r *colly.Response) {
		log.Println("Response received:", r.StatusCode)
		body = string(r.Body)
	})

	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := c.Visit(url); err != nil {
			log.Printf("Fetch attempt failed for %s: %v", url, err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("fetch failed for %s: %v", url, err)
	}

	return body, nil
}
