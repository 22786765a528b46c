// Package metadata extracts movie facts from the JSON-LD block embedded in a
// movie-database page. Extraction is best effort: the upstream page format is
// not contractually stable, so any field that cannot be found is left at its
// default instead of failing the whole extraction.
package metadata

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultTitle is the sentinel used when no title can be found.
const DefaultTitle = "Unknown"

// Metadata holds the facts extracted from a single page.
type Metadata struct {
	Title  string   `json:"title"`
	Rating float64  `json:"rating"`
	Genres []string `json:"genres,omitempty"`
}

var (
	jsonLDPattern      = regexp.MustCompile(`(?s)<script type="application/ld\+json">(.*?)</script>`)
	titlePattern       = regexp.MustCompile(`"name"\s*:\s*"([^"]+)"`)
	aggregatePattern   = regexp.MustCompile(`(?s)"aggregateRating"\s*:\s*\{([^}]+)\}`)
	ratingValuePattern = regexp.MustCompile(`"ratingValue"\s*:\s*"?([\d.]+)"?`)
	genreListPattern   = regexp.MustCompile(`(?s)"genre"\s*:\s*\[(.*?)\]`)
	quotedPattern      = regexp.MustCompile(`"([^"]+)"`)
)

// Extract pulls title, rating and genres out of the first JSON-LD block in
// the document. The three fields are extracted independently; a missing or
// malformed field never blocks the others. Without a JSON-LD block the
// defaults are returned as-is.
func Extract(html string) Metadata {
	meta := Metadata{Title: DefaultTitle}

	blockMatch := jsonLDPattern.FindStringSubmatch(html)
	if blockMatch == nil {
		return meta
	}
	block := blockMatch[1]

	if titleMatch := titlePattern.FindStringSubmatch(block); titleMatch != nil {
		meta.Title = strings.TrimSpace(titleMatch[1])
	}

	if aggregateMatch := aggregatePattern.FindStringSubmatch(block); aggregateMatch != nil {
		if ratingMatch := ratingValuePattern.FindStringSubmatch(aggregateMatch[1]); ratingMatch != nil {
			if rating, err := strconv.ParseFloat(ratingMatch[1], 64); err == nil {
				meta.Rating = rating
			}
		}
	}

	if genreMatch := genreListPattern.FindStringSubmatch(block); genreMatch != nil {
		for _, quoted := range quotedPattern.FindAllStringSubmatch(genreMatch[1], -1) {
			meta.Genres = append(meta.Genres, quoted[1])
		}
	}

	return meta
}
