// Package importer wires the scrape-to-catalog pipeline: fetch a movie page,
// extract its metadata, persist the movie and link its genres to the known
// categories.
package importer

import (
	"context"
	"fmt"
	"log"

	"reel-keeper/catalog"
	"reel-keeper/metadata"
	"reel-keeper/scraper"
	"reel-keeper/storage"
)

type Importer struct {
	fetcher scraper.FetcherInterface
	store   *storage.MovieStore
}

func New(fetcher scraper.FetcherInterface, store *storage.MovieStore) *Importer {
	return &Importer{
		fetcher: fetcher,
		store:   store,
	}
}

// ImportFromURL catalogs the local video file at filePath using the metadata
// scraped from pageURL. Extraction is best effort, so an import succeeds even
// when the page yields no usable metadata; only fetch and movie-insert
// failures abort it. Genre link failures are logged and skipped.
func (i *Importer) ImportFromURL(ctx context.Context, pageURL, filePath string) (storage.Movie, error) {
	html, err := i.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return storage.Movie{}, fmt.Errorf("failed to get info from %s: %v", pageURL, err)
	}

	meta := metadata.Extract(html)

	movie := storage.Movie{
		Title:      meta.Title,
		ImdbRating: meta.Rating,
		FilePath:   filePath,
	}
	if err := i.store.InsertMovie(&movie); err != nil {
		return storage.Movie{}, fmt.Errorf("failed to save movie: %v", err)
	}

	if len(meta.Genres) > 0 {
		categories, err := i.store.ListCategories()
		if err != nil {
			log.Printf("Failed to load categories, skipping genre links: %v", err)
			return movie, nil
		}

		for _, link := range catalog.ResolveGenres(meta.Genres, categories) {
			if err := i.store.LinkMovieCategory(movie.ID, link.CategoryID); err != nil {
				log.Printf("Failed to link movie %q to category %d: %v", movie.Title, link.CategoryID, err)
			}
		}
	}

	names, err := i.store.CategoriesForMovie(movie.ID)
	if err != nil {
		log.Printf("Failed to load categories for %q: %v", movie.Title, err)
	} else {
		movie.Categories = names
	}

	log.Printf("Imported %q with rating %.1f and %d categories", movie.Title, movie.ImdbRating, len(movie.Categories))
	return movie, nil
}
