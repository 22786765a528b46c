package catalog

import (
	"strings"

	"reel-keeper/storage"
)

// LinkRequest asks the store to associate a movie with one category. The
// movie id is supplied by the caller once the movie has been persisted.
type LinkRequest struct {
	CategoryID int64
}

// ResolveGenres matches incoming genre names against the known categories and
// emits at most one link request per genre. Matching is a case-insensitive
// linear scan where the first match in catalog enumeration order wins, so
// duplicate names differing only by case resolve deterministically. Genres
// with no matching category are dropped; an unknown genre must never block an
// import.
func ResolveGenres(genreNames []string, categories []storage.Category) []LinkRequest {
	var links []LinkRequest
	for _, genre := range genreNames {
		for _, category := range categories {
			if strings.EqualFold(category.Name, genre) {
				links = append(links, LinkRequest{CategoryID: category.ID})
				break
			}
		}
	}
	return links
}
