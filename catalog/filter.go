// Package catalog holds the pure in-memory logic of the library: filtering,
// stale-entry detection and genre-to-category linking. Nothing here does I/O
// or mutates its inputs, so every function is safe to call from any goroutine.
package catalog

import (
	"strings"

	"reel-keeper/storage"
)

// FilterCriteria describes an active set of catalog filters. The zero value
// matches every movie.
type FilterCriteria struct {
	SearchText         string
	MinRating          float64
	SelectedCategories []string
}

// Filter returns the movies matching all active criteria, preserving the
// input order. SearchText is a case-insensitive title substring, MinRating is
// a lower bound on the IMDb rating, and a non-empty SelectedCategories keeps
// a movie when it belongs to at least one of the selected categories.
func Filter(movies []storage.Movie, criteria FilterCriteria) []storage.Movie {
	searchText := strings.ToLower(criteria.SearchText)

	filtered := make([]storage.Movie, 0, len(movies))
	for _, movie := range movies {
		matchesSearch := searchText == "" || strings.Contains(strings.ToLower(movie.Title), searchText)
		matchesRating := movie.ImdbRating >= criteria.MinRating

		matchesCategory := len(criteria.SelectedCategories) == 0
		if !matchesCategory {
			for _, selected := range criteria.SelectedCategories {
				if containsName(movie.Categories, selected) {
					matchesCategory = true
					break
				}
			}
		}

		if matchesSearch && matchesRating && matchesCategory {
			filtered = append(filtered, movie)
		}
	}

	return filtered
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
