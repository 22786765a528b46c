package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reel-keeper/storage"
)

func TestResolveGenresDropsUnknown(t *testing.T) {
	categories := []storage.Category{
		{ID: 1, Name: "Action"},
		{ID: 2, Name: "Comedy"},
	}

	links := ResolveGenres([]string{"Comedy", "Unknownish"}, categories)

	assert.Equal(t, []LinkRequest{{CategoryID: 2}}, links)
}

func TestResolveGenresCaseInsensitive(t *testing.T) {
	categories := []storage.Category{
		{ID: 3, Name: "Comedy"},
	}

	links := ResolveGenres([]string{"comedy"}, categories)

	assert.Equal(t, []LinkRequest{{CategoryID: 3}}, links)
}

func TestResolveGenresFirstMatchWins(t *testing.T) {
	// Duplicate names under case folding resolve by enumeration order.
	categories := []storage.Category{
		{ID: 10, Name: "SCI-FI"},
		{ID: 11, Name: "Sci-Fi"},
	}

	links := ResolveGenres([]string{"sci-fi"}, categories)

	assert.Equal(t, []LinkRequest{{CategoryID: 10}}, links)
}

func TestResolveGenresOneLinkPerGenre(t *testing.T) {
	categories := []storage.Category{
		{ID: 1, Name: "Action"},
		{ID: 2, Name: "Drama"},
	}

	links := ResolveGenres([]string{"Action", "Drama", "Action"}, categories)

	assert.Equal(t, []LinkRequest{{CategoryID: 1}, {CategoryID: 2}, {CategoryID: 1}}, links)
}

func TestResolveGenresEmptyInputs(t *testing.T) {
	assert.Empty(t, ResolveGenres(nil, []storage.Category{{ID: 1, Name: "Action"}}))
	assert.Empty(t, ResolveGenres([]string{"Action"}, nil))
}
