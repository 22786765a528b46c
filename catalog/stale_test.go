package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reel-keeper/storage"
)

var staleNow = time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)

func viewedAt(t time.Time) *string {
	s := t.Format(storage.TimeFormat)
	return &s
}

func TestStaleNeverViewedLowRating(t *testing.T) {
	movies := []storage.Movie{
		{Title: "Never Watched", PersonalRating: 5},
	}

	candidates := FindStaleCandidates(movies, staleNow)

	assert.Len(t, candidates, 1)
	assert.Equal(t, "Never Watched", candidates[0].Title)
}

func TestStaleEmptyLastViewTreatedAsNever(t *testing.T) {
	empty := ""
	movies := []storage.Movie{
		{Title: "Blank History", PersonalRating: 3, LastView: &empty},
	}

	candidates := FindStaleCandidates(movies, staleNow)

	assert.Len(t, candidates, 1)
}

func TestStaleHighRatingNeverStale(t *testing.T) {
	movies := []storage.Movie{
		{Title: "Old Favorite", PersonalRating: 7, LastView: viewedAt(staleNow.AddDate(-5, 0, 0))},
		{Title: "Unwatched Favorite", PersonalRating: 9},
	}

	candidates := FindStaleCandidates(movies, staleNow)

	assert.Empty(t, candidates)
}

func TestStaleRatingBoundary(t *testing.T) {
	movies := []storage.Movie{
		{Title: "Rated Six", PersonalRating: 6},
		{Title: "Rated Five", PersonalRating: 5},
	}

	candidates := FindStaleCandidates(movies, staleNow)

	assert.Equal(t, []string{"Rated Five"}, titlesOf(candidates))
}

func TestStaleTwoYearCutoff(t *testing.T) {
	movies := []storage.Movie{
		{Title: "Viewed Long Ago", PersonalRating: 4, LastView: viewedAt(staleNow.AddDate(-3, 0, 0))},
		{Title: "Viewed Recently", PersonalRating: 4, LastView: viewedAt(staleNow.AddDate(-1, 0, 0))},
	}

	candidates := FindStaleCandidates(movies, staleNow)

	assert.Equal(t, []string{"Viewed Long Ago"}, titlesOf(candidates))
}

// Malformed viewing history never triggers a deletion suggestion, even though
// a missing one does. That asymmetry is the established policy.
func TestStaleUnparsableLastViewIsNotStale(t *testing.T) {
	notADate := "not-a-date"
	movies := []storage.Movie{
		{Title: "Corrupt History", PersonalRating: 3, LastView: &notADate},
	}

	candidates := FindStaleCandidates(movies, staleNow)

	assert.Empty(t, candidates)
}

func TestStalePreservesInputOrder(t *testing.T) {
	movies := []storage.Movie{
		{Title: "B", PersonalRating: 2},
		{Title: "A", PersonalRating: 1},
		{Title: "Keeper", PersonalRating: 8},
		{Title: "C", PersonalRating: 5},
	}

	candidates := FindStaleCandidates(movies, staleNow)

	assert.Equal(t, []string{"B", "A", "C"}, titlesOf(candidates))
}

func TestStaleWarningMessage(t *testing.T) {
	candidates := []storage.Movie{
		{Title: "The Room"},
		{Title: "Battlefield Earth"},
	}

	warning := StaleWarning(candidates)

	expected := "The following movies have a rating below 6 and haven't been opened for 2 years:\n" +
		"- The Room\n" +
		"- Battlefield Earth\n" +
		"\nPlease consider deleting them."
	assert.Equal(t, expected, warning)
}
