package catalog

import (
	"strings"
	"time"

	"reel-keeper/storage"
)

// FindStaleCandidates returns the movies suggested for deletion: personal
// rating below 6 and either never viewed or last viewed more than two years
// before now. The check is advisory only; nothing is deleted here.
//
// A movie whose last_view value fails to parse is NOT a candidate, while a
// missing last_view makes it one immediately. The asymmetry is a quirk of the
// established policy, kept until the product owner confirms otherwise.
func FindStaleCandidates(movies []storage.Movie, now time.Time) []storage.Movie {
	cutoff := now.AddDate(-2, 0, 0)

	var candidates []storage.Movie
	for _, movie := range movies {
		if movie.PersonalRating >= 6 {
			continue
		}
		if movie.LastView == nil || *movie.LastView == "" {
			candidates = append(candidates, movie)
			continue
		}
		lastView, err := time.Parse(storage.TimeFormat, *movie.LastView)
		if err != nil {
			continue
		}
		if lastView.Before(cutoff) {
			candidates = append(candidates, movie)
		}
	}

	return candidates
}

// StaleWarning renders the fixed advisory message enumerating the candidate
// titles, for the caller to present.
func StaleWarning(candidates []storage.Movie) string {
	var sb strings.Builder
	sb.WriteString("The following movies have a rating below 6 and haven't been opened for 2 years:\n")
	for _, movie := range candidates {
		sb.WriteString("- ")
		sb.WriteString(movie.Title)
		sb.WriteString("\n")
	}
	sb.WriteString("\nPlease consider deleting them.")
	return sb.String()
}
