package storage

// TimeFormat is the textual form used for the last_view column.
const TimeFormat = "2006-01-02 15:04:05"

type Movie struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	ImdbRating     float64  `json:"imdb_rating"`
	PersonalRating int      `json:"personal_rating"`
	FilePath       string   `json:"file_path"`
	LastView       *string  `json:"last_view,omitempty"`
	Categories     []string `json:"categories,omitempty"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
