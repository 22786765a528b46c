package storage

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type MovieStore struct {
	db       *sql.DB
	dbPath   string
	dataPath string
}

type StoreInterface interface {
	Initialize() error
	ListMovies() ([]Movie, error)
	ListCategories() ([]Category, error)
	InsertMovie(movie *Movie) error
	UpdateMovie(movie Movie) error
	DeleteMovie(id int64) error
	LinkMovieCategory(movieID, categoryID int64) error
	TouchLastViewed(movieID int64, viewedAt time.Time) error
	Close() error
}

func NewMovieStore(dataPath string) *MovieStore {
	dbPath := filepath.Join(dataPath, "reel_keeper.db")
	return &MovieStore{
		dbPath:   dbPath,
		dataPath: dataPath,
	}
}

func (s *MovieStore) Initialize() error {
	// Create data directory if it doesn't exist
	if err := os.MkdirAll(s.dataPath, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	// Foreign keys must be on so movie_category rows cascade on delete
	db, err := sql.Open("sqlite3", s.dbPath+"?_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("failed to open database: %v", err)
	}

	s.db = db

	// Initialize and run migrations using Goose
	migrationManager := NewMigrationManager(s.db)
	if err := migrationManager.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize migrations: %v", err)
	}

	if err := migrationManager.Up(); err != nil {
		return fmt.Errorf("failed to run migrations: %v", err)
	}

	log.Printf("SQLite database initialized at: %s", s.dbPath)
	return nil
}

func (s *MovieStore) ListMovies() ([]Movie, error) {
	query := `
	SELECT id, title, imdb_rating, personal_rating, file_path, last_view
	FROM movies
	ORDER BY id
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %v", err)
	}
	defer rows.Close()

	var movies []Movie
	for rows.Next() {
		var movie Movie
		var imdbRating sql.NullFloat64
		var personalRating sql.NullInt64
		var lastView sql.NullString
		err := rows.Scan(&movie.ID, &movie.Title, &imdbRating, &personalRating, &movie.FilePath, &lastView)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %v", err)
		}
		movie.ImdbRating = imdbRating.Float64
		movie.PersonalRating = int(personalRating.Int64)
		if lastView.Valid {
			movie.LastView = &lastView.String
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read movies: %v", err)
	}

	// Attach category names so filtering can match on them
	for i := range movies {
		categories, err := s.CategoriesForMovie(movies[i].ID)
		if err != nil {
			return nil, err
		}
		movies[i].Categories = categories
	}

	return movies, nil
}

func (s *MovieStore) ListCategories() ([]Category, error) {
	rows, err := s.db.Query(`SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %v", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %v", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %v", err)
	}

	return categories, nil
}

func (s *MovieStore) CategoriesForMovie(movieID int64) ([]string, error) {
	query := `
	SELECT c.name
	FROM categories c
	JOIN movie_category mc ON c.id = mc.category_id
	WHERE mc.movie_id = ?
	ORDER BY c.id
	`

	rows, err := s.db.Query(query, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for movie %d: %v", movieID, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan category name: %v", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category names: %v", err)
	}

	return names, nil
}

func (s *MovieStore) InsertMovie(movie *Movie) error {
	query := `
	INSERT INTO movies (title, imdb_rating, personal_rating, file_path, last_view)
	VALUES (?, ?, ?, ?, ?)
	`

	result, err := s.db.Exec(query, movie.Title, movie.ImdbRating, movie.PersonalRating, movie.FilePath, movie.LastView)
	if err != nil {
		return fmt.Errorf("failed to insert movie: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted movie id: %v", err)
	}
	movie.ID = id

	return nil
}

func (s *MovieStore) UpdateMovie(movie Movie) error {
	query := `
	UPDATE movies
	SET title = ?, imdb_rating = ?, personal_rating = ?, file_path = ?, last_view = ?
	WHERE id = ?
	`

	_, err := s.db.Exec(query, movie.Title, movie.ImdbRating, movie.PersonalRating, movie.FilePath, movie.LastView, movie.ID)
	if err != nil {
		return fmt.Errorf("failed to update movie: %v", err)
	}

	return nil
}

func (s *MovieStore) DeleteMovie(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM movies WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete movie: %v", err)
	}
	return nil
}

// LinkMovieCategory associates a movie with a category. Re-linking an
// existing pair is a no-op, never a duplicate-key failure.
func (s *MovieStore) LinkMovieCategory(movieID, categoryID int64) error {
	query := `INSERT OR IGNORE INTO movie_category (movie_id, category_id) VALUES (?, ?)`

	if _, err := s.db.Exec(query, movieID, categoryID); err != nil {
		return fmt.Errorf("failed to link movie %d to category %d: %v", movieID, categoryID, err)
	}
	return nil
}

func (s *MovieStore) TouchLastViewed(movieID int64, viewedAt time.Time) error {
	query := `UPDATE movies SET last_view = ? WHERE id = ?`

	if _, err := s.db.Exec(query, viewedAt.Format(TimeFormat), movieID); err != nil {
		return fmt.Errorf("failed to update last view for movie %d: %v", movieID, err)
	}
	return nil
}

func (s *MovieStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *MovieStore) GetDB() (*sql.DB, error) {
	if s.db == nil {
		// Open database connection if not already open
		db, err := sql.Open("sqlite3", s.dbPath+"?_foreign_keys=on")
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %v", err)
		}
		s.db = db
	}
	return s.db, nil
}

func (s *MovieStore) GetStats() (map[string]int, error) {
	stats := make(map[string]int)

	// Total movies
	var movies int
	err := s.db.QueryRow("SELECT COUNT(*) FROM movies").Scan(&movies)
	if err != nil {
		return nil, fmt.Errorf("failed to get movies count: %v", err)
	}
	stats["movies"] = movies

	// Categories count
	var categories int
	err = s.db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&categories)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories count: %v", err)
	}
	stats["categories"] = categories

	// Category links count
	var links int
	err = s.db.QueryRow("SELECT COUNT(*) FROM movie_category").Scan(&links)
	if err != nil {
		return nil, fmt.Errorf("failed to get links count: %v", err)
	}
	stats["links"] = links

	return stats, nil
}

// Migration management methods
func (s *MovieStore) GetMigrationManager() *MigrationManager {
	return NewMigrationManager(s.db)
}

func (s *MovieStore) GetDatabaseVersion() (int64, error) {
	migrationManager := s.GetMigrationManager()
	if err := migrationManager.Initialize(); err != nil {
		return 0, err
	}
	return migrationManager.Version()
}

func (s *MovieStore) RunMigrations() error {
	migrationManager := s.GetMigrationManager()
	if err := migrationManager.Initialize(); err != nil {
		return err
	}
	return migrationManager.Up()
}

func (s *MovieStore) RollbackMigration() error {
	migrationManager := s.GetMigrationManager()
	if err := migrationManager.Initialize(); err != nil {
		return err
	}
	return migrationManager.Down()
}

func (s *MovieStore) ResetDatabase() error {
	migrationManager := s.GetMigrationManager()
	if err := migrationManager.Initialize(); err != nil {
		return err
	}
	return migrationManager.Reset()
}
