package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"reel-keeper/catalog"
	"reel-keeper/importer"
	"reel-keeper/scheduler"
	"reel-keeper/scraper"
	"reel-keeper/storage"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	var (
		runMode    = flag.String("mode", "", "Run mode: import, list, stale, watch, scheduler")
		pageURL    = flag.String("url", "", "Movie page URL to scrape metadata from (import mode)")
		filePath   = flag.String("file", "", "Absolute path to the local video file (import mode)")
		search     = flag.String("search", "", "Case-insensitive title substring filter (list mode)")
		minRating  = flag.Float64("min-rating", 0, "Minimum IMDb rating filter (list mode)")
		categories = flag.String("categories", "", "Comma-separated category filter (list mode)")
		movieID    = flag.Int64("id", 0, "Movie id (watch mode)")
	)
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = "./data"
	}

	// Initialize logger with timestamp
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting Reel Keeper...")

	// Initialize storage
	store := storage.NewMovieStore(dataPath)
	if err := store.Initialize(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	mode := *runMode
	if mode == "" {
		mode = os.Getenv("RUN_MODE")
	}
	if mode == "" {
		mode = "scheduler"
	}

	switch mode {
	case "import":
		runImport(store, *pageURL, *filePath)

	case "list":
		runList(store, *search, *minRating, *categories)

	case "stale":
		runStaleCheck(store)

	case "watch":
		runWatch(store, *movieID)

	case "scheduler":
		runScheduler(store)

	default:
		fmt.Printf("Unknown mode: %s\n", mode)
		fmt.Println("Available modes: import, list, stale, watch, scheduler")
		os.Exit(1)
	}

	log.Println("Application exiting")
}

// runImport scrapes a movie page and catalogs the given local file under the
// extracted metadata.
func runImport(store *storage.MovieStore, pageURL, filePath string) {
	if pageURL == "" || filePath == "" {
		log.Fatal("Import mode requires -url and -file")
	}

	fetcher := scraper.NewPageFetcher(os.Getenv("SCRAPER_USER_AGENT"))
	imp := importer.New(fetcher, store)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	movie, err := imp.ImportFromURL(ctx, pageURL, filePath)
	if err != nil {
		log.Fatalf("Scraping Error: %v", err)
	}

	genreInfo := ""
	if len(movie.Categories) > 0 {
		genreInfo = " [" + strings.Join(movie.Categories, ", ") + "]"
	}
	fmt.Printf("Added '%s' with rating %.1f%s\n", movie.Title, movie.ImdbRating, genreInfo)
}

// runList prints the movies matching the given filter criteria.
func runList(store *storage.MovieStore, search string, minRating float64, categoryList string) {
	movies, err := store.ListMovies()
	if err != nil {
		log.Fatalf("Database Error: failed to load movies: %v", err)
	}

	criteria := catalog.FilterCriteria{
		SearchText: search,
		MinRating:  minRating,
	}
	if categoryList != "" {
		for _, name := range strings.Split(categoryList, ",") {
			criteria.SelectedCategories = append(criteria.SelectedCategories, strings.TrimSpace(name))
		}
	}

	filtered := catalog.Filter(movies, criteria)
	fmt.Printf("%d of %d movies match\n", len(filtered), len(movies))
	for _, movie := range filtered {
		categories := ""
		if len(movie.Categories) > 0 {
			categories = " [" + strings.Join(movie.Categories, ", ") + "]"
		}
		lastView := "never"
		if movie.LastView != nil && *movie.LastView != "" {
			lastView = *movie.LastView
		}
		fmt.Printf("%4d  %-40s imdb %.1f  personal %d%s  last viewed %s\n",
			movie.ID, movie.Title, movie.ImdbRating, movie.PersonalRating, categories, lastView)
	}
}

// runStaleCheck runs the deletion advisory once and prints the result.
func runStaleCheck(store *storage.MovieStore) {
	movies, err := store.ListMovies()
	if err != nil {
		log.Fatalf("Database Error: failed to load movies: %v", err)
	}

	candidates := catalog.FindStaleCandidates(movies, time.Now())
	if len(candidates) == 0 {
		fmt.Println("No deletion candidates found")
		return
	}

	fmt.Println(catalog.StaleWarning(candidates))
}

// runWatch records a viewing of the given movie. Launching the actual video
// player is left to the user.
func runWatch(store *storage.MovieStore, movieID int64) {
	if movieID == 0 {
		log.Fatal("Watch mode requires -id")
	}

	movies, err := store.ListMovies()
	if err != nil {
		log.Fatalf("Database Error: failed to load movies: %v", err)
	}

	var selected *storage.Movie
	for i := range movies {
		if movies[i].ID == movieID {
			selected = &movies[i]
			break
		}
	}
	if selected == nil {
		log.Fatalf("No movie with id %d", movieID)
	}

	if _, err := os.Stat(selected.FilePath); os.IsNotExist(err) {
		log.Fatalf("File Error: movie file not found: %s", selected.FilePath)
	}

	if err := store.TouchLastViewed(movieID, time.Now()); err != nil {
		log.Fatalf("Database Error: %v", err)
	}
	fmt.Printf("Recorded viewing of '%s' (%s)\n", selected.Title, selected.FilePath)
}

// runScheduler keeps the process alive with a daily stale check, mirroring
// the advisory the desktop app showed at every launch.
func runScheduler(store *storage.MovieStore) {
	sched := scheduler.NewScheduler()
	staleJob := scheduler.NewStaleCheckJob(store)

	spec := os.Getenv("STALE_CHECK_SCHEDULE")
	if spec == "" {
		if err := sched.AddDailyJob(staleJob); err != nil {
			log.Fatalf("Failed to schedule stale check job: %v", err)
		}
		log.Println("Stale check scheduled daily at 9:00 AM")
	} else {
		if err := sched.AddJob(spec, staleJob); err != nil {
			log.Fatalf("Failed to schedule stale check job: %v", err)
		}
		log.Printf("Stale check scheduled with spec %q", spec)
	}

	sched.Start()

	// Run the advisory once at startup unless disabled
	if os.Getenv("RUN_AT_STARTUP") != "false" {
		log.Println("Running initial stale check at startup")
		if err := sched.RunJobNow(staleJob.Name()); err != nil {
			log.Printf("Error running initial job: %v", err)
		}
	}

	displayLibraryStats(store)

	// Set up signal handling for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("Application running. Press Ctrl+C to exit")

	sig := <-quit
	log.Printf("Received signal %s, shutting down...", sig)

	sched.Stop()
}

// displayLibraryStats shows catalog statistics
func displayLibraryStats(store *storage.MovieStore) {
	log.Println("Library Statistics")

	stats, err := store.GetStats()
	if err != nil {
		log.Printf("Error getting library stats: %v", err)
		return
	}

	log.Printf("Movies: %d", stats["movies"])
	log.Printf("Categories: %d", stats["categories"])
	log.Printf("Category links: %d", stats["links"])

	movies, err := store.ListMovies()
	if err != nil {
		log.Printf("Error getting movies: %v", err)
		return
	}

	limit := 5
	if len(movies) < limit {
		limit = len(movies)
	}

	log.Printf("Recent Movies (last %d):", limit)
	for i := len(movies) - limit; i < len(movies); i++ {
		movie := movies[i]
		log.Printf("- %s (imdb %.1f, personal %d)", movie.Title, movie.ImdbRating, movie.PersonalRating)
	}
}
