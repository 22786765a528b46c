package scheduler

import (
	"context"
	"testing"

	"reel-keeper/storage"
)

func TestStaleCheckJobRun(t *testing.T) {
	tempDir := t.TempDir()

	store := storage.NewMovieStore(tempDir)
	if err := store.Initialize(); err != nil {
		t.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	// One stale candidate, one keeper
	stale := storage.Movie{Title: "Forgotten Flick", PersonalRating: 3, FilePath: "/movies/forgotten.mkv"}
	if err := store.InsertMovie(&stale); err != nil {
		t.Fatalf("Failed to insert movie: %v", err)
	}
	keeper := storage.Movie{Title: "Beloved Classic", PersonalRating: 9, FilePath: "/movies/classic.mkv"}
	if err := store.InsertMovie(&keeper); err != nil {
		t.Fatalf("Failed to insert movie: %v", err)
	}

	job := NewStaleCheckJob(store)
	if job.Name() != "stale_check" {
		t.Errorf("Unexpected job name: %s", job.Name())
	}

	// The job only surfaces suggestions, so it must succeed and leave the
	// catalog untouched.
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Job failed: %v", err)
	}

	movies, err := store.ListMovies()
	if err != nil {
		t.Fatalf("Failed to list movies: %v", err)
	}
	if len(movies) != 2 {
		t.Errorf("Expected 2 movies after advisory run, got %d", len(movies))
	}

	// A cancelled context aborts the run
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := job.Run(ctx); err == nil {
		t.Error("Expected error from cancelled context")
	}
}
