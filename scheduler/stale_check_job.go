package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"reel-keeper/catalog"
	"reel-keeper/notifier"
	"reel-keeper/storage"
)

// StaleCheckJob scans the catalog for deletion candidates and surfaces the
// advisory warning. It never deletes anything itself.
type StaleCheckJob struct {
	store         *storage.MovieStore
	emailNotifier *notifier.EmailNotifier
	sendEmails    bool
}

// NewStaleCheckJob creates a new stale check job
func NewStaleCheckJob(store *storage.MovieStore) *StaleCheckJob {
	// Get email configuration from environment variables
	emailConfig := notifier.GetEmailConfigFromEnv()
	var emailNotifier *notifier.EmailNotifier
	sendEmails := false

	// Only create email notifier if SMTP host and recipient are configured
	if emailConfig.SMTPHost != "" && emailConfig.RecipientEmail != "" {
		var err error
		emailNotifier, err = notifier.NewEmailNotifier(emailConfig)
		if err != nil {
			log.Printf("Failed to create email notifier: %v", err)
		} else {
			sendEmails = true
			log.Printf("Deletion suggestions will be emailed to: %s", emailConfig.RecipientEmail)
		}
	} else {
		log.Println("Email notifications disabled: missing configuration")
	}

	return &StaleCheckJob{
		store:         store,
		emailNotifier: emailNotifier,
		sendEmails:    sendEmails,
	}
}

// Name returns the name of the job
func (j *StaleCheckJob) Name() string {
	return "stale_check"
}

// Run executes the job
func (j *StaleCheckJob) Run(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	movies, err := j.store.ListMovies()
	if err != nil {
		return fmt.Errorf("failed to load movies: %v", err)
	}

	candidates := catalog.FindStaleCandidates(movies, time.Now())
	if len(candidates) == 0 {
		log.Printf("Stale check complete: no deletion candidates among %d movies", len(movies))
		return nil
	}

	log.Printf("Stale check complete: %d of %d movies suggested for deletion", len(candidates), len(movies))
	log.Println(catalog.StaleWarning(candidates))

	if j.sendEmails && j.emailNotifier != nil {
		if err := j.emailNotifier.NotifySuggestedDeletions(candidates); err != nil {
			log.Printf("Failed to send email notification: %v", err)
		}
	}

	return nil
}
