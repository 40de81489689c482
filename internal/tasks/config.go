package tasks

import "time"

// Queue defaults. A range tagging job touches every verse of a book, so
// retries are spaced out and finished jobs stay inspectable for a day.
const (
	DefaultWorkers         = 2
	DefaultMaxAttempts     = 3
	DefaultRetryBackoff    = time.Minute
	DefaultTaskTimeout     = 5 * time.Minute
	DefaultReleaseAfter    = 15 * time.Minute
	DefaultCleanupInterval = time.Hour
	DefaultRetention       = 24 * time.Hour
)

// Config tunes the annotation task queue.
type Config struct {
	// Workers is how many annotation jobs may run at once.
	Workers int

	// MaxRetries bounds reattempts of a failed job.
	MaxRetries int

	// RetryDelay spaces the reattempts.
	RetryDelay time.Duration

	// TaskTimeout aborts a job running longer than a whole-book
	// assignment reasonably takes.
	TaskTimeout time.Duration

	// ReleaseAfter returns a claimed but stalled job to the queue.
	ReleaseAfter time.Duration

	// CleanupInterval is how often finished jobs are swept.
	CleanupInterval time.Duration

	// RetentionDuration is how long finished jobs stay inspectable.
	RetentionDuration time.Duration
}

// DefaultConfig returns a Config with the queue defaults.
func DefaultConfig() Config {
	return Config{
		Workers:           DefaultWorkers,
		MaxRetries:        DefaultMaxAttempts,
		RetryDelay:        DefaultRetryBackoff,
		TaskTimeout:       DefaultTaskTimeout,
		ReleaseAfter:      DefaultReleaseAfter,
		CleanupInterval:   DefaultCleanupInterval,
		RetentionDuration: DefaultRetention,
	}
}
