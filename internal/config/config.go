package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Retry
		Stats
		Tasks
		Maintenance
		Translations
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Retry struct {
		Attempts int
		Backoff  time.Duration
	}
	Stats struct {
		MaxClusters    int // distinct percentage values treated as "most frequent"
		MinPercent     int // minimum book coverage for the most-frequent band
		RecentTagLimit int // tags returned in recency ordering
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Maintenance struct {
		Enabled  bool
		Schedule string // Cron format: "0 4 * * *" = daily at 04:00
	}
	Translations struct {
		Dir string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8311)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("translations_dir", DefaultTranslationsDir)

	// Busy-retry defaults
	v.SetDefault("retry_attempts", 5)
	v.SetDefault("retry_backoff", "50ms")

	// Tag statistics defaults
	v.SetDefault("stats_max_clusters", 6)
	v.SetDefault("stats_min_percent", 3)
	v.SetDefault("stats_recent_tag_limit", 5)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	// Maintenance defaults
	v.SetDefault("maintenance_enabled", true)
	v.SetDefault("maintenance_schedule", "0 4 * * *") // Daily at 04:00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Retry: Retry{
			Attempts: v.GetInt("RETRY_ATTEMPTS"),
			Backoff:  v.GetDuration("RETRY_BACKOFF"),
		},
		Stats: Stats{
			MaxClusters:    v.GetInt("STATS_MAX_CLUSTERS"),
			MinPercent:     v.GetInt("STATS_MIN_PERCENT"),
			RecentTagLimit: v.GetInt("STATS_RECENT_TAG_LIMIT"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Maintenance: Maintenance{
			Enabled:  v.GetBool("MAINTENANCE_ENABLED"),
			Schedule: v.GetString("MAINTENANCE_SCHEDULE"),
		},
		Translations: Translations{
			Dir: v.GetString("TRANSLATIONS_DIR"),
		},
	}
}
