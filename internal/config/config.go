package config

import (
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Static
		Logging
		Audit
		Tasks
		Maintenance
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
	Static struct {
		Dir string // Root of statically served files, mounted at /static
	}
	Logging struct {
		Debug bool
	}
	Audit struct {
		Enabled       bool
		RetentionDays int // Days to keep audit events (default: 30)
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Maintenance struct {
		Enabled       bool
		Schedule      string        // Cron format: "0 3 * * *" = daily at 03:00
		CoverSweepAge time.Duration // Minimum age before an orphan cover is removed
	}
)

// CoversDir returns the directory uploaded cover images are written to.
// It lives under the static root so files are reachable at /static/covers.
func (s Static) CoversDir() string {
	return filepath.Join(s.Dir, "covers")
}

func NewConfig() *Config {
	// Load .env if present; real environment variables win.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("static_dir", "./static")
	v.SetDefault("log_debug", false)

	// Audit defaults
	v.SetDefault("audit_enabled", true)
	v.SetDefault("audit_retention_days", 30)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Maintenance defaults
	v.SetDefault("maintenance_enabled", true)
	v.SetDefault("maintenance_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("cover_orphan_min_age", "1h")

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
		Static: Static{
			Dir: v.GetString("STATIC_DIR"),
		},
		Logging: Logging{
			Debug: v.GetBool("LOG_DEBUG"),
		},
		Audit: Audit{
			Enabled:       v.GetBool("AUDIT_ENABLED"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Maintenance: Maintenance{
			Enabled:       v.GetBool("MAINTENANCE_ENABLED"),
			Schedule:      v.GetString("MAINTENANCE_SCHEDULE"),
			CoverSweepAge: v.GetDuration("COVER_ORPHAN_MIN_AGE"),
		},
	}
}
