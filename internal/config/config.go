package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServiceEnvironment  string        `envconfig:"SERVICE_ENVIRONMENT" default:"development"`
	HTTPPort            string        `envconfig:"HTTP_PORT" default:"8080"`
	DBDriver            string        `envconfig:"DB_DRIVER" default:"postgres"`
	DBDSN               string        `envconfig:"DB_DSN" required:"true"`
	DBMaxOpenConns      int           `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	DBMaxIdleConns      int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	DBConnMaxLifetime   time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	DBAutoMigrate       bool          `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	SeriesTable         string        `envconfig:"SERIES_TABLE" default:"records"`
	SeriesGroupByColumn string        `envconfig:"SERIES_GROUP_BY_COLUMN" default:"recorded_at"`
	SeriesMaxBuckets    int           `envconfig:"SERIES_MAX_BUCKETS" default:"5000"`
	ShutdownTimeout     time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN must not be empty")
	}
	switch cfg.DBDriver {
	case "postgres", "pgx", "sqlite3", "clickhouse":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.SeriesMaxBuckets < 0 {
		return nil, fmt.Errorf("SERIES_MAX_BUCKETS must not be negative, got %d", cfg.SeriesMaxBuckets)
	}

	return &cfg, nil
}
