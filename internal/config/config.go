package config

import (
	"os"
	"strconv"
	"time"

	"example.com/notes-store/internal/db"
	"example.com/notes-store/internal/stringsx"
)

type Config struct {
	DBDriver    string
	DBPath      string
	DatabaseURL string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	HTTPAddr string

	LogLevel  string
	LogFormat string
}

func Load() Config {
	cfg := Config{
		DBDriver:        getenv("NOTES_DB_DRIVER", "sqlite"),
		DBPath:          getenv("NOTES_DB_PATH", ""),
		DatabaseURL:     getenv("DATABASE_URL", ""),
		ConnMaxLifetime: getenvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		ConnMaxIdleTime: getenvDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       getenv("LOG_FORMAT", "text"),
	}
	cfg.ResolvePool()
	return cfg
}

// ResolvePool sets the pool sizes for c.DBDriver unless DB_MAX_OPEN or
// DB_MAX_IDLE override them. Call it again after the driver changes.
func (c *Config) ResolvePool() {
	// SQLite gets a single connection: one file, one writer.
	maxOpen, maxIdle := 1, 1
	if d, err := db.DialectFor(c.DBDriver); err == nil && d.Name == db.Postgres.Name {
		maxOpen, maxIdle = 20, 10
	}
	c.MaxOpenConns = getenvInt("DB_MAX_OPEN", maxOpen)
	c.MaxIdleConns = getenvInt("DB_MAX_IDLE", maxIdle)
}

// DBOptions converts the database settings for db.Open.
func (c Config) DBOptions() db.Options {
	return db.Options{
		Driver:          c.DBDriver,
		Path:            c.DBPath,
		DatabaseURL:     c.DatabaseURL,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
		ConnMaxIdleTime: c.ConnMaxIdleTime,
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if stringsx.IsEmpty(v) {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return def
	}
	return i
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
