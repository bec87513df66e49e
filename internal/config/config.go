package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ahsanfayaz52/notesapi/internal/db"
)

const DefaultShutdownTimeout = 5 * time.Second

var defaultCORSOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}

type Config struct {
	// Database configuration. DatabaseURI wins over the discrete DB_* settings.
	DatabaseURI string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBName      string

	Port            string
	CORSOrigins     []string
	ShutdownTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// LoadConfig reads envFile (when it exists) into the process environment and builds the
// configuration from it. Variables already set in the environment take precedence.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	shutdownTimeout := DefaultShutdownTimeout
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: must be a positive duration such as 10s", v)
		}
		shutdownTimeout = d
	}

	corsOrigins := append([]string(nil), defaultCORSOrigins...)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		corsOrigins = splitList(v)
	}

	return &Config{
		DatabaseURI: os.Getenv("DB_URI"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBHost:      os.Getenv("DB_HOST"),
		DBName:      os.Getenv("DB_NAME"),

		Port:            getenv("PORT", "5000"),
		CORSOrigins:     corsOrigins,
		ShutdownTimeout: shutdownTimeout,

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),
	}, nil
}

// DatabaseSource resolves the configured database into a driver and DSN.
func (c *Config) DatabaseSource() (db.Source, error) {
	if c.DatabaseURI != "" {
		return db.ParseURI(c.DatabaseURI)
	}
	if c.DBName == "" {
		return db.Source{}, db.ErrNoDatabase
	}
	return db.Source{
		Driver: db.DriverMySQL,
		DSN:    db.BuildMySQLDSN(c.DBUser, c.DBPassword, c.DBHost, c.DBName),
	}, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
