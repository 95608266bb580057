package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries the run parameters. The file-backed keys mirror the
// recognized config document: indir, url, dbname, replace, xml_dir.
// Operational tunables come from the environment with defaults.
type Config struct {
	InDir   string `json:"indir"`
	URL     string `json:"url"`
	DBName  string `json:"dbname"`
	Replace bool   `json:"replace"`
	XMLDir  string `json:"xml_dir"`

	ResultQueueSize int           `json:"-"`
	GrobidURL       string        `json:"-"`
	GrobidDelay     time.Duration `json:"-"`
	HTTPTimeout     time.Duration `json:"-"`
}

// Load reads a JSON config file. A missing or malformed file is fatal to
// the run, so errors propagate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := defaults()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.InDir == "" || cfg.URL == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("config %s: indir, url and dbname are required", path)
	}

	return cfg, nil
}

// FromArgs builds a Config from the three positional command values.
func FromArgs(indir, url, dbname string) *Config {
	cfg := defaults()
	cfg.InDir = indir
	cfg.URL = url
	cfg.DBName = dbname
	return cfg
}

func defaults() *Config {
	return &Config{
		ResultQueueSize: getEnvAsInt("RESULT_QUEUE_SIZE", 30000),
		GrobidURL:       getEnv("GROBID_URL", "http://localhost:8070/api/processFulltextDocument"),
		GrobidDelay:     getEnvAsDuration("GROBID_DELAY", 7*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 5*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}
