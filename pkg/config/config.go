// Package config handles loading and managing botlane configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/botlane/botlane/pkg/scoring"
)

// Config is the top-level configuration for botlane.
type Config struct {
	Scoring  ScoringConfig `yaml:"scoring"`
	Feed     FeedConfig    `yaml:"feed"`
	Drafts   DraftsConfig  `yaml:"drafts"`
	Cache    CacheConfig   `yaml:"cache"`
	Server   ServerConfig  `yaml:"server"`
	LogLevel string        `yaml:"log_level"` // debug, info, warn, error
}

// ScoringConfig controls scoring behavior.
type ScoringConfig struct {
	Weights map[string]float64 `yaml:"weights"`
}

// FeedConfig says where the matchup feed comes from. A local path wins over
// blob storage.
type FeedConfig struct {
	Path    string        `yaml:"path"`
	Name    string        `yaml:"name"` // object name in storage
	Storage StorageConfig `yaml:"storage"`
}

// StorageConfig selects the blob storage backend for feeds.
type StorageConfig struct {
	Backend   string `yaml:"backend"` // local, s3, gcs
	Dir       string `yaml:"dir"`     // local backend root
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"` // S3-compatible endpoint, e.g. MinIO
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// DraftsConfig selects the draft store. A database URL selects Postgres,
// otherwise drafts live in a SQLite file.
type DraftsConfig struct {
	DatabaseURL string `yaml:"database_url"`
	Path        string `yaml:"path"`
}

// CacheConfig controls the recommendation cache.
type CacheConfig struct {
	Size     int           `yaml:"size"`
	TTL      time.Duration `yaml:"ttl"`
	RedisURL string        `yaml:"redis_url"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port   string `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

// Backend names.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
	BackendGCS   = "gcs"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Weights: map[string]float64{},
		},
		Feed: FeedConfig{
			Name: "latest",
			Storage: StorageConfig{
				Backend: BackendLocal,
				Dir:     filepath.Join(CacheDir(), "feeds"),
			},
		},
		Drafts: DraftsConfig{
			Path: filepath.Join(CacheDir(), "drafts.db"),
		},
		Cache: CacheConfig{
			Size: 256,
			TTL:  10 * time.Minute,
		},
		Server: ServerConfig{
			Port: "8080",
		},
		LogLevel: "info",
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// LoadEnv reads a .env file in the working directory, if any, and applies
// environment overrides to c.
func (c *Config) LoadEnv() error {
	_ = godotenv.Load()
	return c.ApplyEnv()
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv() error {
	setString(&c.Feed.Path, "BOTLANE_FEED_PATH")
	setString(&c.Feed.Name, "BOTLANE_FEED_NAME")
	setString(&c.Feed.Storage.Backend, "BOTLANE_FEED_BACKEND")
	setString(&c.Feed.Storage.Dir, "BOTLANE_FEED_DIR")
	setString(&c.Feed.Storage.Bucket, "BOTLANE_FEED_BUCKET")
	setString(&c.Feed.Storage.Region, "BOTLANE_S3_REGION")
	setString(&c.Feed.Storage.Endpoint, "BOTLANE_S3_ENDPOINT")
	setString(&c.Feed.Storage.AccessKey, "BOTLANE_S3_ACCESS_KEY")
	setString(&c.Feed.Storage.SecretKey, "BOTLANE_S3_SECRET_KEY")
	setString(&c.Drafts.DatabaseURL, "DATABASE_URL")
	setString(&c.Drafts.Path, "BOTLANE_DRAFTS_PATH")
	setString(&c.Cache.RedisURL, "REDIS_URL")
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.APIKey, "BOTLANE_API_KEY")
	setString(&c.LogLevel, "BOTLANE_LOG_LEVEL")

	if v := os.Getenv("BOTLANE_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BOTLANE_CACHE_SIZE: %w", err)
		}
		c.Cache.Size = n
	}
	if v := os.Getenv("BOTLANE_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("BOTLANE_CACHE_TTL: %w", err)
		}
		c.Cache.TTL = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	var errs []error

	switch c.Feed.Storage.Backend {
	case BackendLocal, BackendS3, BackendGCS:
	default:
		errs = append(errs, fmt.Errorf("feed.storage.backend %q: want local, s3 or gcs", c.Feed.Storage.Backend))
	}
	if (c.Feed.Storage.Backend == BackendS3 || c.Feed.Storage.Backend == BackendGCS) && c.Feed.Storage.Bucket == "" {
		errs = append(errs, fmt.Errorf("feed.storage.bucket is required for the %s backend", c.Feed.Storage.Backend))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level %q: want debug, info, warn or error", c.LogLevel))
	}
	if c.Cache.Size < 0 {
		errs = append(errs, fmt.Errorf("cache.size must not be negative"))
	}
	if _, err := c.Weights(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Weights returns the scoring weights: defaults with the configured
// overrides applied.
func (c *Config) Weights() (scoring.Weights, error) {
	return scoring.Defaults().WithOverrides(c.Scoring.Weights)
}

// FindConfigFile looks for .botlane/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".botlane", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns ~/.cache/botlane, the home of local drafts and feeds.
func CacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "botlane")
}
