package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Feed.Name != "latest" {
		t.Errorf("expected default feed name 'latest', got %q", cfg.Feed.Name)
	}
	if cfg.Feed.Storage.Backend != BackendLocal {
		t.Errorf("expected local backend, got %q", cfg.Feed.Storage.Backend)
	}
	if !strings.HasSuffix(cfg.Drafts.Path, filepath.Join("botlane", "drafts.db")) {
		t.Errorf("expected drafts in the cache dir, got %q", cfg.Drafts.Path)
	}
	if cfg.Cache.Size != 256 || cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("unexpected cache defaults: %+v", cfg.Cache)
	}
	if cfg.Scoring.Weights == nil {
		t.Error("expected Weights map to be initialized, got nil")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "non-existent file returns defaults",
			yaml: "", // signal: don't create a file
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.Port != "8080" {
					t.Errorf("expected default port 8080, got %q", cfg.Server.Port)
				}
			},
		},
		{
			name: "partial override keeps other defaults",
			yaml: `
feed:
  path: ./feed.json
cache:
  ttl: 90s
scoring:
  weights:
    bottom.synergy: 3
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Feed.Path != "./feed.json" {
					t.Errorf("feed.path = %q", cfg.Feed.Path)
				}
				if cfg.Feed.Name != "latest" {
					t.Errorf("feed.name should keep its default, got %q", cfg.Feed.Name)
				}
				if cfg.Cache.TTL != 90*time.Second {
					t.Errorf("cache.ttl = %v, want 90s", cfg.Cache.TTL)
				}
				if cfg.Cache.Size != 256 {
					t.Errorf("cache.size should keep its default, got %d", cfg.Cache.Size)
				}
				w, err := cfg.Weights()
				if err != nil {
					t.Fatalf("Weights: %v", err)
				}
				if w.BottomSynergy != 3 || w.SupportSynergy != 2 {
					t.Errorf("unexpected weights: %+v", w)
				}
			},
		},
		{
			name: "s3 storage",
			yaml: `
feed:
  storage:
    backend: s3
    bucket: feeds
    endpoint: http://localhost:9000
`,
			check: func(t *testing.T, cfg *Config) {
				s := cfg.Feed.Storage
				if s.Backend != BackendS3 || s.Bucket != "feeds" || s.Endpoint != "http://localhost:9000" {
					t.Errorf("unexpected storage: %+v", s)
				}
			},
		},
		{
			name:    "invalid YAML returns error",
			yaml:    "{{invalid yaml",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")

			if tc.yaml != "" {
				if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
					t.Fatalf("write test config: %v", err)
				}
			}

			cfg, err := Load(path)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.check != nil {
				tc.check(t, cfg)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/botlane")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("PORT", "9090")
	t.Setenv("BOTLANE_FEED_BACKEND", "gcs")
	t.Setenv("BOTLANE_FEED_BUCKET", "botlane-feeds")
	t.Setenv("BOTLANE_CACHE_SIZE", "32")
	t.Setenv("BOTLANE_CACHE_TTL", "1m")
	t.Setenv("BOTLANE_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	if cfg.Drafts.DatabaseURL != "postgres://db/botlane" {
		t.Errorf("DatabaseURL = %q", cfg.Drafts.DatabaseURL)
	}
	if cfg.Cache.RedisURL != "redis://cache:6379/0" {
		t.Errorf("RedisURL = %q", cfg.Cache.RedisURL)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q", cfg.Server.Port)
	}
	if cfg.Feed.Storage.Backend != BackendGCS || cfg.Feed.Storage.Bucket != "botlane-feeds" {
		t.Errorf("storage = %+v", cfg.Feed.Storage)
	}
	if cfg.Cache.Size != 32 || cfg.Cache.TTL != time.Minute {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestApplyEnvBadNumber(t *testing.T) {
	t.Setenv("BOTLANE_CACHE_SIZE", "lots")
	if err := DefaultConfig().ApplyEnv(); err == nil {
		t.Fatal("expected error for a non-numeric cache size")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown backend", func(c *Config) { c.Feed.Storage.Backend = "ftp" }, "feed.storage.backend"},
		{"s3 without bucket", func(c *Config) { c.Feed.Storage.Backend = BackendS3 }, "bucket"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"negative cache", func(c *Config) { c.Cache.Size = -1 }, "cache.size"},
		{"unknown weight", func(c *Config) { c.Scoring.Weights["nope"] = 1 }, "unknown scoring weight"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tc.wantErr)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Run("found in current directory", func(t *testing.T) {
		root := t.TempDir()
		configDir := filepath.Join(root, ".botlane")
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			t.Fatalf("create config dir: %v", err)
		}
		configPath := filepath.Join(configDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		got := FindConfigFile(root)
		if got != configPath {
			t.Errorf("FindConfigFile = %q, want %q", got, configPath)
		}
	})

	t.Run("found in parent directory", func(t *testing.T) {
		root := t.TempDir()
		configDir := filepath.Join(root, ".botlane")
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			t.Fatalf("create config dir: %v", err)
		}
		configPath := filepath.Join(configDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		sub := filepath.Join(root, "a", "b", "c")
		if err := os.MkdirAll(sub, 0o755); err != nil {
			t.Fatalf("create sub: %v", err)
		}

		got := FindConfigFile(sub)
		if got != configPath {
			t.Errorf("FindConfigFile = %q, want %q", got, configPath)
		}
	})

	t.Run("not found", func(t *testing.T) {
		root := t.TempDir()
		got := FindConfigFile(root)
		if got != "" {
			t.Errorf("FindConfigFile = %q, want empty", got)
		}
	})
}

func TestCacheDir(t *testing.T) {
	t.Setenv("HOME", "/home/alice")
	if got, want := CacheDir(), filepath.Join("/home/alice", ".cache", "botlane"); got != want {
		t.Errorf("CacheDir = %q, want %q", got, want)
	}
}
