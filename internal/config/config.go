package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Auth. Empty disables authentication (local tooling use).
	APIKey string

	// Default target app for prerender jobs.
	TargetURL string

	// Rendering
	ExcludedKinds  []string // nil means the renderer defaults
	MaxRenderDepth int
	MountID        string

	// Request limits
	MaxBodyBytes int64

	// Prerender worker pool
	WorkerCount  int
	MaxQueueSize int
	JobTTL       time.Duration

	// Cache
	CacheTTL  time.Duration
	RedisAddr string // empty selects the in-memory cache

	// Static export. Empty disables writing files.
	ExportDir string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("SEORENDER_API_KEY"),

		TargetURL: os.Getenv("TARGET_URL"),

		ExcludedKinds:  envList("EXCLUDED_KINDS"),
		MaxRenderDepth: envInt("MAX_RENDER_DEPTH", 1000),
		MountID:        envOr("MOUNT_ID", "react-entry-point"),

		MaxBodyBytes: envInt64("MAX_BODY_BYTES", 10485760), // 10MB

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),
		JobTTL:       envDuration("JOB_TTL", 1*time.Hour),

		CacheTTL:  envDuration("CACHE_TTL", 10*time.Minute),
		RedisAddr: os.Getenv("REDIS_ADDR"),

		ExportDir: os.Getenv("EXPORT_DIR"),
	}

	if cfg.MaxRenderDepth <= 0 {
		cfg.MaxRenderDepth = 1000
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 10485760
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.TargetURL != "" {
		u, err := url.Parse(c.TargetURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("TARGET_URL must be an absolute URL, got %q", c.TargetURL)
		}
	}
	if c.MountID == "" {
		return fmt.Errorf("MOUNT_ID must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
