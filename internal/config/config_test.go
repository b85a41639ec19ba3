package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8091" {
		t.Errorf("expected default port 8091, got %s", cfg.Port)
	}
	if cfg.MaxRenderDepth != 1000 {
		t.Errorf("expected default depth 1000, got %d", cfg.MaxRenderDepth)
	}
	if cfg.MountID != "react-entry-point" {
		t.Errorf("expected default mount id, got %s", cfg.MountID)
	}
	if cfg.ExcludedKinds != nil {
		t.Errorf("expected nil excluded kinds, got %v", cfg.ExcludedKinds)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("expected default cache TTL, got %v", cfg.CacheTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("EXCLUDED_KINDS", "Graph, Upload,")
	t.Setenv("WORKER_COUNT", "8")
	t.Setenv("JOB_TTL", "30m")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
	if len(cfg.ExcludedKinds) != 2 || cfg.ExcludedKinds[0] != "Graph" || cfg.ExcludedKinds[1] != "Upload" {
		t.Errorf("unexpected excluded kinds: %v", cfg.ExcludedKinds)
	}
	if cfg.WorkerCount != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != 30*time.Minute {
		t.Errorf("expected 30m job TTL, got %v", cfg.JobTTL)
	}
}

func TestLoad_ClampsBadValues(t *testing.T) {
	t.Setenv("WORKER_COUNT", "-3")
	t.Setenv("MAX_RENDER_DEPTH", "0")
	t.Setenv("MAX_BODY_BYTES", "not-a-number")

	cfg := Load()

	if cfg.WorkerCount != 4 {
		t.Errorf("expected worker count clamped to 4, got %d", cfg.WorkerCount)
	}
	if cfg.MaxRenderDepth != 1000 {
		t.Errorf("expected depth clamped to 1000, got %d", cfg.MaxRenderDepth)
	}
	if cfg.MaxBodyBytes != 10485760 {
		t.Errorf("expected body limit fallback, got %d", cfg.MaxBodyBytes)
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}

	cfg.TargetURL = "localhost:8050"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-absolute TARGET_URL")
	}

	cfg.TargetURL = "http://localhost:8050"
	cfg.MountID = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty MOUNT_ID")
	}
}
