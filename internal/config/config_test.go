package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Collector.FlushInterval != 30*time.Second {
		t.Errorf("FlushInterval = %v, want 30s", cfg.Collector.FlushInterval)
	}
	if cfg.Collector.BufferThreshold != 10 {
		t.Errorf("BufferThreshold = %d, want 10", cfg.Collector.BufferThreshold)
	}
	if cfg.RetentionDays != 365 {
		t.Errorf("RetentionDays = %d, want 365", cfg.RetentionDays)
	}
	if cfg.Leveling != "sqrt" {
		t.Errorf("Leveling = %q, want sqrt", cfg.Leveling)
	}
	if cfg.Leaderboard.Provider != "static" {
		t.Errorf("Leaderboard.Provider = %q, want static", cfg.Leaderboard.Provider)
	}
	if !cfg.Output.Color {
		t.Error("Output.Color = false, want true")
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte(`
collector:
  flush_interval: 5s
  buffer_threshold: 3
retention_days: 90
leveling_strategy: linear
leaderboard:
  provider: redis
  redis_addr: "redis.local:6379"
output:
  color: false
`)
	if err := os.WriteFile(path, yaml, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Collector.FlushInterval != 5*time.Second {
		t.Errorf("FlushInterval = %v, want 5s", cfg.Collector.FlushInterval)
	}
	if cfg.Collector.BufferThreshold != 3 {
		t.Errorf("BufferThreshold = %d, want 3", cfg.Collector.BufferThreshold)
	}
	if cfg.RetentionDays != 90 {
		t.Errorf("RetentionDays = %d, want 90", cfg.RetentionDays)
	}
	if cfg.Leveling != "linear" {
		t.Errorf("Leveling = %q, want linear", cfg.Leveling)
	}
	if cfg.Leaderboard.Provider != "redis" {
		t.Errorf("Leaderboard.Provider = %q, want redis", cfg.Leaderboard.Provider)
	}
	if cfg.Leaderboard.RedisAddr != "redis.local:6379" {
		t.Errorf("RedisAddr = %q", cfg.Leaderboard.RedisAddr)
	}
	if cfg.Output.Color {
		t.Error("Output.Color = true, want false")
	}
	if cfg.Leaderboard.UserID != "me" {
		t.Errorf("UserID = %q, want default me", cfg.Leaderboard.UserID)
	}
}
