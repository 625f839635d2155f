package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mutctl.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadCoordinatorConfigDefaults(t *testing.T) {
	path := writeFile(t, `ops_addr = ":9300"`)
	cfg, err := LoadCoordinatorConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Name != "mutctl" {
		t.Fatalf("default name: %q", cfg.Name)
	}
	if cfg.WorkerBindAddr != "127.0.0.1:0" {
		t.Fatalf("default worker bind: %q", cfg.WorkerBindAddr)
	}
	if cfg.MaxAttempts != 3 {
		t.Fatalf("default attempts: %d", cfg.MaxAttempts)
	}
	if len(cfg.Run.Mutators) != 1 || cfg.Run.Mutators[0] != "DEFAULTS" {
		t.Fatalf("default mutators: %v", cfg.Run.Mutators)
	}
}

func TestLoadCoordinatorConfigFull(t *testing.T) {
	path := writeFile(t, `name = "coord-a"
session_timeout = "2m"
max_attempts = 5

[run]
mutators = ["STRONGER", "CRCR"]
target_patterns = ["calc.*"]
test_timeout_ms = 1500
verbose = true
`)
	cfg, err := LoadCoordinatorConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Name != "coord-a" || cfg.MaxAttempts != 5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.SessionTimeoutDuration() != 2*time.Minute {
		t.Fatalf("session timeout: %v", cfg.SessionTimeoutDuration())
	}
	if len(cfg.Run.Mutators) != 2 || !cfg.Run.Verbose {
		t.Fatalf("unexpected run config: %+v", cfg.Run)
	}
}

func TestLoadCoordinatorConfigRejectsBadValues(t *testing.T) {
	cases := []string{
		`session_timeout = "not-a-duration"`,
		`max_attempts = -1`,
		"[run]\ntest_timeout_ms = -5",
		"[run]\nmutators = [\" \"]",
	}
	for _, content := range cases {
		path := writeFile(t, content)
		if _, err := LoadCoordinatorConfig(path); err == nil {
			t.Fatalf("expected validation error for %q", content)
		}
	}
}

func TestWriteTemplateRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.toml")
	if err := WriteTemplate(path, "coordinator", false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := LoadCoordinatorConfig(path)
	if err != nil {
		t.Fatalf("template does not load: %v", err)
	}
	if cfg.OpsAddr != ":9300" {
		t.Fatalf("unexpected template ops addr: %q", cfg.OpsAddr)
	}
	if err := WriteTemplate(path, "coordinator", false); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
}
