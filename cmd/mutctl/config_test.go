package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadServiceConfigDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
name = "mutctl-a"
ops_addr = ":9300"
worker_bind_addr = "127.0.0.1:9401"
worker_command = ["mutation-worker", "--dial", "{addr}"]
session_timeout = "90s"
max_attempts = 5

[run]
mutators = ["STRONGER"]
target_patterns = ["calc.*", " "]
test_timeout_ms = 1500
verbose = true
`)

	cfg, command, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Name != "mutctl-a" || cfg.OpsAddr != ":9300" {
		t.Fatalf("unexpected identity: %+v", cfg)
	}
	if cfg.WorkerBindAddr != "127.0.0.1:9401" {
		t.Fatalf("unexpected worker bind: %q", cfg.WorkerBindAddr)
	}
	if cfg.SessionTimeout != 90*time.Second || cfg.MaxAttempts != 5 {
		t.Fatalf("unexpected supervision config: %+v", cfg)
	}
	if cfg.HeartbeatInterval != 5*time.Second {
		t.Fatalf("heartbeat default lost: %v", cfg.HeartbeatInterval)
	}
	if len(cfg.Run.Mutators) != 1 || cfg.Run.Mutators[0] != "STRONGER" {
		t.Fatalf("unexpected mutators: %v", cfg.Run.Mutators)
	}
	if len(cfg.Run.TargetPatterns) != 1 {
		t.Fatalf("blank target pattern should be dropped: %v", cfg.Run.TargetPatterns)
	}
	if cfg.Run.TestTimeoutMS != 1500 || !cfg.Run.Verbose {
		t.Fatalf("unexpected run config: %+v", cfg.Run)
	}
	if len(command) != 3 || command[2] != "{addr}" {
		t.Fatalf("unexpected worker command: %v", command)
	}
}

func TestLoadServiceConfigKeepsDefaultsWhenUnset(t *testing.T) {
	path := writeConfig(t, `name = "mutctl-b"`)

	cfg, command, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.WorkerBindAddr != "127.0.0.1:0" || cfg.MaxAttempts != 3 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if len(cfg.Run.Mutators) != 1 || cfg.Run.Mutators[0] != "DEFAULTS" {
		t.Fatalf("default mutator group lost: %v", cfg.Run.Mutators)
	}
	if len(command) != 0 {
		t.Fatalf("expected no worker command, got %v", command)
	}
}

func TestLoadServiceConfigBadDuration(t *testing.T) {
	path := writeConfig(t, `session_timeout = "abc"`)
	if _, _, err := loadServiceConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadServiceConfigRejectsBadAttempts(t *testing.T) {
	path := writeConfig(t, `max_attempts = 0`)
	if _, _, err := loadServiceConfig(path); err == nil {
		t.Fatalf("expected validation error")
	}
}
