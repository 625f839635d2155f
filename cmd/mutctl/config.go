package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mutware/mutctl/internal/coordinator"
)

type fileRunConfig struct {
	Mutators       []string `toml:"mutators"`
	TargetPatterns []string `toml:"target_patterns"`
	TestTimeoutMS  int64    `toml:"test_timeout_ms"`
	Verbose        bool     `toml:"verbose"`
}

type fileConfig struct {
	Name              string        `toml:"name"`
	OpsAddr           string        `toml:"ops_addr"`
	CorsOrigins       []string      `toml:"cors_origins"`
	WorkerBindAddr    string        `toml:"worker_bind_addr"`
	WorkerCommand     []string      `toml:"worker_command"`
	SessionTimeout    string        `toml:"session_timeout"`
	MaxAttempts       int           `toml:"max_attempts"`
	HeartbeatInterval string        `toml:"heartbeat_interval"`
	Run               fileRunConfig `toml:"run"`
}

func loadServiceConfig(path string) (coordinator.ServiceConfig, []string, error) {
	cfg := coordinator.DefaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return coordinator.ServiceConfig{}, nil, fmt.Errorf("load coordinator config: %w", err)
	}

	if meta.IsDefined("name") {
		name := strings.TrimSpace(raw.Name)
		if name != "" {
			cfg.Name = name
		}
	}

	if meta.IsDefined("ops_addr") {
		cfg.OpsAddr = strings.TrimSpace(raw.OpsAddr)
	}

	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = raw.CorsOrigins
	}

	if meta.IsDefined("worker_bind_addr") {
		addr := strings.TrimSpace(raw.WorkerBindAddr)
		if addr != "" {
			cfg.WorkerBindAddr = addr
		}
	}

	if meta.IsDefined("session_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.SessionTimeout))
		if err != nil {
			return coordinator.ServiceConfig{}, nil, fmt.Errorf("parse session_timeout: %w", err)
		}
		cfg.SessionTimeout = d
	}

	if meta.IsDefined("max_attempts") {
		if raw.MaxAttempts < 1 {
			return coordinator.ServiceConfig{}, nil, fmt.Errorf("max_attempts must be positive, got %d", raw.MaxAttempts)
		}
		cfg.MaxAttempts = raw.MaxAttempts
	}

	if meta.IsDefined("heartbeat_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.HeartbeatInterval))
		if err != nil {
			return coordinator.ServiceConfig{}, nil, fmt.Errorf("parse heartbeat_interval: %w", err)
		}
		cfg.HeartbeatInterval = d
	}

	if meta.IsDefined("run", "mutators") {
		cfg.Run.Mutators = normalizeNames(raw.Run.Mutators)
	}

	if meta.IsDefined("run", "target_patterns") {
		cfg.Run.TargetPatterns = normalizeNames(raw.Run.TargetPatterns)
	}

	if meta.IsDefined("run", "test_timeout_ms") {
		if raw.Run.TestTimeoutMS < 0 {
			return coordinator.ServiceConfig{}, nil, fmt.Errorf("test_timeout_ms must not be negative, got %d", raw.Run.TestTimeoutMS)
		}
		cfg.Run.TestTimeoutMS = raw.Run.TestTimeoutMS
	}

	if meta.IsDefined("run", "verbose") {
		cfg.Run.Verbose = raw.Run.Verbose
	}

	return cfg, normalizeNames(raw.WorkerCommand), nil
}

func normalizeNames(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(in))
	for _, name := range in {
		v := strings.TrimSpace(name)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
