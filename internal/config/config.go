package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// RunConfig scopes one mutation analysis run.
type RunConfig struct {
	Mutators       []string `toml:"mutators"`
	TargetPatterns []string `toml:"target_patterns"`
	TestTimeoutMS  int64    `toml:"test_timeout_ms"`
	Verbose        bool     `toml:"verbose"`
}

// CoordinatorConfig is the runtime configuration for one coordinator
// node.
type CoordinatorConfig struct {
	Name           string    `toml:"name"`
	OpsAddr        string    `toml:"ops_addr"`
	CorsOrigins    []string  `toml:"cors_origins"`
	WorkerBindAddr string    `toml:"worker_bind_addr"`
	SessionTimeout string    `toml:"session_timeout"`
	MaxAttempts    int       `toml:"max_attempts"`
	Run            RunConfig `toml:"run"`
}

func LoadCoordinatorConfig(path string) (CoordinatorConfig, error) {
	var cfg CoordinatorConfig
	if err := loadToml(path, &cfg); err != nil {
		return CoordinatorConfig{}, err
	}
	if cfg.Name == "" {
		cfg.Name = "mutctl"
	}
	if cfg.WorkerBindAddr == "" {
		cfg.WorkerBindAddr = "127.0.0.1:0"
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 3
	}
	if len(cfg.Run.Mutators) == 0 {
		cfg.Run.Mutators = []string{"DEFAULTS"}
	}
	if err := ValidateCoordinatorConfig(cfg); err != nil {
		return CoordinatorConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateCoordinatorConfig(cfg CoordinatorConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("coordinator config missing name")
	}
	if strings.TrimSpace(cfg.WorkerBindAddr) == "" {
		return fmt.Errorf("coordinator config missing worker_bind_addr")
	}
	if cfg.MaxAttempts < 1 {
		return fmt.Errorf("coordinator config max_attempts must be positive")
	}
	if cfg.SessionTimeout != "" {
		if _, err := time.ParseDuration(cfg.SessionTimeout); err != nil {
			return fmt.Errorf("coordinator config invalid session_timeout: %w", err)
		}
	}
	if cfg.Run.TestTimeoutMS < 0 {
		return fmt.Errorf("coordinator config test_timeout_ms must not be negative")
	}
	for i, name := range cfg.Run.Mutators {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("coordinator config run.mutators[%d] is blank", i)
		}
	}
	return nil
}

// SessionTimeoutDuration parses the configured session timeout; empty
// means no external deadline.
func (c CoordinatorConfig) SessionTimeoutDuration() time.Duration {
	if c.SessionTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.SessionTimeout)
	if err != nil {
		return 0
	}
	return d
}
