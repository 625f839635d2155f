package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "coordinator":
		return coordinatorTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const coordinatorTemplate = `name = "mutctl"
ops_addr = ":9300"
cors_origins = ["http://localhost:3000"]
worker_bind_addr = "127.0.0.1:0"
session_timeout = "10m"
max_attempts = 3

[run]
mutators = ["DEFAULTS"]
target_patterns = []
test_timeout_ms = 4000
verbose = false
`
