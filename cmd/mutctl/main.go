package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mutware/mutctl/internal/coordinator"
	"github.com/mutware/mutctl/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to coordinator config.toml")
	flag.Parse()

	logging.ConfigureRuntime()

	cfg := coordinator.DefaultServiceConfig()
	workerCommand := []string(nil)
	if *configPath != "" {
		loaded, command, err := loadServiceConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mutctl: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
		workerCommand = command
	}

	var launcher coordinator.Launcher
	if len(workerCommand) > 0 {
		execLauncher, err := coordinator.NewExecLauncher(workerCommand)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mutctl: %v\n", err)
			os.Exit(1)
		}
		launcher = execLauncher
	}

	svc := coordinator.NewServiceWithConfig(cfg, launcher)
	if err := svc.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "mutctl: %v\n", err)
		os.Exit(1)
	}
}
