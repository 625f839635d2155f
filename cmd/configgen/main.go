package main

import (
	"flag"
	"log"

	"github.com/mutware/mutctl/internal/config"
)

func main() {
	kind := flag.String("kind", "coordinator", "config kind: coordinator")
	output := flag.String("output", "", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "", "config path for validation (defaults to cmd/mutctl/config.toml)")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		path := *input
		if path == "" {
			path = "cmd/mutctl/config.toml"
		}
		switch *kind {
		case "coordinator":
			if _, err := config.LoadCoordinatorConfig(path); err != nil {
				log.Fatal(err)
			}
		default:
			log.Fatalf("unknown kind: %s", *kind)
		}
		log.Printf("Validated %s config at %s", *kind, path)
		return
	}

	target := *output
	if target == "" {
		target = "cmd/mutctl/config.toml"
	}

	if err := config.WriteTemplate(target, *kind, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s config template to %s", *kind, target)
}
