package main

import (
	"log"

	corecmd "github.com/MockingJay-dev/BrainVault/core/cmd"
	"github.com/MockingJay-dev/BrainVault/internal/app"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",
		LoadConfig:        app.LoadConfig,
		Bootstrap:         app.Bootstrap,
	})
	if err != nil {
		log.Fatalf("brainvault: %v", err)
	}
}
