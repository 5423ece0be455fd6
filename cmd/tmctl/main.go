package main

import (
	"fmt"
	"os"

	"github.com/yukikurage/time-management-api/internal/commands"
	"github.com/yukikurage/time-management-api/internal/config"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Execute root command
	if err := commands.Execute(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
