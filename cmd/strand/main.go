package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/strandhq/strand/internal/config"
	"github.com/strandhq/strand/internal/index"
	"github.com/strandhq/strand/internal/workspace"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}
	baseDir := filepath.Join(homeDir, ".strand")

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine working directory: %v\n", err)
		os.Exit(1)
	}
	root := workspace.FindRoot(cwd)

	cfg, err := config.LoadWithRepo(baseDir, cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	database, err := index.Init(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize index: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()
	index.ConfigurePool(database, cfg)

	app := newCLIApp(database, cfg, root)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
