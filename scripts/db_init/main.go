package main

import (
	"context"
	"fmt"
	"os"

	"github.com/garnizeh/skillbridge/internal/config"
	applog "github.com/garnizeh/skillbridge/internal/log"
	"github.com/garnizeh/skillbridge/internal/storage"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Storage.Driver == config.DriverMemory {
		fmt.Fprintln(os.Stderr, "DB init error: memory driver has nothing to initialize")
		os.Exit(1)
	}
	logger, err := applog.New(os.Stderr, cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// create the schema and load seed data into an empty database
	store, err := storage.Open(ctx, cfg, logger, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Println("Database initialized successfully.")
}
