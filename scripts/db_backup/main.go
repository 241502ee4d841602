package main

import (
	"fmt"
	"os"

	"github.com/garnizeh/skillbridge/internal/config"
	"github.com/garnizeh/skillbridge/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	src, err := storage.SQLiteFile(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}
	dst := src + ".bak"

	if err := storage.CopyFile(src, dst); err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database backup completed: %s\n", dst)
}
