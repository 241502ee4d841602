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
	dst, err := storage.SQLiteFile(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Restore error: %v\n", err)
		os.Exit(1)
	}
	src := dst + ".bak"

	if err := storage.CopyFile(src, dst); err != nil {
		fmt.Fprintf(os.Stderr, "Restore error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database restore completed from %s\n", src)
}
