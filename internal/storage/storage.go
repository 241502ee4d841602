// Package storage opens the repository.Store selected by configuration.
package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	dbfs "github.com/garnizeh/skillbridge/db"
	"github.com/garnizeh/skillbridge/internal/config"
	"github.com/garnizeh/skillbridge/internal/db"
	"github.com/garnizeh/skillbridge/internal/repository/memory"
	"github.com/garnizeh/skillbridge/internal/repository/sqlstore"
	"github.com/garnizeh/skillbridge/internal/seed"
	"github.com/garnizeh/skillbridge/pkg/repository"
)

// Open returns the configured store with its schema in place. When seed is
// true the demo data is loaded into an empty store before returning.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, withSeed bool) (repository.Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var store repository.Store
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store = memory.New()
	default:
		conn, err := db.New(ctx, cfg.Storage.Driver, cfg.DSN(), logger)
		if err != nil {
			return nil, err
		}
		if err := db.Initialize(ctx, conn, dbfs.Schema); err != nil {
			_ = conn.Close()
			return nil, err
		}
		store = sqlstore.New(conn, logger)
	}

	if withSeed {
		if err := Seed(ctx, store, dbfs.SeedFiles, logger); err != nil {
			_ = store.Close()
			return nil, err
		}
	}

	logger.Info("storage ready", slog.String("driver", cfg.Storage.Driver), slog.Bool("seeded", withSeed))
	return store, nil
}

// Seed loads the demo data from fsys into an empty store. On a SQL store the
// user count check and every insert share one transaction, so a failed seed
// leaves the store empty and the next start tries again.
func Seed(ctx context.Context, store repository.Store, fsys fs.FS, logger *slog.Logger) error {
	if repo, ok := store.(*sqlstore.Repo); ok {
		return repo.InTx(ctx, func(tx *sqlstore.Repo) error {
			return seed.Run(ctx, tx, fsys, logger)
		})
	}
	return seed.Run(ctx, store, fsys, logger)
}

// SQLiteFile returns the database file behind the configured DSN. It fails for
// drivers other than sqlite and for in-memory databases.
func SQLiteFile(cfg *config.Config) (string, error) {
	if d := cfg.Storage.Driver; d != "" && d != config.DriverSQLite {
		return "", fmt.Errorf("file copy needs the sqlite driver, got %q", d)
	}
	path := strings.TrimPrefix(cfg.DSN(), "file:")
	path, query, _ := strings.Cut(path, "?")
	if path == "" || path == ":memory:" || strings.Contains(query, "mode=memory") {
		return "", fmt.Errorf("dsn %q does not name a database file", cfg.DSN())
	}
	return path, nil
}

// CopyFile copies src to dst, replacing dst.
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}
	return nil
}
