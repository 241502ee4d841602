package db

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/garnizeh/skillbridge/pkg/repository"
)

// Initialize creates every table and index that does not exist yet, using
// schema/<dialect>.sql from schemaFS. It is safe to call on every startup.
// A missing or failing schema is reported as repository.ErrStorageUnavailable.
func Initialize(ctx context.Context, d *DB, schemaFS fs.FS) error {
	p := path.Join("schema", string(d.dialect)+".sql")
	b, err := fs.ReadFile(schemaFS, p)
	if err != nil {
		return fmt.Errorf("%w: read schema %s: %v", repository.ErrStorageUnavailable, p, err)
	}

	stmts := splitStatements(string(b))
	for i, stmt := range stmts {
		if _, err := d.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema statement %d: %w", i+1, err)
		}
	}

	d.logger.Info("schema initialized", slog.String("dialect", string(d.dialect)), slog.Int("statements", len(stmts)))
	return nil
}

// splitStatements splits a DDL file on semicolons, dropping blank entries and
// full-line "--" comments.
func splitStatements(src string) []string {
	var lines []string
	for _, line := range strings.Split(src, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}

	var out []string
	for _, part := range strings.Split(strings.Join(lines, "\n"), ";") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
