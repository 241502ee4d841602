package sqlstore

import (
	"context"

	"github.com/garnizeh/skillbridge/internal/db"
)

// WithBeforeStepWrite installs a hook that runs between the read and the
// compare-and-set of UpdateStepStatus.
func WithBeforeStepWrite(fn func(ctx context.Context, tx *db.Tx, roadmapID string) error) Option {
	return func(r *Repo) { r.beforeStepWrite = fn }
}
