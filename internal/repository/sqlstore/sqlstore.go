// Package sqlstore implements the repository interfaces on a relational
// database (SQLite or PostgreSQL) through the internal/db wrapper.
package sqlstore

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/garnizeh/skillbridge/internal/db"
	"github.com/garnizeh/skillbridge/pkg/models"
	"github.com/garnizeh/skillbridge/pkg/repository"
)

const defaultMaxAttempts = 5

// Repo implements repository interfaces using the internal DB wrapper.
type Repo struct {
	conn *db.DB
	// q is conn, or the open transaction for a Repo handed out by InTx.
	q           db.Querier
	tx          *db.Tx
	logger      *slog.Logger
	clock       func() time.Time
	monotonic   bool
	maxAttempts int

	// beforeStepWrite runs inside the step update transaction between the
	// read and the compare-and-set. Tests use it to simulate a concurrent writer.
	beforeStepWrite func(ctx context.Context, tx *db.Tx, roadmapID string) error

	stamps *stampState
}

// stampState is shared between a Repo and its transaction-scoped copies.
type stampState struct {
	mu   sync.Mutex
	last time.Time
}

// Ensure Repo implements the public interfaces.
var _ repository.UserRepo = (*Repo)(nil)
var _ repository.CourseRepo = (*Repo)(nil)
var _ repository.GapReportRepo = (*Repo)(nil)
var _ repository.RoadmapRepo = (*Repo)(nil)
var _ repository.Store = (*Repo)(nil)

// Option configures a Repo.
type Option func(*Repo)

// WithClock replaces the time source used for created_at/generated_at.
// Timestamps from a custom clock are stored exactly as returned.
func WithClock(clock func() time.Time) Option {
	return func(r *Repo) {
		if clock != nil {
			r.clock = clock
			r.monotonic = false
		}
	}
}

// WithMaxAttempts bounds the retries of a step status update that loses a
// concurrent write.
func WithMaxAttempts(n int) Option {
	return func(r *Repo) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

func New(conn *db.DB, logger *slog.Logger, opts ...Option) *Repo {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	r := &Repo{
		conn:        conn,
		q:           conn,
		logger:      logger,
		clock:       time.Now,
		monotonic:   true,
		maxAttempts: defaultMaxAttempts,
		stamps:      &stampState{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Close closes the underlying database.
func (r *Repo) Close() error {
	return r.conn.Close()
}

// InTx runs fn with a Repo whose operations all share one transaction. The
// transaction commits when fn returns nil. The Repo passed to fn must not be
// used after fn returns.
func (r *Repo) InTx(ctx context.Context, fn func(tx *Repo) error) error {
	if r.tx != nil {
		return fn(r)
	}
	return r.conn.WithTx(ctx, func(tx *db.Tx) error {
		scoped := &Repo{
			conn:            r.conn,
			q:               tx,
			tx:              tx,
			logger:          r.logger,
			clock:           r.clock,
			monotonic:       r.monotonic,
			maxAttempts:     r.maxAttempts,
			beforeStepWrite: r.beforeStepWrite,
			stamps:          r.stamps,
		}
		return fn(scoped)
	})
}

// stamp returns the insertion timestamp. With the wall clock, timestamps
// handed out by one Repo strictly increase so the later of two inserts is
// always "current".
func (r *Repo) stamp() string {
	r.stamps.mu.Lock()
	defer r.stamps.mu.Unlock()

	t := r.clock().UTC().Truncate(time.Microsecond)
	last := r.stamps.last
	if r.monotonic && !last.IsZero() && !t.After(last) {
		t = last.Add(time.Microsecond)
	}
	r.stamps.last = t
	return t.Format(models.TimeLayout)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloatPtr(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
