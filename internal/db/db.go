package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/garnizeh/skillbridge/pkg/repository"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect selects the SQL flavour of the backing store.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// sqlitePragmas are applied to every SQLite connection.
var sqlitePragmas = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
}

// Querier is satisfied by both *DB and *Tx so repository code can run inside
// or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRow(ctx context.Context, query string, args ...any) *sql.Row
	QueryRows(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// DB wraps the sql.DB for connection management
type DB struct {
	conn    *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

var _ Querier = (*DB)(nil)

// New opens and pings a database. driver is "sqlite" or "pgx" (alias
// "postgres"). Failure to reach the store is reported as
// repository.ErrStorageUnavailable.
func New(ctx context.Context, driver, dsn string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		dialect    Dialect
		driverName string
	)
	switch driver {
	case "", "sqlite":
		dialect, driverName = DialectSQLite, "sqlite"
		dsn = withPragmas(dsn)
	case "pgx", "postgres":
		dialect, driverName = DialectPostgres, "pgx"
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open db: %v", repository.ErrStorageUnavailable, err)
	}
	if dialect == DialectSQLite {
		// one connection keeps :memory: databases alive and serializes writers
		conn.SetMaxOpenConns(1)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: ping db: %v", repository.ErrStorageUnavailable, err)
	}

	logger.Info("database opened", slog.String("dialect", string(dialect)))
	return &DB{conn: conn, dialect: dialect, logger: logger}, nil
}

func withPragmas(dsn string) string {
	if dsn == "" {
		dsn = ":memory:"
	}
	var missing []string
	for _, p := range sqlitePragmas {
		if !strings.Contains(dsn, p) {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(missing, "&")
}

// Close closes the DB connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Dialect reports the SQL flavour of the connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Exec executes a query
func (db *DB) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := db.conn.ExecContext(ctx, db.rebind(query), args...)
	return res, Classify(err)
}

// QueryRow executes a query that is expected to return at most one row
func (db *DB) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.conn.QueryRowContext(ctx, db.rebind(query), args...)
}

// QueryRows executes a query returning rows; the caller closes them.
func (db *DB) QueryRows(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := db.conn.QueryContext(ctx, db.rebind(query), args...)
	return rows, Classify(err)
}

// GetConn returns the underlying sql.DB
func (db *DB) GetConn() *sql.DB {
	return db.conn
}

// WithTx runs fn inside a transaction. The transaction commits when fn returns
// nil and rolls back when fn returns an error or panics; the connection is
// back in the pool before WithTx returns. fn's error is returned as is; the
// Tx helpers already classify driver errors.
func (db *DB) WithTx(ctx context.Context, fn func(tx *Tx) error) (err error) {
	sqlTx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return Classify(fmt.Errorf("begin tx: %w", err))
	}
	tx := &Tx{tx: sqlTx, dialect: db.dialect}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				db.logger.Warn("rollback failed", slog.Any("err", rbErr))
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return Classify(fmt.Errorf("commit: %w", err))
	}
	return nil
}

func (db *DB) rebind(query string) string {
	return rebind(db.dialect, query)
}

// Tx is a transaction with the same helpers as DB.
type Tx struct {
	tx      *sql.Tx
	dialect Dialect
}

var _ Querier = (*Tx)(nil)

func (t *Tx) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := t.tx.ExecContext(ctx, rebind(t.dialect, query), args...)
	return res, Classify(err)
}

func (t *Tx) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, rebind(t.dialect, query), args...)
}

func (t *Tx) QueryRows(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := t.tx.QueryContext(ctx, rebind(t.dialect, query), args...)
	return rows, Classify(err)
}

// rebind rewrites ? placeholders to $n for postgres.
func rebind(d Dialect, query string) string {
	if d != DialectPostgres || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
