package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"sync"
	"time"

	"github.com/XSAM/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"modernc.org/sqlite"

	"notekeeper/internal/search"
)

// FoldFunction is the SQL scalar function registered on every SQLite connection.
// fold(x) returns x case-folded and stripped of diacritics, or NULL for NULL input.
const FoldFunction = "fold"

var (
	foldOnce sync.Once
	foldErr  error
)

// sqlitePragmas are applied once on the single pooled connection.
var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA synchronous = NORMAL",
}

// RegisterFoldFunction makes fold() available to SQLite connections opened afterwards.
// It is safe to call repeatedly.
func RegisterFoldFunction() error {
	foldOnce.Do(func() {
		foldErr = sqlite.RegisterDeterministicScalarFunction(FoldFunction, 1, sqliteFold)
	})
	return foldErr
}

func sqliteFold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return search.Fold(v), nil
	case []byte:
		return search.Fold(string(v)), nil
	default:
		return search.Fold(fmt.Sprint(v)), nil
	}
}

// NewSQLite opens the embedded SQLite note store at path (":memory:" for a throwaway store).
// The pool is capped at one connection: SQLite has a single writer, and an in-memory database
// only lives as long as its connection.
func NewSQLite(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("invalid sqlite config: path is required")
	}
	if err := RegisterFoldFunction(); err != nil {
		return nil, fmt.Errorf("register fold function: %w", err)
	}

	driverName, err := otelsql.Register("sqlite",
		otelsql.WithAttributes(semconv.DBSystemKey.String("sqlite")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, p := range sqlitePragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}
