package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=wealthflow sslmode=disable"
// Logic:
//  1. Open the pool
//  2. Ping until the server answers or the context ends (the database may still be starting)
//  3. Create the schema if it does not exist
func NewDB(ctx context.Context, connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := ping(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	wrapped := &DB{DB: db}
	if err := wrapped.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return wrapped, nil
}

func ping(ctx context.Context, db *sql.DB) error {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		err := db.PingContext(ctx)
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
		case <-ticker.C:
		}
	}
}

// EnsureSchema creates the tables used by the repositories
func (db *DB) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS projection_snapshots (
			id                   UUID PRIMARY KEY,
			scenario_fingerprint TEXT NOT NULL,
			scenario_name        TEXT NOT NULL,
			taken_at             TIMESTAMPTZ NOT NULL,
			horizon_months       INTEGER NOT NULL,
			net_worth            NUMERIC(20, 2) NOT NULL,
			net_worth_taxed      NUMERIC(20, 2) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_projection_snapshots_fingerprint
			ON projection_snapshots (scenario_fingerprint, taken_at DESC)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
