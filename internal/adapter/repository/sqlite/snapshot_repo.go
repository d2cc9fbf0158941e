package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/simaogato/wealthflow-planner/internal/domain"
)

// SnapshotRepository persists projection snapshots to a SQLite database.
// Writes are serialised; reads run concurrently under WAL.
type SnapshotRepository struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSnapshotRepository opens (or creates) the SQLite database and runs migrations.
func NewSnapshotRepository(dbPath string) (*SnapshotRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SnapshotRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return r, nil
}

func (r *SnapshotRepository) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS projection_snapshots (
			id                   TEXT PRIMARY KEY,
			scenario_fingerprint TEXT NOT NULL,
			scenario_name        TEXT NOT NULL,
			taken_at             INTEGER NOT NULL,
			horizon_months       INTEGER NOT NULL,
			net_worth            TEXT NOT NULL,
			net_worth_taxed      TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_fingerprint ON projection_snapshots(scenario_fingerprint, taken_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// Add stores a snapshot. taken_at is kept as Unix nanoseconds.
func (r *SnapshotRepository) Add(ctx context.Context, snapshot *domain.ProjectionSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projection_snapshots
			(id, scenario_fingerprint, scenario_name, taken_at, horizon_months, net_worth, net_worth_taxed)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snapshot.ID.String(),
		snapshot.ScenarioFingerprint,
		snapshot.ScenarioName,
		snapshot.TakenAt.UnixNano(),
		snapshot.HorizonMonths,
		snapshot.NetWorth.String(),
		snapshot.NetWorthTaxed.String(),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// List returns the snapshots of a scenario, newest first. A limit of 0 returns all of them.
func (r *SnapshotRepository) List(ctx context.Context, fingerprint string, limit int) ([]*domain.ProjectionSnapshot, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, scenario_fingerprint, scenario_name, taken_at, horizon_months, net_worth, net_worth_taxed
		FROM projection_snapshots
		WHERE scenario_fingerprint = ?
		ORDER BY taken_at DESC
		LIMIT ?`,
		fingerprint, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*domain.ProjectionSnapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snapshots, nil
}

// GetLatest returns the most recent snapshot of a scenario
func (r *SnapshotRepository) GetLatest(ctx context.Context, fingerprint string) (*domain.ProjectionSnapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, scenario_fingerprint, scenario_name, taken_at, horizon_months, net_worth, net_worth_taxed
		FROM projection_snapshots
		WHERE scenario_fingerprint = ?
		ORDER BY taken_at DESC
		LIMIT 1`,
		fingerprint,
	)

	snapshot, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("scenario %s: %w", fingerprint, domain.ErrSnapshotNotFound)
	}
	return snapshot, err
}

// DeleteOlderThan removes snapshots taken before cutoff
func (r *SnapshotRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.db.ExecContext(ctx, `DELETE FROM projection_snapshots WHERE taken_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("delete snapshots: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted snapshots: %w", err)
	}
	return int(removed), nil
}

// Close closes the database.
func (r *SnapshotRepository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*domain.ProjectionSnapshot, error) {
	var (
		snapshot           domain.ProjectionSnapshot
		takenAt            int64
		netWorth, netTaxed string
	)

	err := row.Scan(
		&snapshot.ID,
		&snapshot.ScenarioFingerprint,
		&snapshot.ScenarioName,
		&takenAt,
		&snapshot.HorizonMonths,
		&netWorth,
		&netTaxed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}

	snapshot.TakenAt = time.Unix(0, takenAt).UTC()
	if snapshot.NetWorth, err = decimal.NewFromString(netWorth); err != nil {
		return nil, fmt.Errorf("parse net_worth: %w", err)
	}
	if snapshot.NetWorthTaxed, err = decimal.NewFromString(netTaxed); err != nil {
		return nil, fmt.Errorf("parse net_worth_taxed: %w", err)
	}
	return &snapshot, nil
}
