package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-planner/internal/domain"
)

// snapshotRepository implements domain.SnapshotRepository
type snapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *DB) domain.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Add creates a new projection snapshot
func (r *snapshotRepository) Add(ctx context.Context, snapshot *domain.ProjectionSnapshot) error {
	query := `
		INSERT INTO projection_snapshots
			(id, scenario_fingerprint, scenario_name, taken_at, horizon_months, net_worth, net_worth_taxed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.ScenarioFingerprint,
		snapshot.ScenarioName,
		snapshot.TakenAt,
		snapshot.HorizonMonths,
		snapshot.NetWorth.String(),
		snapshot.NetWorthTaxed.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert projection snapshot: %w", err)
	}

	return nil
}

// List retrieves the snapshots of a scenario, newest first
func (r *snapshotRepository) List(ctx context.Context, fingerprint string, limit int) ([]*domain.ProjectionSnapshot, error) {
	// LIMIT NULL returns every row
	query := `
		SELECT id, scenario_fingerprint, scenario_name, taken_at, horizon_months, net_worth, net_worth_taxed
		FROM projection_snapshots
		WHERE scenario_fingerprint = $1
		ORDER BY taken_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, fingerprint, sql.NullInt64{Int64: int64(limit), Valid: limit > 0})
	if err != nil {
		return nil, fmt.Errorf("failed to query projection snapshots: %w", err)
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
		return nil, fmt.Errorf("error iterating projection snapshots: %w", err)
	}

	return snapshots, nil
}

// GetLatest retrieves the most recent snapshot of a scenario
func (r *snapshotRepository) GetLatest(ctx context.Context, fingerprint string) (*domain.ProjectionSnapshot, error) {
	query := `
		SELECT id, scenario_fingerprint, scenario_name, taken_at, horizon_months, net_worth, net_worth_taxed
		FROM projection_snapshots
		WHERE scenario_fingerprint = $1
		ORDER BY taken_at DESC
		LIMIT 1
	`

	snapshot, err := scanSnapshot(r.db.QueryRowContext(ctx, query, fingerprint))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("scenario %s: %w", fingerprint, domain.ErrSnapshotNotFound)
		}
		return nil, err
	}

	return snapshot, nil
}

// DeleteOlderThan removes snapshots taken before cutoff
func (r *snapshotRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projection_snapshots WHERE taken_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete projection snapshots: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted projection snapshots: %w", err)
	}

	return int(removed), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*domain.ProjectionSnapshot, error) {
	var snapshot domain.ProjectionSnapshot
	var netWorthStr, netWorthTaxedStr string

	err := row.Scan(
		&snapshot.ID,
		&snapshot.ScenarioFingerprint,
		&snapshot.ScenarioName,
		&snapshot.TakenAt,
		&snapshot.HorizonMonths,
		&netWorthStr,
		&netWorthTaxedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan projection snapshot: %w", err)
	}

	// Parse net worth columns (NUMERIC)
	if snapshot.NetWorth, err = decimal.NewFromString(netWorthStr); err != nil {
		return nil, fmt.Errorf("failed to parse net_worth: %w", err)
	}
	if snapshot.NetWorthTaxed, err = decimal.NewFromString(netWorthTaxedStr); err != nil {
		return nil, fmt.Errorf("failed to parse net_worth_taxed: %w", err)
	}
	snapshot.TakenAt = snapshot.TakenAt.UTC()

	return &snapshot, nil
}
