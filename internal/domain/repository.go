package domain

import (
	"context"
	"time"
)

// SnapshotRepository defines the interface for projection snapshot persistence operations
type SnapshotRepository interface {
	// Add stores a new snapshot
	Add(ctx context.Context, snapshot *ProjectionSnapshot) error

	// List retrieves snapshots for a scenario fingerprint, newest first
	// If limit is 0, returns all matching snapshots
	List(ctx context.Context, fingerprint string, limit int) ([]*ProjectionSnapshot, error)

	// GetLatest retrieves the most recent snapshot for a scenario fingerprint
	// Returns ErrSnapshotNotFound when the scenario has never been recorded
	GetLatest(ctx context.Context, fingerprint string) (*ProjectionSnapshot, error)

	// DeleteOlderThan removes snapshots taken before cutoff and returns how many were removed
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// PlanCache defines the interface for caching computed plans by key
type PlanCache interface {
	// Get returns the cached plan, or nil without error on a miss
	Get(ctx context.Context, key string) (*MonthlyPlan, error)

	// Set stores a plan under key
	Set(ctx context.Context, key string, plan *MonthlyPlan) error
}
