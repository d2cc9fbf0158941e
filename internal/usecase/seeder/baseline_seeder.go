package seeder

import (
	"context"
	"errors"

	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/usecase/planner"
)

// SnapshotRecorder captures and looks up scenario snapshots
type SnapshotRecorder interface {
	Latest(ctx context.Context, fingerprint string) (*domain.ProjectionSnapshot, error)
	Capture(ctx context.Context, req planner.PlanRequest) (*domain.ProjectionSnapshot, error)
}

// BaselineSeeder makes sure the baseline scenario has a snapshot to compare against
type BaselineSeeder struct {
	recorder SnapshotRecorder
}

// NewBaselineSeeder creates a new BaselineSeeder instance
func NewBaselineSeeder(recorder SnapshotRecorder) *BaselineSeeder {
	return &BaselineSeeder{
		recorder: recorder,
	}
}

// Seed records a first snapshot of req if its fingerprint has none yet
// Returns true when a snapshot was recorded
func (s *BaselineSeeder) Seed(ctx context.Context, req planner.PlanRequest) (bool, error) {
	// Try to get the latest snapshot for this scenario
	_, err := s.recorder.Latest(ctx, planner.Fingerprint(req))
	if err == nil {
		// Snapshot exists, no action needed
		return false, nil
	}
	if !errors.Is(err, domain.ErrSnapshotNotFound) {
		return false, err
	}

	if _, err := s.recorder.Capture(ctx, req); err != nil {
		return false, err
	}
	return true, nil
}
