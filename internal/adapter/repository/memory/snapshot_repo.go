package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/simaogato/wealthflow-planner/internal/domain"
)

// SnapshotRepository keeps projection snapshots in process memory
type SnapshotRepository struct {
	mu        sync.RWMutex
	snapshots []domain.ProjectionSnapshot
}

// NewSnapshotRepository creates an empty repository
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{}
}

// Add stores a copy of snapshot
func (r *SnapshotRepository) Add(_ context.Context, snapshot *domain.ProjectionSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.snapshots {
		if existing.ID == snapshot.ID {
			return fmt.Errorf("snapshot %s already exists", snapshot.ID)
		}
	}
	r.snapshots = append(r.snapshots, *snapshot)
	return nil
}

// List returns copies of a scenario's snapshots, newest first
func (r *SnapshotRepository) List(_ context.Context, fingerprint string, limit int) ([]*domain.ProjectionSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*domain.ProjectionSnapshot
	for _, s := range r.snapshots {
		if s.ScenarioFingerprint == fingerprint {
			snapshot := s
			matches = append(matches, &snapshot)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].TakenAt.After(matches[j].TakenAt)
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// GetLatest returns the most recent snapshot of a scenario
func (r *SnapshotRepository) GetLatest(ctx context.Context, fingerprint string) (*domain.ProjectionSnapshot, error) {
	matches, _ := r.List(ctx, fingerprint, 1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("scenario %s: %w", fingerprint, domain.ErrSnapshotNotFound)
	}
	return matches[0], nil
}

// DeleteOlderThan removes snapshots taken before cutoff
func (r *SnapshotRepository) DeleteOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.snapshots[:0]
	for _, s := range r.snapshots {
		if s.TakenAt.Before(cutoff) {
			continue
		}
		kept = append(kept, s)
	}

	removed := len(r.snapshots) - len(kept)
	r.snapshots = kept
	return removed, nil
}
