package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/metrics"
	"github.com/simaogato/wealthflow-planner/internal/usecase/planner"
)

// PlanCalculator computes plans for scenarios
type PlanCalculator interface {
	CalculatePlan(ctx context.Context, req planner.PlanRequest) (*planner.PlanResult, error)
}

// SnapshotService records and queries the projected outcome of scenarios over time
type SnapshotService struct {
	Repo    domain.SnapshotRepository
	Planner PlanCalculator
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	Now     func() time.Time
}

// NewSnapshotService creates a new SnapshotService instance
func NewSnapshotService(repo domain.SnapshotRepository, calculator PlanCalculator, m *metrics.Metrics, logger *slog.Logger) *SnapshotService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotService{
		Repo:    repo,
		Planner: calculator,
		Metrics: m,
		Logger:  logger,
		Now:     time.Now,
	}
}

// Capture computes a scenario's plan and records its final month
// Logic:
//  1. Compute the plan (the planner validates the scenario)
//  2. Take net worth and taxed net worth of the last month
//  3. Validate and store the snapshot
func (s *SnapshotService) Capture(ctx context.Context, req planner.PlanRequest) (*domain.ProjectionSnapshot, error) {
	// 1. Compute
	result, err := s.Planner.CalculatePlan(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate plan: %w", err)
	}

	// 2. Summarise the closing month
	netWorth, netWorthTaxed := closing(result.Plan)
	total, err := domain.ToDecimal(netWorth)
	if err != nil {
		return nil, fmt.Errorf("closing net worth: %w", err)
	}
	taxed, err := domain.ToDecimal(netWorthTaxed)
	if err != nil {
		return nil, fmt.Errorf("closing taxed net worth: %w", err)
	}
	snapshot := &domain.ProjectionSnapshot{
		ID:                  uuid.New(),
		ScenarioFingerprint: result.Fingerprint,
		ScenarioName:        req.Name,
		TakenAt:             s.Now().UTC(),
		HorizonMonths:       req.Settings.HorizonMonths,
		NetWorth:            total.Round(2),
		NetWorthTaxed:       taxed.Round(2),
	}

	// 3. Store
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	if err := s.Repo.Add(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}

	s.Metrics.SnapshotRecorded()
	s.Logger.Info("snapshot recorded",
		"scenario", req.Name,
		"fingerprint", snapshot.ScenarioFingerprint,
		"net_worth", snapshot.NetWorth.String(),
	)
	return snapshot, nil
}

// List returns the snapshots of a scenario fingerprint, newest first
func (s *SnapshotService) List(ctx context.Context, fingerprint string, limit int) ([]*domain.ProjectionSnapshot, error) {
	if fingerprint == "" {
		return nil, errors.New("fingerprint cannot be empty")
	}
	if limit < 0 {
		return nil, errors.New("limit must not be negative")
	}

	snapshots, err := s.Repo.List(ctx, fingerprint, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

// Latest returns the most recent snapshot of a scenario fingerprint
func (s *SnapshotService) Latest(ctx context.Context, fingerprint string) (*domain.ProjectionSnapshot, error) {
	return s.Repo.GetLatest(ctx, fingerprint)
}

// Prune deletes snapshots older than retention
func (s *SnapshotService) Prune(ctx context.Context, retention time.Duration) (int, error) {
	if retention <= 0 {
		return 0, errors.New("retention must be positive")
	}

	cutoff := s.Now().UTC().Add(-retention)
	removed, err := s.Repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	s.Metrics.SnapshotsPruned(removed)
	if removed > 0 {
		s.Logger.Info("snapshots pruned", "removed", removed, "cutoff", cutoff)
	}
	return removed, nil
}

func closing(plan *domain.MonthlyPlan) (float64, float64) {
	n := len(plan.NetWorth)
	if n == 0 || len(plan.NetWorthTaxed) != n {
		return 0, 0
	}
	return plan.NetWorth[n-1], plan.NetWorthTaxed[n-1]
}
