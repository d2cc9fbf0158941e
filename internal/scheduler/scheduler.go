package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/usecase/planner"
)

// SnapshotJobs is the work the scheduler triggers
type SnapshotJobs interface {
	Capture(ctx context.Context, req planner.PlanRequest) (*domain.ProjectionSnapshot, error)
	Prune(ctx context.Context, retention time.Duration) (int, error)
}

// Scheduler records the baseline scenario on a cron schedule and prunes old snapshots.
type Scheduler struct {
	Cron      *cron.Cron
	Jobs      SnapshotJobs
	Scenario  planner.PlanRequest
	Retention time.Duration // Pruning is skipped when zero
	Logger    *slog.Logger
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler. Cron specs include a seconds field.
func NewScheduler(ctx context.Context, jobs SnapshotJobs, scenario planner.PlanRequest, retention time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Jobs:      jobs,
		Scenario:  scenario,
		Retention: retention,
		Logger:    logger.With("component", "scheduler"),
		Ctx:       ctx,
	}
}

// Register adds the snapshot task under spec
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.snapshotTask); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started", "jobs", len(s.Cron.Entries()))
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info("scheduler stopped")
}

// RunNow executes the snapshot task immediately.
func (s *Scheduler) RunNow() {
	s.snapshotTask()
}

func (s *Scheduler) snapshotTask() {
	s.Logger.Info("running snapshot task", "scenario", s.Scenario.Name)

	if _, err := s.Jobs.Capture(s.Ctx, s.Scenario); err != nil {
		s.Logger.Error("capture snapshot", "scenario", s.Scenario.Name, "error", err)
	}

	if s.Retention <= 0 {
		return
	}
	if _, err := s.Jobs.Prune(s.Ctx, s.Retention); err != nil {
		s.Logger.Error("prune snapshots", "error", err)
	}
}
