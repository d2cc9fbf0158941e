package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/metrics"
	"github.com/simaogato/wealthflow-planner/internal/usecase/allocator"
)

// ErrInvalidScenario wraps every validation failure of a PlanRequest
var ErrInvalidScenario = errors.New("invalid scenario")

// PlanRequest is a complete scenario: settings, instruments and an optional split rule
type PlanRequest struct {
	Name      string
	Settings  domain.PlanSettings
	Portfolio domain.Portfolio
	Rule      *domain.SplitRule // Equal split when nil
}

// Validate checks the settings, the portfolio and the split rule targets
func (r PlanRequest) Validate() error {
	if err := r.Settings.Validate(); err != nil {
		return err
	}
	if err := r.Portfolio.Validate(); err != nil {
		return err
	}
	if r.Rule != nil {
		if err := allocator.ValidateTargets(*r.Rule, r.Portfolio.Stocks()); err != nil {
			return err
		}
	}
	return nil
}

// PlanResult is a computed plan with the fingerprint of the request that produced it
type PlanResult struct {
	Plan        *domain.MonthlyPlan
	Fingerprint string
	ComputedAt  time.Time
	Cached      bool
}

// PlannerService validates scenarios and serves plans, optionally through a cache
type PlannerService struct {
	Cache   domain.PlanCache // Optional
	Metrics *metrics.Metrics // Optional
	Logger  *slog.Logger
	Now     func() time.Time
}

// NewPlannerService creates a new PlannerService instance
func NewPlannerService(cache domain.PlanCache, m *metrics.Metrics, logger *slog.Logger) *PlannerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlannerService{
		Cache:   cache,
		Metrics: m,
		Logger:  logger,
		Now:     time.Now,
	}
}

// CalculatePlan computes the monthly plan of a scenario
// Logic:
//  1. Validate the request (settings, instruments, split rule)
//  2. Look the cache key up in the cache; cache errors are logged and treated as a miss
//  3. Compute the plan with the rule split, or the equal split when no rule is given,
//     and reject it if any number overflowed
//  4. Store the plan in the cache; failures are logged and do not fail the request
func (s *PlannerService) CalculatePlan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	// 1. Validate
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	fingerprint := Fingerprint(req)
	key := CacheKey(req)
	log := s.Logger.With("scenario", req.Name, "fingerprint", fingerprint)

	// 2. Cache lookup
	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, key)
		if err != nil {
			log.Warn("plan cache lookup failed", "error", err)
		} else if cached != nil {
			s.Metrics.ObservePlan(metrics.SourceCache, cached.TotalMonths, 0)
			log.Debug("plan served from cache")
			return &PlanResult{Plan: cached, Fingerprint: fingerprint, ComputedAt: s.Now(), Cached: true}, nil
		}
	}

	// 3. Compute
	var opts []Option
	if req.Rule != nil {
		opts = append(opts, WithStrategy(allocator.RuleSplit{Rule: *req.Rule}))
	}

	started := time.Now()
	plan := New(opts...).CalculatePortfolio(req.Portfolio, req.Settings)
	elapsed := time.Since(started)

	s.Metrics.ObservePlan(metrics.SourceComputed, plan.TotalMonths, elapsed)
	log.Debug("plan computed", "months", plan.TotalMonths, "elapsed", elapsed)

	// Finite inputs can still overflow; such a plan cannot be reported
	if err := plan.CheckFinite(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	// 4. Cache store
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, plan); err != nil {
			log.Warn("plan cache store failed", "error", err)
		}
	}

	return &PlanResult{Plan: plan, Fingerprint: fingerprint, ComputedAt: s.Now()}, nil
}
