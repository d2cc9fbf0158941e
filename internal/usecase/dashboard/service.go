package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/usecase/planner"
)

// ErrMonthOutOfRange is returned when a month lies outside the computed plan
var ErrMonthOutOfRange = errors.New("month is outside the plan")

// NetWorthResult represents the net worth of a scenario at one month
type NetWorthResult struct {
	Month       int
	Total       decimal.Decimal // Assets - Liabilities
	Taxed       decimal.Decimal // Total net of tax on unrealised gains
	Assets      decimal.Decimal // Sum of started asset values
	Liabilities decimal.Decimal // Sum of loan balances
}

// PlanCalculator computes plans for scenarios
type PlanCalculator interface {
	CalculatePlan(ctx context.Context, req planner.PlanRequest) (*planner.PlanResult, error)
}

// DashboardService handles dashboard-related operations
type DashboardService struct {
	Planner PlanCalculator
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(calculator PlanCalculator) *DashboardService {
	return &DashboardService{
		Planner: calculator,
	}
}

// GetNetWorth calculates the net worth of a scenario at month
// Logic:
//   - Assets: Sum of the untaxed value of every asset that has started
//   - Liabilities: Sum of every loan's opening balance
//   - Total / Taxed: the plan's net worth series at month
func (s *DashboardService) GetNetWorth(ctx context.Context, req planner.PlanRequest, month int) (*NetWorthResult, error) {
	// 1. Compute (or fetch) the plan
	breakdown, err := s.breakdown(ctx, req, month)
	if err != nil {
		return nil, err
	}

	// 2. Split instruments into assets and liabilities
	assets := decimal.Zero
	liabilities := decimal.Zero
	for _, inst := range breakdown.Instruments {
		amount, err := domain.ToDecimal(inst.Value)
		if err != nil {
			return nil, fmt.Errorf("%s at month %d: %w", inst.Name, month, err)
		}
		if inst.Kind.IsLoan() {
			liabilities = liabilities.Add(amount)
		} else {
			assets = assets.Add(amount)
		}
	}

	// 3. Totals from the plan
	total, err := domain.ToDecimal(breakdown.NetWorth)
	if err != nil {
		return nil, fmt.Errorf("net worth at month %d: %w", month, err)
	}
	taxed, err := domain.ToDecimal(breakdown.NetWorthTaxed)
	if err != nil {
		return nil, fmt.Errorf("taxed net worth at month %d: %w", month, err)
	}

	return &NetWorthResult{
		Month:       month,
		Total:       total.Round(2),
		Taxed:       taxed.Round(2),
		Assets:      assets.Round(2),
		Liabilities: liabilities.Round(2),
	}, nil
}

// GetMonthBreakdown returns the per-instrument detail of one month
func (s *DashboardService) GetMonthBreakdown(ctx context.Context, req planner.PlanRequest, month int) (*domain.MonthBreakdown, error) {
	return s.breakdown(ctx, req, month)
}

func (s *DashboardService) breakdown(ctx context.Context, req planner.PlanRequest, month int) (*domain.MonthBreakdown, error) {
	result, err := s.Planner.CalculatePlan(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate plan: %w", err)
	}

	breakdown, ok := result.Plan.Breakdown(month)
	if !ok {
		return nil, fmt.Errorf("%w: %d not in 0..%d", ErrMonthOutOfRange, month, result.Plan.TotalMonths-1)
	}
	return &breakdown, nil
}
