package dashboard

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/usecase/planner"
)

// MockPlanCalculator is a mock implementation of PlanCalculator
type MockPlanCalculator struct {
	mock.Mock
}

func (m *MockPlanCalculator) CalculatePlan(ctx context.Context, req planner.PlanRequest) (*planner.PlanResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planner.PlanResult), args.Error(1)
}

func testScenario() planner.PlanRequest {
	stock := domain.NewStock(domain.AssetInit{Name: "Index Fund", InitialValue: 100_000, CurrentValue: 100_000, YearlyRate: 0.07, TaxRate: 0.22}, nil)
	property := domain.NewProperty(domain.AssetInit{Name: "Apartment", InitialValue: 4_000_000, CurrentValue: 4_000_000, YearlyRate: 0.03, TaxRate: 0.22}, nil)
	loan := domain.NewLoan(domain.LoanInit{Name: "Mortgage", Principal: 3_000_000, YearlyRate: 0.05, TermYears: 25}, nil)

	return planner.PlanRequest{
		Name:      "baseline",
		Settings:  domain.PlanSettings{MonthlyIncome: 30_000, YearlyInflation: 0.025, HorizonMonths: 24},
		Portfolio: domain.NewPortfolio(stock, property, loan),
	}
}

func TestDashboardService_GetNetWorth(t *testing.T) {
	service := NewDashboardService(planner.NewPlannerService(nil, nil, nil))

	result, err := service.GetNetWorth(context.Background(), testScenario(), 0)

	require.NoError(t, err)
	assert.True(t, result.Assets.Equal(decimal.NewFromInt(4_100_000)), "assets: %s", result.Assets)
	assert.True(t, result.Liabilities.Equal(decimal.NewFromInt(3_000_000)), "liabilities: %s", result.Liabilities)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(1_100_000)), "total: %s", result.Total)
	assert.True(t, result.Taxed.Equal(result.Total))
}

func TestDashboardService_GetNetWorth_Consistent(t *testing.T) {
	service := NewDashboardService(planner.NewPlannerService(nil, nil, nil))

	result, err := service.GetNetWorth(context.Background(), testScenario(), 24)

	require.NoError(t, err)
	diff := result.Assets.Sub(result.Liabilities).Sub(result.Total).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(0.02)), "diff: %s", diff)
	assert.True(t, result.Taxed.LessThan(result.Total))
}

func TestDashboardService_GetMonthBreakdown(t *testing.T) {
	service := NewDashboardService(planner.NewPlannerService(nil, nil, nil))

	breakdown, err := service.GetMonthBreakdown(context.Background(), testScenario(), 12)

	require.NoError(t, err)
	require.Len(t, breakdown.Instruments, 3)
	assert.Equal(t, 12, breakdown.Month)
	assert.Greater(t, breakdown.Instruments[0].Contribution, 0.0)
	assert.Greater(t, breakdown.Instruments[2].Interest, 0.0)
}

func TestDashboardService_Errors(t *testing.T) {
	ctx := context.Background()
	req := testScenario()

	t.Run("month outside the plan", func(t *testing.T) {
		service := NewDashboardService(planner.NewPlannerService(nil, nil, nil))

		_, err := service.GetNetWorth(ctx, req, 25)

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMonthOutOfRange))
	})

	t.Run("planner failure", func(t *testing.T) {
		calculator := new(MockPlanCalculator)
		calculator.On("CalculatePlan", ctx, mock.Anything).Return(nil, errors.New("invalid scenario: boom"))

		_, err := NewDashboardService(calculator).GetMonthBreakdown(ctx, req, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to calculate plan")
		calculator.AssertExpectations(t)
	})

	t.Run("non-finite plan values", func(t *testing.T) {
		overflow := &domain.MonthlyPlan{
			TotalMonths:   1,
			NetWorth:      []float64{math.Inf(1)},
			NetWorthTaxed: []float64{math.NaN()},
		}
		calculator := new(MockPlanCalculator)
		calculator.On("CalculatePlan", ctx, mock.Anything).Return(&planner.PlanResult{Plan: overflow}, nil)

		_, err := NewDashboardService(calculator).GetNetWorth(ctx, req, 0)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNonFinite)
	})
}
