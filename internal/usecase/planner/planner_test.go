package planner

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/usecase/allocator"
)

func mortgage(modify func(*domain.LoanInit)) domain.Loan {
	in := domain.LoanInit{
		Name:           "Mortgage",
		Principal:      3_000_000,
		YearlyRate:     0.05,
		RateConvention: domain.RateConventionEffective,
		TermYears:      25,
	}
	if modify != nil {
		modify(&in)
	}
	return domain.NewLoan(in, nil)
}

func indexFund(modify func(*domain.AssetInit)) domain.Asset {
	in := domain.AssetInit{
		Name:         "Index Fund",
		InitialValue: 100_000,
		CurrentValue: 100_000,
		YearlyRate:   0.07,
		TaxRate:      0.22,
	}
	if modify != nil {
		modify(&in)
	}
	return domain.NewStock(in, nil)
}

func apartment() domain.Asset {
	return domain.NewProperty(domain.AssetInit{
		Name:         "Apartment",
		InitialValue: 4_000_000,
		CurrentValue: 4_000_000,
		YearlyRate:   0.03,
		TaxRate:      0.22,
	}, nil)
}

func TestCalculateMonthlyPlan_TwoYears(t *testing.T) {
	loans := []domain.Loan{mortgage(nil)}
	stocks := []domain.Asset{indexFund(nil)}
	properties := []domain.Asset{apartment()}

	plan := CalculateMonthlyPlan(30_000, loans, stocks, properties, 24, 0.025)

	// Basic shape: months 0..24
	assert.Len(t, plan.NetWorth, 25)
	assert.Len(t, plan.NetWorthTaxed, 25)
	require.Len(t, plan.Loans, 1)
	require.Len(t, plan.StockInvestments, 1)
	require.Len(t, plan.PropertyInvestments, 1)

	l := plan.Loans[0]
	assert.Greater(t, l.Principals[0], l.Principals[12])
	assert.Greater(t, l.PrincipalPayments[1], 0.0)

	// Net worth equals the started assets minus loan balances
	for m := 0; m < 25; m++ {
		stock, _ := plan.StockInvestments[0].TotalValues.At(m)
		property, _ := plan.PropertyInvestments[0].TotalValues.At(m)
		assert.InDelta(t, stock+property-l.Principals[m], plan.NetWorth[m], 1e-6, "month %d", m)
	}
}

func TestCalculateMonthlyPlan_InvestableSurplus(t *testing.T) {
	loan := mortgage(nil)
	stock := indexFund(nil)

	plan := CalculateMonthlyPlan(30_000, []domain.Loan{loan}, []domain.Asset{stock}, nil, 24, 0.025)
	sch := loan.Schedule(25)
	invested := plan.StockInvestments[0].InvestedValues

	for _, m := range []int{0, 11, 12, 24} {
		income := 30_000 * math.Pow(1.025, float64(m/12))
		want := income - (sch.PrincipalPaid[m] + sch.InterestPaid[m]) + sch.InterestPaid[m]*InterestTaxShieldRate
		assert.InDelta(t, want, invested[m], 1e-9, "month %d", m)
	}

	// Income steps once per 12-month block
	noLoan := CalculateMonthlyPlan(1000, nil, []domain.Asset{stock}, nil, 24, 0.1)
	assert.InDelta(t, 1000, noLoan.StockInvestments[0].InvestedValues[11], 1e-9)
	assert.InDelta(t, 1100, noLoan.StockInvestments[0].InvestedValues[12], 1e-9)
	assert.InDelta(t, 1210, noLoan.StockInvestments[0].InvestedValues[24], 1e-9)
}

func TestCalculateMonthlyPlan_EqualSplitAcrossStocks(t *testing.T) {
	a := indexFund(nil)
	b := indexFund(func(in *domain.AssetInit) { in.Name = "Global" })

	plan := CalculateMonthlyPlan(2000, nil, []domain.Asset{a, b}, nil, 12, 0)

	for _, sp := range plan.StockInvestments {
		assert.InDelta(t, 1000, sp.InvestedValues[5], 1e-9)
	}
}

func TestCalculateMonthlyPlan_DownPaymentSellOff(t *testing.T) {
	stock := indexFund(nil)
	other := indexFund(func(in *domain.AssetInit) { in.Name = "Other" })
	stranger := uuid.New()

	loans := []domain.Loan{
		mortgage(func(in *domain.LoanInit) {
			in.StartMonth = 6
			in.DownPaymentAmount = 20_000
			in.DownPaymentSourceID = &stock.ID
		}),
		mortgage(func(in *domain.LoanInit) {
			in.Name = "Cabin"
			in.StartMonth = 6
			in.DownPaymentAmount = 5_000
			in.DownPaymentSourceID = &stock.ID
		}),
		mortgage(func(in *domain.LoanInit) {
			in.Name = "Unknown source"
			in.DownPaymentAmount = 1_000
			in.DownPaymentSourceID = &stranger
		}),
		mortgage(func(in *domain.LoanInit) {
			in.Name = "Too late"
			in.StartMonth = 50
			in.DownPaymentAmount = 1_000
			in.DownPaymentSourceID = &stock.ID
		}),
	}

	plan := CalculateMonthlyPlan(0, loans, []domain.Asset{stock, other}, nil, 12, 0)

	require.Len(t, plan.StockSellOffs, 2)
	row := plan.StockSellOffs[stock.ID]
	require.Len(t, row, 13)
	assert.Equal(t, 25_000.0, row[6])
	assert.Equal(t, 25_000.0, sumOf(row))
	assert.Zero(t, sumOf(plan.StockSellOffs[other.ID]))
	assert.NotContains(t, plan.StockSellOffs, stranger)

	// Both stocks receive the same contributions, only the source is sold off
	before, _ := plan.StockInvestments[0].TotalValues.At(6)
	beforeOther, _ := plan.StockInvestments[1].TotalValues.At(6)
	assert.Less(t, before, beforeOther)
}

func TestCalculateMonthlyPlan_TotalCostIgnoresHorizon(t *testing.T) {
	loan := mortgage(nil)

	plan := CalculateMonthlyPlan(30_000, []domain.Loan{loan}, nil, nil, 12, 0)

	lp := plan.Loans[0]
	assert.InDelta(t, loan.MonthlyPayment()*300, lp.TotalCost, 1e-6)
	assert.InDelta(t, 17_344.15, lp.MonthlyPayment, 0.005)

	paidInHorizon := sumOf(lp.RatePayments) + sumOf(lp.PrincipalPayments)
	assert.Greater(t, lp.TotalCost, paidInHorizon*10)
}

func TestCalculateMonthlyPlan_IsPure(t *testing.T) {
	source := indexFund(nil)
	loans := []domain.Loan{mortgage(func(in *domain.LoanInit) {
		in.DownPaymentAmount = 50_000
		in.DownPaymentSourceID = &source.ID
		in.DeferredMonths = 6
	})}
	stocks := []domain.Asset{source}
	properties := []domain.Asset{apartment()}

	first := CalculateMonthlyPlan(40_000, loans, stocks, properties, 120, 0.02)
	second := CalculateMonthlyPlan(40_000, loans, stocks, properties, 120, 0.02)

	assert.Equal(t, first, second)
	assert.Equal(t, 50_000.0, loans[0].DownPaymentAmount)
}

func TestCalculateMonthlyPlan_AssetsStartLater(t *testing.T) {
	late := indexFund(func(in *domain.AssetInit) { in.StartMonth = 10 })

	plan := CalculateMonthlyPlan(1000, nil, []domain.Asset{late}, nil, 12, 0)

	for m := 0; m < 10; m++ {
		_, ok := plan.StockInvestments[0].TotalValues.At(m)
		assert.False(t, ok)
		assert.Zero(t, plan.NetWorth[m])
	}
	assert.Equal(t, 100_000.0, plan.NetWorth[10])
}

func TestCalculateMonthlyPlan_TaxedNetWorth(t *testing.T) {
	plan := CalculateMonthlyPlan(10_000, []domain.Loan{mortgage(nil)}, []domain.Asset{indexFund(nil)}, []domain.Asset{apartment()}, 60, 0)

	assert.Equal(t, plan.NetWorth[0], plan.NetWorthTaxed[0])
	for m := 1; m <= 60; m++ {
		assert.Less(t, plan.NetWorthTaxed[m], plan.NetWorth[m], "month %d", m)
	}
}

func TestCalculateMonthlyPlan_Degenerate(t *testing.T) {
	t.Run("zero horizon has one month", func(t *testing.T) {
		plan := CalculateMonthlyPlan(1000, nil, []domain.Asset{indexFund(nil)}, nil, 0, 0)
		assert.Len(t, plan.NetWorth, 1)
		assert.Equal(t, 100_000.0, plan.NetWorth[0])
	})

	t.Run("negative horizon is empty", func(t *testing.T) {
		plan := CalculateMonthlyPlan(1000, []domain.Loan{mortgage(nil)}, nil, nil, -10, 0)
		assert.Zero(t, plan.TotalMonths)
		assert.Empty(t, plan.NetWorth)
	})

	t.Run("no instruments", func(t *testing.T) {
		plan := CalculateMonthlyPlan(1000, nil, nil, nil, 12, 0)
		assert.Len(t, plan.NetWorth, 13)
		assert.Empty(t, plan.StockSellOffs)
	})
}

func TestPlanner_WithRuleStrategy(t *testing.T) {
	a := indexFund(nil)
	b := indexFund(func(in *domain.AssetInit) { in.Name = "Bonds" })
	rule := domain.SplitRule{Items: []domain.SplitRuleItem{
		{TargetStockID: b.ID, Type: domain.SplitRuleItemTypeFixed, Value: decimal.NewFromInt(300), Priority: 1},
		{TargetStockID: a.ID, Type: domain.SplitRuleItemTypeRemainder, Priority: 2},
	}}

	plan := New(WithStrategy(allocator.RuleSplit{Rule: rule})).Calculate(1000, nil, []domain.Asset{a, b}, nil, 12, 0)

	assert.InDelta(t, 700, plan.StockInvestments[0].InvestedValues[3], 1e-9)
	assert.InDelta(t, 300, plan.StockInvestments[1].InvestedValues[3], 1e-9)

	// A nil strategy keeps the default
	p := New(WithStrategy(nil))
	assert.IsType(t, allocator.EqualSplit{}, p.strategy)
}

func sumOf(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}
