package planner

import (
	"math"

	"github.com/google/uuid"
	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/usecase/allocator"
)

// InterestTaxShieldRate is the notional marginal income tax rate refunded on loan interest.
// It applies to every loan alike and is independent of any instrument's own tax rate.
const InterestTaxShieldRate = 0.22

// Planner turns instruments and income into a MonthlyPlan.
// A Planner holds no state between calls and is safe for concurrent use.
type Planner struct {
	strategy allocator.Strategy
}

// Option configures a Planner
type Option func(*Planner)

// WithStrategy replaces the default equal split of the investable surplus
func WithStrategy(strategy allocator.Strategy) Option {
	return func(p *Planner) {
		if strategy != nil {
			p.strategy = strategy
		}
	}
}

// New creates a Planner that splits the surplus equally unless configured otherwise
func New(opts ...Option) *Planner {
	p := &Planner{strategy: allocator.EqualSplit{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CalculateMonthlyPlan runs the default Planner
func CalculateMonthlyPlan(
	income float64,
	loans []domain.Loan,
	stocks []domain.Asset,
	properties []domain.Asset,
	horizonMonths int,
	yearlyInflation float64,
) *domain.MonthlyPlan {
	return New().Calculate(income, loans, stocks, properties, horizonMonths, yearlyInflation)
}

// Calculate projects every instrument and aggregates net worth.
// Logic:
//  1. The plan covers months 0..horizonMonths inclusive
//  2. Loan down payments funded by a stock become sell-offs of that stock in the loan's start month
//  3. Each loan is scheduled; principal and interest outflows are summed per month
//  4. Income steps up by inflation once every 12 months
//  5. Investable surplus = income - loan payments + interest * InterestTaxShieldRate
//  6. The strategy splits the surplus between stocks; each stock is projected with its share
//     and its sell-offs
//  7. Properties are projected without flows
//  8. Loan balances are subtracted from net worth
//
// Calculate never fails. Degenerate inputs such as NaN propagate into the output.
func (p *Planner) Calculate(
	income float64,
	loans []domain.Loan,
	stocks []domain.Asset,
	properties []domain.Asset,
	horizonMonths int,
	yearlyInflation float64,
) *domain.MonthlyPlan {
	// Step 1: timeline
	totalMonths := max(horizonMonths+1, 0)

	plan := &domain.MonthlyPlan{
		TotalMonths:   totalMonths,
		StockSellOffs: sellOffSchedule(loans, stocks, totalMonths),
		NetWorth:      make([]float64, totalMonths),
		NetWorthTaxed: make([]float64, totalMonths),
	}

	// Step 3: loan schedules and aggregate outflows
	principalOut := make([]float64, totalMonths)
	interestOut := make([]float64, totalMonths)
	for _, loan := range loans {
		sch := loan.Schedule(totalMonths)
		for i := 0; i < totalMonths; i++ {
			principalOut[i] += sch.PrincipalPaid[i]
			interestOut[i] += sch.InterestPaid[i]
		}
		plan.Loans = append(plan.Loans, domain.LoanPlan{
			Loan:              loan,
			MonthlyPayment:    loan.MonthlyPayment(),
			TotalCost:         loan.TotalCost(),
			Principals:        sch.Balances,
			RatePayments:      sch.InterestPaid,
			PrincipalPayments: sch.PrincipalPaid,
		})
	}

	// Steps 4 and 5: investable surplus
	investable := make([]float64, totalMonths)
	for i := 0; i < totalMonths; i++ {
		monthIncome := income * math.Pow(1+yearlyInflation, float64(i/12))
		investable[i] = monthIncome - (principalOut[i] + interestOut[i]) + interestOut[i]*InterestTaxShieldRate
	}

	// Step 6: stocks
	shares := p.strategy.Split(investable, stocks)
	for s, stock := range stocks {
		var share []float64
		if s < len(shares) {
			share = shares[s]
		}
		sellOffs := plan.StockSellOffs[stock.ID]

		total := stock.ProjectedValueWithFlows(totalMonths, false, share, sellOffs)
		taxed := stock.ProjectedValueWithFlows(totalMonths, true, share, sellOffs)
		accumulate(plan, total, taxed)

		plan.StockInvestments = append(plan.StockInvestments, domain.StockPlan{
			Asset:          stock,
			TotalValues:    total,
			TaxedValues:    taxed,
			InvestedValues: invested(share, totalMonths),
		})
	}

	// Step 7: properties
	for _, property := range properties {
		total := property.ProjectedValue(totalMonths, false)
		taxed := property.ProjectedValue(totalMonths, true)
		accumulate(plan, total, taxed)

		plan.PropertyInvestments = append(plan.PropertyInvestments, domain.PropertyPlan{
			Asset:       property,
			TotalValues: total,
			TaxedValues: taxed,
		})
	}

	// Step 8: liabilities
	for _, lp := range plan.Loans {
		for i, balance := range lp.Principals {
			plan.NetWorth[i] -= balance
			plan.NetWorthTaxed[i] -= balance
		}
	}

	return plan
}

// CalculatePortfolio runs Calculate over a portfolio and its settings
func (p *Planner) CalculatePortfolio(portfolio domain.Portfolio, settings domain.PlanSettings) *domain.MonthlyPlan {
	return p.Calculate(
		settings.MonthlyIncome,
		portfolio.Loans(),
		portfolio.Stocks(),
		portfolio.Properties(),
		settings.HorizonMonths,
		settings.YearlyInflation,
	)
}

// sellOffSchedule builds one zero-filled row per stock and adds each loan's down payment
// to its source stock in the loan's start month.
// Sources that are not among stocks and start months outside the plan are ignored.
func sellOffSchedule(loans []domain.Loan, stocks []domain.Asset, totalMonths int) map[uuid.UUID][]float64 {
	sellOffs := make(map[uuid.UUID][]float64, len(stocks))
	for _, stock := range stocks {
		sellOffs[stock.ID] = make([]float64, totalMonths)
	}

	for _, loan := range loans {
		if !loan.HasDownPaymentSource() {
			continue
		}
		row, ok := sellOffs[*loan.DownPaymentSourceID]
		if !ok || loan.StartMonth < 0 || loan.StartMonth >= totalMonths {
			continue
		}
		row[loan.StartMonth] += loan.DownPaymentAmount
	}

	return sellOffs
}

// accumulate adds the defined months of an asset to net worth
func accumulate(plan *domain.MonthlyPlan, total, taxed domain.Series) {
	for i := 0; i < plan.TotalMonths; i++ {
		if v, ok := total.At(i); ok {
			plan.NetWorth[i] += v
		}
		if v, ok := taxed.At(i); ok {
			plan.NetWorthTaxed[i] += v
		}
	}
}

// invested copies a strategy row into a slice of exactly totalMonths entries
func invested(share []float64, totalMonths int) []float64 {
	out := make([]float64, totalMonths)
	copy(out, share)
	return out
}
