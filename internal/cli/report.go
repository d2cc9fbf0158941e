package cli

import (
	"strconv"

	"github.com/simaogato/wealthflow-planner/internal/domain"
)

// SampleMonths picks every n-th month of a plan, always including the last one
func SampleMonths(totalMonths, every int) []int {
	if totalMonths <= 0 {
		return nil
	}
	if every <= 0 {
		every = 1
	}

	months := make([]int, 0, totalMonths/every+2)
	for m := 0; m < totalMonths; m += every {
		months = append(months, m)
	}
	if last := totalMonths - 1; months[len(months)-1] != last {
		months = append(months, last)
	}
	return months
}

// NetWorthTable tabulates net worth by instrument group for the sampled months
// Logic:
//  1. Sum stock values, property values and loan balances per sampled month
//  2. Use taxed asset values when taxed is set
//  3. Read net worth from the plan so the totals match the engine exactly
func NetWorthTable(plan *domain.MonthlyPlan, every int, taxed bool) Table {
	t := Table{
		Headers: []string{"Month", "Stocks", "Properties", "Loans", "Net worth"},
	}
	netWorth := plan.NetWorth
	if taxed {
		netWorth = plan.NetWorthTaxed
	}

	for _, m := range SampleMonths(len(netWorth), every) {
		var stocks, properties, loans float64

		// 1-2. Group totals
		for _, sp := range plan.StockInvestments {
			series := sp.TotalValues
			if taxed {
				series = sp.TaxedValues
			}
			if v, ok := series.At(m); ok {
				stocks += v
			}
		}
		for _, pp := range plan.PropertyInvestments {
			series := pp.TotalValues
			if taxed {
				series = pp.TaxedValues
			}
			if v, ok := series.At(m); ok {
				properties += v
			}
		}
		for _, lp := range plan.Loans {
			if m < len(lp.Principals) {
				loans += lp.Principals[m]
			}
		}

		// 3. Row
		t.Rows = append(t.Rows, []string{
			FormatMonth(m),
			FormatAmount(stocks),
			FormatAmount(properties),
			FormatAmount(-loans),
			FormatAmount(netWorth[m]),
		})
	}
	return t
}

// LoanTable tabulates the amortization schedule of a loan for the sampled months.
// Months with no balance and no payment are skipped.
func LoanTable(lp *domain.LoanPlan, every int) Table {
	t := Table{
		Title:   lp.Loan.Name,
		Headers: []string{"Month", "Index", "Balance", "Interest", "Principal", "Payment"},
	}

	for _, m := range SampleMonths(len(lp.Principals), every) {
		balance := lp.Principals[m]
		interest := at(lp.RatePayments, m)
		principal := at(lp.PrincipalPayments, m)
		if balance == 0 && interest == 0 && principal == 0 {
			continue
		}
		t.Rows = append(t.Rows, []string{
			FormatMonth(m),
			strconv.Itoa(m),
			FormatAmount(balance),
			FormatAmount(interest),
			FormatAmount(principal),
			FormatAmount(interest + principal),
		})
	}
	return t
}

// LoanSummary lists the headline figures of a loan
func LoanSummary(lp *domain.LoanPlan) [][2]string {
	return [][2]string{
		{"Principal", FormatAmount(lp.Loan.Principal)},
		{"Rate", FormatRate(lp.Loan.YearlyRate) + " " + string(lp.Loan.RateConvention)},
		{"Term", strconv.Itoa(lp.Loan.TotalTermMonths()) + " months"},
		{"Starts", FormatMonth(lp.Loan.StartMonth)},
		{"Monthly payment", FormatAmount(lp.MonthlyPayment)},
		{"Total cost", FormatAmount(lp.TotalCost)},
	}
}

func at(xs []float64, i int) float64 {
	if i < 0 || i >= len(xs) {
		return 0
	}
	return xs[i]
}
