package domain

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrNonFinite is returned when an amount or rate is NaN or infinite
var ErrNonFinite = errors.New("value is not a finite number")

// IsFinite reports whether v is neither NaN nor an infinity
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ToDecimal converts v to a decimal, rejecting NaN and infinities
func ToDecimal(v float64) (decimal.Decimal, error) {
	if !IsFinite(v) {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrNonFinite, v)
	}
	return decimal.NewFromFloat(v), nil
}

// checkFinite returns ErrNonFinite naming the first non-finite value
func checkFinite(what string, values ...float64) error {
	for _, v := range values {
		if !IsFinite(v) {
			return fmt.Errorf("%w: %s is %v", ErrNonFinite, what, v)
		}
	}
	return nil
}

func checkSeries(what string, xs []float64) error {
	for i, v := range xs {
		if !IsFinite(v) {
			return fmt.Errorf("%w: %s at month %d is %v", ErrNonFinite, what, i, v)
		}
	}
	return nil
}

func checkDefined(what string, s Series) error {
	for i, v := range s {
		if v != nil && !IsFinite(*v) {
			return fmt.Errorf("%w: %s at month %d is %v", ErrNonFinite, what, i, *v)
		}
	}
	return nil
}

// CheckFinite reports the first NaN or infinite number in the plan.
// Finite inputs can still overflow, e.g. a huge principal at a high rate.
func (p *MonthlyPlan) CheckFinite() error {
	for _, lp := range p.Loans {
		name := "loan " + lp.Loan.Name
		if err := checkFinite(name+" payment", lp.MonthlyPayment, lp.TotalCost); err != nil {
			return err
		}
		for _, s := range [][]float64{lp.Principals, lp.RatePayments, lp.PrincipalPayments} {
			if err := checkSeries(name, s); err != nil {
				return err
			}
		}
	}
	for _, sp := range p.StockInvestments {
		name := "stock " + sp.Asset.Name
		if err := checkDefined(name, sp.TotalValues); err != nil {
			return err
		}
		if err := checkDefined(name, sp.TaxedValues); err != nil {
			return err
		}
		if err := checkSeries(name+" contributions", sp.InvestedValues); err != nil {
			return err
		}
	}
	for _, pp := range p.PropertyInvestments {
		name := "property " + pp.Asset.Name
		if err := checkDefined(name, pp.TotalValues); err != nil {
			return err
		}
		if err := checkDefined(name, pp.TaxedValues); err != nil {
			return err
		}
	}
	for _, xs := range p.StockSellOffs {
		if err := checkSeries("sell-off", xs); err != nil {
			return err
		}
	}
	if err := checkSeries("net worth", p.NetWorth); err != nil {
		return err
	}
	return checkSeries("taxed net worth", p.NetWorthTaxed)
}
