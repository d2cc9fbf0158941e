package domain

import "github.com/google/uuid"

// LoanPlan is one loan's contribution to a MonthlyPlan
type LoanPlan struct {
	Loan              Loan
	MonthlyPayment    float64
	TotalCost         float64   // Full-term cost, independent of the horizon
	Principals        []float64 // Opening balance per month
	RatePayments      []float64 // Interest paid per month
	PrincipalPayments []float64 // Principal paid per month
}

// StockPlan is one contribution asset's projection
type StockPlan struct {
	Asset          Asset
	TotalValues    Series
	TaxedValues    Series
	InvestedValues []float64 // Contribution routed to this stock per month
}

// PropertyPlan is one growth asset's projection
type PropertyPlan struct {
	Asset       Asset
	TotalValues Series
	TaxedValues Series
}

// MonthlyPlan is the full projection of a portfolio.
// It is a fresh snapshot for the inputs that produced it; callers must not mutate it.
type MonthlyPlan struct {
	TotalMonths         int
	Loans               []LoanPlan
	StockInvestments    []StockPlan
	PropertyInvestments []PropertyPlan
	StockSellOffs       map[uuid.UUID][]float64 // Keyed by stock ID
	NetWorth            []float64
	NetWorthTaxed       []float64
}

// InstrumentDetail is the per-instrument state of a single month
type InstrumentDetail struct {
	ID           uuid.UUID
	Name         string
	Kind         InstrumentKind
	Value        float64 // Asset value, or loan opening balance
	TaxedValue   float64
	Principal    float64 // Loans only
	Interest     float64 // Loans only
	Contribution float64 // Stocks only
	SellOff      float64 // Stocks only
}

// MonthBreakdown lists every instrument defined in a month next to the month's totals
type MonthBreakdown struct {
	Month         int
	Instruments   []InstrumentDetail
	NetWorth      float64
	NetWorthTaxed float64
}

// Breakdown collects the per-instrument detail of one month.
// Assets that have not started yet are left out; loans are always listed.
// Returns false if month lies outside the plan.
func (p *MonthlyPlan) Breakdown(month int) (MonthBreakdown, bool) {
	if month < 0 || month >= p.TotalMonths || month >= len(p.NetWorth) {
		return MonthBreakdown{}, false
	}

	out := MonthBreakdown{
		Month:         month,
		NetWorth:      p.NetWorth[month],
		NetWorthTaxed: p.NetWorthTaxed[month],
	}

	for _, sp := range p.StockInvestments {
		total, ok := sp.TotalValues.At(month)
		if !ok {
			continue
		}
		taxed, _ := sp.TaxedValues.At(month)
		out.Instruments = append(out.Instruments, InstrumentDetail{
			ID:           sp.Asset.ID,
			Name:         sp.Asset.Name,
			Kind:         sp.Asset.AssetKind,
			Value:        total,
			TaxedValue:   taxed,
			Contribution: monthValue(sp.InvestedValues, month),
			SellOff:      monthValue(p.StockSellOffs[sp.Asset.ID], month),
		})
	}

	for _, pp := range p.PropertyInvestments {
		total, ok := pp.TotalValues.At(month)
		if !ok {
			continue
		}
		taxed, _ := pp.TaxedValues.At(month)
		out.Instruments = append(out.Instruments, InstrumentDetail{
			ID:         pp.Asset.ID,
			Name:       pp.Asset.Name,
			Kind:       pp.Asset.AssetKind,
			Value:      total,
			TaxedValue: taxed,
		})
	}

	for _, lp := range p.Loans {
		balance := monthValue(lp.Principals, month)
		out.Instruments = append(out.Instruments, InstrumentDetail{
			ID:         lp.Loan.ID,
			Name:       lp.Loan.Name,
			Kind:       lp.Loan.LoanKind,
			Value:      balance,
			TaxedValue: balance,
			Principal:  monthValue(lp.PrincipalPayments, month),
			Interest:   monthValue(lp.RatePayments, month),
		})
	}

	return out, true
}

// FindLoan looks up a loan plan by loan name
func (p *MonthlyPlan) FindLoan(name string) (*LoanPlan, bool) {
	for i := range p.Loans {
		if p.Loans[i].Loan.Name == name {
			return &p.Loans[i], true
		}
	}
	return nil, false
}
