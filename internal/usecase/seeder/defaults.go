package seeder

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/wealthflow-planner/internal/domain"
)

// Fixed UUIDs for the default instruments, stable across runs
var (
	DEFAULT_PROPERTY     = uuid.MustParse("00000000-0000-0000-0000-000000000101")
	DEFAULT_STOCK        = uuid.MustParse("00000000-0000-0000-0000-000000000102")
	DEFAULT_LOAN         = uuid.MustParse("00000000-0000-0000-0000-000000000103")
	DEFAULT_STUDENT_LOAN = uuid.MustParse("00000000-0000-0000-0000-000000000104")
)

// DefaultSettings are the plan settings used when nothing else is configured
var DefaultSettings = domain.PlanSettings{
	MonthlyIncome:   30_000,
	YearlyInflation: 0.025,
	HorizonMonths:   240,
}

// DefaultInstrument returns the starting values offered for a new instrument of kind
func DefaultInstrument(kind domain.InstrumentKind) (domain.Instrument, error) {
	switch kind {
	case domain.InstrumentKindProperty:
		return domain.NewProperty(domain.AssetInit{
			ID:             &DEFAULT_PROPERTY,
			Name:           "Standard Apartment",
			InitialValue:   4_000_000,
			CurrentValue:   4_000_000,
			YearlyRate:     0.03,
			RateConvention: domain.RateConventionEffective,
			TaxRate:        0.22,
		}, nil), nil
	case domain.InstrumentKindStock:
		return domain.NewStock(domain.AssetInit{
			ID:             &DEFAULT_STOCK,
			Name:           "Index Fund",
			InitialValue:   100_000,
			CurrentValue:   100_000,
			YearlyRate:     0.07,
			RateConvention: domain.RateConventionEffective,
			TaxRate:        0.22,
		}, nil), nil
	case domain.InstrumentKindLoan:
		return domain.NewLoan(domain.LoanInit{
			ID:             &DEFAULT_LOAN,
			Name:           "Mortgage",
			Principal:      3_000_000,
			YearlyRate:     0.05,
			RateConvention: domain.RateConventionEffective,
			TermYears:      25,
			Color:          "#d62728",
		}, nil), nil
	case domain.InstrumentKindStudentLoan:
		return domain.NewStudentLoan(domain.LoanInit{
			ID:             &DEFAULT_STUDENT_LOAN,
			Name:           "Student Loan",
			Principal:      50_000,
			YearlyRate:     0.045,
			RateConvention: domain.RateConventionEffective,
			TermYears:      10,
		}, nil), nil
	default:
		return nil, fmt.Errorf("invalid instrument kind %q", kind)
	}
}

// DefaultPortfolio holds one default instrument of every kind
func DefaultPortfolio() domain.Portfolio {
	kinds := []domain.InstrumentKind{
		domain.InstrumentKindProperty,
		domain.InstrumentKindStock,
		domain.InstrumentKindLoan,
		domain.InstrumentKindStudentLoan,
	}

	instruments := make([]domain.Instrument, 0, len(kinds))
	for _, kind := range kinds {
		inst, _ := DefaultInstrument(kind)
		instruments = append(instruments, inst)
	}
	return domain.NewPortfolio(instruments...)
}
