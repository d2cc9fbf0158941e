package domain

import (
	"math"

	"github.com/google/uuid"
)

// Default colors per instrument kind
const (
	DefaultPropertyColor    = "#1f77b4"
	DefaultStockColor       = "#2ca02c"
	DefaultLoanColor        = "#ff7300"
	DefaultStudentLoanColor = "#9467bd"
)

// IDGenerator produces identifiers for new instruments
type IDGenerator func() uuid.UUID

// AssetInit holds the raw fields of a new asset
type AssetInit struct {
	ID             *uuid.UUID // Generated when nil
	Name           string
	StartMonth     float64
	InitialValue   float64
	CurrentValue   float64
	YearlyRate     float64
	RateConvention RateConvention
	TaxRate        float64
	Color          string
}

// LoanInit holds the raw fields of a new loan
type LoanInit struct {
	ID                  *uuid.UUID // Generated when nil
	Name                string
	Principal           float64
	YearlyRate          float64
	RateConvention      RateConvention
	TermYears           float64
	TermExtraMonths     float64
	DeferredMonths      float64
	StartMonth          float64
	DownPaymentAmount   float64
	DownPaymentSourceID *uuid.UUID
	Color               string
}

// finite replaces NaN and infinities with zero
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// count truncates v towards zero and clamps it at zero
func count(v float64) int {
	return int(math.Max(0, math.Trunc(finite(v))))
}

// convention defaults an empty convention to EFFECTIVE
func convention(c RateConvention) RateConvention {
	if c == "" {
		return RateConventionEffective
	}
	return c
}

func pick(id *uuid.UUID, gen IDGenerator) uuid.UUID {
	if id != nil {
		return *id
	}
	if gen == nil {
		return uuid.New()
	}
	return gen()
}

func colorOr(color, fallback string) string {
	if color == "" {
		return fallback
	}
	return color
}

func newAsset(kind InstrumentKind, in AssetInit, gen IDGenerator, color string) Asset {
	return Asset{
		ID:             pick(in.ID, gen),
		AssetKind:      kind,
		Name:           in.Name,
		StartMonth:     count(in.StartMonth),
		InitialValue:   finite(in.InitialValue),
		CurrentValue:   finite(in.CurrentValue),
		YearlyRate:     finite(in.YearlyRate),
		RateConvention: convention(in.RateConvention),
		TaxRate:        finite(in.TaxRate),
		Color:          colorOr(in.Color, color),
	}
}

// NewProperty builds a growth asset from raw input.
// Non-finite numbers become zero and month counts are truncated and clamped at zero.
func NewProperty(in AssetInit, gen IDGenerator) Asset {
	return newAsset(InstrumentKindProperty, in, gen, DefaultPropertyColor)
}

// NewStock builds a contribution asset from raw input
func NewStock(in AssetInit, gen IDGenerator) Asset {
	return newAsset(InstrumentKindStock, in, gen, DefaultStockColor)
}

// NewLoan builds a loan from raw input
func NewLoan(in LoanInit, gen IDGenerator) Loan {
	return Loan{
		ID:                  pick(in.ID, gen),
		LoanKind:            InstrumentKindLoan,
		Name:                in.Name,
		Principal:           finite(in.Principal),
		YearlyRate:          finite(in.YearlyRate),
		RateConvention:      convention(in.RateConvention),
		TermYears:           count(in.TermYears),
		TermExtraMonths:     count(in.TermExtraMonths),
		DeferredMonths:      count(in.DeferredMonths),
		StartMonth:          count(in.StartMonth),
		DownPaymentAmount:   finite(in.DownPaymentAmount),
		DownPaymentSourceID: in.DownPaymentSourceID,
		Color:               colorOr(in.Color, DefaultLoanColor),
	}
}

// NewStudentLoan builds a student loan from raw input.
// Down payment fields are ignored: student loans never have one.
func NewStudentLoan(in LoanInit, gen IDGenerator) Loan {
	loan := NewLoan(in, gen)
	loan.LoanKind = InstrumentKindStudentLoan
	loan.DownPaymentAmount = 0
	loan.DownPaymentSourceID = nil
	loan.Color = colorOr(in.Color, DefaultStudentLoanColor)
	return loan
}
