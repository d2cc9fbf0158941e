package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// InstrumentKind tags every instrument participating in a plan.
// The set is closed: code switching on a kind handles all four values.
type InstrumentKind string

const (
	InstrumentKindProperty    InstrumentKind = "PROPERTY"
	InstrumentKindStock       InstrumentKind = "STOCK"
	InstrumentKindLoan        InstrumentKind = "LOAN"
	InstrumentKindStudentLoan InstrumentKind = "STUDENT_LOAN"
)

// ParseInstrumentKind converts a raw kind string into an InstrumentKind
func ParseInstrumentKind(raw string) (InstrumentKind, error) {
	switch kind := InstrumentKind(raw); kind {
	case InstrumentKindProperty, InstrumentKindStock, InstrumentKindLoan, InstrumentKindStudentLoan:
		return kind, nil
	default:
		return "", fmt.Errorf("invalid instrument kind %q", raw)
	}
}

// IsAsset reports whether instruments of this kind are valued assets
func (k InstrumentKind) IsAsset() bool {
	return k == InstrumentKindProperty || k == InstrumentKindStock
}

// IsLoan reports whether instruments of this kind are liabilities
func (k InstrumentKind) IsLoan() bool {
	return k == InstrumentKindLoan || k == InstrumentKindStudentLoan
}

// Instrument is any value taking part in a plan. It is implemented only by Asset and Loan.
type Instrument interface {
	InstrumentID() uuid.UUID
	InstrumentName() string
	Kind() InstrumentKind
	Validate() error
	sealed()
}

// Asset represents a valued holding in the domain layer.
// PROPERTY assets grow without contributions; STOCK assets additionally receive
// contributions and sell-offs from the allocator.
type Asset struct {
	ID             uuid.UUID
	AssetKind      InstrumentKind // PROPERTY or STOCK
	Name           string
	StartMonth     int     // Month index at which the asset starts existing
	InitialValue   float64 // Contributed capital at the start month (tax basis)
	CurrentValue   float64 // Market value at the start month
	YearlyRate     float64
	RateConvention RateConvention
	TaxRate        float64 // Applied to gains only (value minus basis)
	Color          string
}

func (a Asset) InstrumentID() uuid.UUID { return a.ID }
func (a Asset) InstrumentName() string { return a.Name }
func (a Asset) Kind() InstrumentKind { return a.AssetKind }
func (a Asset) sealed() {}

// MonthlyRate is the asset's growth rate per month
func (a Asset) MonthlyRate() float64 { return MonthlyRate(a.YearlyRate, a.RateConvention) }

// Validate ensures the asset adheres to domain rules
// Returns an error if validation fails
func (a Asset) Validate() error {
	if a.Name == "" {
		return errors.New("asset name cannot be empty")
	}
	if !a.AssetKind.IsAsset() {
		return errors.New("asset kind must be PROPERTY or STOCK")
	}
	if err := checkFinite("asset "+a.Name, a.InitialValue, a.CurrentValue, a.YearlyRate, a.TaxRate); err != nil {
		return err
	}
	if a.StartMonth < 0 {
		return errors.New("asset start month must not be negative")
	}
	if a.InitialValue < 0 || a.CurrentValue < 0 {
		return errors.New("asset values must not be negative")
	}
	if a.TaxRate < 0 || a.TaxRate > 1 {
		return errors.New("asset tax rate must be between 0 and 1")
	}
	if a.YearlyRate <= -1 {
		return errors.New("asset yearly rate must be greater than -1")
	}
	return a.RateConvention.Validate()
}

// Loan represents a liability in the domain layer.
// DownPaymentSourceID is a lookup key into the portfolio's stocks, not an ownership relation.
type Loan struct {
	ID                  uuid.UUID
	LoanKind            InstrumentKind // LOAN or STUDENT_LOAN
	Name                string
	Principal           float64
	YearlyRate          float64
	RateConvention      RateConvention
	TermYears           int
	TermExtraMonths     int
	DeferredMonths      int // Interest capitalises, nothing is paid
	StartMonth          int
	DownPaymentAmount   float64
	DownPaymentSourceID *uuid.UUID // NULL when the down payment is not funded by a stock
	Color               string
}

func (l Loan) InstrumentID() uuid.UUID { return l.ID }
func (l Loan) InstrumentName() string { return l.Name }
func (l Loan) Kind() InstrumentKind { return l.LoanKind }
func (l Loan) sealed() {}

// MonthlyRate is the loan's interest rate per month
func (l Loan) MonthlyRate() float64 { return MonthlyRate(l.YearlyRate, l.RateConvention) }

// TotalTermMonths is the length of the amortizing period
func (l Loan) TotalTermMonths() int {
	return l.TermYears*12 + l.TermExtraMonths
}

// HasDownPaymentSource reports whether the loan's down payment is sold off from a stock
func (l Loan) HasDownPaymentSource() bool {
	return l.DownPaymentAmount > 0 && l.DownPaymentSourceID != nil
}

// Validate ensures the loan adheres to domain rules
// Returns an error if validation fails
func (l Loan) Validate() error {
	if l.Name == "" {
		return errors.New("loan name cannot be empty")
	}
	if !l.LoanKind.IsLoan() {
		return errors.New("loan kind must be LOAN or STUDENT_LOAN")
	}
	if err := checkFinite("loan "+l.Name, l.Principal, l.YearlyRate, l.DownPaymentAmount); err != nil {
		return err
	}
	if l.Principal < 0 {
		return errors.New("loan principal must not be negative")
	}
	if l.TermYears < 0 || l.TermExtraMonths < 0 || l.DeferredMonths < 0 || l.StartMonth < 0 {
		return errors.New("loan terms must not be negative")
	}
	if l.TotalTermMonths() <= 0 {
		return errors.New("loan term must be at least one month")
	}
	if l.YearlyRate <= -1 {
		return errors.New("loan yearly rate must be greater than -1")
	}
	if l.DownPaymentAmount < 0 {
		return errors.New("loan down payment must not be negative")
	}
	// Student loans carry no down payment concept
	if l.LoanKind == InstrumentKindStudentLoan && (l.DownPaymentAmount != 0 || l.DownPaymentSourceID != nil) {
		return errors.New("student loan must not have a down payment")
	}
	return l.RateConvention.Validate()
}
