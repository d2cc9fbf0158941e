package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrUnknownField is returned when an edit names a field the instrument does not have
var ErrUnknownField = errors.New("unknown instrument field")

// Editable field names, shared by all edit entry points
const (
	FieldName                  = "name"
	FieldStartMonths           = "startMonths"
	FieldInitialValue          = "initialValue"
	FieldCurrentValue          = "currentValue"
	FieldExpectedReturn        = "expectedReturn"        // percent
	FieldTaxRate               = "taxRate"               // percent
	FieldColor                 = "color"
	FieldRateType              = "rateType" // "effective" or "nominal"
	FieldPrincipal             = "principal"
	FieldEffectiveInterestRate = "effectiveInterestRate" // percent
	FieldYears                 = "years"
	FieldMonths                = "months"
	FieldMonthsDelayed         = "monthsDelayed"
	FieldDownPayment           = "downPayment"
	FieldStockSourceID         = "stockSourceId" // empty clears the source
)

// ApplyEdit returns a copy of inst with one field replaced.
// The input instrument is never modified. Percent fields are given in percent and stored
// as decimals; month and year counts must be whole, non-negative numbers.
func ApplyEdit(inst Instrument, field, value string) (Instrument, error) {
	switch v := inst.(type) {
	case Asset:
		return editAsset(v, field, value)
	case Loan:
		return editLoan(v, field, value)
	default:
		return nil, fmt.Errorf("cannot edit instrument of kind %s", inst.Kind())
	}
}

func editAsset(a Asset, field, value string) (Instrument, error) {
	var err error
	switch field {
	case FieldName:
		a.Name = value
	case FieldColor:
		a.Color = value
	case FieldRateType:
		a.RateConvention = parseRateType(value)
	case FieldStartMonths:
		a.StartMonth, err = parseCount(field, value)
	case FieldInitialValue:
		a.InitialValue, err = parseAmount(field, value)
	case FieldCurrentValue:
		a.CurrentValue, err = parseAmount(field, value)
	case FieldExpectedReturn:
		a.YearlyRate, err = parsePercent(field, value)
	case FieldTaxRate:
		a.TaxRate, err = parsePercent(field, value)
	default:
		return nil, fmt.Errorf("%w: %s on %s", ErrUnknownField, field, a.AssetKind)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func editLoan(l Loan, field, value string) (Instrument, error) {
	var err error
	switch field {
	case FieldName:
		l.Name = value
	case FieldColor:
		l.Color = value
	case FieldRateType:
		l.RateConvention = parseRateType(value)
	case FieldStartMonths:
		l.StartMonth, err = parseCount(field, value)
	case FieldPrincipal:
		l.Principal, err = parseAmount(field, value)
	case FieldEffectiveInterestRate:
		l.YearlyRate, err = parsePercent(field, value)
	case FieldYears:
		l.TermYears, err = parseCount(field, value)
	case FieldMonths:
		l.TermExtraMonths, err = parseCount(field, value)
	case FieldMonthsDelayed:
		l.DeferredMonths, err = parseCount(field, value)
	case FieldDownPayment:
		if l.LoanKind == InstrumentKindStudentLoan {
			return nil, fmt.Errorf("%w: %s on %s", ErrUnknownField, field, l.LoanKind)
		}
		l.DownPaymentAmount, err = parseAmount(field, value)
	case FieldStockSourceID:
		if l.LoanKind == InstrumentKindStudentLoan {
			return nil, fmt.Errorf("%w: %s on %s", ErrUnknownField, field, l.LoanKind)
		}
		l.DownPaymentSourceID, err = parseOptionalID(field, value)
	default:
		return nil, fmt.Errorf("%w: %s on %s", ErrUnknownField, field, l.LoanKind)
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func parseRateType(value string) RateConvention {
	if strings.EqualFold(value, "effective") {
		return RateConventionEffective
	}
	return RateConventionNominal
}

func parseAmount(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid %s value %q", field, value)
	}
	return f, nil
}

func parsePercent(field, value string) (float64, error) {
	f, err := parseAmount(field, value)
	if err != nil {
		return 0, err
	}
	return f / 100, nil
}

func parseCount(field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s value %q", field, value)
	}
	return n, nil
}

func parseOptionalID(field, value string) (*uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q", field, value)
	}
	return &id, nil
}
