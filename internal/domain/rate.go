package domain

import (
	"errors"
	"math"
)

// RateConvention describes how a yearly rate is quoted
type RateConvention string

const (
	// RateConventionNominal is a yearly rate stated as 12x the monthly rate
	RateConventionNominal RateConvention = "NOMINAL"
	// RateConventionEffective is a yearly rate that already includes a year of monthly compounding
	RateConventionEffective RateConvention = "EFFECTIVE"
)

// Validate ensures the convention is one of the known values
func (c RateConvention) Validate() error {
	if c != RateConventionNominal && c != RateConventionEffective {
		return errors.New("rate convention must be NOMINAL or EFFECTIVE")
	}
	return nil
}

// MonthlyRate converts a yearly rate into the equivalent monthly compounding rate.
// Logic:
//   - EFFECTIVE: (1+yearlyRate)^(1/12) - 1
//   - NOMINAL (and anything unrecognised): yearlyRate / 12
//
// Any real rate is accepted, including zero and negative (depreciating) rates.
func MonthlyRate(yearlyRate float64, convention RateConvention) float64 {
	if convention == RateConventionEffective {
		return math.Pow(1+yearlyRate, 1.0/12.0) - 1
	}
	return yearlyRate / 12
}
