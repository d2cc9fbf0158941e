package domain

import "errors"

// PlanSettings holds the economic inputs of a projection
type PlanSettings struct {
	MonthlyIncome   float64
	YearlyInflation float64 // Income grows by this rate once every 12 months
	HorizonMonths   int     // The plan covers months 0..HorizonMonths inclusive
}

// Validate ensures the settings adhere to domain rules
// Returns an error if validation fails
func (s PlanSettings) Validate() error {
	if err := checkFinite("settings", s.MonthlyIncome, s.YearlyInflation); err != nil {
		return err
	}
	if s.HorizonMonths < 0 {
		return errors.New("horizon months must not be negative")
	}
	if s.MonthlyIncome < 0 {
		return errors.New("monthly income must not be negative")
	}
	if s.YearlyInflation <= -1 {
		return errors.New("yearly inflation must be greater than -1")
	}
	return nil
}
