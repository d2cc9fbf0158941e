// Package cli formats and renders projection results for terminal output.
package cli

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatAmount rounds to whole currency units and groups thousands.
// e.g., 1234567.4 -> "1,234,567", -2500.6 -> "-2,501"
func FormatAmount(v float64) string {
	r := math.Round(v)
	if r == 0 {
		// drops the sign of -0
		r = 0
	}
	return humanize.CommafWithDigits(r, 0)
}

// FormatCompact formats large amounts with an SI suffix.
// e.g., 4200000 -> "4.2M", 950 -> "950"
func FormatCompact(v float64) string {
	if math.Abs(v) < 1000 {
		return FormatAmount(v)
	}
	value, prefix := humanize.ComputeSI(v)
	return humanize.FtoaWithDigits(value, 1) + prefix
}

// FormatRate formats a fractional rate as a percentage.
// e.g., 0.045 -> "4.50%"
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

// FormatMonth labels a month index with its plan year.
// e.g., 0 -> "Y1 M1", 13 -> "Y2 M2"
func FormatMonth(month int) string {
	return fmt.Sprintf("Y%d M%d", month/12+1, month%12+1)
}
