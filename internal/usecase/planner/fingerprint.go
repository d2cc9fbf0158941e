package planner

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/simaogato/wealthflow-planner/internal/domain"
)

// Fingerprint hashes every input that influences a plan.
// Two requests with the same fingerprint produce the same plan; the scenario name and
// instrument colors are not part of it.
func Fingerprint(req PlanRequest) string {
	d := xxhash.New()

	s := req.Settings
	fmt.Fprintf(d, "settings|%s|%s|%d\n", num(s.MonthlyIncome), num(s.YearlyInflation), s.HorizonMonths)

	for _, inst := range req.Portfolio.Instruments() {
		switch v := inst.(type) {
		case domain.Asset:
			fmt.Fprintf(d, "asset|%s|%s|%d|%s|%s|%s|%s|%s\n",
				v.ID, v.AssetKind, v.StartMonth, num(v.InitialValue), num(v.CurrentValue),
				num(v.YearlyRate), v.RateConvention, num(v.TaxRate))
		case domain.Loan:
			source := "-"
			if v.DownPaymentSourceID != nil {
				source = v.DownPaymentSourceID.String()
			}
			fmt.Fprintf(d, "loan|%s|%s|%s|%s|%s|%d|%d|%d|%d|%s|%s\n",
				v.ID, v.LoanKind, num(v.Principal), num(v.YearlyRate), v.RateConvention,
				v.TermYears, v.TermExtraMonths, v.DeferredMonths, v.StartMonth,
				num(v.DownPaymentAmount), source)
		}
	}

	if req.Rule != nil {
		writeRule(d, *req.Rule)
	}

	return fmt.Sprintf("%016x", d.Sum64())
}

// CacheKey extends the fingerprint with instrument names and colors.
// Cached plans embed the instruments, so a rename must not be served a stale copy.
func CacheKey(req PlanRequest) string {
	d := xxhash.New()
	fmt.Fprintf(d, "plan|%s\n", Fingerprint(req))
	for _, inst := range req.Portfolio.Instruments() {
		switch v := inst.(type) {
		case domain.Asset:
			fmt.Fprintf(d, "label|%s|%q|%q\n", v.ID, v.Name, v.Color)
		case domain.Loan:
			fmt.Fprintf(d, "label|%s|%q|%q\n", v.ID, v.Name, v.Color)
		}
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

func writeRule(w io.Writer, rule domain.SplitRule) {
	for _, item := range rule.Items {
		fmt.Fprintf(w, "rule|%s|%s|%s|%d\n", item.TargetStockID, item.Type, item.Value.String(), item.Priority)
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
