package domain

// Series is a month-indexed run of values. A nil entry marks a month in which the
// instrument does not exist yet, which is different from a month where it is worth zero.
type Series []*float64

// At returns the value at month i and whether it is defined
func (s Series) At(i int) (float64, bool) {
	if i < 0 || i >= len(s) || s[i] == nil {
		return 0, false
	}
	return *s[i], true
}

// Defined counts the months holding a value
func (s Series) Defined() int {
	count := 0
	for _, v := range s {
		if v != nil {
			count++
		}
	}
	return count
}

// Floats returns the series with absent months replaced by fallback
func (s Series) Floats(fallback float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		if v == nil {
			out[i] = fallback
			continue
		}
		out[i] = *v
	}
	return out
}

// valueTracker holds the running market value and tax basis of an asset
type valueTracker struct {
	value float64
	basis float64
}

// report returns the untaxed value, or the value net of tax on gains above the basis
func (t valueTracker) report(taxRate float64, taxed bool) float64 {
	if taxed {
		return t.value - (t.value-t.basis)*taxRate
	}
	return t.value
}

// sellOff withdraws amount from the asset.
// Withdrawals first return contributed capital. Anything beyond the remaining basis is a
// gain withdrawal and is grossed up by (1+taxRate) before leaving the market value.
func (t *valueTracker) sellOff(amount, taxRate float64) {
	if amount == 0 {
		return
	}
	if amount > t.basis {
		t.value -= t.basis + (1+taxRate)*(amount-t.basis)
		t.basis = 0
		return
	}
	t.value -= amount
	t.basis -= amount
}

// ProjectedValue projects a growth asset (no contributions) over totalMonths.
// Logic:
//   - Months before StartMonth are absent
//   - At StartMonth the value is CurrentValue and the basis is InitialValue
//   - Every later month the value compounds by the monthly rate; the basis never changes
func (a Asset) ProjectedValue(totalMonths int, taxed bool) Series {
	return a.project(totalMonths, taxed, nil, nil)
}

// ProjectedValueWithFlows projects a contribution asset over totalMonths.
// Logic:
//   - Months before StartMonth are absent; StartMonth seeds value and basis as for growth assets
//   - Every later month compounds the value, then adds contributions[i] to both value and basis
//   - From StartMonth on, sellOffs[i] is withdrawn after growth and contributions
//
// Missing entries in either slice are treated as zero.
func (a Asset) ProjectedValueWithFlows(totalMonths int, taxed bool, contributions, sellOffs []float64) Series {
	return a.project(totalMonths, taxed, contributions, sellOffs)
}

func (a Asset) project(totalMonths int, taxed bool, contributions, sellOffs []float64) Series {
	if totalMonths < 0 {
		totalMonths = 0
	}
	values := make(Series, totalMonths)
	r := a.MonthlyRate()

	start := max(a.StartMonth, 0)
	var t valueTracker
	for i := start; i < totalMonths; i++ {
		if i == start {
			t = valueTracker{value: a.CurrentValue, basis: a.InitialValue}
		} else {
			c := monthValue(contributions, i)
			t.value = t.value*(1+r) + c
			t.basis += c
		}
		t.sellOff(monthValue(sellOffs, i), a.TaxRate)

		v := t.report(a.TaxRate, taxed)
		values[i] = &v
	}

	return values
}

// monthValue reads xs[i], treating anything outside the slice as zero
func monthValue(xs []float64, i int) float64 {
	if i < 0 || i >= len(xs) {
		return 0
	}
	return xs[i]
}
