package domain

import "math"

// LoanSchedule is a month-indexed amortization schedule aligned to the plan's timeline.
// All three slices have the same length; months before the loan starts and after it is
// paid off are zero.
type LoanSchedule struct {
	Balances      []float64 // Opening balance of each month
	PrincipalPaid []float64
	InterestPaid  []float64
}

// newLoanSchedule allocates a zero-filled schedule covering totalMonths
func newLoanSchedule(totalMonths int) LoanSchedule {
	if totalMonths < 0 {
		totalMonths = 0
	}
	return LoanSchedule{
		Balances:      make([]float64, totalMonths),
		PrincipalPaid: make([]float64, totalMonths),
		InterestPaid:  make([]float64, totalMonths),
	}
}

// annuityPayment returns the level payment that amortizes balance over n months at rate r
func annuityPayment(balance, r float64, n int) float64 {
	if balance == 0 || n <= 0 {
		return 0
	}
	if r == 0 {
		return balance / float64(n)
	}
	return balance * r / (1 - math.Pow(1+r, -float64(n)))
}

// deferredBalance is the principal after every deferment month has capitalised its interest
func (l Loan) deferredBalance() float64 {
	balance := l.Principal
	r := l.MonthlyRate()
	for i := 0; i < l.DeferredMonths; i++ {
		balance += balance * r
	}
	return balance
}

// MonthlyPayment is the level payment of the amortizing period, computed once on the
// post-deferment balance over the full term
func (l Loan) MonthlyPayment() float64 {
	return annuityPayment(l.deferredBalance(), l.MonthlyRate(), l.TotalTermMonths())
}

// TotalCost is the theoretical cost of the loan over its full term.
// It is not clipped to any projection horizon.
func (l Loan) TotalCost() float64 {
	return l.MonthlyPayment() * float64(l.TotalTermMonths())
}

// Schedule builds the loan's amortization schedule over totalMonths.
// Logic:
//  1. Nothing happens if the loan starts at or beyond the horizon
//  2. Deferment months record their opening balance and capitalise interest; no cash moves
//  3. The level payment is computed once on the post-deferment balance
//  4. Each amortizing month records its opening balance, interest and principal paid,
//     stopping as soon as the balance reaches exactly zero
//  5. A loan without an amortizing term keeps its post-deferment balance until the horizon
func (l Loan) Schedule(totalMonths int) LoanSchedule {
	sch := newLoanSchedule(totalMonths)
	if l.StartMonth < 0 || l.StartMonth >= totalMonths {
		return sch
	}

	r := l.MonthlyRate()
	n := l.TotalTermMonths()
	balance := l.Principal

	// Step 2: deferment
	month := l.StartMonth
	deferEnd := min(l.StartMonth+l.DeferredMonths, totalMonths)
	for ; month < deferEnd; month++ {
		sch.Balances[month] = balance
		balance += balance * r
	}
	if month >= totalMonths {
		return sch
	}

	// Step 3: level payment on the capitalised balance
	payment := annuityPayment(balance, r, n)

	// Step 5: degenerate term, the balance never amortizes
	if n <= 0 {
		for ; month < totalMonths; month++ {
			sch.Balances[month] = balance
		}
		return sch
	}

	// Step 4: amortization
	termEnd := min(month+n, totalMonths)
	for ; month < termEnd; month++ {
		sch.Balances[month] = balance
		interest := balance * r
		principal := math.Min(payment-interest, balance)
		balance -= principal

		sch.InterestPaid[month] = interest
		sch.PrincipalPaid[month] = principal

		if balance == 0 {
			break
		}
	}

	return sch
}
