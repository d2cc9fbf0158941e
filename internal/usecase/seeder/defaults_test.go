package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-planner/internal/domain"
)

func TestDefaultInstrument(t *testing.T) {
	tests := []struct {
		kind domain.InstrumentKind
		name string
		id   string
	}{
		{domain.InstrumentKindProperty, "Standard Apartment", DEFAULT_PROPERTY.String()},
		{domain.InstrumentKindStock, "Index Fund", DEFAULT_STOCK.String()},
		{domain.InstrumentKindLoan, "Mortgage", DEFAULT_LOAN.String()},
		{domain.InstrumentKindStudentLoan, "Student Loan", DEFAULT_STUDENT_LOAN.String()},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			inst, err := DefaultInstrument(tt.kind)
			require.NoError(t, err)

			assert.Equal(t, tt.kind, inst.Kind())
			assert.Equal(t, tt.name, inst.InstrumentName())
			assert.Equal(t, tt.id, inst.InstrumentID().String())
			assert.NoError(t, inst.Validate())
		})
	}

	_, err := DefaultInstrument("BOND")
	assert.Error(t, err)
}

func TestDefaultPortfolio(t *testing.T) {
	p := DefaultPortfolio()

	require.NoError(t, p.Validate())
	assert.Equal(t, 4, p.Len())
	assert.Len(t, p.Loans(), 2)

	mortgage := p.Loans()[0]
	assert.Equal(t, 0.05, mortgage.YearlyRate)
	assert.Equal(t, 300, mortgage.TotalTermMonths())

	student := p.Loans()[1]
	assert.Equal(t, 0.045, student.YearlyRate)
	assert.Zero(t, student.DownPaymentAmount)

	assert.NoError(t, DefaultSettings.Validate())
}
