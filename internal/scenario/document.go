package scenario

import (
	"github.com/simaogato/wealthflow-planner/internal/domain"
)

// Document is the on-disk form of a scenario.
// Instruments reference each other, and split rules reference stocks, by name.
type Document struct {
	Name        string          `yaml:"name,omitempty" toml:"name,omitempty"`
	Settings    Settings        `yaml:"settings" toml:"settings"`
	Allocation  *Allocation     `yaml:"allocation,omitempty" toml:"allocation,omitempty"`
	Instruments []InstrumentDoc `yaml:"instruments" toml:"instruments"`
}

// Settings mirrors domain.PlanSettings
type Settings struct {
	MonthlyIncome   float64 `yaml:"monthly_income" toml:"monthly_income"`
	YearlyInflation float64 `yaml:"yearly_inflation" toml:"yearly_inflation"`
	HorizonMonths   int     `yaml:"horizon_months" toml:"horizon_months"`
}

// Allocation selects how the investable surplus is split between stocks
type Allocation struct {
	Rule RuleDoc `yaml:"rule" toml:"rule"`
}

// RuleDoc is a split rule whose items target stocks by name
type RuleDoc struct {
	Name  string        `yaml:"name,omitempty" toml:"name,omitempty"`
	Items []RuleItemDoc `yaml:"items" toml:"items"`
}

// RuleItemDoc is one split rule item
type RuleItemDoc struct {
	Target   string  `yaml:"target" toml:"target"`
	Type     string  `yaml:"type" toml:"type"`
	Value    float64 `yaml:"value,omitempty" toml:"value,omitempty"`
	Priority int     `yaml:"priority" toml:"priority"`
}

// InstrumentDoc holds the fields of every instrument kind; each kind reads its own subset
type InstrumentDoc struct {
	Kind           domain.InstrumentKind `yaml:"kind" toml:"kind"`
	Name           string                `yaml:"name" toml:"name"`
	ID             string                `yaml:"id,omitempty" toml:"id,omitempty"`
	StartMonth     float64               `yaml:"start_month,omitempty" toml:"start_month,omitempty"`
	YearlyRate     float64               `yaml:"yearly_rate" toml:"yearly_rate"`
	RateConvention string                `yaml:"rate_convention,omitempty" toml:"rate_convention,omitempty"`
	Color          string                `yaml:"color,omitempty" toml:"color,omitempty"`

	// Assets
	InitialValue float64 `yaml:"initial_value,omitempty" toml:"initial_value,omitempty"`
	CurrentValue float64 `yaml:"current_value,omitempty" toml:"current_value,omitempty"`
	TaxRate      float64 `yaml:"tax_rate,omitempty" toml:"tax_rate,omitempty"`

	// Loans
	Principal         float64 `yaml:"principal,omitempty" toml:"principal,omitempty"`
	Years             float64 `yaml:"years,omitempty" toml:"years,omitempty"`
	Months            float64 `yaml:"months,omitempty" toml:"months,omitempty"`
	DeferredMonths    float64 `yaml:"deferred_months,omitempty" toml:"deferred_months,omitempty"`
	DownPayment       float64 `yaml:"down_payment,omitempty" toml:"down_payment,omitempty"`
	DownPaymentSource string  `yaml:"down_payment_source,omitempty" toml:"down_payment_source,omitempty"`
}
