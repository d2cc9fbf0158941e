package grpc

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Wire messages of wealthflow.planner.v1.PlannerService.
// Amounts and rates are decimal strings; series are number arrays with null for months
// in which an asset does not exist yet.

// Settings carries the economic inputs of a scenario
type Settings struct {
	MonthlyIncome   string `json:"monthly_income"`
	YearlyInflation string `json:"yearly_inflation"`
	HorizonMonths   int    `json:"horizon_months"`
}

// Instrument is any instrument kind; fields that do not apply to the kind are left empty
type Instrument struct {
	Id                  string `json:"id,omitempty"`
	Kind                string `json:"kind"`
	Name                string `json:"name"`
	StartMonth          int    `json:"start_month,omitempty"`
	YearlyRate          string `json:"yearly_rate,omitempty"`
	RateConvention      string `json:"rate_convention,omitempty"`
	Color               string `json:"color,omitempty"`
	InitialValue        string `json:"initial_value,omitempty"`
	CurrentValue        string `json:"current_value,omitempty"`
	TaxRate             string `json:"tax_rate,omitempty"`
	Principal           string `json:"principal,omitempty"`
	Years               int    `json:"years,omitempty"`
	Months              int    `json:"months,omitempty"`
	DeferredMonths      int    `json:"deferred_months,omitempty"`
	DownPayment         string `json:"down_payment,omitempty"`
	DownPaymentSourceId string `json:"down_payment_source_id,omitempty"`
}

// SplitRuleItem routes part of the monthly surplus to one stock
type SplitRuleItem struct {
	TargetStockId string `json:"target_stock_id"`
	Type          string `json:"type"`
	Value         string `json:"value,omitempty"`
	Priority      int    `json:"priority"`
}

// SplitRule replaces the equal split between stocks
type SplitRule struct {
	Name  string          `json:"name,omitempty"`
	Items []SplitRuleItem `json:"items"`
}

// Scenario is a complete planning input
type Scenario struct {
	Name        string       `json:"name,omitempty"`
	Settings    Settings     `json:"settings"`
	Instruments []Instrument `json:"instruments"`
	Rule        *SplitRule   `json:"rule,omitempty"`
}

type CalculatePlanRequest struct {
	Scenario Scenario `json:"scenario"`
}

// LoanSchedule is one loan's amortization over the plan
type LoanSchedule struct {
	Id             string    `json:"id"`
	Name           string    `json:"name"`
	Kind           string    `json:"kind"`
	MonthlyPayment string    `json:"monthly_payment"`
	TotalCost      string    `json:"total_cost"`
	Balances       []float64 `json:"balances"`
	Interest       []float64 `json:"interest"`
	Principal      []float64 `json:"principal"`
}

// AssetProjection is one asset's value over the plan
type AssetProjection struct {
	Id            string     `json:"id"`
	Name          string     `json:"name"`
	Kind          string     `json:"kind"`
	Values        []*float64 `json:"values"`
	TaxedValues   []*float64 `json:"taxed_values"`
	Contributions []float64  `json:"contributions,omitempty"`
	SellOffs      []float64  `json:"sell_offs,omitempty"`
}

type CalculatePlanResponse struct {
	Fingerprint   string                 `json:"fingerprint"`
	ComputedAt    *timestamppb.Timestamp `json:"computed_at"`
	Cached        bool                   `json:"cached"`
	TotalMonths   int                    `json:"total_months"`
	Loans         []LoanSchedule         `json:"loans"`
	Stocks        []AssetProjection      `json:"stocks"`
	Properties    []AssetProjection      `json:"properties"`
	NetWorth      []float64              `json:"net_worth"`
	NetWorthTaxed []float64              `json:"net_worth_taxed"`
}

type GetNetWorthRequest struct {
	Scenario Scenario `json:"scenario"`
	Month    int      `json:"month"`
}

type GetNetWorthResponse struct {
	Month       int    `json:"month"`
	Total       string `json:"total"`
	Taxed       string `json:"taxed"`
	Assets      string `json:"assets"`
	Liabilities string `json:"liabilities"`
}

type GetMonthBreakdownRequest struct {
	Scenario Scenario `json:"scenario"`
	Month    int      `json:"month"`
}

// InstrumentDetail is one instrument's state in a single month
type InstrumentDetail struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	Value        string `json:"value"`
	TaxedValue   string `json:"taxed_value"`
	Principal    string `json:"principal,omitempty"`
	Interest     string `json:"interest,omitempty"`
	Contribution string `json:"contribution,omitempty"`
	SellOff      string `json:"sell_off,omitempty"`
}

type GetMonthBreakdownResponse struct {
	Month         int                `json:"month"`
	NetWorth      string             `json:"net_worth"`
	NetWorthTaxed string             `json:"net_worth_taxed"`
	Instruments   []InstrumentDetail `json:"instruments"`
}

// Edit operations
const (
	EditOpAdd    = "ADD"
	EditOpUpdate = "UPDATE"
	EditOpRemove = "REMOVE"
)

type ApplyEditRequest struct {
	Instruments []Instrument `json:"instruments"`
	Op          string       `json:"op"`
	Id          string       `json:"id,omitempty"`         // UPDATE, REMOVE
	Field       string       `json:"field,omitempty"`      // UPDATE
	Value       string       `json:"value,omitempty"`      // UPDATE
	Instrument  *Instrument  `json:"instrument,omitempty"` // ADD
}

type ApplyEditResponse struct {
	Instruments []Instrument `json:"instruments"`
}

type DefaultPortfolioRequest struct {
	Kind string `json:"kind,omitempty"` // Only this kind's default when set
}

type DefaultPortfolioResponse struct {
	Settings    Settings     `json:"settings"`
	Instruments []Instrument `json:"instruments"`
}

type ListSnapshotsRequest struct {
	Fingerprint string    `json:"fingerprint,omitempty"`
	Scenario    *Scenario `json:"scenario,omitempty"` // Fingerprinted when Fingerprint is empty
	Limit       int       `json:"limit,omitempty"`
}

// Snapshot is a recorded projection outcome
type Snapshot struct {
	Id            string                 `json:"id"`
	Fingerprint   string                 `json:"fingerprint"`
	ScenarioName  string                 `json:"scenario_name"`
	TakenAt       *timestamppb.Timestamp `json:"taken_at"`
	HorizonMonths int                    `json:"horizon_months"`
	NetWorth      string                 `json:"net_worth"`
	NetWorthTaxed string                 `json:"net_worth_taxed"`
}

type ListSnapshotsResponse struct {
	Snapshots []Snapshot `json:"snapshots"`
}
