package grpc

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/usecase/planner"
)

// parseNumber parses an optional decimal string; empty means zero
func parseNumber(field, value string) (float64, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return 0, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", field, err)
	}
	f := d.InexactFloat64()
	if !domain.IsFinite(f) {
		return 0, status.Errorf(codes.InvalidArgument, "%s is out of range: %s", field, value)
	}
	return f, nil
}

// formatNumber renders v as a decimal string.
// NaN and infinities, which validated plans never contain, are rendered as Go formats them.
func formatNumber(v float64) string {
	d, err := domain.ToDecimal(v)
	if err != nil {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return d.String()
}

func formatAmount(v float64) string {
	d, err := domain.ToDecimal(v)
	if err != nil {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return d.StringFixed(2)
}

// numbers parses several decimal strings at once, stopping at the first failure
type numbers struct {
	err error
}

func (n *numbers) parse(field, value string) float64 {
	if n.err != nil {
		return 0
	}
	v, err := parseNumber(field, value)
	n.err = err
	return v
}

func parseOptionalUUID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", field, err)
	}
	return &id, nil
}

// protoToInstrument converts a wire instrument; a missing id is generated
func protoToInstrument(in Instrument) (domain.Instrument, error) {
	kind, err := domain.ParseInstrumentKind(strings.ToUpper(in.Kind))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	id, err := parseOptionalUUID("id", in.Id)
	if err != nil {
		return nil, err
	}

	convention := domain.RateConvention(strings.ToUpper(in.RateConvention))

	var n numbers
	yearlyRate := n.parse("yearly_rate", in.YearlyRate)

	if kind.IsAsset() {
		assetInit := domain.AssetInit{
			ID:             id,
			Name:           in.Name,
			StartMonth:     float64(in.StartMonth),
			InitialValue:   n.parse("initial_value", in.InitialValue),
			CurrentValue:   n.parse("current_value", in.CurrentValue),
			YearlyRate:     yearlyRate,
			RateConvention: convention,
			TaxRate:        n.parse("tax_rate", in.TaxRate),
			Color:          in.Color,
		}
		if n.err != nil {
			return nil, n.err
		}
		if kind == domain.InstrumentKindStock {
			return domain.NewStock(assetInit, nil), nil
		}
		return domain.NewProperty(assetInit, nil), nil
	}

	source, err := parseOptionalUUID("down_payment_source_id", in.DownPaymentSourceId)
	if err != nil {
		return nil, err
	}
	loanInit := domain.LoanInit{
		ID:                  id,
		Name:                in.Name,
		Principal:           n.parse("principal", in.Principal),
		YearlyRate:          yearlyRate,
		RateConvention:      convention,
		TermYears:           float64(in.Years),
		TermExtraMonths:     float64(in.Months),
		DeferredMonths:      float64(in.DeferredMonths),
		StartMonth:          float64(in.StartMonth),
		DownPaymentAmount:   n.parse("down_payment", in.DownPayment),
		DownPaymentSourceID: source,
		Color:               in.Color,
	}
	if n.err != nil {
		return nil, n.err
	}
	if kind == domain.InstrumentKindStudentLoan {
		if loanInit.DownPaymentAmount != 0 || source != nil {
			return nil, status.Error(codes.InvalidArgument, "student loan must not have a down payment")
		}
		return domain.NewStudentLoan(loanInit, nil), nil
	}
	return domain.NewLoan(loanInit, nil), nil
}

func protoToPortfolio(in []Instrument) (domain.Portfolio, error) {
	instruments := make([]domain.Instrument, 0, len(in))
	for i, wire := range in {
		inst, err := protoToInstrument(wire)
		if err != nil {
			return domain.Portfolio{}, status.Errorf(codes.InvalidArgument, "instruments[%d]: %s", i, status.Convert(err).Message())
		}
		instruments = append(instruments, inst)
	}
	return domain.NewPortfolio(instruments...), nil
}

func protoToScenario(in Scenario) (planner.PlanRequest, error) {
	var n numbers
	settings := domain.PlanSettings{
		MonthlyIncome:   n.parse("monthly_income", in.Settings.MonthlyIncome),
		YearlyInflation: n.parse("yearly_inflation", in.Settings.YearlyInflation),
		HorizonMonths:   in.Settings.HorizonMonths,
	}
	if n.err != nil {
		return planner.PlanRequest{}, n.err
	}

	portfolio, err := protoToPortfolio(in.Instruments)
	if err != nil {
		return planner.PlanRequest{}, err
	}

	req := planner.PlanRequest{Name: in.Name, Settings: settings, Portfolio: portfolio}
	if in.Rule != nil {
		rule, err := protoToSplitRule(*in.Rule)
		if err != nil {
			return planner.PlanRequest{}, err
		}
		req.Rule = &rule
	}
	return req, nil
}

func protoToSplitRule(in SplitRule) (domain.SplitRule, error) {
	rule := domain.SplitRule{Name: in.Name}
	for i, item := range in.Items {
		target, err := uuid.Parse(item.TargetStockId)
		if err != nil {
			return domain.SplitRule{}, status.Errorf(codes.InvalidArgument, "invalid rule.items[%d].target_stock_id format: %v", i, err)
		}

		value := decimal.Zero
		if item.Value != "" {
			if value, err = decimal.NewFromString(item.Value); err != nil {
				return domain.SplitRule{}, status.Errorf(codes.InvalidArgument, "invalid rule.items[%d].value format: %v", i, err)
			}
		}

		rule.Items = append(rule.Items, domain.SplitRuleItem{
			TargetStockID: target,
			Type:          domain.SplitRuleItemType(strings.ToUpper(item.Type)),
			Value:         value,
			Priority:      item.Priority,
		})
	}
	return rule, nil
}

func instrumentToProto(inst domain.Instrument) Instrument {
	switch v := inst.(type) {
	case domain.Asset:
		return Instrument{
			Id:             v.ID.String(),
			Kind:           string(v.AssetKind),
			Name:           v.Name,
			StartMonth:     v.StartMonth,
			YearlyRate:     formatNumber(v.YearlyRate),
			RateConvention: string(v.RateConvention),
			Color:          v.Color,
			InitialValue:   formatNumber(v.InitialValue),
			CurrentValue:   formatNumber(v.CurrentValue),
			TaxRate:        formatNumber(v.TaxRate),
		}
	case domain.Loan:
		out := Instrument{
			Id:             v.ID.String(),
			Kind:           string(v.LoanKind),
			Name:           v.Name,
			StartMonth:     v.StartMonth,
			YearlyRate:     formatNumber(v.YearlyRate),
			RateConvention: string(v.RateConvention),
			Color:          v.Color,
			Principal:      formatNumber(v.Principal),
			Years:          v.TermYears,
			Months:         v.TermExtraMonths,
			DeferredMonths: v.DeferredMonths,
		}
		if v.DownPaymentAmount != 0 {
			out.DownPayment = formatNumber(v.DownPaymentAmount)
		}
		if v.DownPaymentSourceID != nil {
			out.DownPaymentSourceId = v.DownPaymentSourceID.String()
		}
		return out
	default:
		return Instrument{}
	}
}

func portfolioToProto(p domain.Portfolio) []Instrument {
	out := make([]Instrument, 0, p.Len())
	for _, inst := range p.Instruments() {
		out = append(out, instrumentToProto(inst))
	}
	return out
}

func settingsToProto(s domain.PlanSettings) Settings {
	return Settings{
		MonthlyIncome:   formatNumber(s.MonthlyIncome),
		YearlyInflation: formatNumber(s.YearlyInflation),
		HorizonMonths:   s.HorizonMonths,
	}
}

func planToProto(result *planner.PlanResult) *CalculatePlanResponse {
	plan := result.Plan
	resp := &CalculatePlanResponse{
		Fingerprint:   result.Fingerprint,
		ComputedAt:    timestamppb.New(result.ComputedAt),
		Cached:        result.Cached,
		TotalMonths:   plan.TotalMonths,
		Loans:         make([]LoanSchedule, 0, len(plan.Loans)),
		Stocks:        make([]AssetProjection, 0, len(plan.StockInvestments)),
		Properties:    make([]AssetProjection, 0, len(plan.PropertyInvestments)),
		NetWorth:      plan.NetWorth,
		NetWorthTaxed: plan.NetWorthTaxed,
	}

	for _, lp := range plan.Loans {
		resp.Loans = append(resp.Loans, LoanSchedule{
			Id:             lp.Loan.ID.String(),
			Name:           lp.Loan.Name,
			Kind:           string(lp.Loan.LoanKind),
			MonthlyPayment: formatAmount(lp.MonthlyPayment),
			TotalCost:      formatAmount(lp.TotalCost),
			Balances:       lp.Principals,
			Interest:       lp.RatePayments,
			Principal:      lp.PrincipalPayments,
		})
	}

	for _, sp := range plan.StockInvestments {
		resp.Stocks = append(resp.Stocks, AssetProjection{
			Id:            sp.Asset.ID.String(),
			Name:          sp.Asset.Name,
			Kind:          string(sp.Asset.AssetKind),
			Values:        sp.TotalValues,
			TaxedValues:   sp.TaxedValues,
			Contributions: sp.InvestedValues,
			SellOffs:      plan.StockSellOffs[sp.Asset.ID],
		})
	}

	for _, pp := range plan.PropertyInvestments {
		resp.Properties = append(resp.Properties, AssetProjection{
			Id:          pp.Asset.ID.String(),
			Name:        pp.Asset.Name,
			Kind:        string(pp.Asset.AssetKind),
			Values:      pp.TotalValues,
			TaxedValues: pp.TaxedValues,
		})
	}

	return resp
}

func breakdownToProto(b *domain.MonthBreakdown) *GetMonthBreakdownResponse {
	resp := &GetMonthBreakdownResponse{
		Month:         b.Month,
		NetWorth:      formatAmount(b.NetWorth),
		NetWorthTaxed: formatAmount(b.NetWorthTaxed),
		Instruments:   make([]InstrumentDetail, 0, len(b.Instruments)),
	}

	for _, d := range b.Instruments {
		detail := InstrumentDetail{
			Id:         d.ID.String(),
			Name:       d.Name,
			Kind:       string(d.Kind),
			Value:      formatAmount(d.Value),
			TaxedValue: formatAmount(d.TaxedValue),
		}
		switch d.Kind {
		case domain.InstrumentKindLoan, domain.InstrumentKindStudentLoan:
			detail.Principal = formatAmount(d.Principal)
			detail.Interest = formatAmount(d.Interest)
		case domain.InstrumentKindStock:
			detail.Contribution = formatAmount(d.Contribution)
			detail.SellOff = formatAmount(d.SellOff)
		}
		resp.Instruments = append(resp.Instruments, detail)
	}

	return resp
}

func snapshotToProto(s *domain.ProjectionSnapshot) Snapshot {
	return Snapshot{
		Id:            s.ID.String(),
		Fingerprint:   s.ScenarioFingerprint,
		ScenarioName:  s.ScenarioName,
		TakenAt:       timestamppb.New(s.TakenAt),
		HorizonMonths: s.HorizonMonths,
		NetWorth:      s.NetWorth.StringFixed(2),
		NetWorthTaxed: s.NetWorthTaxed.StringFixed(2),
	}
}
