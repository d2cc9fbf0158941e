package scenario

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/usecase/planner"
)

// FromRequest converts a plan request back into its document form.
// References are written by name; IDs are kept so that the document resolves to the same request.
func FromRequest(req planner.PlanRequest) Document {
	names := make(map[uuid.UUID]string)
	for _, inst := range req.Portfolio.Instruments() {
		names[inst.InstrumentID()] = inst.InstrumentName()
	}

	doc := Document{
		Name: req.Name,
		Settings: Settings{
			MonthlyIncome:   req.Settings.MonthlyIncome,
			YearlyInflation: req.Settings.YearlyInflation,
			HorizonMonths:   req.Settings.HorizonMonths,
		},
	}

	for _, inst := range req.Portfolio.Instruments() {
		switch v := inst.(type) {
		case domain.Asset:
			doc.Instruments = append(doc.Instruments, InstrumentDoc{
				Kind:           v.AssetKind,
				Name:           v.Name,
				ID:             v.ID.String(),
				StartMonth:     float64(v.StartMonth),
				YearlyRate:     v.YearlyRate,
				RateConvention: string(v.RateConvention),
				Color:          v.Color,
				InitialValue:   v.InitialValue,
				CurrentValue:   v.CurrentValue,
				TaxRate:        v.TaxRate,
			})
		case domain.Loan:
			d := InstrumentDoc{
				Kind:           v.LoanKind,
				Name:           v.Name,
				ID:             v.ID.String(),
				StartMonth:     float64(v.StartMonth),
				YearlyRate:     v.YearlyRate,
				RateConvention: string(v.RateConvention),
				Color:          v.Color,
				Principal:      v.Principal,
				Years:          float64(v.TermYears),
				Months:         float64(v.TermExtraMonths),
				DeferredMonths: float64(v.DeferredMonths),
				DownPayment:    v.DownPaymentAmount,
			}
			if v.DownPaymentSourceID != nil {
				d.DownPaymentSource = names[*v.DownPaymentSourceID]
			}
			doc.Instruments = append(doc.Instruments, d)
		}
	}

	if req.Rule != nil {
		rule := RuleDoc{Name: req.Rule.Name}
		for _, item := range req.Rule.Items {
			rule.Items = append(rule.Items, RuleItemDoc{
				Target:   names[item.TargetStockID],
				Type:     string(item.Type),
				Value:    item.Value.InexactFloat64(),
				Priority: item.Priority,
			})
		}
		doc.Allocation = &Allocation{Rule: rule}
	}

	return doc
}

// Encode writes a document in the given format
func Encode(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode scenario: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode scenario: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported scenario format %q", format)
	}
}
