package scenario

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/usecase/planner"
)

// Format is the encoding of a scenario document
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// instrumentNamespace derives stable instrument IDs from names, so that reloading an
// unchanged file yields the same scenario fingerprint
var instrumentNamespace = uuid.MustParse("6f1c3a52-5d0e-4c47-9f3e-0c8a7b2d9e41")

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported scenario file %q: want .yaml, .yml or .toml", path)
	}
}

// Load reads and resolves a scenario file.
// The scenario is named after the document's name, or the file name without extension.
func Load(path string) (planner.PlanRequest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return planner.PlanRequest{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return planner.PlanRequest{}, fmt.Errorf("read scenario: %w", err)
	}

	doc, err := Parse(data, format)
	if err != nil {
		return planner.PlanRequest{}, err
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return Resolve(doc)
}

// Parse decodes a document without resolving names
func Parse(data []byte, format Format) (Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && err != io.EOF {
			return Document{}, fmt.Errorf("parse scenario: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return Document{}, fmt.Errorf("parse scenario: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Document{}, fmt.Errorf("parse scenario: unknown key %q", undecoded[0].String())
		}
	default:
		return Document{}, fmt.Errorf("unsupported scenario format %q", format)
	}
	return doc, nil
}

// Resolve turns a document into a validated plan request
// Logic:
//  1. Build every instrument with an ID from the document or derived from its name
//  2. Resolve down payment sources by stock name
//  3. Resolve split rule targets by stock name
//  4. Validate the complete request
func Resolve(doc Document) (planner.PlanRequest, error) {
	ids := make(map[string]uuid.UUID, len(doc.Instruments))
	kinds := make(map[string]domain.InstrumentKind, len(doc.Instruments))

	// 1. IDs and names
	for _, inst := range doc.Instruments {
		if inst.Name == "" {
			return planner.PlanRequest{}, fmt.Errorf("instrument of kind %s has no name", inst.Kind)
		}
		if _, dup := ids[inst.Name]; dup {
			return planner.PlanRequest{}, fmt.Errorf("duplicate instrument name %q", inst.Name)
		}
		id, err := instrumentID(inst)
		if err != nil {
			return planner.PlanRequest{}, err
		}
		kind, err := parseKind(inst.Kind)
		if err != nil {
			return planner.PlanRequest{}, fmt.Errorf("instrument %q: %w", inst.Name, err)
		}
		ids[inst.Name] = id
		kinds[inst.Name] = kind
	}

	stockID := func(name string) (uuid.UUID, error) {
		if kinds[name] != domain.InstrumentKindStock {
			return uuid.Nil, fmt.Errorf("%q is not a stock in this scenario", name)
		}
		return ids[name], nil
	}

	// 2. Instruments
	instruments := make([]domain.Instrument, 0, len(doc.Instruments))
	for _, inst := range doc.Instruments {
		id := ids[inst.Name]
		built, err := build(inst, id, stockID)
		if err != nil {
			return planner.PlanRequest{}, fmt.Errorf("instrument %q: %w", inst.Name, err)
		}
		instruments = append(instruments, built)
	}

	req := planner.PlanRequest{
		Name: doc.Name,
		Settings: domain.PlanSettings{
			MonthlyIncome:   doc.Settings.MonthlyIncome,
			YearlyInflation: doc.Settings.YearlyInflation,
			HorizonMonths:   doc.Settings.HorizonMonths,
		},
		Portfolio: domain.NewPortfolio(instruments...),
	}

	// 3. Split rule
	if doc.Allocation != nil {
		rule := domain.SplitRule{Name: doc.Allocation.Rule.Name}
		for i, item := range doc.Allocation.Rule.Items {
			target, err := stockID(item.Target)
			if err != nil {
				return planner.PlanRequest{}, fmt.Errorf("split rule item %d: %w", i, err)
			}
			typ, err := parseItemType(item.Type)
			if err != nil {
				return planner.PlanRequest{}, fmt.Errorf("split rule item %d (target %q): %w", i, item.Target, err)
			}
			value, err := domain.ToDecimal(item.Value)
			if err != nil {
				return planner.PlanRequest{}, fmt.Errorf("split rule item %d (target %q): %w", i, item.Target, err)
			}
			rule.Items = append(rule.Items, domain.SplitRuleItem{
				TargetStockID: target,
				Type:          typ,
				Value:         value,
				Priority:      item.Priority,
			})
		}
		req.Rule = &rule
	}

	// 4. Validate
	if err := req.Validate(); err != nil {
		return planner.PlanRequest{}, err
	}
	return req, nil
}

func instrumentID(inst InstrumentDoc) (uuid.UUID, error) {
	if inst.ID == "" {
		return uuid.NewSHA1(instrumentNamespace, []byte(inst.Name)), nil
	}
	id, err := uuid.Parse(inst.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("instrument %q: invalid id %q", inst.Name, inst.ID)
	}
	return id, nil
}

func build(inst InstrumentDoc, id uuid.UUID, stockID func(string) (uuid.UUID, error)) (domain.Instrument, error) {
	convention, err := parseConvention(inst.RateConvention)
	if err != nil {
		return nil, err
	}

	kind, err := parseKind(inst.Kind)
	if err != nil {
		return nil, err
	}

	asset := domain.AssetInit{
		ID:             &id,
		Name:           inst.Name,
		StartMonth:     inst.StartMonth,
		InitialValue:   inst.InitialValue,
		CurrentValue:   inst.CurrentValue,
		YearlyRate:     inst.YearlyRate,
		RateConvention: convention,
		TaxRate:        inst.TaxRate,
		Color:          inst.Color,
	}
	loan := domain.LoanInit{
		ID:                &id,
		Name:              inst.Name,
		Principal:         inst.Principal,
		YearlyRate:        inst.YearlyRate,
		RateConvention:    convention,
		TermYears:         inst.Years,
		TermExtraMonths:   inst.Months,
		DeferredMonths:    inst.DeferredMonths,
		StartMonth:        inst.StartMonth,
		DownPaymentAmount: inst.DownPayment,
		Color:             inst.Color,
	}

	switch kind {
	case domain.InstrumentKindProperty:
		return domain.NewProperty(asset, nil), nil
	case domain.InstrumentKindStock:
		return domain.NewStock(asset, nil), nil
	case domain.InstrumentKindLoan:
		if inst.DownPaymentSource != "" {
			source, err := stockID(inst.DownPaymentSource)
			if err != nil {
				return nil, fmt.Errorf("down payment source: %w", err)
			}
			loan.DownPaymentSourceID = &source
		}
		return domain.NewLoan(loan, nil), nil
	default:
		if inst.DownPayment != 0 || inst.DownPaymentSource != "" {
			return nil, fmt.Errorf("student loans have no down payment")
		}
		return domain.NewStudentLoan(loan, nil), nil
	}
}

func parseConvention(raw string) (domain.RateConvention, error) {
	if raw == "" {
		return domain.RateConventionEffective, nil
	}
	convention := domain.RateConvention(strings.ToUpper(raw))
	if err := convention.Validate(); err != nil {
		return "", err
	}
	return convention, nil
}

// parseKind accepts kinds in any letter case
func parseKind(raw domain.InstrumentKind) (domain.InstrumentKind, error) {
	return domain.ParseInstrumentKind(strings.ToUpper(strings.TrimSpace(string(raw))))
}

func parseItemType(raw string) (domain.SplitRuleItemType, error) {
	typ := domain.SplitRuleItemType(strings.ToUpper(strings.TrimSpace(raw)))
	switch typ {
	case domain.SplitRuleItemTypeFixed, domain.SplitRuleItemTypePercent, domain.SplitRuleItemTypeRemainder:
		return typ, nil
	case "":
		return "", fmt.Errorf("missing type, want FIXED, PERCENT or REMAINDER")
	default:
		return "", fmt.Errorf("unknown type %q, want FIXED, PERCENT or REMAINDER", raw)
	}
}
