package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInstrumentNotFound is returned when an instrument ID is not part of a portfolio
var ErrInstrumentNotFound = errors.New("instrument not found")

// Portfolio is an ordered, immutable collection of instruments.
// Every operation returns a new Portfolio and leaves the receiver untouched.
type Portfolio struct {
	instruments []Instrument
}

// NewPortfolio creates a portfolio holding a copy of instruments
func NewPortfolio(instruments ...Instrument) Portfolio {
	return Portfolio{instruments: append([]Instrument(nil), instruments...)}
}

// Instruments returns a copy of the instruments in insertion order
func (p Portfolio) Instruments() []Instrument {
	return append([]Instrument(nil), p.instruments...)
}

// Len returns the number of instruments
func (p Portfolio) Len() int {
	return len(p.instruments)
}

// Get finds an instrument by ID
func (p Portfolio) Get(id uuid.UUID) (Instrument, error) {
	for _, inst := range p.instruments {
		if inst.InstrumentID() == id {
			return inst, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrInstrumentNotFound, id)
}

// FindByName finds the first instrument with the given name
func (p Portfolio) FindByName(name string) (Instrument, bool) {
	for _, inst := range p.instruments {
		if inst.InstrumentName() == name {
			return inst, true
		}
	}
	return nil, false
}

// Add appends an instrument
func (p Portfolio) Add(inst Instrument) (Portfolio, error) {
	if _, err := p.Get(inst.InstrumentID()); err == nil {
		return p, fmt.Errorf("instrument %s already exists", inst.InstrumentID())
	}
	next := p.Instruments()
	return Portfolio{instruments: append(next, inst)}, nil
}

// Update replaces one field of the instrument with the given ID
func (p Portfolio) Update(id uuid.UUID, field, value string) (Portfolio, error) {
	next := p.Instruments()
	for i, inst := range next {
		if inst.InstrumentID() != id {
			continue
		}
		edited, err := ApplyEdit(inst, field, value)
		if err != nil {
			return p, err
		}
		next[i] = edited
		return Portfolio{instruments: next}, nil
	}
	return p, fmt.Errorf("%w: %s", ErrInstrumentNotFound, id)
}

// Remove drops the instrument with the given ID.
// When a stock is removed, every loan using it as down payment source loses that source.
func (p Portfolio) Remove(id uuid.UUID) (Portfolio, error) {
	removed, err := p.Get(id)
	if err != nil {
		return p, err
	}

	next := make([]Instrument, 0, len(p.instruments))
	for _, inst := range p.instruments {
		if inst.InstrumentID() == id {
			continue
		}
		if removed.Kind() == InstrumentKindStock {
			inst = clearDownPaymentSource(inst, id)
		}
		next = append(next, inst)
	}

	return Portfolio{instruments: next}, nil
}

// clearDownPaymentSource drops a dangling down payment reference to stockID
func clearDownPaymentSource(inst Instrument, stockID uuid.UUID) Instrument {
	loan, ok := inst.(Loan)
	if !ok || loan.DownPaymentSourceID == nil || *loan.DownPaymentSourceID != stockID {
		return inst
	}
	loan.DownPaymentSourceID = nil
	return loan
}

// Loans returns every LOAN and STUDENT_LOAN in insertion order
func (p Portfolio) Loans() []Loan {
	var loans []Loan
	for _, inst := range p.instruments {
		if loan, ok := inst.(Loan); ok {
			loans = append(loans, loan)
		}
	}
	return loans
}

// Stocks returns every STOCK asset in insertion order
func (p Portfolio) Stocks() []Asset {
	return p.assets(InstrumentKindStock)
}

// Properties returns every PROPERTY asset in insertion order
func (p Portfolio) Properties() []Asset {
	return p.assets(InstrumentKindProperty)
}

func (p Portfolio) assets(kind InstrumentKind) []Asset {
	var assets []Asset
	for _, inst := range p.instruments {
		if asset, ok := inst.(Asset); ok && asset.AssetKind == kind {
			assets = append(assets, asset)
		}
	}
	return assets
}

// Validate checks every instrument and every down payment reference
func (p Portfolio) Validate() error {
	stocks := make(map[uuid.UUID]bool)
	for _, s := range p.Stocks() {
		stocks[s.ID] = true
	}

	seen := make(map[uuid.UUID]bool)
	for _, inst := range p.instruments {
		if seen[inst.InstrumentID()] {
			return fmt.Errorf("duplicate instrument id %s", inst.InstrumentID())
		}
		seen[inst.InstrumentID()] = true

		if err := inst.Validate(); err != nil {
			return fmt.Errorf("%s: %w", inst.InstrumentName(), err)
		}
	}

	for _, loan := range p.Loans() {
		if loan.DownPaymentSourceID != nil && !stocks[*loan.DownPaymentSourceID] {
			return fmt.Errorf("%s: down payment source must reference a stock", loan.Name)
		}
	}

	return nil
}
