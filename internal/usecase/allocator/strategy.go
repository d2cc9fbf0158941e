package allocator

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-planner/internal/domain"
)

// Strategy divides each month's investable surplus between stocks.
// Split returns one contribution row per stock, in the order of stocks, each as long as investable.
type Strategy interface {
	Split(investable []float64, stocks []domain.Asset) [][]float64
}

// EqualSplit gives every stock the same share of the surplus, including deficits
type EqualSplit struct{}

// Split implements Strategy
func (EqualSplit) Split(investable []float64, stocks []domain.Asset) [][]float64 {
	rows := make([][]float64, len(stocks))
	if len(stocks) == 0 {
		return rows
	}

	n := float64(len(stocks))
	for s := range stocks {
		row := make([]float64, len(investable))
		for i, amount := range investable {
			row[i] = amount / n
		}
		rows[s] = row
	}
	return rows
}

// RuleSplit routes the surplus through a split rule, month by month.
// Logic:
//   - Positive months run CalculateAllocation over the rule's items
//   - When FIXED items exceed the month's surplus they are funded in priority order
//     and the other items receive nothing
//   - Zero, negative or non-finite months go entirely to the REMAINDER target
//
// Amounts routed to an ID that is not among the stocks are dropped; use ValidateTargets
// to reject such rules up front.
type RuleSplit struct {
	Rule domain.SplitRule
}

// Split implements Strategy
func (s RuleSplit) Split(investable []float64, stocks []domain.Asset) [][]float64 {
	rows := make([][]float64, len(stocks))
	index := make(map[uuid.UUID]int, len(stocks))
	for i, stock := range stocks {
		rows[i] = make([]float64, len(investable))
		index[stock.ID] = i
	}

	remainder := findRemainderItem(s.Rule.Items)
	for month, amount := range investable {
		// Non-finite amounts cannot be split exactly; they go to the REMAINDER as-is
		if amount <= 0 || !domain.IsFinite(amount) {
			if remainder != nil {
				if i, ok := index[remainder.TargetStockID]; ok {
					rows[i][month] = amount
				}
			}
			continue
		}
		total := decimal.NewFromFloat(amount)

		allocation, err := CalculateAllocation(total, s.Rule.Items)
		if errors.Is(err, ErrFixedExceedsAmount) {
			allocation = fundInPriority(total, s.Rule.Items)
		} else if err != nil {
			continue
		}

		for id, share := range allocation {
			if i, ok := index[id]; ok {
				rows[i][month] += share.InexactFloat64()
			}
		}
	}

	return rows
}

// ValidateTargets checks the rule itself and that every item targets one of stocks
func ValidateTargets(rule domain.SplitRule, stocks []domain.Asset) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	known := make(map[uuid.UUID]bool, len(stocks))
	for _, stock := range stocks {
		known[stock.ID] = true
	}
	for _, id := range rule.Targets() {
		if !known[id] {
			return fmt.Errorf("split rule target %s is not a stock", id)
		}
	}
	return nil
}
