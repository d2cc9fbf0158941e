package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitRuleItemType represents the type of split rule item
type SplitRuleItemType string

const (
	SplitRuleItemTypeFixed     SplitRuleItemType = "FIXED"
	SplitRuleItemTypePercent   SplitRuleItemType = "PERCENT"
	SplitRuleItemTypeRemainder SplitRuleItemType = "REMAINDER"
)

// SplitRule describes how each month's investable surplus is divided between stocks
type SplitRule struct {
	Name  string
	Items []SplitRuleItem
}

// SplitRuleItem routes part of the surplus to one stock
type SplitRuleItem struct {
	TargetStockID uuid.UUID
	Type          SplitRuleItemType // 'FIXED', 'PERCENT' (of Remainder), or 'REMAINDER' (Catch-all)
	Value         decimal.Decimal   // Amount for FIXED, percentage (0-100) for PERCENT, ignored for REMAINDER
	Priority      int               // Lower number = Executed first (Important for Fixed logic)
}

// Validate ensures the split rule adheres to domain rules
// Returns an error if validation fails
// CRITICAL: Ensures exactly one item is type 'REMAINDER'
func (sr *SplitRule) Validate() error {
	if len(sr.Items) == 0 {
		return errors.New("split rule must have at least one item")
	}

	remainderCount := 0
	percentTotal := decimal.Zero
	for _, item := range sr.Items {
		switch item.Type {
		case SplitRuleItemTypeRemainder:
			remainderCount++
		case SplitRuleItemTypeFixed:
			if item.Value.LessThanOrEqual(decimal.Zero) {
				return errors.New("FIXED split rule item value must be positive")
			}
		case SplitRuleItemTypePercent:
			if item.Value.LessThan(decimal.Zero) || item.Value.GreaterThan(decimal.NewFromInt(100)) {
				return errors.New("PERCENT split rule item value must be between 0 and 100")
			}
			percentTotal = percentTotal.Add(item.Value)
		default:
			return errors.New("split rule item type must be FIXED, PERCENT, or REMAINDER")
		}
	}

	if remainderCount != 1 {
		return errors.New("split rule must have exactly one REMAINDER item")
	}

	// Percentages are taken from the same remainder, so together they cannot exceed it
	if percentTotal.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("PERCENT split rule items must not exceed 100 in total")
	}

	return nil
}

// Targets returns the distinct stock IDs the rule routes money to
func (sr *SplitRule) Targets() []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, item := range sr.Items {
		if !seen[item.TargetStockID] {
			seen[item.TargetStockID] = true
			ids = append(ids, item.TargetStockID)
		}
	}
	return ids
}
