package allocator

import (
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-planner/internal/domain"
)

// CalculateAllocation calculates the allocation of a total amount across split rule items
// Returns a map of stock ID to allocated amount
// Logic:
//  1. Sort items by Priority (Lower = First)
//  2. Deduct FIXED amounts first
//  3. Calculate PERCENT amounts based on the *Remainder* (Total - Fixed), NOT the original total
//  4. Assign the final leftover amount to the REMAINDER item
//
// Safety: Ensures total allocation equals total amount exactly (no penny lost)
func CalculateAllocation(totalAmount decimal.Decimal, items []domain.SplitRuleItem) (map[uuid.UUID]decimal.Decimal, error) {
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("total amount must be positive")
	}

	if len(items) == 0 {
		return nil, errors.New("items list cannot be empty")
	}

	sortedItems := sortByPriority(items)

	// Initialize allocation map
	allocation := make(map[uuid.UUID]decimal.Decimal)
	remaining := totalAmount

	// Step 1: Deduct FIXED amounts first
	for _, item := range sortedItems {
		if item.Type == domain.SplitRuleItemTypeFixed {
			if item.Value.GreaterThan(remaining) {
				return nil, ErrFixedExceedsAmount
			}
			allocation[item.TargetStockID] = allocation[item.TargetStockID].Add(item.Value)
			remaining = remaining.Sub(item.Value)
		}
	}

	// Step 2: Calculate PERCENT amounts based on the Remainder
	for _, item := range sortedItems {
		if item.Type == domain.SplitRuleItemTypePercent {
			percentAmount := remaining.Mul(item.Value).Div(decimal.NewFromInt(100))
			allocation[item.TargetStockID] = allocation[item.TargetStockID].Add(percentAmount)
		}
	}

	// Step 3: Assign the final leftover amount to the REMAINDER item
	remainderItem := findRemainderItem(sortedItems)
	if remainderItem == nil {
		return nil, errors.New("no REMAINDER item found")
	}

	allocatedSoFar := sum(allocation)
	allocation[remainderItem.TargetStockID] = allocation[remainderItem.TargetStockID].Add(totalAmount.Sub(allocatedSoFar))

	// Safety check: Ensure total allocation equals total amount exactly
	if !sum(allocation).Equal(totalAmount) {
		return nil, errors.New("total allocation does not equal total amount")
	}

	return allocation, nil
}

// ErrFixedExceedsAmount is returned when FIXED items alone exceed the amount being split
var ErrFixedExceedsAmount = errors.New("FIXED amount exceeds remaining balance")

// fundInPriority pays FIXED items in priority order until totalAmount runs out.
// PERCENT and REMAINDER items receive nothing.
func fundInPriority(totalAmount decimal.Decimal, items []domain.SplitRuleItem) map[uuid.UUID]decimal.Decimal {
	allocation := make(map[uuid.UUID]decimal.Decimal)
	remaining := totalAmount
	for _, item := range sortByPriority(items) {
		if item.Type != domain.SplitRuleItemTypeFixed || remaining.IsZero() {
			continue
		}
		amount := decimal.Min(item.Value, remaining)
		allocation[item.TargetStockID] = allocation[item.TargetStockID].Add(amount)
		remaining = remaining.Sub(amount)
	}
	return allocation
}

// sortByPriority returns a sorted copy, leaving the caller's slice untouched
func sortByPriority(items []domain.SplitRuleItem) []domain.SplitRuleItem {
	sortedItems := make([]domain.SplitRuleItem, len(items))
	copy(sortedItems, items)
	sort.SliceStable(sortedItems, func(i, j int) bool {
		return sortedItems[i].Priority < sortedItems[j].Priority
	})
	return sortedItems
}

func sum(allocation map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range allocation {
		total = total.Add(amount)
	}
	return total
}

// findRemainderItem finds the REMAINDER item in the items slice
func findRemainderItem(items []domain.SplitRuleItem) *domain.SplitRuleItem {
	for i := range items {
		if items[i].Type == domain.SplitRuleItemTypeRemainder {
			return &items[i]
		}
	}
	return nil
}
