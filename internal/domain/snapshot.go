package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrSnapshotNotFound is returned when no snapshot matches a lookup
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ProjectionSnapshot is a recorded summary of one computed plan.
// Snapshots let a scenario's projected outcome be compared over time.
type ProjectionSnapshot struct {
	ID                  uuid.UUID
	ScenarioFingerprint string // Stable hash of the inputs that produced the plan
	ScenarioName        string
	TakenAt             time.Time
	HorizonMonths       int
	NetWorth            decimal.Decimal // Final month, untaxed
	NetWorthTaxed       decimal.Decimal // Final month, net of tax on gains
}

// Validate ensures the snapshot adheres to domain rules
// Returns an error if validation fails
func (s *ProjectionSnapshot) Validate() error {
	if s.ScenarioFingerprint == "" {
		return errors.New("snapshot fingerprint cannot be empty")
	}
	if s.TakenAt.IsZero() {
		return errors.New("snapshot time cannot be empty")
	}
	if s.HorizonMonths < 0 {
		return errors.New("snapshot horizon must not be negative")
	}
	return nil
}
