package seeder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/usecase/planner"
)

// MockSnapshotRecorder is a mock implementation of SnapshotRecorder
type MockSnapshotRecorder struct {
	mock.Mock
}

func (m *MockSnapshotRecorder) Latest(ctx context.Context, fingerprint string) (*domain.ProjectionSnapshot, error) {
	args := m.Called(ctx, fingerprint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectionSnapshot), args.Error(1)
}

func (m *MockSnapshotRecorder) Capture(ctx context.Context, req planner.PlanRequest) (*domain.ProjectionSnapshot, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectionSnapshot), args.Error(1)
}

func baseline() planner.PlanRequest {
	return planner.PlanRequest{Name: "baseline", Settings: DefaultSettings, Portfolio: DefaultPortfolio()}
}

func TestBaselineSeeder_Seed_SnapshotMissing(t *testing.T) {
	ctx := context.Background()
	recorder := new(MockSnapshotRecorder)
	req := baseline()

	recorder.On("Latest", ctx, planner.Fingerprint(req)).Return(nil, domain.ErrSnapshotNotFound)
	recorder.On("Capture", ctx, mock.MatchedBy(func(r planner.PlanRequest) bool {
		return r.Name == "baseline" && r.Portfolio.Len() == 4
	})).Return(&domain.ProjectionSnapshot{}, nil)

	seeded, err := NewBaselineSeeder(recorder).Seed(ctx, req)

	require.NoError(t, err)
	assert.True(t, seeded)
	recorder.AssertExpectations(t)
}

func TestBaselineSeeder_Seed_SnapshotExists(t *testing.T) {
	ctx := context.Background()
	recorder := new(MockSnapshotRecorder)

	recorder.On("Latest", ctx, mock.Anything).Return(&domain.ProjectionSnapshot{}, nil)

	seeded, err := NewBaselineSeeder(recorder).Seed(ctx, baseline())

	require.NoError(t, err)
	assert.False(t, seeded)
	recorder.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything)
}

func TestBaselineSeeder_Seed_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("lookup failure", func(t *testing.T) {
		recorder := new(MockSnapshotRecorder)
		recorder.On("Latest", ctx, mock.Anything).Return(nil, errors.New("database is locked"))

		_, err := NewBaselineSeeder(recorder).Seed(ctx, baseline())

		assert.Error(t, err)
		recorder.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything)
	})

	t.Run("capture failure", func(t *testing.T) {
		recorder := new(MockSnapshotRecorder)
		recorder.On("Latest", ctx, mock.Anything).Return(nil, domain.ErrSnapshotNotFound)
		recorder.On("Capture", ctx, mock.Anything).Return(nil, errors.New("disk full"))

		_, err := NewBaselineSeeder(recorder).Seed(ctx, baseline())

		assert.Error(t, err)
	})
}
