package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/simaogato/wealthflow-planner/internal/adapter/cache"
	"github.com/simaogato/wealthflow-planner/internal/adapter/repository/memory"
	"github.com/simaogato/wealthflow-planner/internal/logging"
	"github.com/simaogato/wealthflow-planner/internal/usecase/dashboard"
	"github.com/simaogato/wealthflow-planner/internal/usecase/planner"
	"github.com/simaogato/wealthflow-planner/internal/usecase/seeder"
	"github.com/simaogato/wealthflow-planner/internal/usecase/snapshot"
)

const testToken = "test-token"

const (
	stockID    = "00000000-0000-0000-0000-00000000a001"
	propertyID = "00000000-0000-0000-0000-00000000a002"
	loanID     = "00000000-0000-0000-0000-00000000a003"
)

type testEnv struct {
	client    PlannerServiceClient
	snapshots *snapshot.SnapshotService
	ctx       context.Context
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	logger := logging.Discard()
	plannerService := planner.NewPlannerService(cache.NewMemoryCache(0), nil, logger)
	snapshotService := snapshot.NewSnapshotService(memory.NewSnapshotRepository(), plannerService, nil, logger)
	server := NewServer(plannerService, dashboard.NewDashboardService(plannerService), snapshotService, seeder.DefaultSettings)

	lis := bufconn.Listen(1 << 20)
	srv := grpclib.NewServer(grpclib.ChainUnaryInterceptor(
		LoggingInterceptor(logger),
		RecoveryInterceptor(logger),
		AuthInterceptor(testToken, HealthCheckMethod),
	))
	RegisterPlannerServiceServer(srv, server)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpclib.NewClient("passthrough:///bufnet",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &testEnv{
		client:    NewPlannerServiceClient(conn),
		snapshots: snapshotService,
		ctx:       metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+testToken),
	}
}

func testScenario() Scenario {
	return Scenario{
		Name: "wire",
		Settings: Settings{
			MonthlyIncome:   "30000",
			YearlyInflation: "0.02",
			HorizonMonths:   24,
		},
		Instruments: []Instrument{
			{Id: stockID, Kind: "STOCK", Name: "Index Fund", InitialValue: "100000", CurrentValue: "100000", YearlyRate: "0.07", TaxRate: "0.22"},
			{Id: propertyID, Kind: "PROPERTY", Name: "Apartment", StartMonth: 6, InitialValue: "4000000", CurrentValue: "4000000", YearlyRate: "0.03"},
			{Id: loanID, Kind: "LOAN", Name: "Mortgage", StartMonth: 6, Principal: "3000000", YearlyRate: "0.05", Years: 25, DownPayment: "50000", DownPaymentSourceId: stockID},
		},
	}
}

func requireCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, status.Code(err), "error: %v", err)
}

func TestServer_CalculatePlan(t *testing.T) {
	env := setup(t)

	first, err := env.client.CalculatePlan(env.ctx, &CalculatePlanRequest{Scenario: testScenario()})
	require.NoError(t, err)

	assert.NotEmpty(t, first.Fingerprint)
	assert.False(t, first.Cached)
	assert.NotNil(t, first.ComputedAt)
	assert.Equal(t, 25, first.TotalMonths)
	assert.Len(t, first.NetWorth, 25)
	assert.Len(t, first.NetWorthTaxed, 25)

	require.Len(t, first.Stocks, 1)
	stock := first.Stocks[0]
	assert.Equal(t, stockID, stock.Id)
	require.Len(t, stock.SellOffs, 25)
	assert.Equal(t, 50000.0, stock.SellOffs[6])

	require.Len(t, first.Properties, 1)
	property := first.Properties[0]
	assert.Nil(t, property.Values[5], "property does not exist before its start month")
	require.NotNil(t, property.Values[6])
	assert.InDelta(t, 4000000, *property.Values[6], 1e-6)

	require.Len(t, first.Loans, 1)
	assert.Equal(t, "17344.15", first.Loans[0].MonthlyPayment)
	assert.Equal(t, 0.0, first.Loans[0].Balances[5])
	assert.InDelta(t, 3000000, first.Loans[0].Balances[6], 1e-6)

	second, err := env.client.CalculatePlan(env.ctx, &CalculatePlanRequest{Scenario: testScenario()})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, first.NetWorth, second.NetWorth)
}

func TestServer_CalculatePlan_InvalidInput(t *testing.T) {
	env := setup(t)

	tests := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{name: "negative horizon", mutate: func(s *Scenario) { s.Settings.HorizonMonths = -1 }},
		{name: "malformed amount", mutate: func(s *Scenario) { s.Instruments[0].InitialValue = "lots" }},
		{name: "unknown kind", mutate: func(s *Scenario) { s.Instruments[0].Kind = "BOND" }},
		{name: "malformed id", mutate: func(s *Scenario) { s.Instruments[0].Id = "abc" }},
		{name: "down payment source is not a stock", mutate: func(s *Scenario) { s.Instruments[2].DownPaymentSourceId = propertyID }},
		{name: "rule without remainder", mutate: func(s *Scenario) {
			s.Rule = &SplitRule{Items: []SplitRuleItem{{TargetStockId: stockID, Type: "FIXED", Value: "100", Priority: 1}}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := testScenario()
			tt.mutate(&scenario)

			_, err := env.client.CalculatePlan(env.ctx, &CalculatePlanRequest{Scenario: scenario})
			requireCode(t, err, codes.InvalidArgument)
		})
	}
}

func TestServer_NonFiniteInput(t *testing.T) {
	env := setup(t)

	tests := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{name: "income beyond float range", mutate: func(s *Scenario) { s.Settings.MonthlyIncome = "1e400" }},
		{name: "principal beyond float range", mutate: func(s *Scenario) { s.Instruments[2].Principal = "-1e400" }},
		{name: "income overflowing with inflation", mutate: func(s *Scenario) {
			s.Settings.MonthlyIncome = "1e308"
			s.Settings.YearlyInflation = "1"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := testScenario()
			tt.mutate(&scenario)

			_, err := env.client.GetNetWorth(env.ctx, &GetNetWorthRequest{Scenario: scenario, Month: 24})
			requireCode(t, err, codes.InvalidArgument)

			_, err = env.client.CalculatePlan(env.ctx, &CalculatePlanRequest{Scenario: scenario})
			requireCode(t, err, codes.InvalidArgument)
		})
	}

	// The server keeps serving afterwards
	_, err := env.client.CalculatePlan(env.ctx, &CalculatePlanRequest{Scenario: testScenario()})
	require.NoError(t, err)
}

func TestServer_RequiresToken(t *testing.T) {
	env := setup(t)

	_, err := env.client.CalculatePlan(context.Background(), &CalculatePlanRequest{Scenario: testScenario()})
	requireCode(t, err, codes.Unauthenticated)
}

func TestServer_GetNetWorth(t *testing.T) {
	env := setup(t)

	plan, err := env.client.CalculatePlan(env.ctx, &CalculatePlanRequest{Scenario: testScenario()})
	require.NoError(t, err)

	resp, err := env.client.GetNetWorth(env.ctx, &GetNetWorthRequest{Scenario: testScenario(), Month: 12})
	require.NoError(t, err)

	assert.Equal(t, 12, resp.Month)
	assert.Equal(t, formatAmount(plan.NetWorth[12]), resp.Total)
	assert.Equal(t, formatAmount(plan.NetWorthTaxed[12]), resp.Taxed)
	assert.NotEqual(t, "0.00", resp.Liabilities)

	_, err = env.client.GetNetWorth(env.ctx, &GetNetWorthRequest{Scenario: testScenario(), Month: 25})
	requireCode(t, err, codes.InvalidArgument)
}

func TestServer_GetMonthBreakdown(t *testing.T) {
	env := setup(t)

	before, err := env.client.GetMonthBreakdown(env.ctx, &GetMonthBreakdownRequest{Scenario: testScenario(), Month: 0})
	require.NoError(t, err)
	kinds := make([]string, 0, len(before.Instruments))
	for _, d := range before.Instruments {
		kinds = append(kinds, d.Kind)
	}
	assert.ElementsMatch(t, []string{"STOCK", "LOAN"}, kinds, "the apartment has not started yet")

	after, err := env.client.GetMonthBreakdown(env.ctx, &GetMonthBreakdownRequest{Scenario: testScenario(), Month: 6})
	require.NoError(t, err)
	assert.Len(t, after.Instruments, 3)
	for _, d := range after.Instruments {
		if d.Kind == "STOCK" {
			assert.Equal(t, "50000.00", d.SellOff)
		}
	}

	_, err = env.client.GetMonthBreakdown(env.ctx, &GetMonthBreakdownRequest{Scenario: testScenario(), Month: -1})
	requireCode(t, err, codes.InvalidArgument)
}

func TestServer_ApplyEdit(t *testing.T) {
	env := setup(t)
	instruments := testScenario().Instruments

	t.Run("add", func(t *testing.T) {
		resp, err := env.client.ApplyEdit(env.ctx, &ApplyEditRequest{
			Instruments: instruments,
			Op:          "add",
			Instrument:  &Instrument{Kind: "STUDENT_LOAN", Name: "Studies", Principal: "50000", YearlyRate: "0.045", Years: 10},
		})
		require.NoError(t, err)
		require.Len(t, resp.Instruments, 4)
		added := resp.Instruments[3]
		assert.NotEmpty(t, added.Id)
		assert.Equal(t, "STUDENT_LOAN", added.Kind)
		assert.Equal(t, "EFFECTIVE", added.RateConvention)
	})

	t.Run("add invalid", func(t *testing.T) {
		_, err := env.client.ApplyEdit(env.ctx, &ApplyEditRequest{
			Instruments: instruments,
			Op:          EditOpAdd,
			Instrument:  &Instrument{Kind: "LOAN", Name: "No term", Principal: "1000"},
		})
		requireCode(t, err, codes.InvalidArgument)
	})

	t.Run("add duplicate", func(t *testing.T) {
		_, err := env.client.ApplyEdit(env.ctx, &ApplyEditRequest{
			Instruments: instruments,
			Op:          EditOpAdd,
			Instrument:  &instruments[0],
		})
		requireCode(t, err, codes.AlreadyExists)
	})

	t.Run("update", func(t *testing.T) {
		resp, err := env.client.ApplyEdit(env.ctx, &ApplyEditRequest{
			Instruments: instruments,
			Op:          EditOpUpdate,
			Id:          stockID,
			Field:       "expectedReturn",
			Value:       "8",
		})
		require.NoError(t, err)
		assert.Equal(t, "0.08", resp.Instruments[0].YearlyRate)
	})

	t.Run("update unknown field", func(t *testing.T) {
		_, err := env.client.ApplyEdit(env.ctx, &ApplyEditRequest{
			Instruments: instruments, Op: EditOpUpdate, Id: stockID, Field: "dividend", Value: "1",
		})
		requireCode(t, err, codes.InvalidArgument)
	})

	t.Run("update missing instrument", func(t *testing.T) {
		_, err := env.client.ApplyEdit(env.ctx, &ApplyEditRequest{
			Instruments: instruments, Op: EditOpUpdate, Id: "00000000-0000-0000-0000-00000000ffff", Field: "name", Value: "x",
		})
		requireCode(t, err, codes.NotFound)
	})

	t.Run("remove stock clears down payment source", func(t *testing.T) {
		resp, err := env.client.ApplyEdit(env.ctx, &ApplyEditRequest{
			Instruments: instruments, Op: EditOpRemove, Id: stockID,
		})
		require.NoError(t, err)
		require.Len(t, resp.Instruments, 2)
		assert.Equal(t, loanID, resp.Instruments[1].Id)
		assert.Empty(t, resp.Instruments[1].DownPaymentSourceId)
		assert.Equal(t, "50000", resp.Instruments[1].DownPayment)
	})

	t.Run("unknown op", func(t *testing.T) {
		_, err := env.client.ApplyEdit(env.ctx, &ApplyEditRequest{Instruments: instruments, Op: "MERGE"})
		requireCode(t, err, codes.InvalidArgument)
	})
}

func TestServer_DefaultPortfolio(t *testing.T) {
	env := setup(t)

	all, err := env.client.DefaultPortfolio(env.ctx, &DefaultPortfolioRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Instruments, 4)
	assert.Equal(t, "30000", all.Settings.MonthlyIncome)
	assert.Equal(t, 240, all.Settings.HorizonMonths)

	one, err := env.client.DefaultPortfolio(env.ctx, &DefaultPortfolioRequest{Kind: "stock"})
	require.NoError(t, err)
	require.Len(t, one.Instruments, 1)
	assert.Equal(t, "Index Fund", one.Instruments[0].Name)

	_, err = env.client.DefaultPortfolio(env.ctx, &DefaultPortfolioRequest{Kind: "bond"})
	requireCode(t, err, codes.InvalidArgument)
}

func TestServer_ListSnapshots(t *testing.T) {
	env := setup(t)

	scenario := testScenario()
	req, err := protoToScenario(scenario)
	require.NoError(t, err)
	recorded, err := env.snapshots.Capture(context.Background(), req)
	require.NoError(t, err)

	byScenario, err := env.client.ListSnapshots(env.ctx, &ListSnapshotsRequest{Scenario: &scenario})
	require.NoError(t, err)
	require.Len(t, byScenario.Snapshots, 1)
	assert.Equal(t, recorded.ID.String(), byScenario.Snapshots[0].Id)
	assert.Equal(t, "wire", byScenario.Snapshots[0].ScenarioName)
	assert.Equal(t, recorded.NetWorth.StringFixed(2), byScenario.Snapshots[0].NetWorth)

	byFingerprint, err := env.client.ListSnapshots(env.ctx, &ListSnapshotsRequest{Fingerprint: recorded.ScenarioFingerprint, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, byFingerprint.Snapshots, 1)

	unknown, err := env.client.ListSnapshots(env.ctx, &ListSnapshotsRequest{Fingerprint: "nothing"})
	require.NoError(t, err)
	assert.Empty(t, unknown.Snapshots)

	_, err = env.client.ListSnapshots(env.ctx, &ListSnapshotsRequest{})
	requireCode(t, err, codes.InvalidArgument)

	_, err = env.client.ListSnapshots(env.ctx, &ListSnapshotsRequest{Fingerprint: "x", Limit: -1})
	requireCode(t, err, codes.InvalidArgument)
}
