package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/usecase/dashboard"
	"github.com/simaogato/wealthflow-planner/internal/usecase/planner"
	"github.com/simaogato/wealthflow-planner/internal/usecase/seeder"
	"github.com/simaogato/wealthflow-planner/internal/usecase/snapshot"
)

// Server implements the PlannerService gRPC server
type Server struct {
	UnimplementedPlannerServiceServer

	PlannerService   *planner.PlannerService
	DashboardService *dashboard.DashboardService
	SnapshotService  *snapshot.SnapshotService
	Defaults         domain.PlanSettings // Returned by DefaultPortfolio
}

// NewServer creates a new gRPC server instance
func NewServer(
	plannerService *planner.PlannerService,
	dashboardService *dashboard.DashboardService,
	snapshotService *snapshot.SnapshotService,
	defaults domain.PlanSettings,
) *Server {
	return &Server{
		PlannerService:   plannerService,
		DashboardService: dashboardService,
		SnapshotService:  snapshotService,
		Defaults:         defaults,
	}
}

// CalculatePlan handles the CalculatePlan RPC
func (s *Server) CalculatePlan(ctx context.Context, req *CalculatePlanRequest) (*CalculatePlanResponse, error) {
	scenario, err := protoToScenario(req.Scenario)
	if err != nil {
		return nil, err
	}

	result, err := s.PlannerService.CalculatePlan(ctx, scenario)
	if err != nil {
		return nil, mapError(err)
	}

	return planToProto(result), nil
}

// GetNetWorth handles the GetNetWorth RPC
func (s *Server) GetNetWorth(ctx context.Context, req *GetNetWorthRequest) (*GetNetWorthResponse, error) {
	scenario, err := protoToScenario(req.Scenario)
	if err != nil {
		return nil, err
	}

	result, err := s.DashboardService.GetNetWorth(ctx, scenario, req.Month)
	if err != nil {
		return nil, mapError(err)
	}

	return &GetNetWorthResponse{
		Month:       result.Month,
		Total:       result.Total.StringFixed(2),
		Taxed:       result.Taxed.StringFixed(2),
		Assets:      result.Assets.StringFixed(2),
		Liabilities: result.Liabilities.StringFixed(2),
	}, nil
}

// GetMonthBreakdown handles the GetMonthBreakdown RPC
func (s *Server) GetMonthBreakdown(ctx context.Context, req *GetMonthBreakdownRequest) (*GetMonthBreakdownResponse, error) {
	scenario, err := protoToScenario(req.Scenario)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.DashboardService.GetMonthBreakdown(ctx, scenario, req.Month)
	if err != nil {
		return nil, mapError(err)
	}

	return breakdownToProto(breakdown), nil
}

// ApplyEdit handles the ApplyEdit RPC.
// The edit is applied to the portfolio carried in the request, which is returned modified;
// nothing is stored on the server.
func (s *Server) ApplyEdit(ctx context.Context, req *ApplyEditRequest) (*ApplyEditResponse, error) {
	portfolio, err := protoToPortfolio(req.Instruments)
	if err != nil {
		return nil, err
	}

	var next domain.Portfolio
	switch strings.ToUpper(req.Op) {
	case EditOpAdd:
		if req.Instrument == nil {
			return nil, status.Error(codes.InvalidArgument, "instrument is required for ADD")
		}
		inst, err := protoToInstrument(*req.Instrument)
		if err != nil {
			return nil, err
		}
		if err := inst.Validate(); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "%v", err)
		}
		next, err = portfolio.Add(inst)
		if err != nil {
			return nil, status.Errorf(codes.AlreadyExists, "%v", err)
		}

	case EditOpUpdate, EditOpRemove:
		id, err := uuid.Parse(req.Id)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid id format: %v", err)
		}
		if strings.ToUpper(req.Op) == EditOpUpdate {
			next, err = portfolio.Update(id, req.Field, req.Value)
		} else {
			next, err = portfolio.Remove(id)
		}
		if err != nil {
			return nil, mapEditError(err)
		}

	default:
		return nil, status.Errorf(codes.InvalidArgument, "invalid op %q: must be ADD, UPDATE or REMOVE", req.Op)
	}

	return &ApplyEditResponse{Instruments: portfolioToProto(next)}, nil
}

// DefaultPortfolio handles the DefaultPortfolio RPC
func (s *Server) DefaultPortfolio(ctx context.Context, req *DefaultPortfolioRequest) (*DefaultPortfolioResponse, error) {
	resp := &DefaultPortfolioResponse{Settings: settingsToProto(s.Defaults)}

	if req.Kind == "" {
		resp.Instruments = portfolioToProto(seeder.DefaultPortfolio())
		return resp, nil
	}

	kind, err := domain.ParseInstrumentKind(strings.ToUpper(req.Kind))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}
	inst, err := seeder.DefaultInstrument(kind)
	if err != nil {
		return nil, mapError(err)
	}
	resp.Instruments = []Instrument{instrumentToProto(inst)}
	return resp, nil
}

// ListSnapshots handles the ListSnapshots RPC
func (s *Server) ListSnapshots(ctx context.Context, req *ListSnapshotsRequest) (*ListSnapshotsResponse, error) {
	fingerprint := req.Fingerprint
	if fingerprint == "" && req.Scenario != nil {
		scenario, err := protoToScenario(*req.Scenario)
		if err != nil {
			return nil, err
		}
		fingerprint = planner.Fingerprint(scenario)
	}
	if fingerprint == "" {
		return nil, status.Error(codes.InvalidArgument, "fingerprint or scenario is required")
	}
	if req.Limit < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit must not be negative")
	}

	snapshots, err := s.SnapshotService.List(ctx, fingerprint, req.Limit)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListSnapshotsResponse{Snapshots: make([]Snapshot, 0, len(snapshots))}
	for _, snap := range snapshots {
		resp.Snapshots = append(resp.Snapshots, snapshotToProto(snap))
	}
	return resp, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrInstrumentNotFound), errors.Is(err, domain.ErrSnapshotNotFound):
		return status.Errorf(codes.NotFound, "%s", err)
	case errors.Is(err, planner.ErrInvalidScenario),
		errors.Is(err, domain.ErrNonFinite),
		errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, dashboard.ErrMonthOutOfRange):
		return status.Errorf(codes.InvalidArgument, "%s", err)
	default:
		return status.Errorf(codes.Internal, "%s", err)
	}
}

// mapEditError treats every reducer failure other than a missing instrument as bad input
func mapEditError(err error) error {
	if errors.Is(err, domain.ErrInstrumentNotFound) {
		return mapError(err)
	}
	return status.Errorf(codes.InvalidArgument, "%s", err)
}
