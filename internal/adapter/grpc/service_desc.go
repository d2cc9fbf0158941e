package grpc

// Service descriptor, server interface and client of wealthflow.planner.v1.PlannerService.
// Messages are plain structs carried by the JSON codec, so no generated code is involved.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "wealthflow.planner.v1.PlannerService"

// PlannerServiceServer is the server API for PlannerService.
type PlannerServiceServer interface {
	CalculatePlan(context.Context, *CalculatePlanRequest) (*CalculatePlanResponse, error)
	GetNetWorth(context.Context, *GetNetWorthRequest) (*GetNetWorthResponse, error)
	GetMonthBreakdown(context.Context, *GetMonthBreakdownRequest) (*GetMonthBreakdownResponse, error)
	ApplyEdit(context.Context, *ApplyEditRequest) (*ApplyEditResponse, error)
	DefaultPortfolio(context.Context, *DefaultPortfolioRequest) (*DefaultPortfolioResponse, error)
	ListSnapshots(context.Context, *ListSnapshotsRequest) (*ListSnapshotsResponse, error)
	mustEmbedUnimplementedPlannerServiceServer()
}

// UnimplementedPlannerServiceServer provides forward-compatible default implementations.
type UnimplementedPlannerServiceServer struct{}

func (UnimplementedPlannerServiceServer) CalculatePlan(context.Context, *CalculatePlanRequest) (*CalculatePlanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CalculatePlan not implemented")
}
func (UnimplementedPlannerServiceServer) GetNetWorth(context.Context, *GetNetWorthRequest) (*GetNetWorthResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetNetWorth not implemented")
}
func (UnimplementedPlannerServiceServer) GetMonthBreakdown(context.Context, *GetMonthBreakdownRequest) (*GetMonthBreakdownResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetMonthBreakdown not implemented")
}
func (UnimplementedPlannerServiceServer) ApplyEdit(context.Context, *ApplyEditRequest) (*ApplyEditResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ApplyEdit not implemented")
}
func (UnimplementedPlannerServiceServer) DefaultPortfolio(context.Context, *DefaultPortfolioRequest) (*DefaultPortfolioResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DefaultPortfolio not implemented")
}
func (UnimplementedPlannerServiceServer) ListSnapshots(context.Context, *ListSnapshotsRequest) (*ListSnapshotsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListSnapshots not implemented")
}
func (UnimplementedPlannerServiceServer) mustEmbedUnimplementedPlannerServiceServer() {}

// RegisterPlannerServiceServer registers the PlannerServiceServer with the gRPC server.
func RegisterPlannerServiceServer(s grpclib.ServiceRegistrar, srv PlannerServiceServer) {
	s.RegisterService(&plannerServiceDesc, srv)
}

var plannerServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PlannerServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CalculatePlan", Handler: calculatePlanHandler},
		{MethodName: "GetNetWorth", Handler: getNetWorthHandler},
		{MethodName: "GetMonthBreakdown", Handler: getMonthBreakdownHandler},
		{MethodName: "ApplyEdit", Handler: applyEditHandler},
		{MethodName: "DefaultPortfolio", Handler: defaultPortfolioHandler},
		{MethodName: "ListSnapshots", Handler: listSnapshotsHandler},
	},
	Streams: []grpclib.StreamDesc{},
}

func calculatePlanHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CalculatePlanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PlannerServiceServer).CalculatePlan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/CalculatePlan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PlannerServiceServer).CalculatePlan(ctx, req.(*CalculatePlanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getNetWorthHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetNetWorthRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PlannerServiceServer).GetNetWorth(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/GetNetWorth",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PlannerServiceServer).GetNetWorth(ctx, req.(*GetNetWorthRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getMonthBreakdownHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetMonthBreakdownRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PlannerServiceServer).GetMonthBreakdown(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/GetMonthBreakdown",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PlannerServiceServer).GetMonthBreakdown(ctx, req.(*GetMonthBreakdownRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func applyEditHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ApplyEditRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PlannerServiceServer).ApplyEdit(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/ApplyEdit",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PlannerServiceServer).ApplyEdit(ctx, req.(*ApplyEditRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func defaultPortfolioHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(DefaultPortfolioRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PlannerServiceServer).DefaultPortfolio(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/DefaultPortfolio",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PlannerServiceServer).DefaultPortfolio(ctx, req.(*DefaultPortfolioRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func listSnapshotsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListSnapshotsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PlannerServiceServer).ListSnapshots(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/ListSnapshots",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PlannerServiceServer).ListSnapshots(ctx, req.(*ListSnapshotsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// PlannerServiceClient is the client API for PlannerService. Every call uses the JSON codec.
type PlannerServiceClient interface {
	CalculatePlan(ctx context.Context, in *CalculatePlanRequest, opts ...grpclib.CallOption) (*CalculatePlanResponse, error)
	GetNetWorth(ctx context.Context, in *GetNetWorthRequest, opts ...grpclib.CallOption) (*GetNetWorthResponse, error)
	GetMonthBreakdown(ctx context.Context, in *GetMonthBreakdownRequest, opts ...grpclib.CallOption) (*GetMonthBreakdownResponse, error)
	ApplyEdit(ctx context.Context, in *ApplyEditRequest, opts ...grpclib.CallOption) (*ApplyEditResponse, error)
	DefaultPortfolio(ctx context.Context, in *DefaultPortfolioRequest, opts ...grpclib.CallOption) (*DefaultPortfolioResponse, error)
	ListSnapshots(ctx context.Context, in *ListSnapshotsRequest, opts ...grpclib.CallOption) (*ListSnapshotsResponse, error)
}

type plannerServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewPlannerServiceClient creates a client on top of cc
func NewPlannerServiceClient(cc grpclib.ClientConnInterface) PlannerServiceClient {
	return &plannerServiceClient{cc: cc}
}

func (c *plannerServiceClient) CalculatePlan(ctx context.Context, in *CalculatePlanRequest, opts ...grpclib.CallOption) (*CalculatePlanResponse, error) {
	out := new(CalculatePlanResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/CalculatePlan", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *plannerServiceClient) GetNetWorth(ctx context.Context, in *GetNetWorthRequest, opts ...grpclib.CallOption) (*GetNetWorthResponse, error) {
	out := new(GetNetWorthResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/GetNetWorth", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *plannerServiceClient) GetMonthBreakdown(ctx context.Context, in *GetMonthBreakdownRequest, opts ...grpclib.CallOption) (*GetMonthBreakdownResponse, error) {
	out := new(GetMonthBreakdownResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/GetMonthBreakdown", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *plannerServiceClient) ApplyEdit(ctx context.Context, in *ApplyEditRequest, opts ...grpclib.CallOption) (*ApplyEditResponse, error) {
	out := new(ApplyEditResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/ApplyEdit", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *plannerServiceClient) DefaultPortfolio(ctx context.Context, in *DefaultPortfolioRequest, opts ...grpclib.CallOption) (*DefaultPortfolioResponse, error) {
	out := new(DefaultPortfolioResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/DefaultPortfolio", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *plannerServiceClient) ListSnapshots(ctx context.Context, in *ListSnapshotsRequest, opts ...grpclib.CallOption) (*ListSnapshotsResponse, error) {
	out := new(ListSnapshotsResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/ListSnapshots", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
