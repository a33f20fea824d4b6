package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
)

const (
	plannerServiceName = "factoryplanner.daemon.PlannerService"

	SolveFullMethodName         = "/" + plannerServiceName + "/Solve"
	ReloadCatalogFullMethodName = "/" + plannerServiceName + "/ReloadCatalog"
	HealthFullMethodName        = "/" + plannerServiceName + "/Health"
)

// SolveRequest asks the daemon to solve one project
type SolveRequest struct {
	ProjectRef     string `json:"project_ref"`
	GenerateInputs bool   `json:"generate_inputs"`
}

// SolveReply carries the solve result in document form
type SolveReply struct {
	ProjectID   string                  `json:"project_id"`
	Result      planning.ResultDocument `json:"result"`
	Machines    []MachineRow            `json:"machines,omitempty"`
	Variables   int                     `json:"variables"`
	Constraints int                     `json:"constraints"`
	SolverCalls int                     `json:"solver_calls"`
	DurationMs  int64                   `json:"duration_ms"`
}

// MachineRow is one line of the machine report
type MachineRow struct {
	Process    string  `json:"process"`
	Rate       float64 `json:"rate"`
	Machine    string  `json:"machine,omitempty"`
	Count      float64 `json:"count"`
	Applicable bool    `json:"applicable"`
}

// ReloadCatalogRequest replaces a project's catalog with the dump at Path,
// read on the daemon's filesystem
type ReloadCatalogRequest struct {
	ProjectRef string `json:"project_ref"`
	Path       string `json:"path"`
}

// ReloadCatalogReply reports the new catalog's contents
type ReloadCatalogReply struct {
	ProjectID string          `json:"project_id"`
	Summary   catalog.Summary `json:"summary"`
}

// PlannerServiceServer is implemented by the daemon
type PlannerServiceServer interface {
	Solve(context.Context, *SolveRequest) (*SolveReply, error)
	ReloadCatalog(context.Context, *ReloadCatalogRequest) (*ReloadCatalogReply, error)
	Health(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// plannerServiceDesc is declared by hand; messages travel through jsonCodec
var plannerServiceDesc = grpc.ServiceDesc{
	ServiceName: plannerServiceName,
	HandlerType: (*PlannerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Solve", Handler: solveHandler},
		{MethodName: "ReloadCatalog", Handler: reloadCatalogHandler},
		{MethodName: "Health", Handler: healthHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "planner_service.go",
}

// RegisterPlannerServiceServer registers srv on s
func RegisterPlannerServiceServer(s grpc.ServiceRegistrar, srv PlannerServiceServer) {
	s.RegisterService(&plannerServiceDesc, srv)
}

func solveHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SolveRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PlannerServiceServer).Solve(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SolveFullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PlannerServiceServer).Solve(ctx, req.(*SolveRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func reloadCatalogHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReloadCatalogRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PlannerServiceServer).ReloadCatalog(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReloadCatalogFullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PlannerServiceServer).ReloadCatalog(ctx, req.(*ReloadCatalogRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func healthHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PlannerServiceServer).Health(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: HealthFullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PlannerServiceServer).Health(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}
