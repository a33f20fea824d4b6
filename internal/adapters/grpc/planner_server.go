package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/factory-planner-go/internal/application/logging"
	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/commands"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/services"
	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/config"
)

// Version is reported by the Health RPC
const Version = "0.1.0"

// PlannerServer serves the planner over gRPC on a unix socket.
// Every request goes through the mediator, so catalog guarding, logging and metrics
// are the same as for local CLI use.
type PlannerServer struct {
	mediator   mediator.Mediator
	logger     logging.Logger
	listener   net.Listener
	grpcServer *grpc.Server
	limiter    *rate.Limiter
	socketPath string
	timeout    time.Duration

	started time.Time
	solves  atomic.Int64
}

var _ PlannerServiceServer = (*PlannerServer)(nil)

// NewPlannerServer binds the daemon socket. A stale socket file is removed first.
func NewPlannerServer(m mediator.Mediator, logger logging.Logger, cfg config.DaemonConfig) (*PlannerServer, error) {
	if err := os.RemoveAll(cfg.SocketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", cfg.SocketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create unix socket listener: %w", err)
	}

	// Owner only
	if err := os.Chmod(cfg.SocketPath, 0600); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}

	if logger == nil {
		logger = logging.LoggerFromContext(context.Background())
	}

	s := &PlannerServer{
		mediator:   m,
		logger:     logger,
		listener:   listener,
		limiter:    rate.NewLimiter(rate.Limit(cfg.SolveRate), cfg.SolveBurst),
		socketPath: cfg.SocketPath,
		timeout:    cfg.ShutdownTimeout,
		started:    time.Now(),
	}
	s.grpcServer = grpc.NewServer(
		grpc.ForceServerCodec(jsonCodec{}),
		grpc.UnaryInterceptor(s.loggingInterceptor),
	)
	RegisterPlannerServiceServer(s.grpcServer, s)

	return s, nil
}

// Addr returns the socket path
func (s *PlannerServer) Addr() string {
	return s.socketPath
}

// Serve blocks until ctx is cancelled or the server fails. On cancellation in-flight
// RPCs get the configured shutdown timeout to finish before the server is stopped hard.
func (s *PlannerServer) Serve(ctx context.Context) error {
	s.logger.Log("info", "planner daemon listening", map[string]interface{}{
		"socket": s.socketPath,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case err := <-errChan:
		s.cleanup()
		if err != nil {
			return fmt.Errorf("gRPC server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Log("info", "shutting down planner daemon", nil)
	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	timeout := s.timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-stopped:
	case <-timer.C:
		s.logger.Log("warning", "graceful shutdown timed out, forcing stop", nil)
		s.grpcServer.Stop()
		<-stopped
	}

	<-errChan
	s.cleanup()
	return nil
}

func (s *PlannerServer) cleanup() {
	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		s.logger.Log("warning", "failed to remove socket", map[string]interface{}{
			"socket": s.socketPath,
			"error":  err.Error(),
		})
	}
}

func (s *PlannerServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	ctx = logging.WithLogger(ctx, s.logger)
	start := time.Now()

	resp, err := handler(ctx, req)

	metadata := map[string]interface{}{
		"method":      info.FullMethod,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		metadata["error"] = err.Error()
		s.logger.Log("error", "rpc failed", metadata)
	} else {
		s.logger.Log("debug", "rpc completed", metadata)
	}
	return resp, err
}

// Solve solves a project. Solves are rate limited across all clients; a request whose
// deadline would pass while waiting for a slot fails with ResourceExhausted.
func (s *PlannerServer) Solve(ctx context.Context, req *SolveRequest) (*SolveReply, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, status.Errorf(codes.ResourceExhausted, "solve rate limit: %v", err)
	}

	resp, err := s.mediator.Send(ctx, &commands.SolveModelCommand{
		ProjectRef:     req.ProjectRef,
		GenerateInputs: req.GenerateInputs,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	solved, ok := resp.(*commands.SolveModelResponse)
	if !ok {
		return nil, status.Error(codes.Internal, "invalid response type from solve handler")
	}
	s.solves.Add(1)

	return newSolveReply(solved), nil
}

// ReloadCatalog loads a dump from the daemon's filesystem into a project. The swap
// waits for running solves of that project to finish.
func (s *PlannerServer) ReloadCatalog(ctx context.Context, req *ReloadCatalogRequest) (*ReloadCatalogReply, error) {
	if req.Path == "" {
		return nil, status.Error(codes.InvalidArgument, "catalog path is required")
	}

	resp, err := s.mediator.Send(ctx, &commands.ImportCatalogCommand{
		ProjectRef: req.ProjectRef,
		Path:       req.Path,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	imported, ok := resp.(*commands.ImportCatalogResponse)
	if !ok {
		return nil, status.Error(codes.Internal, "invalid response type from import handler")
	}

	return &ReloadCatalogReply{ProjectID: imported.ProjectID, Summary: imported.Summary}, nil
}

// Health reports liveness and a few counters
func (s *PlannerServer) Health(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	health, err := structpb.NewStruct(map[string]interface{}{
		"status":         "SERVING",
		"version":        Version,
		"uptime_seconds": time.Since(s.started).Seconds(),
		"solves":         float64(s.solves.Load()),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build health reply: %v", err)
	}
	return health, nil
}

func newSolveReply(resp *commands.SolveModelResponse) *SolveReply {
	reply := &SolveReply{
		ProjectID:   resp.ProjectID,
		Result:      planning.EncodeResult(resp.Result),
		Variables:   resp.Diagnostics.Variables,
		Constraints: resp.Diagnostics.Constraints,
		SolverCalls: resp.Diagnostics.SolverCalls,
		DurationMs:  resp.Duration.Milliseconds(),
	}
	for _, m := range resp.Machines {
		reply.Machines = append(reply.Machines, MachineRow{
			Process:    m.Process.String(),
			Rate:       m.Rate,
			Machine:    m.Machine,
			Count:      m.Count,
			Applicable: m.Applicable,
		})
	}
	return reply
}

// toStatus maps application errors onto gRPC codes
func toStatus(err error) error {
	var (
		notFound  *project.ProjectNotFoundError
		taken     *project.ProjectNameTakenError
		invalid   *project.InvalidProjectError
		mismatch  *project.CatalogMismatchError
		malformed *material.MalformedIDError
		unknown   *catalog.UnknownPrototypeError
		badKind   *process.InvalidKindError
	)

	switch {
	case errors.As(err, &notFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &taken):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.As(err, &mismatch):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, services.ErrNoProjectSpecified),
		errors.As(err, &invalid),
		errors.As(err, &malformed),
		errors.As(err, &unknown),
		errors.As(err, &badKind):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
