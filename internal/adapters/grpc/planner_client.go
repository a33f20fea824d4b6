package grpc

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// PlannerClient talks to a running planner daemon over its unix socket
type PlannerClient struct {
	conn       *grpc.ClientConn
	socketPath string
}

// HealthStatus mirrors the Health reply
type HealthStatus struct {
	Status  string
	Version string
	Uptime  time.Duration
	Solves  int64
}

// NewPlannerClient creates a client for the daemon at socketPath.
// The connection is established lazily on the first call.
func NewPlannerClient(socketPath string) (*PlannerClient, error) {
	conn, err := grpc.NewClient(
		"unix:"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(jsonCodec{})),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create daemon client: %w", err)
	}
	return &PlannerClient{conn: conn, socketPath: socketPath}, nil
}

// Close closes the client connection
func (c *PlannerClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Solve asks the daemon to solve a project
func (c *PlannerClient) Solve(ctx context.Context, projectRef string, generateInputs bool) (*SolveReply, error) {
	req := &SolveRequest{ProjectRef: projectRef, GenerateInputs: generateInputs}
	reply := new(SolveReply)
	if err := c.conn.Invoke(ctx, SolveFullMethodName, req, reply); err != nil {
		return nil, fmt.Errorf("gRPC call failed: %w", err)
	}
	return reply, nil
}

// ReloadCatalog makes the daemon replace a project's catalog with the dump at path
func (c *PlannerClient) ReloadCatalog(ctx context.Context, projectRef, path string) (*ReloadCatalogReply, error) {
	req := &ReloadCatalogRequest{ProjectRef: projectRef, Path: path}
	reply := new(ReloadCatalogReply)
	if err := c.conn.Invoke(ctx, ReloadCatalogFullMethodName, req, reply); err != nil {
		return nil, fmt.Errorf("gRPC call failed: %w", err)
	}
	return reply, nil
}

// Health checks that the daemon is running and responsive
func (c *PlannerClient) Health(ctx context.Context) (*HealthStatus, error) {
	reply := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, HealthFullMethodName, &emptypb.Empty{}, reply); err != nil {
		return nil, fmt.Errorf("gRPC call failed: %w", err)
	}

	fields := reply.GetFields()
	return &HealthStatus{
		Status:  fields["status"].GetStringValue(),
		Version: fields["version"].GetStringValue(),
		Uptime:  time.Duration(fields["uptime_seconds"].GetNumberValue() * float64(time.Second)),
		Solves:  int64(fields["solves"].GetNumberValue()),
	}, nil
}
