package adapter

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HTTPProber probes reachability with GET /v1/ping.
type HTTPProber struct {
	remote RemoteSource
}

func NewHTTPProber(remote RemoteSource) *HTTPProber {
	return &HTTPProber{remote: remote}
}

func (p *HTTPProber) Probe(ctx context.Context) error {
	return p.remote.Ping(ctx)
}

// GRPCHealthProber probes reachability with the standard gRPC health service.
type GRPCHealthProber struct {
	conn   *grpc.ClientConn
	health healthpb.HealthClient
}

// NewGRPCHealthProber prepares a lazily connecting client for address.
func NewGRPCHealthProber(address string) (*GRPCHealthProber, error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc client: %w", err)
	}

	return &GRPCHealthProber{conn: conn, health: healthpb.NewHealthClient(conn)}, nil
}

func (p *GRPCHealthProber) Probe(ctx context.Context) error {
	resp, err := p.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return fmt.Errorf("%w: health check: %w", ErrNetwork, err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: server status %s", ErrNetwork, resp.GetStatus())
	}

	return nil
}

func (p *GRPCHealthProber) Close() error {
	return p.conn.Close()
}
