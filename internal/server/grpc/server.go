// Package grpc runs the gRPC side of the server: the standard
// grpc.health.v1 service, reporting whether the task store is reachable.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/amanda-parkwaylabs/task-manager/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported alongside the overall ("") status.
const ServiceName = "taskmanager.TaskManager"

const defaultProbeInterval = 10 * time.Second

type GRPCServer struct {
	address       string
	logger        logging.Logger
	health        *health.Server
	probe         func(ctx context.Context) error
	probeInterval time.Duration
}

// NewGRPCServer returns a health server for address. probe, when non-nil, is
// polled to flip the status between SERVING and NOT_SERVING.
func NewGRPCServer(address string, l logging.Logger, probe func(ctx context.Context) error) *GRPCServer {
	return &GRPCServer{
		address:       address,
		logger:        l.With("module", "grpc_server"),
		health:        health.NewServer(),
		probe:         probe,
		probeInterval: defaultProbeInterval,
	}
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is canceled. On cancellation every service
// is marked NOT_SERVING before the server stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)
	s.setServing(true)

	go s.watch(ctx)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())
	return srv.Serve(lis)
}

func (s *GRPCServer) setServing(ok bool) {
	st := healthpb.HealthCheckResponse_SERVING
	if !ok {
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

func (s *GRPCServer) watch(ctx context.Context) {
	if s.probe == nil {
		return
	}
	ticker := time.NewTicker(s.probeInterval)
	defer ticker.Stop()

	healthy := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := s.probe(ctx)
			if ctx.Err() != nil {
				return
			}
			if (err == nil) != healthy {
				healthy = err == nil
				if healthy {
					s.logger.Info(ctx, "store reachable again")
				} else {
					s.logger.Warn(ctx, "store unreachable", "error", err)
				}
				s.setServing(healthy)
			}
		}
	}
}
