// Package grpc serves the standard grpc.health.v1 service. Its status
// follows database reachability, so orchestrators can probe the task
// tracker without speaking its REST API.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health-checked service name besides the overall "" entry.
const ServiceName = "tasktracker.v1.TaskTracker"

type HealthServer struct {
	address       string
	logger        logging.Logger
	db            dbx.Pinger
	probeInterval time.Duration
	health        *health.Server
}

func NewHealthServer(a string, l logging.Logger, db dbx.Pinger, probeInterval time.Duration) *HealthServer {
	if probeInterval <= 0 {
		probeInterval = 5 * time.Second
	}
	return &HealthServer{
		address:       a,
		logger:        l.With("module", "grpc_health"),
		db:            db,
		probeInterval: probeInterval,
		health:        health.NewServer(),
	}
}

func (s *HealthServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *HealthServer) serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.probe(ctx)

	go func() {
		t := time.NewTicker(s.probeInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Info(ctx, "Stopping gRPC health server...")
				s.health.Shutdown()
				srv.GracefulStop()
				return
			case <-t.C:
				s.probe(ctx)
			}
		}
	}()

	s.logger.Info(ctx, "Starting gRPC health server", "address", listen.Addr().String())

	return srv.Serve(listen)
}

// probe pings the database and publishes the result for both service names.
func (s *HealthServer) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.db.PingContext(pingCtx); err != nil {
		s.logger.Warn(ctx, "database ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
