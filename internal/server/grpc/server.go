// Package grpc exposes the standard gRPC health-checking service. The
// reported status follows the reachability of the record and cache stores.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name clients may query in addition to
// the overall ("") status.
const ServiceName = "filekeeper.Files"

// StatusChecker reports backing store liveness.
type StatusChecker interface {
	Status(ctx context.Context) services.Status
}

type HealthServer struct {
	address  string
	logger   logging.Logger
	checker  StatusChecker
	interval time.Duration
	health   *health.Server
}

func NewHealthServer(a string, l logging.Logger, checker StatusChecker, interval time.Duration) *HealthServer {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &HealthServer{
		address:  a,
		logger:   l.With("module", "grpc_health"),
		checker:  checker,
		interval: interval,
		health:   health.NewServer(),
	}
}

func (s *HealthServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *HealthServer) serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.refresh(ctx)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Info(ctx, "Stopping gRPC health server...")
				s.health.Shutdown()
				srv.GracefulStop()
				return
			case <-ticker.C:
				s.refresh(ctx)
			}
		}
	}()

	s.logger.Info(ctx, "Starting gRPC health server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

// refresh maps store liveness onto health statuses. The server is serving
// only while both stores answer.
func (s *HealthServer) refresh(ctx context.Context) {
	st := s.checker.Status(ctx)

	status := healthpb.HealthCheckResponse_SERVING
	if !st.DB || !st.Redis {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		s.logger.Warn(ctx, "backing store unavailable", "db", st.DB, "redis", st.Redis)
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
