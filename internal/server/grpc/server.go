// Package grpc serves the gRPC side of the todo API: the standard health
// service, reporting database liveness, behind logging and bearer token
// interceptors.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/logging"
	"github.com/dmitrijs2005/todoapi/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// DefaultProbeInterval is how often the database is pinged.
const DefaultProbeInterval = 10 * time.Second

// Authenticator is implemented by auth.Guard.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (*auth.Identity, error)
}

// Pinger reports database liveness; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type GRPCServer struct {
	address  string
	logger   logging.Logger
	guard    Authenticator
	db       Pinger
	health   *health.Server
	interval time.Duration
}

func NewGRPCServer(address string, l logging.Logger, guard Authenticator, db Pinger) *GRPCServer {
	if l == nil {
		l = logging.Nop()
	}
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return &GRPCServer{
		address:  address,
		logger:   l.With("module", "grpc_server"),
		guard:    guard,
		db:       db,
		health:   hs,
		interval: DefaultProbeInterval,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	go s.probe(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}

// probe refreshes the health status until ctx is done.
func (s *GRPCServer) probe(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.checkDB(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *GRPCServer) checkDB(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.interval/2)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.db.PingContext(pingCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn(ctx, "database ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
}
