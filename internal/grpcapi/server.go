// Package grpcapi exposes the standard grpc.health.v1 service so load
// balancers can check the service on a dedicated port.
package grpcapi

import (
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/fcv/porteria/internal/lib/sl"
)

// ServiceName is reported alongside the overall ("") status.
const ServiceName = "porteria.v1.Access"

type Server struct {
	grpc   *grpc.Server
	health *health.Server
	log    *slog.Logger
}

// NewServer starts NOT_SERVING; call SetServing once the HTTP API is up.
func NewServer(log *slog.Logger, opts ...grpc.ServerOption) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		grpc:   grpc.NewServer(opts...),
		health: health.NewServer(),
		log:    log.With(sl.Module("grpc.server")),
	}
	healthpb.RegisterHealthServer(s.grpc, s.health)
	s.SetNotServing()
	return s
}

func (s *Server) SetServing() {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
}

func (s *Server) SetNotServing() {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
}

// Serve blocks until the listener fails or Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("starting grpc server", slog.String("address", lis.Addr().String()))
	return s.grpc.Serve(lis)
}

// Stop reports NOT_SERVING to watchers, then drains in-flight calls.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
