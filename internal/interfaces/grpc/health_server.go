// Package grpc exposes the gateway's gRPC surface: currently the stock
// health service used by load balancers and orchestration probes.
package grpc

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/logger"
)

// HealthServer runs a gRPC server carrying the standard health service.
type HealthServer struct {
	server *grpc.Server
	health *health.Server
	addr   string
	log    logger.Logger
}

// NewHealthServer creates the server.
func NewHealthServer(cfg *config.ServerConfig, log logger.Logger) *HealthServer {
	server := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(server, healthSrv)
	healthSrv.SetServingStatus(constants.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &HealthServer{
		server: server,
		health: healthSrv,
		addr:   fmt.Sprintf("%s:%d", cfg.Host, cfg.GRPCPort),
		log:    log.WithComponent("grpc"),
	}
}

// Start listens and serves until Stop is called.
func (s *HealthServer) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.log.Info(context.Background(), "grpc health server starting", logger.Fields{"address": s.addr})
	return s.server.Serve(listener)
}

// SetNotServing flips the reported status during shutdown.
func (s *HealthServer) SetNotServing() {
	s.health.SetServingStatus(constants.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
}

// Stop drains in-flight RPCs and stops the server.
func (s *HealthServer) Stop() {
	s.server.GracefulStop()
}
