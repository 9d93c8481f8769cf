package main

import (
	"context"

	"github.com/SanjoDeundiak/process-probe/pkg/lib/logflags"
	"github.com/SanjoDeundiak/process-probe/pkg/lib/probe"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// CommandProcessorService is the health service name answered by the probe,
// in addition to the empty overall-server name.
const CommandProcessorService = "command-processor"

var logger = logflags.ServerLogger()

func newLauncher(shell []string) (probe.Launcher, error) {
	return probe.NewShellLauncher(shell...)
}

// ProbeHealthServer answers grpc.health.v1 checks with a fresh availability probe.
type ProbeHealthServer struct {
	grpc_health_v1.UnimplementedHealthServer
	probe *probe.Probe
}

func NewProbeHealthServer(p *probe.Probe) *ProbeHealthServer {
	return &ProbeHealthServer{probe: p}
}

func (s *ProbeHealthServer) Check(ctx context.Context, request *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	service := request.GetService()
	if service != "" && service != CommandProcessorService {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", service)
	}

	servingStatus := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if s.probe.CheckAvailability() {
		servingStatus = grpc_health_v1.HealthCheckResponse_SERVING
	}

	entry := logger.WithField("service", service).WithField("status", servingStatus.String())
	if clientID, ok := ClientIDFromContext(ctx); ok {
		entry = entry.WithField("client", clientID)
	}
	entry.Debug("Health check")

	return &grpc_health_v1.HealthCheckResponse{Status: servingStatus}, nil
}
