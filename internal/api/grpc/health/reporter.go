// Package health publishes storage reachability through the gRPC health service.
package health

import (
	"context"
	"time"

	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/findoc-server/internal/logger"
)

// ServiceName is the health service name reported next to the overall "" status.
const ServiceName = "findoc"

type Checker interface {
	Check(ctx context.Context) error
}

// Reporter periodically checks storage and updates the health server.
type Reporter struct {
	checker  Checker
	server   *grpchealth.Server
	interval time.Duration
	logger   *logger.Logger
}

func NewReporter(checker Checker, interval time.Duration, logger *logger.Logger) *Reporter {
	return &Reporter{
		checker:  checker,
		server:   grpchealth.NewServer(),
		interval: interval,
		logger:   logger,
	}
}

// Server returns the health service to register on a gRPC server.
func (r *Reporter) Server() healthpb.HealthServer {
	return r.server
}

// Run checks immediately and then every interval until ctx is done.
// On return all services are reported NOT_SERVING.
func (r *Reporter) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			r.server.Shutdown()
			return
		case <-ticker.C:
			r.Probe(ctx)
		}
	}
}

// Probe runs one check and publishes the result.
func (r *Reporter) Probe(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if err := r.checker.Check(ctx); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		r.logger.Warn("Health reporter: storage check failed",
			"error", err.Error())
	}

	r.server.SetServingStatus("", status)
	r.server.SetServingStatus(ServiceName, status)
}
