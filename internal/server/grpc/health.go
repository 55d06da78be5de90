package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/Additional-Code/stockledger/internal/repository"
)

// ServiceName is the health service key reported alongside the overall ("") status.
const ServiceName = "stockledger.Inventory"

// Health reports SERVING while the repository answers pings.
type Health struct {
	server *health.Server
	repo   repository.Repository
	logger *zap.Logger
}

// NewHealth builds a Health whose statuses start as NOT_SERVING until the first probe.
func NewHealth(repo repository.Repository, logger *zap.Logger) *Health {
	srv := health.NewServer()
	srv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	srv.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Health{server: srv, repo: repo, logger: logger}
}

// Server exposes the grpc.health.v1 implementation.
func (h *Health) Server() *health.Server {
	return h.server
}

// Refresh pings the repository once and publishes the result.
func (h *Health) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := h.repo.Ping(ctx); err != nil {
		h.logger.Warn("repository ping failed", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(ServiceName, status)
	return status
}

// Watch refreshes the status every interval until ctx is done.
func (h *Health) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, interval/2)
			h.Refresh(probeCtx)
			cancel()
		}
	}
}

// Shutdown marks every service NOT_SERVING and ignores later updates.
func (h *Health) Shutdown() {
	h.server.Shutdown()
}
