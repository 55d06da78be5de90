package grpc

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/Additional-Code/stockledger/internal/repository"
	"github.com/Additional-Code/stockledger/internal/repository/memory"
)

type downRepo struct {
	repository.Repository
}

func (downRepo) Ping(context.Context) error { return errors.New("connection refused") }

func status(t *testing.T, h *Health, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := h.Server().Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		t.Fatal(err)
	}
	return resp.GetStatus()
}

func TestHealthTracksRepository(t *testing.T) {
	h := NewHealth(memory.New(), zap.NewNop())
	if got := status(t, h, ""); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("initial status = %v", got)
	}

	if got := h.Refresh(context.Background()); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("refresh = %v", got)
	}
	if got := status(t, h, ServiceName); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("service status = %v", got)
	}

	h.Shutdown()
	if got := status(t, h, ""); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("status after shutdown = %v", got)
	}
}

func TestHealthReportsPingFailure(t *testing.T) {
	h := NewHealth(downRepo{}, zap.NewNop())
	if got := h.Refresh(context.Background()); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("refresh = %v", got)
	}
	if got := status(t, h, ""); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("status = %v", got)
	}
}
