package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	echo "github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockledger/internal/config"
	"github.com/Additional-Code/stockledger/internal/repository"
	"github.com/Additional-Code/stockledger/internal/repository/memory"
)

type downRepo struct {
	repository.Repository
}

func (downRepo) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealth(t *testing.T) {
	var cfg config.Config
	cfg.Store.Driver = "memory"

	tests := []struct {
		name   string
		repo   repository.Repository
		status int
		body   string
	}{
		{"store up", memory.New(), http.StatusOK, `"status":"ok"`},
		{"store down", downRepo{}, http.StatusServiceUnavailable, `"status":"unavailable"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEcho(cfg, nil, tt.repo, zap.NewNop())
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.status || !strings.Contains(rec.Body.String(), tt.body) {
				t.Fatalf("got %d %s", rec.Code, rec.Body.String())
			}
			if rec.Header().Get(echo.HeaderXRequestID) == "" {
				t.Fatal("missing request id")
			}
		})
	}
}
