package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockledger/internal/repository/memory"
	service "github.com/Additional-Code/stockledger/internal/service/user"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error struct {
		Kind string `json:"kind"`
	} `json:"error"`
}

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	Register(e, NewHandler(service.NewService(memory.New(), zap.NewNop())))
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body string) (int, envelope, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return rec.Code, env, rec.Body.String()
}

func TestUserLifecycle(t *testing.T) {
	e := newServer(t)

	code, env, raw := do(t, e, http.MethodPost, "/api/users", `{"username":"ana","password":"s3cret","name":"Ana"}`)
	if code != http.StatusCreated {
		t.Fatalf("create = %d %s", code, raw)
	}
	if strings.Contains(raw, "password") || strings.Contains(raw, "s3cret") {
		t.Fatalf("response leaks the password: %s", raw)
	}
	var u struct {
		ID       int64  `json:"id"`
		Role     string `json:"role"`
		IsActive bool   `json:"is_active"`
	}
	if err := json.Unmarshal(env.Data, &u); err != nil {
		t.Fatal(err)
	}
	if u.ID != 1 || u.Role != "staff" || !u.IsActive {
		t.Fatalf("unexpected user: %+v", u)
	}

	if code, _, _ = do(t, e, http.MethodPost, "/api/users", `{"username":"ana","password":"x","name":"Other"}`); code != http.StatusConflict {
		t.Fatalf("duplicate username = %d, want 409", code)
	}

	if code, _, raw = do(t, e, http.MethodPost, "/api/auth/login", `{"username":"ana","password":"s3cret"}`); code != http.StatusOK {
		t.Fatalf("login = %d %s", code, raw)
	}

	if code, _, raw = do(t, e, http.MethodPatch, "/api/users/1", `{"password":"n3w","role":"manager"}`); code != http.StatusOK {
		t.Fatalf("patch = %d %s", code, raw)
	}
	if code, _, _ = do(t, e, http.MethodPost, "/api/auth/login", `{"username":"ana","password":"s3cret"}`); code != http.StatusUnauthorized {
		t.Fatalf("old password = %d, want 401", code)
	}
	if code, _, _ = do(t, e, http.MethodPost, "/api/auth/login", `{"username":"ana","password":"n3w"}`); code != http.StatusOK {
		t.Fatalf("new password = %d, want 200", code)
	}

	if code, _, _ = do(t, e, http.MethodPatch, "/api/users/1", `{"is_active":false}`); code != http.StatusOK {
		t.Fatalf("deactivate = %d", code)
	}
	if code, env, _ = do(t, e, http.MethodPost, "/api/auth/login", `{"username":"ana","password":"n3w"}`); code != http.StatusUnauthorized || env.Error.Kind != "unauthorized" {
		t.Fatalf("inactive login = %d %q", code, env.Error.Kind)
	}
}

func TestLoginErrors(t *testing.T) {
	e := newServer(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"unknown user", `{"username":"ghost","password":"x"}`, http.StatusUnauthorized},
		{"missing password", `{"username":"ghost"}`, http.StatusBadRequest},
		{"malformed", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, _, raw := do(t, e, http.MethodPost, "/api/auth/login", tt.body); code != tt.status {
				t.Fatalf("got %d %s, want %d", code, raw, tt.status)
			}
		})
	}

	if code, _, _ := do(t, e, http.MethodGet, "/api/users/3", ""); code != http.StatusNotFound {
		t.Fatalf("unknown user = %d, want 404", code)
	}
}
