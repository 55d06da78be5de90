package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockledger/internal/cache"
	"github.com/Additional-Code/stockledger/internal/config"
	"github.com/Additional-Code/stockledger/internal/repository/memory"
	service "github.com/Additional-Code/stockledger/internal/service/catalog"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   struct {
		Kind    string         `json:"kind"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	var cfg config.Config
	cfg.Cache.Driver = "noop"

	logger := zap.NewNop()
	store, err := cache.NewStore(fxtest.NewLifecycle(t), cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	svc := service.NewService(service.Params{
		Repository: memory.New(),
		Cache:      store,
		Config:     cfg,
		Logger:     logger,
	})

	e := echo.New()
	Register(e, NewHandler(svc))
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, path, err, rec.Body.String())
		}
	}
	return rec.Code, env
}

func TestProductLifecycle(t *testing.T) {
	e := newServer(t)

	code, env := do(t, e, http.MethodPost, "/api/products",
		`{"name":"Desk Lamp","sku":"LMP-1","barcode":"123","purchase_price":"12.5","selling_price":"19.99","min_stock_level":5,"current_stock":3}`)
	if code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (%+v)", code, env.Error)
	}
	var created struct {
		ID            int64   `json:"id"`
		PurchasePrice string  `json:"purchase_price"`
		TaxPercent    string  `json:"tax_percent"`
		Unit          string  `json:"unit"`
		Barcode       *string `json:"barcode"`
		IsActive      bool    `json:"is_active"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.ID != 1 || created.PurchasePrice != "12.50" || created.TaxPercent != "0.00" || created.Unit != "pcs" || !created.IsActive {
		t.Fatalf("unexpected product: %+v", created)
	}

	code, env = do(t, e, http.MethodGet, "/api/products/low-stock", "")
	if code != http.StatusOK || env.Meta["count"] != float64(1) {
		t.Fatalf("low stock = %d %v", code, env.Meta)
	}

	code, env = do(t, e, http.MethodPatch, "/api/products/1", `{"barcode":null,"name":"Floor Lamp"}`)
	if code != http.StatusOK {
		t.Fatalf("patch status = %d (%+v)", code, env.Error)
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.Barcode != nil {
		t.Fatalf("barcode should be cleared, got %q", *created.Barcode)
	}

	if code, _ = do(t, e, http.MethodDelete, "/api/products/1", ""); code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", code)
	}
	if code, env = do(t, e, http.MethodGet, "/api/products/1", ""); code != http.StatusNotFound || env.Error.Kind != "not_found" {
		t.Fatalf("get deleted = %d %+v", code, env.Error)
	}
	if code, _ = do(t, e, http.MethodDelete, "/api/products/1", ""); code != http.StatusNotFound {
		t.Fatalf("second delete = %d, want 404", code)
	}
}

func TestProductErrors(t *testing.T) {
	e := newServer(t)

	body := `{"name":"Bolt","sku":"B-1","purchase_price":"0.10","selling_price":"0.25"}`
	if code, _ := do(t, e, http.MethodPost, "/api/products", body); code != http.StatusCreated {
		t.Fatalf("create = %d", code)
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		kind   string
	}{
		{"duplicate sku", http.MethodPost, "/api/products", body, http.StatusConflict, "conflict"},
		{"missing fields", http.MethodPost, "/api/products", `{"name":""}`, http.StatusBadRequest, "bad_request"},
		{"malformed body", http.MethodPost, "/api/products", `{"name":`, http.StatusBadRequest, "bad_request"},
		{"bad id", http.MethodGet, "/api/products/abc", "", http.StatusBadRequest, "bad_request"},
		{"zero id", http.MethodGet, "/api/products/0", "", http.StatusBadRequest, "bad_request"},
		{"unknown product", http.MethodPatch, "/api/products/99", `{"name":"x"}`, http.StatusNotFound, "not_found"},
		{"negative price", http.MethodPatch, "/api/products/1", `{"selling_price":"-1"}`, http.StatusBadRequest, "bad_request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, e, tt.method, tt.path, tt.body)
			if code != tt.status || env.Success || env.Error.Kind != tt.kind {
				t.Fatalf("got %d %q, want %d %q", code, env.Error.Kind, tt.status, tt.kind)
			}
		})
	}
}

func TestValidationDetails(t *testing.T) {
	e := newServer(t)

	code, env := do(t, e, http.MethodPost, "/api/suppliers", `{"email":"a@b.c"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	fields, ok := env.Error.Details["fields"].([]any)
	if !ok || len(fields) == 0 {
		t.Fatalf("expected field errors, got %v", env.Error.Details)
	}
}

func TestPartyEndpoints(t *testing.T) {
	e := newServer(t)

	for _, path := range []string{"/api/categories", "/api/suppliers", "/api/customers"} {
		code, env := do(t, e, http.MethodGet, path, "")
		if code != http.StatusOK || string(env.Data) != "[]" {
			t.Fatalf("%s empty list = %d %s", path, code, env.Data)
		}
	}

	if code, _ := do(t, e, http.MethodPost, "/api/categories", `{"name":"Tools"}`); code != http.StatusCreated {
		t.Fatalf("create category = %d", code)
	}
	if code, _ := do(t, e, http.MethodPost, "/api/suppliers", `{"name":"Acme","phone":"555"}`); code != http.StatusCreated {
		t.Fatalf("create supplier = %d", code)
	}
	if code, _ := do(t, e, http.MethodPost, "/api/customers", `{"name":"Walk-in"}`); code != http.StatusCreated {
		t.Fatalf("create customer = %d", code)
	}

	code, env := do(t, e, http.MethodPatch, "/api/suppliers/1", `{"phone":null}`)
	if code != http.StatusOK {
		t.Fatalf("patch supplier = %d", code)
	}
	var s struct {
		Name  string  `json:"name"`
		Phone *string `json:"phone"`
	}
	if err := json.Unmarshal(env.Data, &s); err != nil {
		t.Fatal(err)
	}
	if s.Name != "Acme" || s.Phone != nil {
		t.Fatalf("unexpected supplier: %+v", s)
	}

	if code, _ := do(t, e, http.MethodGet, "/api/customers/1", ""); code != http.StatusOK {
		t.Fatalf("get customer = %d", code)
	}
	if code, _ := do(t, e, http.MethodDelete, "/api/categories/1", ""); code != http.StatusNoContent {
		t.Fatalf("delete category = %d", code)
	}
	if code, _ := do(t, e, http.MethodDelete, "/api/categories/1", ""); code != http.StatusNotFound {
		t.Fatalf("delete missing category = %d", code)
	}
}
