package order

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockledger/internal/repository/memory"
	service "github.com/Additional-Code/stockledger/internal/service/order"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	Register(e, NewHandler(service.NewService(memory.New(), zap.NewNop())))
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
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return rec.Code, env
}

func TestPurchaseOrderFlow(t *testing.T) {
	e := newServer(t)

	code, env := do(t, e, http.MethodPost, "/api/purchase-orders", `{"order_number":"PO-001","supplier_id":1,"total_amount":"100"}`)
	if code != http.StatusCreated {
		t.Fatalf("create = %d %+v", code, env.Error)
	}
	var po struct {
		ID          int64  `json:"id"`
		Status      string `json:"status"`
		TotalAmount string `json:"total_amount"`
	}
	if err := json.Unmarshal(env.Data, &po); err != nil {
		t.Fatal(err)
	}
	if po.ID != 1 || po.Status != "draft" || po.TotalAmount != "100.00" {
		t.Fatalf("unexpected order: %+v", po)
	}

	if code, _ = do(t, e, http.MethodPost, "/api/purchase-orders", `{"order_number":"PO-001","supplier_id":2,"total_amount":"5"}`); code != http.StatusConflict {
		t.Fatalf("duplicate number = %d, want 409", code)
	}

	code, env = do(t, e, http.MethodPost, "/api/purchase-orders/1/items",
		`{"purchase_order_id":99,"product_id":3,"quantity":4,"unit_price":"2.5","total_price":"10"}`)
	if code != http.StatusCreated {
		t.Fatalf("add item = %d %+v", code, env.Error)
	}
	var item struct {
		PurchaseOrderID int64  `json:"purchase_order_id"`
		TotalPrice      string `json:"total_price"`
	}
	if err := json.Unmarshal(env.Data, &item); err != nil {
		t.Fatal(err)
	}
	if item.PurchaseOrderID != 1 || item.TotalPrice != "10.00" {
		t.Fatalf("unexpected item: %+v", item)
	}

	code, env = do(t, e, http.MethodGet, "/api/purchase-orders/1/items", "")
	if code != http.StatusOK || env.Meta["count"] != float64(1) {
		t.Fatalf("items = %d %v", code, env.Meta)
	}

	// items never touch the order total
	_, env = do(t, e, http.MethodGet, "/api/purchase-orders/1", "")
	if err := json.Unmarshal(env.Data, &po); err != nil {
		t.Fatal(err)
	}
	if po.TotalAmount != "100.00" {
		t.Fatalf("total changed to %s", po.TotalAmount)
	}

	code, env = do(t, e, http.MethodPatch, "/api/purchase-orders/1", `{"status":"received"}`)
	if code != http.StatusOK {
		t.Fatalf("patch = %d %+v", code, env.Error)
	}
	if err := json.Unmarshal(env.Data, &po); err != nil {
		t.Fatal(err)
	}
	if po.Status != "received" {
		t.Fatalf("status = %s", po.Status)
	}
}

func TestOrderErrors(t *testing.T) {
	e := newServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown purchase order", http.MethodGet, "/api/purchase-orders/7", "", http.StatusNotFound},
		{"items of unknown order", http.MethodGet, "/api/sales-orders/7/items", "", http.StatusNotFound},
		{"item for unknown order", http.MethodPost, "/api/sales-orders/7/items", `{"product_id":1,"quantity":1,"unit_price":"1","total_price":"1"}`, http.StatusNotFound},
		{"missing supplier", http.MethodPost, "/api/purchase-orders", `{"order_number":"PO-9","total_amount":"1"}`, http.StatusBadRequest},
		{"bad sales status", http.MethodPost, "/api/sales-orders", `{"order_number":"SO-9","status":"received","total_amount":"1"}`, http.StatusBadRequest},
		{"bad id", http.MethodPatch, "/api/sales-orders/x", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, env := do(t, e, tt.method, tt.path, tt.body); code != tt.status {
				t.Fatalf("got %d (%+v), want %d", code, env.Error, tt.status)
			}
		})
	}
}

func TestSalesOrderWalkIn(t *testing.T) {
	e := newServer(t)

	code, env := do(t, e, http.MethodPost, "/api/sales-orders", `{"order_number":"SO-1","status":"completed","total_amount":"42.5"}`)
	if code != http.StatusCreated {
		t.Fatalf("create = %d %+v", code, env.Error)
	}
	var so struct {
		CustomerID *int64 `json:"customer_id"`
		Status     string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &so); err != nil {
		t.Fatal(err)
	}
	if so.CustomerID != nil || so.Status != "completed" {
		t.Fatalf("unexpected order: %+v", so)
	}

	if code, env = do(t, e, http.MethodPost, "/api/sales-orders/1/items", `{"product_id":1,"quantity":2,"unit_price":"21.25","total_price":"42.5"}`); code != http.StatusCreated {
		t.Fatalf("add item = %d %+v", code, env.Error)
	}

	code, env = do(t, e, http.MethodGet, "/api/sales-orders", "")
	if code != http.StatusOK || env.Meta["count"] != float64(1) {
		t.Fatalf("list = %d %v", code, env.Meta)
	}
}
