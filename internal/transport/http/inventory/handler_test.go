package inventory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockledger/internal/cache"
	"github.com/Additional-Code/stockledger/internal/config"
	"github.com/Additional-Code/stockledger/internal/entity"
	"github.com/Additional-Code/stockledger/internal/messaging"
	"github.com/Additional-Code/stockledger/internal/repository/memory"
	"github.com/Additional-Code/stockledger/internal/service/catalog"
	service "github.com/Additional-Code/stockledger/internal/service/inventory"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   struct {
		Kind string `json:"kind"`
	} `json:"error"`
}

func newServer(t *testing.T) (*echo.Echo, *memory.Store) {
	t.Helper()
	var cfg config.Config
	cfg.Cache.Driver = "noop"
	cfg.Messaging.Driver = "noop"

	logger := zap.NewNop()
	lc := fxtest.NewLifecycle(t)
	store, err := cache.NewStore(lc, cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	client, err := messaging.NewClient(lc, cfg, logger)
	if err != nil {
		t.Fatal(err)
	}

	repo := memory.New()
	svc := service.NewService(service.Params{
		Repository: repo,
		Catalog:    catalog.NewService(catalog.Params{Repository: repo, Cache: store, Config: cfg, Logger: logger}),
		Config:     cfg,
		Logger:     logger,
		Publisher:  client,
	})

	e := echo.New()
	Register(e, NewHandler(svc))
	return e, repo
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

func TestRecordTransactions(t *testing.T) {
	e, repo := newServer(t)
	ctx := context.Background()

	price := decimal.NewFromInt(4)
	min, current := 5, 10
	p, err := repo.CreateProduct(ctx, entity.ProductInput{
		Name: "Widget", SKU: "W-1", PurchasePrice: &price, SellingPrice: &price,
		MinStockLevel: &min, CurrentStock: &current,
	})
	if err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		body  string
		stock int
	}{
		{`{"product_id":1,"type":"out","quantity":3}`, 7},
		{`{"product_id":1,"type":"in","quantity":20,"reference":"PO-1"}`, 27},
		{`{"product_id":1,"type":"adjustment","quantity":-30,"reason":"count"}`, 0},
	}
	for _, step := range steps {
		code, env := do(t, e, http.MethodPost, "/api/inventory-transactions", step.body)
		if code != http.StatusCreated {
			t.Fatalf("record %s = %d %q", step.body, code, env.Error.Kind)
		}
		got, err := repo.GetProduct(ctx, p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.CurrentStock != step.stock {
			t.Fatalf("after %s stock = %d, want %d", step.body, got.CurrentStock, step.stock)
		}
	}

	code, env := do(t, e, http.MethodGet, "/api/products/1/transactions", "")
	if code != http.StatusOK || env.Meta["count"] != float64(3) {
		t.Fatalf("by product = %d %v", code, env.Meta)
	}
	var ledger []struct {
		Type      string  `json:"type"`
		Reference *string `json:"reference"`
	}
	if err := json.Unmarshal(env.Data, &ledger); err != nil {
		t.Fatal(err)
	}
	if ledger[0].Type != "out" || ledger[1].Reference == nil || *ledger[1].Reference != "PO-1" {
		t.Fatalf("unexpected ledger: %+v", ledger)
	}

	if code, env = do(t, e, http.MethodGet, "/api/products/2/transactions", ""); code != http.StatusOK || string(env.Data) != "[]" {
		t.Fatalf("empty ledger = %d %s", code, env.Data)
	}
}

func TestRecordRejectsInvalidType(t *testing.T) {
	e, _ := newServer(t)

	code, env := do(t, e, http.MethodPost, "/api/inventory-transactions", `{"product_id":1,"type":"transfer","quantity":1}`)
	if code != http.StatusBadRequest || env.Error.Kind != "bad_request" {
		t.Fatalf("got %d %q", code, env.Error.Kind)
	}

	_, env = do(t, e, http.MethodGet, "/api/inventory-transactions", "")
	if string(env.Data) != "[]" {
		t.Fatalf("rejected transaction must not be stored, got %s", env.Data)
	}
}

func TestOrphanTransactionAccepted(t *testing.T) {
	e, _ := newServer(t)

	if code, _ := do(t, e, http.MethodPost, "/api/inventory-transactions", `{"product_id":42,"type":"in","quantity":5}`); code != http.StatusCreated {
		t.Fatalf("orphan transaction = %d, want 201", code)
	}
}

func TestDashboardStats(t *testing.T) {
	e, repo := newServer(t)
	ctx := context.Background()

	price := decimal.NewFromInt(1)
	zero := 0
	if _, err := repo.CreateProduct(ctx, entity.ProductInput{
		Name: "Empty", SKU: "E-1", PurchasePrice: &price, SellingPrice: &price, CurrentStock: &zero,
	}); err != nil {
		t.Fatal(err)
	}
	total := decimal.RequireFromString("12.5")
	if _, err := repo.CreateSalesOrder(ctx, entity.SalesOrderInput{
		OrderNumber: "SO-1", Status: entity.StatusCompleted, TotalAmount: &total,
	}); err != nil {
		t.Fatal(err)
	}

	code, env := do(t, e, http.MethodGet, "/api/dashboard/stats", "")
	if code != http.StatusOK {
		t.Fatalf("stats = %d", code)
	}
	var stats struct {
		TotalProducts int    `json:"total_products"`
		LowStockItems int    `json:"low_stock_items"`
		TodaySales    string `json:"today_sales"`
		ExpiringSoon  int    `json:"expiring_soon"`
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalProducts != 1 || stats.LowStockItems != 1 || stats.TodaySales != "12.50" || stats.ExpiringSoon != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
