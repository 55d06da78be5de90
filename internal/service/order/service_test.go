package order

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockledger/internal/entity"
	"github.com/Additional-Code/stockledger/internal/repository/memory"
	"github.com/Additional-Code/stockledger/pkg/errorbank"
)

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestPurchaseOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New(), zap.NewNop())

	po, err := svc.CreatePurchaseOrder(ctx, entity.PurchaseOrderInput{OrderNumber: "PO-100", SupplierID: 1, TotalAmount: money("250.00")})
	if err != nil {
		t.Fatal(err)
	}
	if po.Status != entity.StatusDraft {
		t.Fatalf("status = %q", po.Status)
	}

	updated, err := svc.UpdatePurchaseOrder(ctx, po.ID, entity.PurchaseOrderPatch{Status: entity.Some(entity.StatusReceived)})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != entity.StatusReceived || updated.OrderNumber != "PO-100" {
		t.Fatalf("updated = %+v", updated)
	}

	if _, err := svc.UpdatePurchaseOrder(ctx, po.ID, entity.PurchaseOrderPatch{Status: entity.Some(entity.StatusCompleted)}); !errorbank.Is(err, errorbank.KindBadRequest) {
		t.Fatalf("completed is not a purchase status, got %v", err)
	}

	item, err := svc.AddPurchaseOrderItem(ctx, entity.PurchaseOrderItemInput{
		PurchaseOrderID: po.ID, ProductID: 3, Quantity: 10, UnitPrice: money("25"), TotalPrice: money("250"),
	})
	if err != nil {
		t.Fatal(err)
	}
	items, err := svc.PurchaseOrderItems(ctx, po.ID)
	if err != nil || len(items) != 1 || items[0].ID != item.ID {
		t.Fatalf("items = %+v, %v", items, err)
	}
}

func TestItemsRequireExistingOrder(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New(), zap.NewNop())

	_, err := svc.AddSalesOrderItem(ctx, entity.SalesOrderItemInput{SalesOrderID: 9, ProductID: 1, Quantity: 1, UnitPrice: money("1"), TotalPrice: money("1")})
	if !errorbank.Is(err, errorbank.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.SalesOrderItems(ctx, 9); !errorbank.Is(err, errorbank.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSalesOrderConflict(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New(), zap.NewNop())
	in := entity.SalesOrderInput{OrderNumber: "SO-1", TotalAmount: money("10")}

	if _, err := svc.CreateSalesOrder(ctx, in); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateSalesOrder(ctx, in); !errorbank.Is(err, errorbank.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	// purchase and sales numbers are independent
	if _, err := svc.CreatePurchaseOrder(ctx, entity.PurchaseOrderInput{OrderNumber: "SO-1", SupplierID: 1, TotalAmount: money("1")}); err != nil {
		t.Fatalf("purchase order with a sales number: %v", err)
	}
}
