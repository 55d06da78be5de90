package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Order statuses. Transitions between them are not constrained.
const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusReceived  = "received"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var (
	purchaseStatuses = []string{StatusDraft, StatusPending, StatusReceived, StatusCancelled}
	salesStatuses    = []string{StatusDraft, StatusPending, StatusCompleted, StatusCancelled}
)

// PurchaseOrder is an order placed with a supplier.
type PurchaseOrder struct {
	bun.BaseModel `bun:"table:purchase_orders"`

	ID          int64           `bun:",pk,autoincrement"`
	OrderNumber string          `bun:"order_number,notnull"`
	SupplierID  int64           `bun:"supplier_id,notnull"`
	Status      string          `bun:"status,notnull"`
	TotalAmount decimal.Decimal `bun:"total_amount,notnull"`
	CreatedBy   *int64          `bun:"created_by"`
	CreatedAt   time.Time       `bun:"created_at,notnull"`
}

type PurchaseOrderInput struct {
	OrderNumber string           `json:"order_number"`
	SupplierID  int64            `json:"supplier_id"`
	Status      string           `json:"status"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
	CreatedBy   *int64           `json:"created_by"`
}

func (in PurchaseOrderInput) Validate() error {
	var c checker
	c.required(in.OrderNumber, "order_number")
	c.check(in.SupplierID > 0, "supplier_id", "is required")
	if in.Status != "" {
		c.oneOf(in.Status, purchaseStatuses, "status")
	}
	c.nonNegative(in.TotalAmount, "total_amount")
	return c.err()
}

func (in PurchaseOrderInput) PurchaseOrder(now time.Time) PurchaseOrder {
	o := PurchaseOrder{
		OrderNumber: in.OrderNumber,
		SupplierID:  in.SupplierID,
		Status:      in.Status,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
	}
	if o.Status == "" {
		o.Status = StatusDraft
	}
	if in.TotalAmount != nil {
		o.TotalAmount = *in.TotalAmount
	}
	return o
}

type PurchaseOrderPatch struct {
	OrderNumber Optional[string]          `json:"order_number"`
	SupplierID  Optional[int64]           `json:"supplier_id"`
	Status      Optional[string]          `json:"status"`
	TotalAmount Optional[decimal.Decimal] `json:"total_amount"`
	CreatedBy   Optional[*int64]          `json:"created_by"`
}

func (p PurchaseOrderPatch) Validate() error {
	var c checker
	c.requiredOpt(p.OrderNumber, "order_number")
	if v, ok := p.SupplierID.Get(); ok {
		c.check(v > 0, "supplier_id", "is required")
	}
	if v, ok := p.Status.Get(); ok {
		c.oneOf(v, purchaseStatuses, "status")
	}
	if v, ok := p.TotalAmount.Get(); ok {
		c.nonNegative(&v, "total_amount")
	}
	return c.err()
}

func (p PurchaseOrderPatch) Apply(o *PurchaseOrder) {
	assign(p.OrderNumber, &o.OrderNumber)
	assign(p.SupplierID, &o.SupplierID)
	assign(p.Status, &o.Status)
	assign(p.TotalAmount, &o.TotalAmount)
	assign(p.CreatedBy, &o.CreatedBy)
}

// PurchaseOrderItem is one line of a purchase order. TotalPrice is caller-supplied.
type PurchaseOrderItem struct {
	bun.BaseModel `bun:"table:purchase_order_items"`

	ID              int64           `bun:",pk,autoincrement"`
	PurchaseOrderID int64           `bun:"purchase_order_id,notnull"`
	ProductID       int64           `bun:"product_id,notnull"`
	Quantity        int             `bun:"quantity,notnull"`
	UnitPrice       decimal.Decimal `bun:"unit_price,notnull"`
	TotalPrice      decimal.Decimal `bun:"total_price,notnull"`
}

type PurchaseOrderItemInput struct {
	PurchaseOrderID int64            `json:"purchase_order_id"`
	ProductID       int64            `json:"product_id"`
	Quantity        int              `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	TotalPrice      *decimal.Decimal `json:"total_price"`
}

func (in PurchaseOrderItemInput) Validate() error {
	return validateItem(in.PurchaseOrderID, "purchase_order_id", in.ProductID, in.Quantity, in.UnitPrice, in.TotalPrice)
}

func (in PurchaseOrderItemInput) PurchaseOrderItem() PurchaseOrderItem {
	item := PurchaseOrderItem{
		PurchaseOrderID: in.PurchaseOrderID,
		ProductID:       in.ProductID,
		Quantity:        in.Quantity,
	}
	if in.UnitPrice != nil {
		item.UnitPrice = *in.UnitPrice
	}
	if in.TotalPrice != nil {
		item.TotalPrice = *in.TotalPrice
	}
	return item
}

// SalesOrder is an order placed by a customer. CustomerID is optional for walk-in sales.
type SalesOrder struct {
	bun.BaseModel `bun:"table:sales_orders"`

	ID          int64           `bun:",pk,autoincrement"`
	OrderNumber string          `bun:"order_number,notnull"`
	CustomerID  *int64          `bun:"customer_id"`
	Status      string          `bun:"status,notnull"`
	TotalAmount decimal.Decimal `bun:"total_amount,notnull"`
	CreatedBy   *int64          `bun:"created_by"`
	CreatedAt   time.Time       `bun:"created_at,notnull"`
}

type SalesOrderInput struct {
	OrderNumber string           `json:"order_number"`
	CustomerID  *int64           `json:"customer_id"`
	Status      string           `json:"status"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
	CreatedBy   *int64           `json:"created_by"`
}

func (in SalesOrderInput) Validate() error {
	var c checker
	c.required(in.OrderNumber, "order_number")
	if in.Status != "" {
		c.oneOf(in.Status, salesStatuses, "status")
	}
	c.nonNegative(in.TotalAmount, "total_amount")
	return c.err()
}

func (in SalesOrderInput) SalesOrder(now time.Time) SalesOrder {
	o := SalesOrder{
		OrderNumber: in.OrderNumber,
		CustomerID:  in.CustomerID,
		Status:      in.Status,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
	}
	if o.Status == "" {
		o.Status = StatusDraft
	}
	if in.TotalAmount != nil {
		o.TotalAmount = *in.TotalAmount
	}
	return o
}

type SalesOrderPatch struct {
	OrderNumber Optional[string]          `json:"order_number"`
	CustomerID  Optional[*int64]          `json:"customer_id"`
	Status      Optional[string]          `json:"status"`
	TotalAmount Optional[decimal.Decimal] `json:"total_amount"`
	CreatedBy   Optional[*int64]          `json:"created_by"`
}

func (p SalesOrderPatch) Validate() error {
	var c checker
	c.requiredOpt(p.OrderNumber, "order_number")
	if v, ok := p.Status.Get(); ok {
		c.oneOf(v, salesStatuses, "status")
	}
	if v, ok := p.TotalAmount.Get(); ok {
		c.nonNegative(&v, "total_amount")
	}
	return c.err()
}

func (p SalesOrderPatch) Apply(o *SalesOrder) {
	assign(p.OrderNumber, &o.OrderNumber)
	assign(p.CustomerID, &o.CustomerID)
	assign(p.Status, &o.Status)
	assign(p.TotalAmount, &o.TotalAmount)
	assign(p.CreatedBy, &o.CreatedBy)
}

// SalesOrderItem is one line of a sales order. TotalPrice is caller-supplied.
type SalesOrderItem struct {
	bun.BaseModel `bun:"table:sales_order_items"`

	ID           int64           `bun:",pk,autoincrement"`
	SalesOrderID int64           `bun:"sales_order_id,notnull"`
	ProductID    int64           `bun:"product_id,notnull"`
	Quantity     int             `bun:"quantity,notnull"`
	UnitPrice    decimal.Decimal `bun:"unit_price,notnull"`
	TotalPrice   decimal.Decimal `bun:"total_price,notnull"`
}

type SalesOrderItemInput struct {
	SalesOrderID int64            `json:"sales_order_id"`
	ProductID    int64            `json:"product_id"`
	Quantity     int              `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	TotalPrice   *decimal.Decimal `json:"total_price"`
}

func (in SalesOrderItemInput) Validate() error {
	return validateItem(in.SalesOrderID, "sales_order_id", in.ProductID, in.Quantity, in.UnitPrice, in.TotalPrice)
}

func (in SalesOrderItemInput) SalesOrderItem() SalesOrderItem {
	item := SalesOrderItem{
		SalesOrderID: in.SalesOrderID,
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
	}
	if in.UnitPrice != nil {
		item.UnitPrice = *in.UnitPrice
	}
	if in.TotalPrice != nil {
		item.TotalPrice = *in.TotalPrice
	}
	return item
}

func validateItem(orderID int64, orderField string, productID int64, quantity int, unit, total *decimal.Decimal) error {
	var c checker
	c.check(orderID > 0, orderField, "is required")
	c.check(productID > 0, "product_id", "is required")
	c.quantity(quantity, "quantity")
	c.nonNegative(unit, "unit_price")
	c.nonNegative(total, "total_price")
	return c.err()
}

// DashboardStats is the dashboard aggregate. ExpiringSoon is always zero: products carry no expiry date.
type DashboardStats struct {
	TotalProducts int
	LowStockItems int
	TodaySales    decimal.Decimal
	ExpiringSoon  int
}
