package dto

import (
	"time"

	"github.com/Additional-Code/stockledger/internal/entity"
)

type PurchaseOrderResponse struct {
	ID          int64     `json:"id"`
	OrderNumber string    `json:"order_number"`
	SupplierID  int64     `json:"supplier_id"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"total_amount"`
	CreatedBy   *int64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func PurchaseOrder(o entity.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		SupplierID:  o.SupplierID,
		Status:      o.Status,
		TotalAmount: Money(o.TotalAmount),
		CreatedBy:   o.CreatedBy,
		CreatedAt:   o.CreatedAt,
	}
}

type SalesOrderResponse struct {
	ID          int64     `json:"id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  *int64    `json:"customer_id"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"total_amount"`
	CreatedBy   *int64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func SalesOrder(o entity.SalesOrder) SalesOrderResponse {
	return SalesOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		Status:      o.Status,
		TotalAmount: Money(o.TotalAmount),
		CreatedBy:   o.CreatedBy,
		CreatedAt:   o.CreatedAt,
	}
}

type PurchaseOrderItemResponse struct {
	ID              int64  `json:"id"`
	PurchaseOrderID int64  `json:"purchase_order_id"`
	ProductID       int64  `json:"product_id"`
	Quantity        int    `json:"quantity"`
	UnitPrice       string `json:"unit_price"`
	TotalPrice      string `json:"total_price"`
}

func PurchaseOrderItem(i entity.PurchaseOrderItem) PurchaseOrderItemResponse {
	return PurchaseOrderItemResponse{
		ID:              i.ID,
		PurchaseOrderID: i.PurchaseOrderID,
		ProductID:       i.ProductID,
		Quantity:        i.Quantity,
		UnitPrice:       Money(i.UnitPrice),
		TotalPrice:      Money(i.TotalPrice),
	}
}

type SalesOrderItemResponse struct {
	ID           int64  `json:"id"`
	SalesOrderID int64  `json:"sales_order_id"`
	ProductID    int64  `json:"product_id"`
	Quantity     int    `json:"quantity"`
	UnitPrice    string `json:"unit_price"`
	TotalPrice   string `json:"total_price"`
}

func SalesOrderItem(i entity.SalesOrderItem) SalesOrderItemResponse {
	return SalesOrderItemResponse{
		ID:           i.ID,
		SalesOrderID: i.SalesOrderID,
		ProductID:    i.ProductID,
		Quantity:     i.Quantity,
		UnitPrice:    Money(i.UnitPrice),
		TotalPrice:   Money(i.TotalPrice),
	}
}

// DashboardResponse is the dashboard summary.
type DashboardResponse struct {
	TotalProducts int    `json:"total_products"`
	LowStockItems int    `json:"low_stock_items"`
	TodaySales    string `json:"today_sales"`
	ExpiringSoon  int    `json:"expiring_soon"`
}

func Dashboard(s entity.DashboardStats) DashboardResponse {
	return DashboardResponse{
		TotalProducts: s.TotalProducts,
		LowStockItems: s.LowStockItems,
		TodaySales:    Money(s.TodaySales),
		ExpiringSoon:  s.ExpiringSoon,
	}
}
