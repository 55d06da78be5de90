// Package repository defines the storage contract used by services. Implementations
// live in the memory and sql subpackages.
package repository

import (
	"context"
	"errors"

	"github.com/Additional-Code/stockledger/internal/entity"
)

// ErrNotFound is returned when a record with the requested id is absent.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a write would break a uniqueness rule
// (username, product sku, order number).
var ErrConflict = errors.New("record conflicts with an existing one")

type Users interface {
	CreateUser(ctx context.Context, in entity.UserInput) (entity.User, error)
	GetUser(ctx context.Context, id int64) (entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (entity.User, error)
	ListUsers(ctx context.Context) ([]entity.User, error)
	UpdateUser(ctx context.Context, id int64, patch entity.UserPatch) (entity.User, error)
}

type Categories interface {
	CreateCategory(ctx context.Context, in entity.CategoryInput) (entity.Category, error)
	GetCategory(ctx context.Context, id int64) (entity.Category, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
	UpdateCategory(ctx context.Context, id int64, patch entity.CategoryPatch) (entity.Category, error)
	DeleteCategory(ctx context.Context, id int64) (bool, error)
}

type Suppliers interface {
	CreateSupplier(ctx context.Context, in entity.SupplierInput) (entity.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (entity.Supplier, error)
	ListSuppliers(ctx context.Context) ([]entity.Supplier, error)
	UpdateSupplier(ctx context.Context, id int64, patch entity.SupplierPatch) (entity.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) (bool, error)
}

type Customers interface {
	CreateCustomer(ctx context.Context, in entity.CustomerInput) (entity.Customer, error)
	GetCustomer(ctx context.Context, id int64) (entity.Customer, error)
	ListCustomers(ctx context.Context) ([]entity.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, patch entity.CustomerPatch) (entity.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) (bool, error)
}

type Products interface {
	CreateProduct(ctx context.Context, in entity.ProductInput) (entity.Product, error)
	GetProduct(ctx context.Context, id int64) (entity.Product, error)
	ListProducts(ctx context.Context) ([]entity.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch entity.ProductPatch) (entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
	// LowStockProducts returns products whose stock is at or below their minimum level.
	LowStockProducts(ctx context.Context) ([]entity.Product, error)
}

// Ledger is the only path through which product stock changes.
type Ledger interface {
	// RecordTransaction stores the transaction and applies it to the product's stock.
	// A transaction for an unknown product is still recorded; no stock changes.
	RecordTransaction(ctx context.Context, in entity.TransactionInput) (entity.InventoryTransaction, error)
	ListTransactions(ctx context.Context) ([]entity.InventoryTransaction, error)
	TransactionsByProduct(ctx context.Context, productID int64) ([]entity.InventoryTransaction, error)
}

// PurchaseOrders stores purchase orders and their items. Creating an item does not
// record stock or touch the order total.
type PurchaseOrders interface {
	CreatePurchaseOrder(ctx context.Context, in entity.PurchaseOrderInput) (entity.PurchaseOrder, error)
	GetPurchaseOrder(ctx context.Context, id int64) (entity.PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context) ([]entity.PurchaseOrder, error)
	UpdatePurchaseOrder(ctx context.Context, id int64, patch entity.PurchaseOrderPatch) (entity.PurchaseOrder, error)
	CreatePurchaseOrderItem(ctx context.Context, in entity.PurchaseOrderItemInput) (entity.PurchaseOrderItem, error)
	PurchaseOrderItems(ctx context.Context, orderID int64) ([]entity.PurchaseOrderItem, error)
}

// SalesOrders stores sales orders and their items, with the same item semantics as PurchaseOrders.
type SalesOrders interface {
	CreateSalesOrder(ctx context.Context, in entity.SalesOrderInput) (entity.SalesOrder, error)
	GetSalesOrder(ctx context.Context, id int64) (entity.SalesOrder, error)
	ListSalesOrders(ctx context.Context) ([]entity.SalesOrder, error)
	UpdateSalesOrder(ctx context.Context, id int64, patch entity.SalesOrderPatch) (entity.SalesOrder, error)
	CreateSalesOrderItem(ctx context.Context, in entity.SalesOrderItemInput) (entity.SalesOrderItem, error)
	SalesOrderItems(ctx context.Context, orderID int64) ([]entity.SalesOrderItem, error)
}

type Stats interface {
	DashboardStats(ctx context.Context) (entity.DashboardStats, error)
}

// Repository is the full capability set exposed to services.
type Repository interface {
	Users
	Categories
	Suppliers
	Customers
	Products
	Ledger
	PurchaseOrders
	SalesOrders
	Stats

	Ping(ctx context.Context) error
}
