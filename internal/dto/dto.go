// Package dto holds the JSON shapes exposed by transport layers. Money is
// rendered as a fixed two-decimal string.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Additional-Code/stockledger/internal/entity"
)

// Money renders a decimal amount with two fraction digits.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// List converts a slice with fn, always returning a non-nil slice.
func List[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

func User(u entity.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Name: u.Name, Role: u.Role, IsActive: u.IsActive}
}

type CategoryResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func Category(c entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

type SupplierResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	GST           *string `json:"gst"`
	IsActive      bool    `json:"is_active"`
}

func Supplier(s entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		GST:           s.GST,
		IsActive:      s.IsActive,
	}
}

type CustomerResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	GST      *string `json:"gst"`
	IsActive bool    `json:"is_active"`
}

func Customer(c entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Address:  c.Address,
		GST:      c.GST,
		IsActive: c.IsActive,
	}
}

type ProductResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Barcode       *string `json:"barcode"`
	CategoryID    *int64  `json:"category_id"`
	Brand         *string `json:"brand"`
	Unit          string  `json:"unit"`
	PurchasePrice string  `json:"purchase_price"`
	SellingPrice  string  `json:"selling_price"`
	TaxPercent    string  `json:"tax_percent"`
	MinStockLevel int     `json:"min_stock_level"`
	CurrentStock  int     `json:"current_stock"`
	IsActive      bool    `json:"is_active"`
}

func Product(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Barcode:       p.Barcode,
		CategoryID:    p.CategoryID,
		Brand:         p.Brand,
		Unit:          p.Unit,
		PurchasePrice: Money(p.PurchasePrice),
		SellingPrice:  Money(p.SellingPrice),
		TaxPercent:    Money(p.TaxPercent),
		MinStockLevel: p.MinStockLevel,
		CurrentStock:  p.CurrentStock,
		IsActive:      p.IsActive,
	}
}

type TransactionResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Reason      *string   `json:"reason"`
	Reference   *string   `json:"reference"`
	PerformedBy *int64    `json:"performed_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func Transaction(t entity.InventoryTransaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		ProductID:   t.ProductID,
		Type:        string(t.Type),
		Quantity:    t.Quantity,
		Reason:      t.Reason,
		Reference:   t.Reference,
		PerformedBy: t.PerformedBy,
		CreatedAt:   t.CreatedAt,
	}
}
