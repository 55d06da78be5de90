package entity

import (
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// DefaultUnit is the unit label applied when none is given.
const DefaultUnit = "pcs"

// Product is a stocked item. CurrentStock only changes through the ledger.
type Product struct {
	bun.BaseModel `bun:"table:products"`

	ID            int64           `bun:",pk,autoincrement"`
	Name          string          `bun:"name,notnull"`
	SKU           string          `bun:"sku,notnull"`
	Barcode       *string         `bun:"barcode"`
	CategoryID    *int64          `bun:"category_id"`
	Brand         *string         `bun:"brand"`
	Unit          string          `bun:"unit,notnull"`
	PurchasePrice decimal.Decimal `bun:"purchase_price,notnull"`
	SellingPrice  decimal.Decimal `bun:"selling_price,notnull"`
	TaxPercent    decimal.Decimal `bun:"tax_percent,notnull"`
	MinStockLevel int             `bun:"min_stock_level,notnull"`
	CurrentStock  int             `bun:"current_stock,notnull"`
	IsActive      bool            `bun:"is_active"`
}

// ProductInput is the insert shape for products.
type ProductInput struct {
	Name          string           `json:"name"`
	SKU           string           `json:"sku"`
	Barcode       *string          `json:"barcode"`
	CategoryID    *int64           `json:"category_id"`
	Brand         *string          `json:"brand"`
	Unit          string           `json:"unit"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	TaxPercent    *decimal.Decimal `json:"tax_percent"`
	MinStockLevel *int             `json:"min_stock_level"`
	CurrentStock  *int             `json:"current_stock"`
	IsActive      *bool            `json:"is_active"`
}

func (in ProductInput) Validate() error {
	var c checker
	c.required(in.Name, "name")
	c.required(in.SKU, "sku")
	c.nonNegative(in.PurchasePrice, "purchase_price")
	c.nonNegative(in.SellingPrice, "selling_price")
	if in.TaxPercent != nil {
		c.nonNegative(in.TaxPercent, "tax_percent")
	}
	if in.MinStockLevel != nil {
		c.level(*in.MinStockLevel, "min_stock_level")
	}
	if in.CurrentStock != nil {
		c.level(*in.CurrentStock, "current_stock")
	}
	return c.err()
}

// Product applies creation defaults. Call Validate first: prices must be present.
func (in ProductInput) Product() Product {
	p := Product{
		Name:       in.Name,
		SKU:        in.SKU,
		Barcode:    in.Barcode,
		CategoryID: in.CategoryID,
		Brand:      in.Brand,
		Unit:       in.Unit,
		TaxPercent: decimal.Zero,
		IsActive:   true,
	}
	if p.Unit == "" {
		p.Unit = DefaultUnit
	}
	if in.PurchasePrice != nil {
		p.PurchasePrice = *in.PurchasePrice
	}
	if in.SellingPrice != nil {
		p.SellingPrice = *in.SellingPrice
	}
	if in.TaxPercent != nil {
		p.TaxPercent = *in.TaxPercent
	}
	if in.MinStockLevel != nil {
		p.MinStockLevel = *in.MinStockLevel
	}
	if in.CurrentStock != nil {
		p.CurrentStock = *in.CurrentStock
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	return p
}

// ProductPatch is a partial update for products. Stock is not patchable.
type ProductPatch struct {
	Name          Optional[string]          `json:"name"`
	SKU           Optional[string]          `json:"sku"`
	Barcode       Optional[*string]         `json:"barcode"`
	CategoryID    Optional[*int64]          `json:"category_id"`
	Brand         Optional[*string]         `json:"brand"`
	Unit          Optional[string]          `json:"unit"`
	PurchasePrice Optional[decimal.Decimal] `json:"purchase_price"`
	SellingPrice  Optional[decimal.Decimal] `json:"selling_price"`
	TaxPercent    Optional[decimal.Decimal] `json:"tax_percent"`
	MinStockLevel Optional[int]             `json:"min_stock_level"`
	IsActive      Optional[bool]            `json:"is_active"`
}

func (p ProductPatch) Validate() error {
	var c checker
	c.requiredOpt(p.Name, "name")
	c.requiredOpt(p.SKU, "sku")
	c.requiredOpt(p.Unit, "unit")
	prices := []struct {
		field string
		value Optional[decimal.Decimal]
	}{
		{"purchase_price", p.PurchasePrice},
		{"selling_price", p.SellingPrice},
		{"tax_percent", p.TaxPercent},
	}
	for _, price := range prices {
		if v, ok := price.value.Get(); ok {
			c.nonNegative(&v, price.field)
		}
	}
	if v, ok := p.MinStockLevel.Get(); ok {
		c.level(v, "min_stock_level")
	}
	return c.err()
}

func (p ProductPatch) Apply(prod *Product) {
	assign(p.Name, &prod.Name)
	assign(p.SKU, &prod.SKU)
	assign(p.Barcode, &prod.Barcode)
	assign(p.CategoryID, &prod.CategoryID)
	assign(p.Brand, &prod.Brand)
	assign(p.Unit, &prod.Unit)
	assign(p.PurchasePrice, &prod.PurchasePrice)
	assign(p.SellingPrice, &prod.SellingPrice)
	assign(p.TaxPercent, &prod.TaxPercent)
	assign(p.MinStockLevel, &prod.MinStockLevel)
	assign(p.IsActive, &prod.IsActive)
}
