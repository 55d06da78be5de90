package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// TransactionType selects how a transaction moves stock.
type TransactionType string

const (
	TransactionIn         TransactionType = "in"
	TransactionOut        TransactionType = "out"
	TransactionAdjustment TransactionType = "adjustment"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIn, TransactionOut, TransactionAdjustment:
		return true
	}
	return false
}

// InventoryTransaction is an immutable ledger entry.
type InventoryTransaction struct {
	bun.BaseModel `bun:"table:inventory_transactions"`

	ID          int64           `bun:",pk,autoincrement"`
	ProductID   int64           `bun:"product_id,notnull"`
	Type        TransactionType `bun:"type,notnull"`
	Quantity    int             `bun:"quantity,notnull"`
	Reason      *string         `bun:"reason"`
	Reference   *string         `bun:"reference"`
	PerformedBy *int64          `bun:"performed_by"`
	CreatedAt   time.Time       `bun:"created_at,notnull"`
}

// TransactionInput is the insert shape for ledger entries.
type TransactionInput struct {
	ProductID   int64           `json:"product_id"`
	Type        TransactionType `json:"type"`
	Quantity    int             `json:"quantity"`
	Reason      *string         `json:"reason"`
	Reference   *string         `json:"reference"`
	PerformedBy *int64          `json:"performed_by"`
}

func (in TransactionInput) Validate() error {
	var c checker
	c.check(in.ProductID > 0, "product_id", "is required")
	c.oneOf(string(in.Type), []string{
		string(TransactionIn), string(TransactionOut), string(TransactionAdjustment),
	}, "type")
	c.quantity(in.Quantity, "quantity")
	return c.err()
}

func (in TransactionInput) Transaction(now time.Time) InventoryTransaction {
	return InventoryTransaction{
		ProductID:   in.ProductID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Reference:   in.Reference,
		PerformedBy: in.PerformedBy,
		CreatedAt:   now,
	}
}
