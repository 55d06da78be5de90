// Package inventory holds the stock rules shared by every store implementation.
package inventory

import "github.com/Additional-Code/stockledger/internal/entity"

// NextStock returns the stock level after applying a transaction of the given
// type and quantity. The result is floored at zero; an over-withdrawal is not an error.
func NextStock(current int, t entity.TransactionType, quantity int) int {
	next := current
	switch t {
	case entity.TransactionIn:
		next = current + quantity
	case entity.TransactionOut:
		next = current - quantity
	case entity.TransactionAdjustment:
		next = quantity
	}
	return max(0, next)
}

// Apply is NextStock for a stored product: it rejects a result above
// entity.MaxQuantity instead of letting the stock column overflow.
func Apply(current int, t entity.TransactionType, quantity int) (int, error) {
	next := NextStock(current, t, quantity)
	if next > entity.MaxQuantity {
		return current, entity.StockOverflow()
	}
	return next, nil
}

// IsLowStock reports whether p is at or below its minimum level.
func IsLowStock(p entity.Product) bool {
	return p.CurrentStock <= p.MinStockLevel
}

// LowStock filters products down to those at or below their minimum, keeping order.
func LowStock(products []entity.Product) []entity.Product {
	low := make([]entity.Product, 0)
	for _, p := range products {
		if IsLowStock(p) {
			low = append(low, p)
		}
	}
	return low
}
