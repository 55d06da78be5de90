package inventory

import (
	"testing"

	"github.com/Additional-Code/stockledger/internal/entity"
)

func TestNextStock(t *testing.T) {
	cases := []struct {
		name     string
		current  int
		typ      entity.TransactionType
		quantity int
		want     int
	}{
		{"in adds quantity", 5, entity.TransactionIn, 7, 12},
		{"in from zero", 0, entity.TransactionIn, 3, 3},
		{"out subtracts quantity", 10, entity.TransactionOut, 4, 6},
		{"out to exactly zero", 10, entity.TransactionOut, 10, 0},
		{"out beyond stock clamps", 10, entity.TransactionOut, 15, 0},
		{"adjustment sets absolute", 3, entity.TransactionAdjustment, 50, 50},
		{"adjustment to zero", 30, entity.TransactionAdjustment, 0, 0},
		{"negative adjustment clamps", 30, entity.TransactionAdjustment, -4, 0},
		{"unknown type leaves stock", 8, entity.TransactionType("transfer"), 2, 8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextStock(tc.current, tc.typ, tc.quantity)
			if got != tc.want {
				t.Fatalf("NextStock(%d, %s, %d) = %d, want %d", tc.current, tc.typ, tc.quantity, got, tc.want)
			}
		})
	}
}

func TestNextStockNeverNegative(t *testing.T) {
	stock := 0
	sequence := []struct {
		typ entity.TransactionType
		q   int
	}{
		{entity.TransactionIn, 4},
		{entity.TransactionOut, 9},
		{entity.TransactionOut, 1},
		{entity.TransactionAdjustment, -10},
		{entity.TransactionIn, 2},
		{entity.TransactionOut, 2},
	}
	for i, step := range sequence {
		stock = NextStock(stock, step.typ, step.q)
		if stock < 0 {
			t.Fatalf("step %d: stock went negative: %d", i, stock)
		}
	}
	if stock != 0 {
		t.Fatalf("final stock = %d, want 0", stock)
	}
}

func TestLowStockBoundaryInclusive(t *testing.T) {
	products := []entity.Product{
		{ID: 1, MinStockLevel: 10, CurrentStock: 10},
		{ID: 2, MinStockLevel: 10, CurrentStock: 11},
		{ID: 3, MinStockLevel: 0, CurrentStock: 0},
		{ID: 4, MinStockLevel: 5, CurrentStock: 2, IsActive: false},
	}

	low := LowStock(products)
	var ids []int64
	for _, p := range low {
		ids = append(ids, p.ID)
	}
	want := []int64{1, 3, 4}
	if len(ids) != len(want) {
		t.Fatalf("low stock ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("low stock ids = %v, want %v", ids, want)
		}
	}
}

func TestApplyRejectsStockAboveCeiling(t *testing.T) {
	cases := []struct {
		name     string
		current  int
		typ      entity.TransactionType
		quantity int
		want     int
		rejected bool
	}{
		{"in up to the ceiling", entity.MaxQuantity - 1, entity.TransactionIn, 1, entity.MaxQuantity, false},
		{"in past the ceiling", entity.MaxQuantity, entity.TransactionIn, 1, entity.MaxQuantity, true},
		{"large in on large stock", entity.MaxQuantity, entity.TransactionIn, entity.MaxQuantity, entity.MaxQuantity, true},
		{"adjustment to the ceiling", 0, entity.TransactionAdjustment, entity.MaxQuantity, entity.MaxQuantity, false},
		{"out from the ceiling", entity.MaxQuantity, entity.TransactionOut, entity.MaxQuantity, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Apply(tc.current, tc.typ, tc.quantity)
			if (err != nil) != tc.rejected {
				t.Fatalf("Apply error = %v, rejected want %v", err, tc.rejected)
			}
			if got != tc.want {
				t.Fatalf("Apply(%d, %s, %d) = %d, want %d", tc.current, tc.typ, tc.quantity, got, tc.want)
			}
		})
	}
}
