package inventory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Additional-Code/stockledger/internal/entity"
)

func TestDayOf(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	// 20:30 UTC is 03:30 the next day in UTC+7.
	now := time.Date(2025, 3, 9, 20, 30, 0, 0, time.UTC)

	day := DayOf(now, loc)
	wantStart := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	if !day.Start.Equal(wantStart) {
		t.Fatalf("start = %s, want %s", day.Start, wantStart)
	}
	if !day.End.Equal(wantStart.Add(24 * time.Hour)) {
		t.Fatalf("end = %s", day.End)
	}
	if !day.Contains(now) {
		t.Fatal("day should contain now")
	}
	if day.Contains(day.End) {
		t.Fatal("day end is exclusive")
	}
	if !day.Contains(day.Start) {
		t.Fatal("day start is inclusive")
	}
}

func TestCompletedSales(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	day := DayOf(now, time.UTC)

	orders := []entity.SalesOrder{
		{OrderNumber: "SO-1", Status: entity.StatusCompleted, TotalAmount: decimal.RequireFromString("100.10"), CreatedAt: now.Add(-time.Hour)},
		{OrderNumber: "SO-2", Status: entity.StatusCompleted, TotalAmount: decimal.RequireFromString("0.20"), CreatedAt: day.Start},
		{OrderNumber: "SO-3", Status: entity.StatusPending, TotalAmount: decimal.RequireFromString("999"), CreatedAt: now},
		{OrderNumber: "SO-4", Status: entity.StatusCompleted, TotalAmount: decimal.RequireFromString("50"), CreatedAt: day.Start.Add(-time.Second)},
	}

	got := CompletedSales(orders, day)
	if !got.Equal(decimal.RequireFromString("100.30")) {
		t.Fatalf("today sales = %s, want 100.30", got)
	}
}

func TestDashboard(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	products := []entity.Product{
		{MinStockLevel: 10, CurrentStock: 10},
		{MinStockLevel: 1, CurrentStock: 40},
	}
	orders := []entity.SalesOrder{
		{Status: entity.StatusCompleted, TotalAmount: decimal.NewFromInt(12), CreatedAt: now},
	}

	stats := Dashboard(products, orders, DayOf(now, time.UTC))
	if stats.TotalProducts != 2 || stats.LowStockItems != 1 || stats.ExpiringSoon != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if !stats.TodaySales.Equal(decimal.NewFromInt(12)) {
		t.Fatalf("today sales = %s", stats.TodaySales)
	}
}
