package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Additional-Code/stockledger/internal/entity"
)

// Day is a calendar day in a given location: [Start, End).
type Day struct {
	Start time.Time
	End   time.Time
}

// DayOf returns the calendar day containing now, evaluated in loc.
func DayOf(now time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Day{Start: start, End: start.AddDate(0, 0, 1)}
}

// Contains reports whether t falls inside the day.
func (d Day) Contains(t time.Time) bool {
	return !t.Before(d.Start) && t.Before(d.End)
}

// CompletedSales sums the total amount of completed sales orders created during day.
func CompletedSales(orders []entity.SalesOrder, day Day) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.Status != entity.StatusCompleted || !day.Contains(o.CreatedAt) {
			continue
		}
		total = total.Add(o.TotalAmount)
	}
	return total
}

// Dashboard builds the dashboard aggregate from full snapshots of products and sales orders.
func Dashboard(products []entity.Product, orders []entity.SalesOrder, day Day) entity.DashboardStats {
	low := 0
	for _, p := range products {
		if IsLowStock(p) {
			low++
		}
	}
	return entity.DashboardStats{
		TotalProducts: len(products),
		LowStockItems: low,
		TodaySales:    CompletedSales(orders, day),
	}
}
