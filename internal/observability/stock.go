package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockledger/internal/repository"
)

const stockMeterName = "github.com/Additional-Code/stockledger/observability/stock"

// RegisterStockGauges publishes product totals and the low-stock count as
// observable gauges, read from the repository at collection time.
func RegisterStockGauges(_ *Manager, repo repository.Repository, logger *zap.Logger) error {
	_, err := registerStockGauges(otel.Meter(stockMeterName), repo, logger)
	return err
}

func registerStockGauges(meter metric.Meter, repo repository.Repository, logger *zap.Logger) (metric.Registration, error) {
	total, err := meter.Int64ObservableGauge("inventory.products.total",
		metric.WithDescription("Products in the catalog."))
	if err != nil {
		return nil, err
	}
	low, err := meter.Int64ObservableGauge("inventory.products.low_stock",
		metric.WithDescription("Products at or below their minimum stock level."))
	if err != nil {
		return nil, err
	}

	return meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		stats, err := repo.DashboardStats(ctx)
		if err != nil {
			logger.Warn("stock gauges: dashboard stats failed", zap.Error(err))
			return nil
		}
		o.ObserveInt64(total, int64(stats.TotalProducts))
		o.ObserveInt64(low, int64(stats.LowStockItems))
		return nil
	}, total, low)
}
