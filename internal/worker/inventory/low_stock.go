package inventory

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockledger/internal/config"
	"github.com/Additional-Code/stockledger/internal/messaging"
	inventorysvc "github.com/Additional-Code/stockledger/internal/service/inventory"
	"github.com/Additional-Code/stockledger/internal/worker"
)

var workerTracer = otel.Tracer("github.com/Additional-Code/stockledger/worker/inventory")

// Module registers inventory worker handlers.
var Module = fx.Module("worker_inventory",
	fx.Provide(
		fx.Annotate(
			NewLowStockHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewLowStockHandler consumes transaction events and warns when a product
// drops to or below its minimum stock level.
func NewLowStockHandler(logger *zap.Logger, cfg config.Config) worker.HandlerRegistration {
	alerts := cfg.Inventory.LowStockAlerts

	handler := func(ctx context.Context, msg messaging.Message) error {
		_, span := workerTracer.Start(ctx, "worker.inventory.process", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var event inventorysvc.TransactionRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode transaction recorded", zap.Error(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}
		span.SetAttributes(
			attribute.Int64("product.id", event.ProductID),
			attribute.Bool("product.low_stock", event.LowStock),
		)

		if event.LowStock && alerts {
			logger.Warn("product at or below minimum stock",
				zap.Int64("product_id", event.ProductID),
				zap.String("sku", event.SKU),
				zap.Int("stock", event.StockAfter),
				zap.Int("min_stock_level", event.MinStockLevel),
			)
			return nil
		}

		logger.Debug("transaction recorded event processed",
			zap.Int64("id", event.ID),
			zap.String("type", event.Type),
			zap.Int("stock", event.StockAfter),
		)
		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
