// Package inventory records stock movements and serves the derived aggregates.
package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockledger/internal/config"
	"github.com/Additional-Code/stockledger/internal/entity"
	stock "github.com/Additional-Code/stockledger/internal/inventory"
	"github.com/Additional-Code/stockledger/internal/messaging"
	"github.com/Additional-Code/stockledger/internal/repository"
	"github.com/Additional-Code/stockledger/internal/service"
	"github.com/Additional-Code/stockledger/internal/service/catalog"
)

const instrumentationName = "github.com/Additional-Code/stockledger/service/inventory"

var serviceTracer = otel.Tracer(instrumentationName)

// Service records inventory transactions.
type Service struct {
	repo      repository.Repository
	catalog   *catalog.Service
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
	recorded  metric.Int64Counter
}

type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository repository.Repository
	Catalog    *catalog.Service
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"inventory.transactions.recorded",
		metric.WithDescription("Inventory transactions recorded, by type."),
	)
	if err != nil {
		p.Logger.Warn("inventory counter unavailable", zap.Error(err))
		counter = noop.Int64Counter{}
	}

	return &Service{
		repo:      p.Repository,
		catalog:   p.Catalog,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
		recorded: counter,
	}
}

// RecordTransaction stores a ledger entry and applies it to the product's stock.
// A transaction for a missing product is kept, logged, and changes no stock.
func (s *Service) RecordTransaction(ctx context.Context, in entity.TransactionInput) (entity.InventoryTransaction, error) {
	ctx, span := serviceTracer.Start(ctx, "InventoryService.RecordTransaction", trace.WithAttributes(
		attribute.Int64("product.id", in.ProductID),
		attribute.String("transaction.type", string(in.Type)),
		attribute.Int("transaction.quantity", in.Quantity),
	))
	defer span.End()

	txn, err := s.repo.RecordTransaction(ctx, in)
	if err != nil {
		return entity.InventoryTransaction{}, service.Fail(span, err, "inventory transaction")
	}
	s.recorded.Add(ctx, 1, metric.WithAttributes(attribute.String("type", string(txn.Type))))
	if s.catalog != nil {
		s.catalog.InvalidateProduct(ctx, txn.ProductID)
	}

	product, err := s.repo.GetProduct(ctx, txn.ProductID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.logger.Warn("transaction recorded for unknown product; stock unchanged",
			zap.Int64("transaction_id", txn.ID),
			zap.Int64("product_id", txn.ProductID),
		)
		return txn, nil
	case err != nil:
		s.logger.Warn("reload product after transaction failed", zap.Int64("product_id", txn.ProductID), zap.Error(err))
		return txn, nil
	}

	span.SetAttributes(attribute.Int("product.stock", product.CurrentStock))
	s.publishRecorded(ctx, txn, product)
	return txn, nil
}

func (s *Service) ListTransactions(ctx context.Context) ([]entity.InventoryTransaction, error) {
	out, err := s.repo.ListTransactions(ctx)
	return out, service.Translate(err, "inventory transaction")
}

// TransactionsByProduct lists the ledger of one product in recording order.
func (s *Service) TransactionsByProduct(ctx context.Context, productID int64) ([]entity.InventoryTransaction, error) {
	out, err := s.repo.TransactionsByProduct(ctx, productID)
	return out, service.Translate(err, "inventory transaction")
}

// DashboardStats returns product counts and today's completed sales.
func (s *Service) DashboardStats(ctx context.Context) (entity.DashboardStats, error) {
	ctx, span := serviceTracer.Start(ctx, "InventoryService.DashboardStats")
	defer span.End()

	out, err := s.repo.DashboardStats(ctx)
	return out, service.Fail(span, err, "dashboard stats")
}

func (s *Service) publishRecorded(ctx context.Context, txn entity.InventoryTransaction, p entity.Product) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := TransactionRecordedEvent{
		EventID:       uuid.NewString(),
		ID:            txn.ID,
		ProductID:     p.ID,
		SKU:           p.SKU,
		Type:          string(txn.Type),
		Quantity:      txn.Quantity,
		StockAfter:    p.CurrentStock,
		MinStockLevel: p.MinStockLevel,
		LowStock:      stock.IsLowStock(p),
		CreatedAt:     txn.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal transaction recorded", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("product-%d", p.ID)), payload); err != nil {
		s.logger.Error("publish transaction recorded", zap.Error(err), zap.String("topic", s.messaging.topic))
	}
}

// TransactionRecordedEvent is emitted after a transaction changed a product's stock.
type TransactionRecordedEvent struct {
	EventID       string    `json:"event_id"`
	ID            int64     `json:"id"`
	ProductID     int64     `json:"product_id"`
	SKU           string    `json:"sku"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	StockAfter    int       `json:"stock_after"`
	MinStockLevel int       `json:"min_stock_level"`
	LowStock      bool      `json:"low_stock"`
	CreatedAt     time.Time `json:"created_at"`
}
