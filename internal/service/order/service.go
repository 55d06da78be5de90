// Package order manages purchase and sales orders with their line items.
package order

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockledger/internal/entity"
	"github.com/Additional-Code/stockledger/internal/repository"
	"github.com/Additional-Code/stockledger/internal/service"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/stockledger/service/order")

// Service encapsulates business logic around orders. Line items never move stock
// or change the order total; both are the caller's responsibility.
type Service struct {
	repo   repository.Repository
	logger *zap.Logger
}

// NewService wires a new Service instance.
func NewService(repo repository.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Purchase orders

func (s *Service) ListPurchaseOrders(ctx context.Context) ([]entity.PurchaseOrder, error) {
	out, err := s.repo.ListPurchaseOrders(ctx)
	return out, service.Translate(err, "purchase order")
}

func (s *Service) GetPurchaseOrder(ctx context.Context, id int64) (entity.PurchaseOrder, error) {
	out, err := s.repo.GetPurchaseOrder(ctx, id)
	return out, service.Translate(err, "purchase order")
}

func (s *Service) CreatePurchaseOrder(ctx context.Context, in entity.PurchaseOrderInput) (entity.PurchaseOrder, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.CreatePurchaseOrder", trace.WithAttributes(attribute.String("order.number", in.OrderNumber)))
	defer span.End()

	out, err := s.repo.CreatePurchaseOrder(ctx, in)
	if err != nil {
		return out, service.Fail(span, err, "purchase order")
	}
	s.logger.Info("purchase order created", zap.Int64("id", out.ID), zap.String("number", out.OrderNumber))
	return out, nil
}

func (s *Service) UpdatePurchaseOrder(ctx context.Context, id int64, patch entity.PurchaseOrderPatch) (entity.PurchaseOrder, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.UpdatePurchaseOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	out, err := s.repo.UpdatePurchaseOrder(ctx, id, patch)
	return out, service.Fail(span, err, "purchase order")
}

// PurchaseOrderItems lists the items of an existing purchase order.
func (s *Service) PurchaseOrderItems(ctx context.Context, orderID int64) ([]entity.PurchaseOrderItem, error) {
	if _, err := s.repo.GetPurchaseOrder(ctx, orderID); err != nil {
		return nil, service.Translate(err, "purchase order")
	}
	out, err := s.repo.PurchaseOrderItems(ctx, orderID)
	return out, service.Translate(err, "purchase order item")
}

// AddPurchaseOrderItem appends an item to an existing purchase order.
func (s *Service) AddPurchaseOrderItem(ctx context.Context, in entity.PurchaseOrderItemInput) (entity.PurchaseOrderItem, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.AddPurchaseOrderItem", trace.WithAttributes(attribute.Int64("order.id", in.PurchaseOrderID)))
	defer span.End()

	if _, err := s.repo.GetPurchaseOrder(ctx, in.PurchaseOrderID); err != nil {
		return entity.PurchaseOrderItem{}, service.Fail(span, err, "purchase order")
	}
	out, err := s.repo.CreatePurchaseOrderItem(ctx, in)
	return out, service.Fail(span, err, "purchase order item")
}

// Sales orders

func (s *Service) ListSalesOrders(ctx context.Context) ([]entity.SalesOrder, error) {
	out, err := s.repo.ListSalesOrders(ctx)
	return out, service.Translate(err, "sales order")
}

func (s *Service) GetSalesOrder(ctx context.Context, id int64) (entity.SalesOrder, error) {
	out, err := s.repo.GetSalesOrder(ctx, id)
	return out, service.Translate(err, "sales order")
}

func (s *Service) CreateSalesOrder(ctx context.Context, in entity.SalesOrderInput) (entity.SalesOrder, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.CreateSalesOrder", trace.WithAttributes(attribute.String("order.number", in.OrderNumber)))
	defer span.End()

	out, err := s.repo.CreateSalesOrder(ctx, in)
	if err != nil {
		return out, service.Fail(span, err, "sales order")
	}
	s.logger.Info("sales order created", zap.Int64("id", out.ID), zap.String("number", out.OrderNumber))
	return out, nil
}

func (s *Service) UpdateSalesOrder(ctx context.Context, id int64, patch entity.SalesOrderPatch) (entity.SalesOrder, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.UpdateSalesOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	out, err := s.repo.UpdateSalesOrder(ctx, id, patch)
	return out, service.Fail(span, err, "sales order")
}

func (s *Service) SalesOrderItems(ctx context.Context, orderID int64) ([]entity.SalesOrderItem, error) {
	if _, err := s.repo.GetSalesOrder(ctx, orderID); err != nil {
		return nil, service.Translate(err, "sales order")
	}
	out, err := s.repo.SalesOrderItems(ctx, orderID)
	return out, service.Translate(err, "sales order item")
}

func (s *Service) AddSalesOrderItem(ctx context.Context, in entity.SalesOrderItemInput) (entity.SalesOrderItem, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.AddSalesOrderItem", trace.WithAttributes(attribute.Int64("order.id", in.SalesOrderID)))
	defer span.End()

	if _, err := s.repo.GetSalesOrder(ctx, in.SalesOrderID); err != nil {
		return entity.SalesOrderItem{}, service.Fail(span, err, "sales order")
	}
	out, err := s.repo.CreateSalesOrderItem(ctx, in)
	return out, service.Fail(span, err, "sales order item")
}
