package order

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/stockledger/internal/dto"
	"github.com/Additional-Code/stockledger/internal/entity"
	"github.com/Additional-Code/stockledger/internal/presentation/http/response"
	service "github.com/Additional-Code/stockledger/internal/service/order"
	"github.com/Additional-Code/stockledger/internal/transport/http/request"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/stockledger/transport/http/order")

// Handler exposes order endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	po := e.Group("/api/purchase-orders")
	po.GET("", h.listPurchase)
	po.POST("", h.createPurchase)
	po.GET("/:id", h.getPurchase)
	po.PATCH("/:id", h.updatePurchase)
	po.GET("/:id/items", h.purchaseItems)
	po.POST("/:id/items", h.addPurchaseItem)

	so := e.Group("/api/sales-orders")
	so.GET("", h.listSales)
	so.POST("", h.createSales)
	so.GET("/:id", h.getSales)
	so.PATCH("/:id", h.updateSales)
	so.GET("/:id/items", h.salesItems)
	so.POST("/:id/items", h.addSalesItem)
}

func (h *Handler) listPurchase(c echo.Context) error {
	b := response.New(c)
	out, err := h.svc.ListPurchaseOrders(c.Request().Context())
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.List(out, dto.PurchaseOrder)).WithMeta("count", len(out)).Build()
}

func (h *Handler) getPurchase(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "purchaseOrders.getByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	out, err := h.svc.GetPurchaseOrder(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.PurchaseOrder(out)).Build()
}

func (h *Handler) createPurchase(c echo.Context) error {
	b := response.New(c)
	var in entity.PurchaseOrderInput
	if err := request.Bind(c, &in); err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "purchaseOrders.create")
	span.SetAttributes(attribute.String("order.number", in.OrderNumber))
	defer span.End()

	out, err := h.svc.CreatePurchaseOrder(ctx, in)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(dto.PurchaseOrder(out)).Build()
}

func (h *Handler) updatePurchase(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	var patch entity.PurchaseOrderPatch
	if err := request.Bind(c, &patch); err != nil {
		return b.WithError(err).Build()
	}
	out, err := h.svc.UpdatePurchaseOrder(c.Request().Context(), id, patch)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.PurchaseOrder(out)).Build()
}

func (h *Handler) purchaseItems(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	out, err := h.svc.PurchaseOrderItems(c.Request().Context(), id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.List(out, dto.PurchaseOrderItem)).WithMeta("count", len(out)).Build()
}

func (h *Handler) addPurchaseItem(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	var in entity.PurchaseOrderItemInput
	if err := request.Bind(c, &in); err != nil {
		return b.WithError(err).Build()
	}
	// the path wins over any order id in the body
	in.PurchaseOrderID = id

	out, err := h.svc.AddPurchaseOrderItem(c.Request().Context(), in)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(dto.PurchaseOrderItem(out)).Build()
}

func (h *Handler) listSales(c echo.Context) error {
	b := response.New(c)
	out, err := h.svc.ListSalesOrders(c.Request().Context())
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.List(out, dto.SalesOrder)).WithMeta("count", len(out)).Build()
}

func (h *Handler) getSales(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "salesOrders.getByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	out, err := h.svc.GetSalesOrder(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.SalesOrder(out)).Build()
}

func (h *Handler) createSales(c echo.Context) error {
	b := response.New(c)
	var in entity.SalesOrderInput
	if err := request.Bind(c, &in); err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "salesOrders.create")
	span.SetAttributes(attribute.String("order.number", in.OrderNumber))
	defer span.End()

	out, err := h.svc.CreateSalesOrder(ctx, in)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(dto.SalesOrder(out)).Build()
}

func (h *Handler) updateSales(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	var patch entity.SalesOrderPatch
	if err := request.Bind(c, &patch); err != nil {
		return b.WithError(err).Build()
	}
	out, err := h.svc.UpdateSalesOrder(c.Request().Context(), id, patch)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.SalesOrder(out)).Build()
}

func (h *Handler) salesItems(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	out, err := h.svc.SalesOrderItems(c.Request().Context(), id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.List(out, dto.SalesOrderItem)).WithMeta("count", len(out)).Build()
}

func (h *Handler) addSalesItem(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	var in entity.SalesOrderItemInput
	if err := request.Bind(c, &in); err != nil {
		return b.WithError(err).Build()
	}
	in.SalesOrderID = id

	out, err := h.svc.AddSalesOrderItem(c.Request().Context(), in)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(dto.SalesOrderItem(out)).Build()
}
