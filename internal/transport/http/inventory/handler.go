package inventory

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/stockledger/internal/dto"
	"github.com/Additional-Code/stockledger/internal/entity"
	"github.com/Additional-Code/stockledger/internal/presentation/http/response"
	service "github.com/Additional-Code/stockledger/internal/service/inventory"
	"github.com/Additional-Code/stockledger/internal/transport/http/request"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/stockledger/transport/http/inventory")

// Handler exposes the stock ledger and dashboard over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs an inventory Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	api := e.Group("/api")
	api.GET("/inventory-transactions", h.list)
	api.POST("/inventory-transactions", h.record)
	api.GET("/products/:id/transactions", h.byProduct)
	api.GET("/dashboard/stats", h.dashboard)
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)
	out, err := h.svc.ListTransactions(c.Request().Context())
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.List(out, dto.Transaction)).WithMeta("count", len(out)).Build()
}

func (h *Handler) record(c echo.Context) error {
	b := response.New(c)
	var in entity.TransactionInput
	if err := request.Bind(c, &in); err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "inventory.record", trace.WithAttributes(
		attribute.Int64("product.id", in.ProductID),
		attribute.String("transaction.type", string(in.Type)),
	))
	defer span.End()

	out, err := h.svc.RecordTransaction(ctx, in)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(dto.Transaction(out)).Build()
}

func (h *Handler) byProduct(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	out, err := h.svc.TransactionsByProduct(c.Request().Context(), id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.List(out, dto.Transaction)).WithMeta("count", len(out)).Build()
}

func (h *Handler) dashboard(c echo.Context) error {
	b := response.New(c)
	stats, err := h.svc.DashboardStats(c.Request().Context())
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.Dashboard(stats)).Build()
}
