package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/stockledger/internal/dto"
	"github.com/Additional-Code/stockledger/internal/entity"
	"github.com/Additional-Code/stockledger/internal/presentation/http/response"
	service "github.com/Additional-Code/stockledger/internal/service/catalog"
	"github.com/Additional-Code/stockledger/internal/transport/http/request"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/stockledger/transport/http/catalog")

// Handler exposes categories, suppliers, customers and products over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a catalog Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	api := e.Group("/api")

	categories := api.Group("/categories")
	categories.GET("", h.listCategories)
	categories.POST("", h.createCategory)
	categories.PATCH("/:id", h.updateCategory)
	categories.DELETE("/:id", h.deleteCategory)

	suppliers := api.Group("/suppliers")
	suppliers.GET("", h.listSuppliers)
	suppliers.POST("", h.createSupplier)
	suppliers.GET("/:id", h.getSupplier)
	suppliers.PATCH("/:id", h.updateSupplier)
	suppliers.DELETE("/:id", h.deleteSupplier)

	customers := api.Group("/customers")
	customers.GET("", h.listCustomers)
	customers.POST("", h.createCustomer)
	customers.GET("/:id", h.getCustomer)
	customers.PATCH("/:id", h.updateCustomer)
	customers.DELETE("/:id", h.deleteCustomer)

	products := api.Group("/products")
	products.GET("", h.listProducts)
	products.POST("", h.createProduct)
	products.GET("/low-stock", h.lowStock)
	products.GET("/:id", h.getProduct)
	products.PATCH("/:id", h.updateProduct)
	products.DELETE("/:id", h.deleteProduct)
}

// Categories

func (h *Handler) listCategories(c echo.Context) error {
	b := response.New(c)
	out, err := h.svc.ListCategories(c.Request().Context())
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.List(out, dto.Category)).WithMeta("count", len(out)).Build()
}

func (h *Handler) createCategory(c echo.Context) error {
	b := response.New(c)
	var in entity.CategoryInput
	if err := request.Bind(c, &in); err != nil {
		return b.WithError(err).Build()
	}
	out, err := h.svc.CreateCategory(c.Request().Context(), in)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(dto.Category(out)).Build()
}

func (h *Handler) updateCategory(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	var patch entity.CategoryPatch
	if err := request.Bind(c, &patch); err != nil {
		return b.WithError(err).Build()
	}
	out, err := h.svc.UpdateCategory(c.Request().Context(), id, patch)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.Category(out)).Build()
}

func (h *Handler) deleteCategory(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	if err := h.svc.DeleteCategory(c.Request().Context(), id); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusNoContent).Build()
}

// Suppliers

func (h *Handler) listSuppliers(c echo.Context) error {
	b := response.New(c)
	out, err := h.svc.ListSuppliers(c.Request().Context())
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.List(out, dto.Supplier)).WithMeta("count", len(out)).Build()
}

func (h *Handler) getSupplier(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	out, err := h.svc.GetSupplier(c.Request().Context(), id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.Supplier(out)).Build()
}

func (h *Handler) createSupplier(c echo.Context) error {
	b := response.New(c)
	var in entity.SupplierInput
	if err := request.Bind(c, &in); err != nil {
		return b.WithError(err).Build()
	}
	out, err := h.svc.CreateSupplier(c.Request().Context(), in)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(dto.Supplier(out)).Build()
}

func (h *Handler) updateSupplier(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	var patch entity.SupplierPatch
	if err := request.Bind(c, &patch); err != nil {
		return b.WithError(err).Build()
	}
	out, err := h.svc.UpdateSupplier(c.Request().Context(), id, patch)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.Supplier(out)).Build()
}

func (h *Handler) deleteSupplier(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	if err := h.svc.DeleteSupplier(c.Request().Context(), id); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusNoContent).Build()
}

// Customers

func (h *Handler) listCustomers(c echo.Context) error {
	b := response.New(c)
	out, err := h.svc.ListCustomers(c.Request().Context())
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.List(out, dto.Customer)).WithMeta("count", len(out)).Build()
}

func (h *Handler) getCustomer(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	out, err := h.svc.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.Customer(out)).Build()
}

func (h *Handler) createCustomer(c echo.Context) error {
	b := response.New(c)
	var in entity.CustomerInput
	if err := request.Bind(c, &in); err != nil {
		return b.WithError(err).Build()
	}
	out, err := h.svc.CreateCustomer(c.Request().Context(), in)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(dto.Customer(out)).Build()
}

func (h *Handler) updateCustomer(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	var patch entity.CustomerPatch
	if err := request.Bind(c, &patch); err != nil {
		return b.WithError(err).Build()
	}
	out, err := h.svc.UpdateCustomer(c.Request().Context(), id, patch)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.Customer(out)).Build()
}

func (h *Handler) deleteCustomer(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	if err := h.svc.DeleteCustomer(c.Request().Context(), id); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusNoContent).Build()
}

// Products

func (h *Handler) listProducts(c echo.Context) error {
	b := response.New(c)
	out, err := h.svc.ListProducts(c.Request().Context())
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.List(out, dto.Product)).WithMeta("count", len(out)).Build()
}

func (h *Handler) lowStock(c echo.Context) error {
	b := response.New(c)
	out, err := h.svc.LowStockProducts(c.Request().Context())
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.List(out, dto.Product)).WithMeta("count", len(out)).Build()
}

func (h *Handler) getProduct(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "products.getByID", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	out, err := h.svc.GetProduct(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.Product(out)).Build()
}

func (h *Handler) createProduct(c echo.Context) error {
	b := response.New(c)
	var in entity.ProductInput
	if err := request.Bind(c, &in); err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "products.create")
	span.SetAttributes(attribute.String("product.sku", in.SKU))
	defer span.End()

	out, err := h.svc.CreateProduct(ctx, in)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(dto.Product(out)).Build()
}

func (h *Handler) updateProduct(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	var patch entity.ProductPatch
	if err := request.Bind(c, &patch); err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "products.update", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	out, err := h.svc.UpdateProduct(ctx, id, patch)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.Product(out)).Build()
}

func (h *Handler) deleteProduct(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	if err := h.svc.DeleteProduct(c.Request().Context(), id); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusNoContent).Build()
}
