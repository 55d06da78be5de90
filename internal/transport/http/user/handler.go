package user

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Additional-Code/stockledger/internal/dto"
	"github.com/Additional-Code/stockledger/internal/entity"
	"github.com/Additional-Code/stockledger/internal/presentation/http/response"
	service "github.com/Additional-Code/stockledger/internal/service/user"
	"github.com/Additional-Code/stockledger/internal/transport/http/request"
	"github.com/Additional-Code/stockledger/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/stockledger/transport/http/user")

// Handler exposes user accounts and login over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a user Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/api/users")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.getByID)
	g.PATCH("/:id", h.update)

	e.POST("/api/auth/login", h.login)
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)
	out, err := h.svc.List(c.Request().Context())
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.List(out, dto.User)).WithMeta("count", len(out)).Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	out, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.User(out)).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)
	var in entity.UserInput
	if err := request.Bind(c, &in); err != nil {
		return b.WithError(err).Build()
	}
	out, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(dto.User(out)).Build()
}

func (h *Handler) update(c echo.Context) error {
	b := response.New(c)
	id, err := request.ID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	var patch entity.UserPatch
	if err := request.Bind(c, &patch); err != nil {
		return b.WithError(err).Build()
	}
	out, err := h.svc.Update(c.Request().Context(), id, patch)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.User(out)).Build()
}

func (h *Handler) login(c echo.Context) error {
	b := response.New(c)

	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := request.Bind(c, &payload); err != nil {
		return b.WithError(err).Build()
	}
	if payload.Username == "" || payload.Password == "" {
		return b.WithError(errorbank.BadRequest("username and password are required")).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "auth.login")
	span.SetAttributes(attribute.String("user.username", payload.Username))
	defer span.End()

	u, err := h.svc.Authenticate(ctx, payload.Username, payload.Password)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.User(u)).Build()
}
