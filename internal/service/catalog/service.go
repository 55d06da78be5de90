// Package catalog manages categories, suppliers, customers and products.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockledger/internal/cache"
	"github.com/Additional-Code/stockledger/internal/config"
	"github.com/Additional-Code/stockledger/internal/entity"
	"github.com/Additional-Code/stockledger/internal/repository"
	"github.com/Additional-Code/stockledger/internal/service"
	"github.com/Additional-Code/stockledger/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/stockledger/service/catalog")

// Service encapsulates catalog reads and writes.
type Service struct {
	repo     repository.Repository
	cache    cache.Store
	cacheTTL time.Duration
	logger   *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository repository.Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:     p.Repository,
		cache:    p.Cache,
		cacheTTL: p.Config.Cache.DefaultTTL,
		logger:   p.Logger,
	}
}

// Categories

func (s *Service) ListCategories(ctx context.Context) ([]entity.Category, error) {
	out, err := s.repo.ListCategories(ctx)
	return out, service.Translate(err, "category")
}

func (s *Service) GetCategory(ctx context.Context, id int64) (entity.Category, error) {
	out, err := s.repo.GetCategory(ctx, id)
	return out, service.Translate(err, "category")
}

func (s *Service) CreateCategory(ctx context.Context, in entity.CategoryInput) (entity.Category, error) {
	out, err := s.repo.CreateCategory(ctx, in)
	return out, service.Translate(err, "category")
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, patch entity.CategoryPatch) (entity.Category, error) {
	out, err := s.repo.UpdateCategory(ctx, id, patch)
	return out, service.Translate(err, "category")
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	removed, err := s.repo.DeleteCategory(ctx, id)
	return deleteResult(removed, err, "category")
}

// Suppliers

func (s *Service) ListSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	out, err := s.repo.ListSuppliers(ctx)
	return out, service.Translate(err, "supplier")
}

func (s *Service) GetSupplier(ctx context.Context, id int64) (entity.Supplier, error) {
	out, err := s.repo.GetSupplier(ctx, id)
	return out, service.Translate(err, "supplier")
}

func (s *Service) CreateSupplier(ctx context.Context, in entity.SupplierInput) (entity.Supplier, error) {
	out, err := s.repo.CreateSupplier(ctx, in)
	return out, service.Translate(err, "supplier")
}

func (s *Service) UpdateSupplier(ctx context.Context, id int64, patch entity.SupplierPatch) (entity.Supplier, error) {
	out, err := s.repo.UpdateSupplier(ctx, id, patch)
	return out, service.Translate(err, "supplier")
}

func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	removed, err := s.repo.DeleteSupplier(ctx, id)
	return deleteResult(removed, err, "supplier")
}

// Customers

func (s *Service) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	out, err := s.repo.ListCustomers(ctx)
	return out, service.Translate(err, "customer")
}

func (s *Service) GetCustomer(ctx context.Context, id int64) (entity.Customer, error) {
	out, err := s.repo.GetCustomer(ctx, id)
	return out, service.Translate(err, "customer")
}

func (s *Service) CreateCustomer(ctx context.Context, in entity.CustomerInput) (entity.Customer, error) {
	out, err := s.repo.CreateCustomer(ctx, in)
	return out, service.Translate(err, "customer")
}

func (s *Service) UpdateCustomer(ctx context.Context, id int64, patch entity.CustomerPatch) (entity.Customer, error) {
	out, err := s.repo.UpdateCustomer(ctx, id, patch)
	return out, service.Translate(err, "customer")
}

func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	removed, err := s.repo.DeleteCustomer(ctx, id)
	return deleteResult(removed, err, "customer")
}

// Products

func (s *Service) ListProducts(ctx context.Context) ([]entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.ListProducts")
	defer span.End()

	out, err := s.repo.ListProducts(ctx)
	return out, service.Fail(span, err, "product")
}

// LowStockProducts lists products at or below their minimum stock level.
func (s *Service) LowStockProducts(ctx context.Context) ([]entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.LowStockProducts")
	defer span.End()

	out, err := s.repo.LowStockProducts(ctx)
	if err != nil {
		return nil, service.Fail(span, err, "product")
	}
	span.SetAttributes(attribute.Int("products.low_stock", len(out)))
	return out, nil
}

// GetProduct retrieves a product by id, consulting cache when available.
func (s *Service) GetProduct(ctx context.Context, id int64) (entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.GetProduct", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	if p, err := s.getFromCache(ctx, id); err == nil {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return p, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("products cache read failed", zap.Int64("id", id), zap.Error(err))
	}

	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return entity.Product{}, service.Fail(span, err, "product")
	}

	s.storeInCache(ctx, p)
	return p, nil
}

func (s *Service) CreateProduct(ctx context.Context, in entity.ProductInput) (entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.CreateProduct", trace.WithAttributes(attribute.String("product.sku", in.SKU)))
	defer span.End()

	p, err := s.repo.CreateProduct(ctx, in)
	if err != nil {
		return entity.Product{}, service.Fail(span, err, "product")
	}
	s.storeInCache(ctx, p)
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, patch entity.ProductPatch) (entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.UpdateProduct", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	p, err := s.repo.UpdateProduct(ctx, id, patch)
	if err != nil {
		return entity.Product{}, service.Fail(span, err, "product")
	}
	s.storeInCache(ctx, p)
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.DeleteProduct", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	removed, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return service.Fail(span, err, "product")
	}
	s.InvalidateProduct(ctx, id)
	if !removed {
		return errorbank.NotFound("product not found")
	}
	return nil
}

// InvalidateProduct drops the cached copy of a product.
func (s *Service) InvalidateProduct(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, CacheKey(id)); err != nil {
		s.logger.Warn("products cache delete failed", zap.Int64("id", id), zap.Error(err))
	}
}

// CacheKey is the cache key of a product.
func CacheKey(id int64) string {
	return fmt.Sprintf("products:%d", id)
}

func (s *Service) getFromCache(ctx context.Context, id int64) (entity.Product, error) {
	var p entity.Product
	if s.cache == nil {
		return p, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, CacheKey(id))
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(bytes, &p); err != nil {
		return p, err
	}
	return p, nil
}

func (s *Service) storeInCache(ctx context.Context, p entity.Product) {
	if s.cache == nil {
		return
	}
	bytes, err := json.Marshal(p)
	if err == nil {
		err = s.cache.Set(ctx, CacheKey(p.ID), bytes, s.cacheTTL)
	}
	if err != nil {
		s.logger.Warn("products cache write failed", zap.Int64("id", p.ID), zap.Error(err))
	}
}

// deleteResult reports a not-found error when nothing was removed.
func deleteResult(removed bool, err error, resource string) error {
	if err != nil {
		return service.Translate(err, resource)
	}
	if !removed {
		return errorbank.NotFound(resource + " not found")
	}
	return nil
}
