// Package sql is the durable Entity Store, backed by bun over postgres, mysql or sqlite.
// Schema lives in internal/migration.
package sql

import (
	"context"
	dbsql "database/sql"
	"errors"
	"reflect"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/stockledger/internal/database"
	"github.com/Additional-Code/stockledger/internal/entity"
	"github.com/Additional-Code/stockledger/internal/inventory"
	"github.com/Additional-Code/stockledger/internal/repository"
)

var repoTracer = otel.Tracer("github.com/Additional-Code/stockledger/repository/sql")

// Store implements repository.Repository on the configured database connections.
// Writes and uniqueness checks go to the writer; plain reads use the reader.
type Store struct {
	writer *bun.DB
	reader *bun.DB
	now    func() time.Time
	loc    *time.Location
}

var _ repository.Repository = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for created_at and the dashboard day.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the location whose calendar day bounds today's sales.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// New wires a store on top of writer and reader connections.
func New(conns *database.Connections, opts ...Option) *Store {
	s := &Store{
		writer: conns.Writer,
		reader: conns.Reader,
		now:    time.Now,
		loc:    time.Local,
	}
	if s.reader == nil {
		s.reader = s.writer
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Ping(ctx context.Context) error {
	return s.writer.PingContext(ctx)
}

// stamp returns the current time truncated to microseconds, the finest
// resolution every supported dialect keeps.
func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// startSpan opens a repository span named after the entity kind, such as
// "ProductRepository.GetByID".
func startSpan[T any](ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return repoTracer.Start(ctx, reflect.TypeFor[T]().Name()+"Repository."+op, trace.WithAttributes(attrs...))
}

// finish marks span with the outcome of err and returns err unchanged.
func finish(span trace.Span, err error, failure string) error {
	var verr *entity.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		span.SetStatus(codes.Error, "invalid input")
	case errors.Is(err, repository.ErrNotFound):
		span.SetStatus(codes.Error, "not found")
	case errors.Is(err, repository.ErrConflict):
		span.SetStatus(codes.Error, "conflict")
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, failure)
	}
	return err
}

func getByID[T any](ctx context.Context, db bun.IDB, id int64) (T, error) {
	ctx, span := startSpan[T](ctx, "GetByID", attribute.Int64("id", id))
	defer span.End()

	var row T
	err := db.NewSelect().Model(&row).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, dbsql.ErrNoRows) {
		err = repository.ErrNotFound
	}
	return row, finish(span, err, "select failed")
}

func listAll[T any](ctx context.Context, db bun.IDB, where func(*bun.SelectQuery) *bun.SelectQuery) ([]T, error) {
	ctx, span := startSpan[T](ctx, "List")
	defer span.End()

	rows := make([]T, 0)
	q := db.NewSelect().Model(&rows)
	if where != nil {
		q = where(q)
	}
	if err := q.Order("id ASC").Scan(ctx); err != nil {
		return nil, finish(span, err, "select failed")
	}
	span.SetAttributes(attribute.Int("rows", len(rows)))
	return rows, nil
}

func deleteByID[T any](ctx context.Context, db bun.IDB, id int64) (bool, error) {
	ctx, span := startSpan[T](ctx, "Delete", attribute.Int64("id", id))
	defer span.End()

	res, err := db.NewDelete().Model((*T)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, finish(span, err, "delete failed")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, finish(span, err, "delete failed")
	}
	return n > 0, nil
}

// taken reports whether a row of T other than skip has column equal to value.
func taken[T any](ctx context.Context, db bun.IDB, column string, value any, skip int64) (bool, error) {
	return db.NewSelect().
		Model((*T)(nil)).
		Where("? = ?", bun.Ident(column), value).
		Where("id <> ?", skip).
		Exists(ctx)
}

// update loads the row, applies patch and writes it back inside one transaction.
// unique, when set, names the column that must stay unique and how to read it.
func update[T any](ctx context.Context, db *bun.DB, id int64, apply func(*T), unique func(T) (string, any)) (T, error) {
	ctx, span := startSpan[T](ctx, "Update", attribute.Int64("id", id))
	defer span.End()

	var out T
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row, err := getByID[T](ctx, tx, id)
		if err != nil {
			return err
		}
		apply(&row)
		if unique != nil {
			column, value := unique(row)
			exists, err := taken[T](ctx, tx, column, value, id)
			if err != nil {
				return err
			}
			if exists {
				return repository.ErrConflict
			}
		}
		if _, err := tx.NewUpdate().Model(&row).WherePK().Exec(ctx); err != nil {
			return uniqueConflict(err)
		}
		out = row
		return nil
	})
	return out, finish(span, err, "update failed")
}

// insert writes row, rejecting it when column already holds the same value.
// A concurrent insert that slips past the check is caught by the unique index.
func insert[T any](ctx context.Context, db *bun.DB, row *T, column string, value any) error {
	ctx, span := startSpan[T](ctx, "Create")
	defer span.End()

	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if column != "" {
			exists, err := taken[T](ctx, tx, column, value, 0)
			if err != nil {
				return err
			}
			if exists {
				return repository.ErrConflict
			}
		}
		_, err := tx.NewInsert().Model(row).Exec(ctx)
		return uniqueConflict(err)
	})
	return finish(span, err, "insert failed")
}

// Users

func (s *Store) CreateUser(ctx context.Context, in entity.UserInput) (entity.User, error) {
	if err := in.Validate(); err != nil {
		return entity.User{}, err
	}
	u := in.User()
	if err := insert(ctx, s.writer, &u, "username", u.Username); err != nil {
		return entity.User{}, err
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (entity.User, error) {
	return getByID[entity.User](ctx, s.reader, id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (entity.User, error) {
	ctx, span := startSpan[entity.User](ctx, "GetByUsername", attribute.String("user.username", username))
	defer span.End()

	var u entity.User
	err := s.reader.NewSelect().Model(&u).Where("username = ?", username).Limit(1).Scan(ctx)
	if errors.Is(err, dbsql.ErrNoRows) {
		err = repository.ErrNotFound
	}
	return u, finish(span, err, "select failed")
}

func (s *Store) ListUsers(ctx context.Context) ([]entity.User, error) {
	return listAll[entity.User](ctx, s.reader, nil)
}

func (s *Store) UpdateUser(ctx context.Context, id int64, patch entity.UserPatch) (entity.User, error) {
	if err := patch.Validate(); err != nil {
		return entity.User{}, err
	}
	return update(ctx, s.writer, id, patch.Apply, func(u entity.User) (string, any) {
		return "username", u.Username
	})
}

// Categories

func (s *Store) CreateCategory(ctx context.Context, in entity.CategoryInput) (entity.Category, error) {
	if err := in.Validate(); err != nil {
		return entity.Category{}, err
	}
	c := in.Category()
	if err := insert(ctx, s.writer, &c, "", nil); err != nil {
		return entity.Category{}, err
	}
	return c, nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (entity.Category, error) {
	return getByID[entity.Category](ctx, s.reader, id)
}

func (s *Store) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return listAll[entity.Category](ctx, s.reader, nil)
}

func (s *Store) UpdateCategory(ctx context.Context, id int64, patch entity.CategoryPatch) (entity.Category, error) {
	if err := patch.Validate(); err != nil {
		return entity.Category{}, err
	}
	return update(ctx, s.writer, id, patch.Apply, nil)
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	return deleteByID[entity.Category](ctx, s.writer, id)
}

// Suppliers

func (s *Store) CreateSupplier(ctx context.Context, in entity.SupplierInput) (entity.Supplier, error) {
	if err := in.Validate(); err != nil {
		return entity.Supplier{}, err
	}
	sup := in.Supplier()
	if err := insert(ctx, s.writer, &sup, "", nil); err != nil {
		return entity.Supplier{}, err
	}
	return sup, nil
}

func (s *Store) GetSupplier(ctx context.Context, id int64) (entity.Supplier, error) {
	return getByID[entity.Supplier](ctx, s.reader, id)
}

func (s *Store) ListSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	return listAll[entity.Supplier](ctx, s.reader, nil)
}

func (s *Store) UpdateSupplier(ctx context.Context, id int64, patch entity.SupplierPatch) (entity.Supplier, error) {
	if err := patch.Validate(); err != nil {
		return entity.Supplier{}, err
	}
	return update(ctx, s.writer, id, patch.Apply, nil)
}

func (s *Store) DeleteSupplier(ctx context.Context, id int64) (bool, error) {
	return deleteByID[entity.Supplier](ctx, s.writer, id)
}

// Customers

func (s *Store) CreateCustomer(ctx context.Context, in entity.CustomerInput) (entity.Customer, error) {
	if err := in.Validate(); err != nil {
		return entity.Customer{}, err
	}
	cu := in.Customer()
	if err := insert(ctx, s.writer, &cu, "", nil); err != nil {
		return entity.Customer{}, err
	}
	return cu, nil
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (entity.Customer, error) {
	return getByID[entity.Customer](ctx, s.reader, id)
}

func (s *Store) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	return listAll[entity.Customer](ctx, s.reader, nil)
}

func (s *Store) UpdateCustomer(ctx context.Context, id int64, patch entity.CustomerPatch) (entity.Customer, error) {
	if err := patch.Validate(); err != nil {
		return entity.Customer{}, err
	}
	return update(ctx, s.writer, id, patch.Apply, nil)
}

func (s *Store) DeleteCustomer(ctx context.Context, id int64) (bool, error) {
	return deleteByID[entity.Customer](ctx, s.writer, id)
}

// Products

func (s *Store) CreateProduct(ctx context.Context, in entity.ProductInput) (entity.Product, error) {
	if err := in.Validate(); err != nil {
		return entity.Product{}, err
	}
	p := in.Product()
	if err := insert(ctx, s.writer, &p, "sku", p.SKU); err != nil {
		return entity.Product{}, err
	}
	return p, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (entity.Product, error) {
	return getByID[entity.Product](ctx, s.reader, id)
}

func (s *Store) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return listAll[entity.Product](ctx, s.reader, nil)
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, patch entity.ProductPatch) (entity.Product, error) {
	if err := patch.Validate(); err != nil {
		return entity.Product{}, err
	}
	return update(ctx, s.writer, id, patch.Apply, func(p entity.Product) (string, any) {
		return "sku", p.SKU
	})
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	return deleteByID[entity.Product](ctx, s.writer, id)
}

func (s *Store) LowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return listAll[entity.Product](ctx, s.reader, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("current_stock <= min_stock_level")
	})
}

// Ledger

// RecordTransaction inserts the transaction and applies it to the product in one
// database transaction. The product row is locked where the dialect supports it;
// sqlite serializes writers on its own.
func (s *Store) RecordTransaction(ctx context.Context, in entity.TransactionInput) (entity.InventoryTransaction, error) {
	if err := in.Validate(); err != nil {
		return entity.InventoryTransaction{}, err
	}
	ctx, span := repoTracer.Start(ctx, "InventoryRepository.RecordTransaction", trace.WithAttributes(
		attribute.Int64("product.id", in.ProductID),
		attribute.String("transaction.type", string(in.Type)),
	))
	defer span.End()

	txn := in.Transaction(s.stamp())
	err := s.writer.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&txn).Exec(ctx); err != nil {
			return err
		}

		var p entity.Product
		q := tx.NewSelect().Model(&p).Where("id = ?", txn.ProductID)
		if s.writer.Dialect().Name() != dialect.SQLite {
			q = q.For("UPDATE")
		}
		err := q.Scan(ctx)
		if errors.Is(err, dbsql.ErrNoRows) {
			span.AddEvent("product missing; stock unchanged")
			return nil
		}
		if err != nil {
			return err
		}

		next, err := inventory.Apply(p.CurrentStock, txn.Type, txn.Quantity)
		if err != nil {
			return err
		}
		p.CurrentStock = next
		_, err = tx.NewUpdate().
			Model(&p).
			Column("current_stock").
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return entity.InventoryTransaction{}, finish(span, err, "record transaction failed")
	}
	return txn, nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]entity.InventoryTransaction, error) {
	return listAll[entity.InventoryTransaction](ctx, s.reader, nil)
}

func (s *Store) TransactionsByProduct(ctx context.Context, productID int64) ([]entity.InventoryTransaction, error) {
	return listAll[entity.InventoryTransaction](ctx, s.reader, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("product_id = ?", productID)
	})
}

// Purchase orders

func (s *Store) CreatePurchaseOrder(ctx context.Context, in entity.PurchaseOrderInput) (entity.PurchaseOrder, error) {
	if err := in.Validate(); err != nil {
		return entity.PurchaseOrder{}, err
	}
	o := in.PurchaseOrder(s.stamp())
	if err := insert(ctx, s.writer, &o, "order_number", o.OrderNumber); err != nil {
		return entity.PurchaseOrder{}, err
	}
	return o, nil
}

func (s *Store) GetPurchaseOrder(ctx context.Context, id int64) (entity.PurchaseOrder, error) {
	return getByID[entity.PurchaseOrder](ctx, s.reader, id)
}

func (s *Store) ListPurchaseOrders(ctx context.Context) ([]entity.PurchaseOrder, error) {
	return listAll[entity.PurchaseOrder](ctx, s.reader, nil)
}

func (s *Store) UpdatePurchaseOrder(ctx context.Context, id int64, patch entity.PurchaseOrderPatch) (entity.PurchaseOrder, error) {
	if err := patch.Validate(); err != nil {
		return entity.PurchaseOrder{}, err
	}
	return update(ctx, s.writer, id, patch.Apply, func(o entity.PurchaseOrder) (string, any) {
		return "order_number", o.OrderNumber
	})
}

func (s *Store) CreatePurchaseOrderItem(ctx context.Context, in entity.PurchaseOrderItemInput) (entity.PurchaseOrderItem, error) {
	if err := in.Validate(); err != nil {
		return entity.PurchaseOrderItem{}, err
	}
	item := in.PurchaseOrderItem()
	if err := insert(ctx, s.writer, &item, "", nil); err != nil {
		return entity.PurchaseOrderItem{}, err
	}
	return item, nil
}

func (s *Store) PurchaseOrderItems(ctx context.Context, orderID int64) ([]entity.PurchaseOrderItem, error) {
	return listAll[entity.PurchaseOrderItem](ctx, s.reader, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("purchase_order_id = ?", orderID)
	})
}

// Sales orders

func (s *Store) CreateSalesOrder(ctx context.Context, in entity.SalesOrderInput) (entity.SalesOrder, error) {
	if err := in.Validate(); err != nil {
		return entity.SalesOrder{}, err
	}
	o := in.SalesOrder(s.stamp())
	if err := insert(ctx, s.writer, &o, "order_number", o.OrderNumber); err != nil {
		return entity.SalesOrder{}, err
	}
	return o, nil
}

func (s *Store) GetSalesOrder(ctx context.Context, id int64) (entity.SalesOrder, error) {
	return getByID[entity.SalesOrder](ctx, s.reader, id)
}

func (s *Store) ListSalesOrders(ctx context.Context) ([]entity.SalesOrder, error) {
	return listAll[entity.SalesOrder](ctx, s.reader, nil)
}

func (s *Store) UpdateSalesOrder(ctx context.Context, id int64, patch entity.SalesOrderPatch) (entity.SalesOrder, error) {
	if err := patch.Validate(); err != nil {
		return entity.SalesOrder{}, err
	}
	return update(ctx, s.writer, id, patch.Apply, func(o entity.SalesOrder) (string, any) {
		return "order_number", o.OrderNumber
	})
}

func (s *Store) CreateSalesOrderItem(ctx context.Context, in entity.SalesOrderItemInput) (entity.SalesOrderItem, error) {
	if err := in.Validate(); err != nil {
		return entity.SalesOrderItem{}, err
	}
	item := in.SalesOrderItem()
	if err := insert(ctx, s.writer, &item, "", nil); err != nil {
		return entity.SalesOrderItem{}, err
	}
	return item, nil
}

func (s *Store) SalesOrderItems(ctx context.Context, orderID int64) ([]entity.SalesOrderItem, error) {
	return listAll[entity.SalesOrderItem](ctx, s.reader, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("sales_order_id = ?", orderID)
	})
}

// Aggregates

// DashboardStats counts products in SQL and sums completed sales for the current
// day in Go, so the day boundary follows the configured location on every dialect.
func (s *Store) DashboardStats(ctx context.Context) (entity.DashboardStats, error) {
	ctx, span := repoTracer.Start(ctx, "InventoryRepository.DashboardStats")
	defer span.End()

	var stats entity.DashboardStats
	total, err := s.reader.NewSelect().Model((*entity.Product)(nil)).Count(ctx)
	if err != nil {
		return stats, finish(span, err, "count failed")
	}
	low, err := s.reader.NewSelect().Model((*entity.Product)(nil)).Where("current_stock <= min_stock_level").Count(ctx)
	if err != nil {
		return stats, finish(span, err, "count failed")
	}

	day := inventory.DayOf(s.now(), s.loc)
	completed, err := listAll[entity.SalesOrder](ctx, s.reader, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("status = ?", entity.StatusCompleted)
	})
	if err != nil {
		return stats, finish(span, err, "select failed")
	}

	stats.TotalProducts = total
	stats.LowStockItems = low
	stats.TodaySales = inventory.CompletedSales(completed, day)
	return stats, nil
}
