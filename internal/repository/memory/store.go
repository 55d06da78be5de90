// Package memory is the in-process Entity Store. All tables share one lock, so every
// operation, including the ledger's read-modify-write of product stock, is atomic.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Additional-Code/stockledger/internal/entity"
	"github.com/Additional-Code/stockledger/internal/inventory"
	"github.com/Additional-Code/stockledger/internal/repository"
)

// Store keeps every entity kind in memory. The zero value is not usable; call New.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time
	loc *time.Location

	users              *table[entity.User]
	categories         *table[entity.Category]
	suppliers          *table[entity.Supplier]
	customers          *table[entity.Customer]
	products           *table[entity.Product]
	transactions       *table[entity.InventoryTransaction]
	purchaseOrders     *table[entity.PurchaseOrder]
	purchaseOrderItems *table[entity.PurchaseOrderItem]
	salesOrders        *table[entity.SalesOrder]
	salesOrderItems    *table[entity.SalesOrderItem]
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

// New returns an empty store with id sequences starting at 1.
func New(opts ...Option) *Store {
	s := &Store{
		now:                time.Now,
		loc:                time.Local,
		users:              newTable[entity.User](),
		categories:         newTable[entity.Category](),
		suppliers:          newTable[entity.Supplier](),
		customers:          newTable[entity.Customer](),
		products:           newTable[entity.Product](),
		transactions:       newTable[entity.InventoryTransaction](),
		purchaseOrders:     newTable[entity.PurchaseOrder](),
		purchaseOrderItems: newTable[entity.PurchaseOrderItem](),
		salesOrders:        newTable[entity.SalesOrder](),
		salesOrderItems:    newTable[entity.SalesOrderItem](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

// Users

func (s *Store) CreateUser(_ context.Context, in entity.UserInput) (entity.User, error) {
	if err := in.Validate(); err != nil {
		return entity.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.users.exists(0, func(u entity.User) bool { return u.Username == in.Username }) {
		return entity.User{}, repository.ErrConflict
	}
	u := in.User()
	u.ID = s.users.allocate()
	s.users.insert(u.ID, u)
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id int64) (entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.lookup(id)
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users.all() {
		if u.Username == username {
			return u, nil
		}
	}
	return entity.User{}, repository.ErrNotFound
}

func (s *Store) ListUsers(context.Context) ([]entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.all(), nil
}

func (s *Store) UpdateUser(_ context.Context, id int64, patch entity.UserPatch) (entity.User, error) {
	if err := patch.Validate(); err != nil {
		return entity.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users.get(id)
	if !ok {
		return entity.User{}, repository.ErrNotFound
	}
	patch.Apply(&u)
	if s.users.exists(id, func(o entity.User) bool { return o.Username == u.Username }) {
		return entity.User{}, repository.ErrConflict
	}
	s.users.put(id, u)
	return u, nil
}

// Categories

func (s *Store) CreateCategory(_ context.Context, in entity.CategoryInput) (entity.Category, error) {
	if err := in.Validate(); err != nil {
		return entity.Category{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c := in.Category()
	c.ID = s.categories.allocate()
	s.categories.insert(c.ID, c)
	return c, nil
}

func (s *Store) GetCategory(_ context.Context, id int64) (entity.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.lookup(id)
}

func (s *Store) ListCategories(context.Context) ([]entity.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.all(), nil
}

func (s *Store) UpdateCategory(_ context.Context, id int64, patch entity.CategoryPatch) (entity.Category, error) {
	if err := patch.Validate(); err != nil {
		return entity.Category{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories.get(id)
	if !ok {
		return entity.Category{}, repository.ErrNotFound
	}
	patch.Apply(&c)
	s.categories.put(id, c)
	return c, nil
}

func (s *Store) DeleteCategory(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.remove(id), nil
}

// Suppliers

func (s *Store) CreateSupplier(_ context.Context, in entity.SupplierInput) (entity.Supplier, error) {
	if err := in.Validate(); err != nil {
		return entity.Supplier{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sup := in.Supplier()
	sup.ID = s.suppliers.allocate()
	s.suppliers.insert(sup.ID, sup)
	return sup, nil
}

func (s *Store) GetSupplier(_ context.Context, id int64) (entity.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.suppliers.lookup(id)
}

func (s *Store) ListSuppliers(context.Context) ([]entity.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.suppliers.all(), nil
}

func (s *Store) UpdateSupplier(_ context.Context, id int64, patch entity.SupplierPatch) (entity.Supplier, error) {
	if err := patch.Validate(); err != nil {
		return entity.Supplier{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sup, ok := s.suppliers.get(id)
	if !ok {
		return entity.Supplier{}, repository.ErrNotFound
	}
	patch.Apply(&sup)
	s.suppliers.put(id, sup)
	return sup, nil
}

func (s *Store) DeleteSupplier(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suppliers.remove(id), nil
}

// Customers

func (s *Store) CreateCustomer(_ context.Context, in entity.CustomerInput) (entity.Customer, error) {
	if err := in.Validate(); err != nil {
		return entity.Customer{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c := in.Customer()
	c.ID = s.customers.allocate()
	s.customers.insert(c.ID, c)
	return c, nil
}

func (s *Store) GetCustomer(_ context.Context, id int64) (entity.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customers.lookup(id)
}

func (s *Store) ListCustomers(context.Context) ([]entity.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customers.all(), nil
}

func (s *Store) UpdateCustomer(_ context.Context, id int64, patch entity.CustomerPatch) (entity.Customer, error) {
	if err := patch.Validate(); err != nil {
		return entity.Customer{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers.get(id)
	if !ok {
		return entity.Customer{}, repository.ErrNotFound
	}
	patch.Apply(&c)
	s.customers.put(id, c)
	return c, nil
}

func (s *Store) DeleteCustomer(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers.remove(id), nil
}

// Products

func (s *Store) CreateProduct(_ context.Context, in entity.ProductInput) (entity.Product, error) {
	if err := in.Validate(); err != nil {
		return entity.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.products.exists(0, func(p entity.Product) bool { return p.SKU == in.SKU }) {
		return entity.Product{}, repository.ErrConflict
	}
	p := in.Product()
	p.ID = s.products.allocate()
	s.products.insert(p.ID, p)
	return p, nil
}

func (s *Store) GetProduct(_ context.Context, id int64) (entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.lookup(id)
}

func (s *Store) ListProducts(context.Context) ([]entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.all(), nil
}

func (s *Store) UpdateProduct(_ context.Context, id int64, patch entity.ProductPatch) (entity.Product, error) {
	if err := patch.Validate(); err != nil {
		return entity.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products.get(id)
	if !ok {
		return entity.Product{}, repository.ErrNotFound
	}
	patch.Apply(&p)
	if s.products.exists(id, func(o entity.Product) bool { return o.SKU == p.SKU }) {
		return entity.Product{}, repository.ErrConflict
	}
	s.products.put(id, p)
	return p, nil
}

func (s *Store) DeleteProduct(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.remove(id), nil
}

func (s *Store) LowStockProducts(context.Context) ([]entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.filter(inventory.IsLowStock), nil
}

// Ledger

func (s *Store) RecordTransaction(_ context.Context, in entity.TransactionInput) (entity.InventoryTransaction, error) {
	if err := in.Validate(); err != nil {
		return entity.InventoryTransaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, found := s.products.get(in.ProductID)
	if found {
		next, err := inventory.Apply(p.CurrentStock, in.Type, in.Quantity)
		if err != nil {
			return entity.InventoryTransaction{}, err
		}
		p.CurrentStock = next
	}

	txn := in.Transaction(s.now())
	txn.ID = s.transactions.allocate()
	s.transactions.insert(txn.ID, txn)
	if found {
		s.products.put(p.ID, p)
	}
	return txn, nil
}

func (s *Store) ListTransactions(context.Context) ([]entity.InventoryTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactions.all(), nil
}

func (s *Store) TransactionsByProduct(_ context.Context, productID int64) ([]entity.InventoryTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactions.filter(func(t entity.InventoryTransaction) bool {
		return t.ProductID == productID
	}), nil
}

// Purchase orders

func (s *Store) CreatePurchaseOrder(_ context.Context, in entity.PurchaseOrderInput) (entity.PurchaseOrder, error) {
	if err := in.Validate(); err != nil {
		return entity.PurchaseOrder{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.purchaseOrders.exists(0, func(o entity.PurchaseOrder) bool { return o.OrderNumber == in.OrderNumber }) {
		return entity.PurchaseOrder{}, repository.ErrConflict
	}
	o := in.PurchaseOrder(s.now())
	o.ID = s.purchaseOrders.allocate()
	s.purchaseOrders.insert(o.ID, o)
	return o, nil
}

func (s *Store) GetPurchaseOrder(_ context.Context, id int64) (entity.PurchaseOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.purchaseOrders.lookup(id)
}

func (s *Store) ListPurchaseOrders(context.Context) ([]entity.PurchaseOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.purchaseOrders.all(), nil
}

func (s *Store) UpdatePurchaseOrder(_ context.Context, id int64, patch entity.PurchaseOrderPatch) (entity.PurchaseOrder, error) {
	if err := patch.Validate(); err != nil {
		return entity.PurchaseOrder{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.purchaseOrders.get(id)
	if !ok {
		return entity.PurchaseOrder{}, repository.ErrNotFound
	}
	patch.Apply(&o)
	if s.purchaseOrders.exists(id, func(x entity.PurchaseOrder) bool { return x.OrderNumber == o.OrderNumber }) {
		return entity.PurchaseOrder{}, repository.ErrConflict
	}
	s.purchaseOrders.put(id, o)
	return o, nil
}

func (s *Store) CreatePurchaseOrderItem(_ context.Context, in entity.PurchaseOrderItemInput) (entity.PurchaseOrderItem, error) {
	if err := in.Validate(); err != nil {
		return entity.PurchaseOrderItem{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item := in.PurchaseOrderItem()
	item.ID = s.purchaseOrderItems.allocate()
	s.purchaseOrderItems.insert(item.ID, item)
	return item, nil
}

func (s *Store) PurchaseOrderItems(_ context.Context, orderID int64) ([]entity.PurchaseOrderItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.purchaseOrderItems.filter(func(i entity.PurchaseOrderItem) bool {
		return i.PurchaseOrderID == orderID
	}), nil
}

// Sales orders

func (s *Store) CreateSalesOrder(_ context.Context, in entity.SalesOrderInput) (entity.SalesOrder, error) {
	if err := in.Validate(); err != nil {
		return entity.SalesOrder{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.salesOrders.exists(0, func(o entity.SalesOrder) bool { return o.OrderNumber == in.OrderNumber }) {
		return entity.SalesOrder{}, repository.ErrConflict
	}
	o := in.SalesOrder(s.now())
	o.ID = s.salesOrders.allocate()
	s.salesOrders.insert(o.ID, o)
	return o, nil
}

func (s *Store) GetSalesOrder(_ context.Context, id int64) (entity.SalesOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.salesOrders.lookup(id)
}

func (s *Store) ListSalesOrders(context.Context) ([]entity.SalesOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.salesOrders.all(), nil
}

func (s *Store) UpdateSalesOrder(_ context.Context, id int64, patch entity.SalesOrderPatch) (entity.SalesOrder, error) {
	if err := patch.Validate(); err != nil {
		return entity.SalesOrder{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.salesOrders.get(id)
	if !ok {
		return entity.SalesOrder{}, repository.ErrNotFound
	}
	patch.Apply(&o)
	if s.salesOrders.exists(id, func(x entity.SalesOrder) bool { return x.OrderNumber == o.OrderNumber }) {
		return entity.SalesOrder{}, repository.ErrConflict
	}
	s.salesOrders.put(id, o)
	return o, nil
}

func (s *Store) CreateSalesOrderItem(_ context.Context, in entity.SalesOrderItemInput) (entity.SalesOrderItem, error) {
	if err := in.Validate(); err != nil {
		return entity.SalesOrderItem{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item := in.SalesOrderItem()
	item.ID = s.salesOrderItems.allocate()
	s.salesOrderItems.insert(item.ID, item)
	return item, nil
}

func (s *Store) SalesOrderItems(_ context.Context, orderID int64) ([]entity.SalesOrderItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.salesOrderItems.filter(func(i entity.SalesOrderItem) bool {
		return i.SalesOrderID == orderID
	}), nil
}

// Aggregates

func (s *Store) DashboardStats(context.Context) (entity.DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day := inventory.DayOf(s.now(), s.loc)
	return inventory.Dashboard(s.products.all(), s.salesOrders.all(), day), nil
}
