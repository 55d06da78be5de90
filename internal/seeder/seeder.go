package seeder

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockledger/internal/config"
	"github.com/Additional-Code/stockledger/internal/entity"
	"github.com/Additional-Code/stockledger/internal/repository"
	usersvc "github.com/Additional-Code/stockledger/internal/service/user"
)

// Module provides the Seeder and, when STORE_SEED is on, runs it at startup.
var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(func(lc fx.Lifecycle, cfg config.Config, s *Seeder) {
		if !cfg.Store.Seed {
			return
		}
		lc.Append(fx.Hook{OnStart: s.Run})
	}),
)

// Seeder loads the starter data set: an admin account, four categories,
// one supplier and one customer. Rows already present by name are left alone.
type Seeder struct {
	repo   repository.Repository
	users  *usersvc.Service
	logger *zap.Logger
}

// New constructs a Seeder over the configured repository.
func New(repo repository.Repository, users *usersvc.Service, logger *zap.Logger) *Seeder {
	return &Seeder{repo: repo, users: users, logger: logger}
}

// Run seeds every fixture set in order.
func (s *Seeder) Run(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) (int, error)
	}{
		{"users", s.Users},
		{"categories", s.Categories},
		{"suppliers", s.Suppliers},
		{"customers", s.Customers},
	}
	for _, step := range steps {
		n, err := step.fn(ctx)
		if err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
		if s.logger != nil {
			s.logger.Info("seeded "+step.name, zap.Int("count", n))
		}
	}
	return nil
}

// Users seeds the admin account with a hashed password.
func (s *Seeder) Users(ctx context.Context) (int, error) {
	_, err := s.repo.GetUserByUsername(ctx, "admin")
	if err == nil {
		return 0, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return 0, err
	}
	if _, err := s.users.Create(ctx, entity.UserInput{
		Username: "admin",
		Password: "admin123",
		Name:     "John Admin",
		Role:     entity.RoleAdmin,
	}); err != nil {
		return 0, err
	}
	return 1, nil
}

func (s *Seeder) Categories(ctx context.Context) (int, error) {
	samples := []entity.CategoryInput{
		{Name: "Electronics", Description: text("Electronic devices and components")},
		{Name: "Accessories", Description: text("Device accessories and peripherals")},
		{Name: "Computers", Description: text("Desktop and laptop computers")},
		{Name: "Mobile", Description: text("Mobile phones and tablets")},
	}

	existing, err := s.repo.ListCategories(ctx)
	if err != nil {
		return 0, err
	}
	have := names(existing, func(c entity.Category) string { return c.Name })

	created := 0
	for _, sample := range samples {
		if have[sample.Name] {
			continue
		}
		if _, err := s.repo.CreateCategory(ctx, sample); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *Seeder) Suppliers(ctx context.Context) (int, error) {
	sample := entity.SupplierInput{
		Name:          "Tech Supplies Co.",
		ContactPerson: text("John Smith"),
		Email:         text("john@techsupplies.com"),
		Phone:         text("+1-555-0123"),
		Address:       text("123 Tech Street, Silicon Valley, CA"),
		GST:           text("GST123456789"),
	}

	existing, err := s.repo.ListSuppliers(ctx)
	if err != nil {
		return 0, err
	}
	if names(existing, func(sup entity.Supplier) string { return sup.Name })[sample.Name] {
		return 0, nil
	}
	if _, err := s.repo.CreateSupplier(ctx, sample); err != nil {
		return 0, err
	}
	return 1, nil
}

func (s *Seeder) Customers(ctx context.Context) (int, error) {
	sample := entity.CustomerInput{
		Name:    "ABC Electronics Store",
		Email:   text("orders@abcelectronics.com"),
		Phone:   text("+1-555-0456"),
		Address: text("456 Retail Ave, Commerce City, CA"),
		GST:     text("GST987654321"),
	}

	existing, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return 0, err
	}
	if names(existing, func(c entity.Customer) string { return c.Name })[sample.Name] {
		return 0, nil
	}
	if _, err := s.repo.CreateCustomer(ctx, sample); err != nil {
		return 0, err
	}
	return 1, nil
}

func text(s string) *string { return &s }

func names[T any](rows []T, name func(T) string) map[string]bool {
	out := make(map[string]bool, len(rows))
	for _, r := range rows {
		out[name(r)] = true
	}
	return out
}
