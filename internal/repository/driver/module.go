// Package driver selects the Entity Store implementation from configuration.
package driver

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockledger/internal/config"
	"github.com/Additional-Code/stockledger/internal/database"
	"github.com/Additional-Code/stockledger/internal/migration"
	"github.com/Additional-Code/stockledger/internal/repository"
	"github.com/Additional-Code/stockledger/internal/repository/memory"
	sqlstore "github.com/Additional-Code/stockledger/internal/repository/sql"
)

// Module provides repository.Repository to Fx.
var Module = fx.Provide(New)

// Params defines dependencies for selecting a store.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Logger    *zap.Logger
}

// New returns the configured store. Database connections are opened only for the
// "database" driver, which also applies migrations at start when DB_AUTO_MIGRATE is set.
func New(p Params) (repository.Repository, error) {
	loc := p.Config.Inventory.Location

	switch p.Config.Store.Driver {
	case "database":
		conns, err := database.New(p.Lifecycle, p.Config, p.Logger)
		if err != nil {
			return nil, err
		}
		p.Logger.Info("using database store", zap.String("driver", p.Config.Database.Driver))
		if p.Config.Database.AutoMigrate {
			p.Lifecycle.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					mig, err := migration.Open(conns.Writer, p.Config.Database.Driver, p.Logger)
					if err != nil {
						return err
					}
					return mig.Up(ctx)
				},
			})
		}
		return sqlstore.New(conns, sqlstore.WithLocation(loc)), nil
	default:
		p.Logger.Info("using in-memory store; data is lost on exit")
		return memory.New(memory.WithLocation(loc)), nil
	}
}
