package app

import (
	"go.uber.org/fx"

	"github.com/Additional-Code/stockledger/internal/cache"
	"github.com/Additional-Code/stockledger/internal/config"
	"github.com/Additional-Code/stockledger/internal/logger"
	"github.com/Additional-Code/stockledger/internal/messaging"
	"github.com/Additional-Code/stockledger/internal/observability"
	"github.com/Additional-Code/stockledger/internal/repository/driver"
	"github.com/Additional-Code/stockledger/internal/seeder"
	grpcserver "github.com/Additional-Code/stockledger/internal/server/grpc"
	httpserver "github.com/Additional-Code/stockledger/internal/server/http"
	"github.com/Additional-Code/stockledger/internal/service/catalog"
	"github.com/Additional-Code/stockledger/internal/service/inventory"
	"github.com/Additional-Code/stockledger/internal/service/order"
	"github.com/Additional-Code/stockledger/internal/service/user"
	transporthttp "github.com/Additional-Code/stockledger/internal/transport/http"
	"github.com/Additional-Code/stockledger/internal/worker"
	workerinventory "github.com/Additional-Code/stockledger/internal/worker/inventory"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	driver.Module,
	catalog.Module,
	inventory.Module,
	order.Module,
	user.Module,
)

// HTTP wires the REST API and the gRPC health server on top of the core modules.
var HTTP = fx.Options(
	Core,
	seeder.Module,
	httpserver.Module,
	grpcserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerinventory.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
