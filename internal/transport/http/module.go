package http

import (
	"go.uber.org/fx"

	catalogtransport "github.com/Additional-Code/stockledger/internal/transport/http/catalog"
	inventorytransport "github.com/Additional-Code/stockledger/internal/transport/http/inventory"
	ordertransport "github.com/Additional-Code/stockledger/internal/transport/http/order"
	usertransport "github.com/Additional-Code/stockledger/internal/transport/http/user"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	catalogtransport.Module,
	inventorytransport.Module,
	ordertransport.Module,
	usertransport.Module,
)
