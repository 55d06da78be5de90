package main

import (
	"go.uber.org/fx"

	"github.com/Additional-Code/stockledger/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
