// Package request decodes path parameters and JSON bodies into errorbank errors.
package request

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Additional-Code/stockledger/pkg/errorbank"
)

// ID parses a positive integer path parameter.
func ID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errorbank.BadRequest("invalid "+name, errorbank.WithDetail("param", name))
	}
	return id, nil
}

// Bind decodes the request body into dst.
func Bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	return nil
}
