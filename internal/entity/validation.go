package entity

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MaxQuantity bounds quantities and stock levels to what a 32-bit INTEGER column holds.
	MaxQuantity = math.MaxInt32
	// MoneyScale is the number of fraction digits kept for money and tax rates.
	MoneyScale = 2
	// MaxPasswordBytes is the longest password bcrypt accepts.
	MaxPasswordBytes = 72
)

// StockOverflow reports a transaction that would push stock above MaxQuantity.
func StockOverflow() error {
	return &ValidationError{Fields: []FieldError{{
		Field:   "quantity",
		Message: "would raise current_stock above " + strconv.Itoa(MaxQuantity),
	}}}
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned before any write when an input is malformed.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type checker struct {
	fields []FieldError
}

func (c *checker) check(ok bool, field, message string) {
	if !ok {
		c.fields = append(c.fields, FieldError{Field: field, Message: message})
	}
}

func (c *checker) required(value, field string) {
	c.check(strings.TrimSpace(value) != "", field, "is required")
}

func (c *checker) requiredOpt(o Optional[string], field string) {
	if v, ok := o.Get(); ok {
		c.required(v, field)
	}
}

func (c *checker) nonNegative(d *decimal.Decimal, field string) {
	if d == nil {
		c.check(false, field, "is required")
		return
	}
	c.check(!d.IsNegative(), field, "must not be negative")
	c.check(d.Equal(d.Truncate(MoneyScale)), field, "must have at most 2 decimal places")
}

// quantity accepts any signed value a quantity column can store.
func (c *checker) quantity(v int, field string) {
	c.check(v >= -MaxQuantity && v <= MaxQuantity, field, "must be between -"+strconv.Itoa(MaxQuantity)+" and "+strconv.Itoa(MaxQuantity))
}

// level accepts a stock level from zero up to MaxQuantity.
func (c *checker) level(v int, field string) {
	if v < 0 {
		c.check(false, field, "must not be negative")
		return
	}
	c.check(v <= MaxQuantity, field, "must not exceed "+strconv.Itoa(MaxQuantity))
}

func (c *checker) password(v, field string) {
	c.check(len(v) <= MaxPasswordBytes, field, "must be at most 72 bytes")
}

func (c *checker) oneOf(value string, allowed []string, field string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	c.check(false, field, "must be one of "+strings.Join(allowed, ", "))
}

func (c *checker) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.fields}
}
