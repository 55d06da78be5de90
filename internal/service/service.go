// Package service holds helpers shared by the domain services.
package service

import (
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/stockledger/internal/entity"
	"github.com/Additional-Code/stockledger/internal/repository"
	"github.com/Additional-Code/stockledger/pkg/errorbank"
)

// Translate maps store errors onto errorbank errors for the named resource.
// AppErrors pass through unchanged.
func Translate(err error, resource string) error {
	if err == nil {
		return nil
	}

	var appErr *errorbank.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		return errorbank.BadRequest("invalid "+resource, errorbank.WithDetail("fields", verr.Fields))
	case errors.Is(err, repository.ErrNotFound):
		return errorbank.NotFound(resource + " not found")
	case errors.Is(err, repository.ErrConflict):
		return errorbank.Conflict(resource+" already exists", errorbank.WithCause(err))
	default:
		return errorbank.Internal("failed to process "+resource, errorbank.WithCause(err))
	}
}

// Fail records err on span when it is unexpected, then translates it.
func Fail(span trace.Span, err error, resource string) error {
	out := Translate(err, resource)
	if errorbank.Is(out, errorbank.KindInternal) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
	}
	return out
}
