// Package user manages operator accounts and password checks.
package user

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Additional-Code/stockledger/internal/entity"
	"github.com/Additional-Code/stockledger/internal/repository"
	"github.com/Additional-Code/stockledger/internal/service"
	"github.com/Additional-Code/stockledger/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/stockledger/service/user")

var errInvalidCredentials = errorbank.Unauthorized("invalid username or password")

// Service stores users with bcrypt-hashed passwords.
type Service struct {
	repo   repository.Repository
	logger *zap.Logger
	cost   int
}

// NewService wires a new Service instance.
func NewService(repo repository.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger, cost: bcrypt.DefaultCost}
}

func (s *Service) List(ctx context.Context) ([]entity.User, error) {
	out, err := s.repo.ListUsers(ctx)
	return out, service.Translate(err, "user")
}

func (s *Service) Get(ctx context.Context, id int64) (entity.User, error) {
	out, err := s.repo.GetUser(ctx, id)
	return out, service.Translate(err, "user")
}

// Create validates the input, hashes the password and stores the user.
func (s *Service) Create(ctx context.Context, in entity.UserInput) (entity.User, error) {
	ctx, span := serviceTracer.Start(ctx, "UserService.Create", trace.WithAttributes(attribute.String("user.username", in.Username)))
	defer span.End()

	if err := in.Validate(); err != nil {
		return entity.User{}, service.Translate(err, "user")
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return entity.User{}, service.Fail(span, err, "user")
	}
	in.Password = hash

	out, err := s.repo.CreateUser(ctx, in)
	return out, service.Fail(span, err, "user")
}

// Update applies a partial update, rehashing the password when one is supplied.
func (s *Service) Update(ctx context.Context, id int64, patch entity.UserPatch) (entity.User, error) {
	ctx, span := serviceTracer.Start(ctx, "UserService.Update", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()

	if err := patch.Validate(); err != nil {
		return entity.User{}, service.Translate(err, "user")
	}
	if password, ok := patch.Password.Get(); ok {
		hash, err := s.hash(password)
		if err != nil {
			return entity.User{}, service.Fail(span, err, "user")
		}
		patch.Password = entity.Some(hash)
	}

	out, err := s.repo.UpdateUser(ctx, id, patch)
	return out, service.Fail(span, err, "user")
}

// Authenticate returns the active user matching the credentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (entity.User, error) {
	ctx, span := serviceTracer.Start(ctx, "UserService.Authenticate", trace.WithAttributes(attribute.String("user.username", username)))
	defer span.End()

	u, err := s.repo.GetUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return entity.User{}, errInvalidCredentials
	}
	if err != nil {
		return entity.User{}, service.Fail(span, err, "user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.logger.Info("login rejected", zap.String("username", username))
		return entity.User{}, errInvalidCredentials
	}
	if !u.IsActive {
		return entity.User{}, errorbank.Unauthorized("user is inactive")
	}
	return u, nil
}

func (s *Service) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
