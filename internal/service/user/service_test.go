package user

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Additional-Code/stockledger/internal/entity"
	"github.com/Additional-Code/stockledger/internal/repository/memory"
	"github.com/Additional-Code/stockledger/pkg/errorbank"
)

func newService() *Service {
	return &Service{repo: memory.New(), logger: zap.NewNop(), cost: bcrypt.MinCost}
}

func TestCreateHashesPassword(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	u, err := svc.Create(ctx, entity.UserInput{Username: "admin", Password: "admin123", Name: "Admin", Role: entity.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
	if u.Password == "admin123" {
		t.Fatal("password stored in clear text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("admin123")); err != nil {
		t.Fatalf("stored hash does not match: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	u, err := svc.Create(ctx, entity.UserInput{Username: "clerk", Password: "s3cret", Name: "Clerk"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.Authenticate(ctx, "clerk", "s3cret")
	if err != nil || got.ID != u.ID {
		t.Fatalf("authenticate = %+v, %v", got, err)
	}

	cases := []struct {
		name, username, password string
	}{
		{"wrong password", "clerk", "nope"},
		{"unknown user", "ghost", "s3cret"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Authenticate(ctx, tc.username, tc.password); !errorbank.Is(err, errorbank.KindUnauthorized) {
				t.Fatalf("expected unauthorized, got %v", err)
			}
		})
	}

	if _, err := svc.Update(ctx, u.ID, entity.UserPatch{IsActive: entity.Some(false)}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Authenticate(ctx, "clerk", "s3cret"); !errorbank.Is(err, errorbank.KindUnauthorized) {
		t.Fatalf("inactive user should be rejected, got %v", err)
	}
}

func TestUpdateRehashesPassword(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	u, _ := svc.Create(ctx, entity.UserInput{Username: "mgr", Password: "old", Name: "Manager", Role: entity.RoleManager})

	updated, err := svc.Update(ctx, u.ID, entity.UserPatch{Password: entity.Some("new")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Role != entity.RoleManager {
		t.Fatalf("role changed to %q", updated.Role)
	}
	if _, err := svc.Authenticate(ctx, "mgr", "new"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "mgr", "old"); err == nil {
		t.Fatal("old password still accepted")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newService()
	_, err := svc.Create(context.Background(), entity.UserInput{Username: "x", Name: "X", Role: "owner"})
	appErr := errorbank.From(err)
	if appErr.Kind() != errorbank.KindBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
	fields, _ := appErr.Details()["fields"].([]entity.FieldError)
	if len(fields) != 2 {
		t.Fatalf("fields = %+v", fields)
	}
}

func TestOverlongPasswordIsBadRequest(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	long := strings.Repeat("x", entity.MaxPasswordBytes+1)

	_, err := svc.Create(ctx, entity.UserInput{Username: "long", Password: long, Name: "Long"})
	if !errorbank.Is(err, errorbank.KindBadRequest) {
		t.Fatalf("create: expected bad request, got %v", err)
	}

	u, err := svc.Create(ctx, entity.UserInput{Username: "short", Password: "fine", Name: "Short"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = svc.Update(ctx, u.ID, entity.UserPatch{Password: entity.Some(long)})
	if !errorbank.Is(err, errorbank.KindBadRequest) {
		t.Fatalf("update: expected bad request, got %v", err)
	}
}
