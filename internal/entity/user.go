package entity

import "github.com/uptrace/bun"

// User roles.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

var roles = []string{RoleAdmin, RoleManager, RoleStaff}

// User is an operator account.
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID       int64  `bun:",pk,autoincrement"`
	Username string `bun:"username,notnull"`
	Password string `bun:"password,notnull"`
	Name     string `bun:"name,notnull"`
	Role     string `bun:"role,notnull"`
	IsActive bool   `bun:"is_active"`
}

// UserInput is the insert shape for users.
type UserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"`
}

func (in UserInput) Validate() error {
	var c checker
	c.required(in.Username, "username")
	c.required(in.Password, "password")
	c.password(in.Password, "password")
	c.required(in.Name, "name")
	if in.Role != "" {
		c.oneOf(in.Role, roles, "role")
	}
	return c.err()
}

// User applies creation defaults.
func (in UserInput) User() User {
	u := User{
		Username: in.Username,
		Password: in.Password,
		Name:     in.Name,
		Role:     in.Role,
		IsActive: true,
	}
	if u.Role == "" {
		u.Role = RoleStaff
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	return u
}

// UserPatch is a partial update for users.
type UserPatch struct {
	Username Optional[string] `json:"username"`
	Password Optional[string] `json:"password"`
	Name     Optional[string] `json:"name"`
	Role     Optional[string] `json:"role"`
	IsActive Optional[bool]   `json:"is_active"`
}

func (p UserPatch) Validate() error {
	var c checker
	c.requiredOpt(p.Username, "username")
	c.requiredOpt(p.Password, "password")
	if v, ok := p.Password.Get(); ok {
		c.password(v, "password")
	}
	c.requiredOpt(p.Name, "name")
	if role, ok := p.Role.Get(); ok {
		c.oneOf(role, roles, "role")
	}
	return c.err()
}

func (p UserPatch) Apply(u *User) {
	assign(p.Username, &u.Username)
	assign(p.Password, &u.Password)
	assign(p.Name, &u.Name)
	assign(p.Role, &u.Role)
	assign(p.IsActive, &u.IsActive)
}
