package entity

import "github.com/uptrace/bun"

// Category groups products.
type Category struct {
	bun.BaseModel `bun:"table:categories"`

	ID          int64   `bun:",pk,autoincrement"`
	Name        string  `bun:"name,notnull"`
	Description *string `bun:"description"`
}

// CategoryInput is the insert shape for categories.
type CategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (in CategoryInput) Validate() error {
	var c checker
	c.required(in.Name, "name")
	return c.err()
}

func (in CategoryInput) Category() Category {
	return Category{Name: in.Name, Description: in.Description}
}

// CategoryPatch is a partial update for categories.
type CategoryPatch struct {
	Name        Optional[string]  `json:"name"`
	Description Optional[*string] `json:"description"`
}

func (p CategoryPatch) Validate() error {
	var c checker
	c.requiredOpt(p.Name, "name")
	return c.err()
}

func (p CategoryPatch) Apply(cat *Category) {
	assign(p.Name, &cat.Name)
	assign(p.Description, &cat.Description)
}

// Supplier is a purchase counterparty.
type Supplier struct {
	bun.BaseModel `bun:"table:suppliers"`

	ID            int64   `bun:",pk,autoincrement"`
	Name          string  `bun:"name,notnull"`
	ContactPerson *string `bun:"contact_person"`
	Email         *string `bun:"email"`
	Phone         *string `bun:"phone"`
	Address       *string `bun:"address"`
	GST           *string `bun:"gst"`
	IsActive      bool    `bun:"is_active"`
}

// SupplierInput is the insert shape for suppliers.
type SupplierInput struct {
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	GST           *string `json:"gst"`
	IsActive      *bool   `json:"is_active"`
}

func (in SupplierInput) Validate() error {
	var c checker
	c.required(in.Name, "name")
	return c.err()
}

func (in SupplierInput) Supplier() Supplier {
	s := Supplier{
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		GST:           in.GST,
		IsActive:      true,
	}
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	return s
}

// SupplierPatch is a partial update for suppliers.
type SupplierPatch struct {
	Name          Optional[string]  `json:"name"`
	ContactPerson Optional[*string] `json:"contact_person"`
	Email         Optional[*string] `json:"email"`
	Phone         Optional[*string] `json:"phone"`
	Address       Optional[*string] `json:"address"`
	GST           Optional[*string] `json:"gst"`
	IsActive      Optional[bool]    `json:"is_active"`
}

func (p SupplierPatch) Validate() error {
	var c checker
	c.requiredOpt(p.Name, "name")
	return c.err()
}

func (p SupplierPatch) Apply(s *Supplier) {
	assign(p.Name, &s.Name)
	assign(p.ContactPerson, &s.ContactPerson)
	assign(p.Email, &s.Email)
	assign(p.Phone, &s.Phone)
	assign(p.Address, &s.Address)
	assign(p.GST, &s.GST)
	assign(p.IsActive, &s.IsActive)
}

// Customer is a sales counterparty.
type Customer struct {
	bun.BaseModel `bun:"table:customers"`

	ID       int64   `bun:",pk,autoincrement"`
	Name     string  `bun:"name,notnull"`
	Email    *string `bun:"email"`
	Phone    *string `bun:"phone"`
	Address  *string `bun:"address"`
	GST      *string `bun:"gst"`
	IsActive bool    `bun:"is_active"`
}

// CustomerInput is the insert shape for customers.
type CustomerInput struct {
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	GST      *string `json:"gst"`
	IsActive *bool   `json:"is_active"`
}

func (in CustomerInput) Validate() error {
	var c checker
	c.required(in.Name, "name")
	return c.err()
}

func (in CustomerInput) Customer() Customer {
	cu := Customer{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Address:  in.Address,
		GST:      in.GST,
		IsActive: true,
	}
	if in.IsActive != nil {
		cu.IsActive = *in.IsActive
	}
	return cu
}

// CustomerPatch is a partial update for customers.
type CustomerPatch struct {
	Name     Optional[string]  `json:"name"`
	Email    Optional[*string] `json:"email"`
	Phone    Optional[*string] `json:"phone"`
	Address  Optional[*string] `json:"address"`
	GST      Optional[*string] `json:"gst"`
	IsActive Optional[bool]    `json:"is_active"`
}

func (p CustomerPatch) Validate() error {
	var c checker
	c.requiredOpt(p.Name, "name")
	return c.err()
}

func (p CustomerPatch) Apply(cu *Customer) {
	assign(p.Name, &cu.Name)
	assign(p.Email, &cu.Email)
	assign(p.Phone, &cu.Phone)
	assign(p.Address, &cu.Address)
	assign(p.GST, &cu.GST)
	assign(p.IsActive, &cu.IsActive)
}
