package entity

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (u User) Clone() User { return u }

func (c Category) Clone() Category {
	c.Description = clonePtr(c.Description)
	return c
}

func (s Supplier) Clone() Supplier {
	s.ContactPerson = clonePtr(s.ContactPerson)
	s.Email = clonePtr(s.Email)
	s.Phone = clonePtr(s.Phone)
	s.Address = clonePtr(s.Address)
	s.GST = clonePtr(s.GST)
	return s
}

func (c Customer) Clone() Customer {
	c.Email = clonePtr(c.Email)
	c.Phone = clonePtr(c.Phone)
	c.Address = clonePtr(c.Address)
	c.GST = clonePtr(c.GST)
	return c
}

func (p Product) Clone() Product {
	p.Barcode = clonePtr(p.Barcode)
	p.CategoryID = clonePtr(p.CategoryID)
	p.Brand = clonePtr(p.Brand)
	return p
}

func (t InventoryTransaction) Clone() InventoryTransaction {
	t.Reason = clonePtr(t.Reason)
	t.Reference = clonePtr(t.Reference)
	t.PerformedBy = clonePtr(t.PerformedBy)
	return t
}

func (o PurchaseOrder) Clone() PurchaseOrder {
	o.CreatedBy = clonePtr(o.CreatedBy)
	return o
}

func (i PurchaseOrderItem) Clone() PurchaseOrderItem { return i }

func (o SalesOrder) Clone() SalesOrder {
	o.CustomerID = clonePtr(o.CustomerID)
	o.CreatedBy = clonePtr(o.CreatedBy)
	return o
}

func (i SalesOrderItem) Clone() SalesOrderItem { return i }
