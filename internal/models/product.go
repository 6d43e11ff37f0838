package models

import "github.com/shopspring/decimal"

func init() {
	// Prices are written as JSON numbers, the shape of the stored document.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a perishable item tracked in the inventory.
// Optional fields are nil when absent.
type Product struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Quantity          int              `json:"quantity"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	ExpirationDate    *string          `json:"expirationDate,omitempty"` // DD/MM/YYYY
	ImageURI          *string          `json:"imageUri,omitempty"`       // Opaque media reference
	Category          *string          `json:"category,omitempty"`
	LowStockThreshold *int             `json:"lowStockThreshold,omitempty"`
	History           []Movement       `json:"history"` // Always empty, nothing appends to it yet
}

// ProductFields holds every caller-editable field of a Product.
// Identity and history are owned by the store and cannot be supplied here.
type ProductFields struct {
	Name              string           `json:"name" validate:"required,max=200"`
	Quantity          int              `json:"quantity" validate:"gte=0"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	ExpirationDate    *string          `json:"expirationDate,omitempty"`
	ImageURI          *string          `json:"imageUri,omitempty"`
	Category          *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	LowStockThreshold *int             `json:"lowStockThreshold,omitempty" validate:"omitempty,gte=0"`
}

// Fields returns the editable part of the product.
func (p Product) Fields() ProductFields {
	return ProductFields{
		Name:              p.Name,
		Quantity:          p.Quantity,
		Price:             p.Price,
		ExpirationDate:    p.ExpirationDate,
		ImageURI:          p.ImageURI,
		Category:          p.Category,
		LowStockThreshold: p.LowStockThreshold,
	}
}

// Apply replaces every editable field of p with the values in f.
func (p *Product) Apply(f ProductFields) {
	p.Name = f.Name
	p.Quantity = f.Quantity
	p.Price = f.Price
	p.ExpirationDate = f.ExpirationDate
	p.ImageURI = f.ImageURI
	p.Category = f.Category
	p.LowStockThreshold = f.LowStockThreshold
}

// Clone returns a deep copy so callers never share pointers with the store.
func (p Product) Clone() Product {
	c := p
	if p.Price != nil {
		v := *p.Price
		c.Price = &v
	}
	c.ExpirationDate = cloneString(p.ExpirationDate)
	c.ImageURI = cloneString(p.ImageURI)
	c.Category = cloneString(p.Category)
	if p.LowStockThreshold != nil {
		v := *p.LowStockThreshold
		c.LowStockThreshold = &v
	}
	c.History = make([]Movement, len(p.History))
	copy(c.History, p.History)
	return c
}

// CloneAll deep copies a product collection.
func CloneAll(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
