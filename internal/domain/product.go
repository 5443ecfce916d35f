package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a product in the catalog
type Product struct {
	ID             uuid.UUID         `json:"id"`
	Name           string            `json:"name"`
	Slug           string            `json:"slug"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	DiscountPrice  *float64          `json:"discount_price,omitempty"`
	Stock          int               `json:"stock"`
	SKU            string            `json:"sku"`
	CategoryID     uuid.UUID         `json:"category_id"`
	SellerID       uuid.UUID         `json:"seller_id"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications"`
	Tags           []string          `json:"tags"`
	Rating         float64           `json:"rating"`
	IsActive       bool              `json:"is_active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Clone returns a deep copy of the product so callers cannot mutate
// shared catalog state through returned pointers.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	if p.DiscountPrice != nil {
		dp := *p.DiscountPrice
		c.DiscountPrice = &dp
	}
	if p.Images != nil {
		c.Images = append([]string(nil), p.Images...)
	}
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	if p.Specifications != nil {
		c.Specifications = make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			c.Specifications[k] = v
		}
	}
	return &c
}

// Category represents a product category. Categories form a tree through
// ParentID but the catalog never walks the hierarchy.
type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Clone returns a copy of the category
func (c *Category) Clone() *Category {
	if c == nil {
		return nil
	}
	cc := *c
	if c.ParentID != nil {
		pid := *c.ParentID
		cc.ParentID = &pid
	}
	return &cc
}
