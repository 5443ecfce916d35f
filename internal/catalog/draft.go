package catalog

import (
	"shopfront/internal/domain"

	"github.com/google/uuid"
)

// ProductDraft carries the fields of a create or update request. A nil field
// means "leave unchanged" on update and "zero value" on create, giving
// SaveProduct its shallow-merge semantics. Slices and maps are copied on
// apply so the draft's backing arrays never end up inside the store.
type ProductDraft struct {
	ID             uuid.UUID // uuid.Nil means create
	Name           *string
	Description    *string
	Price          *float64
	DiscountPrice  *float64
	Stock          *int
	SKU            *string
	CategoryID     *uuid.UUID
	SellerID       *uuid.UUID
	Images         []string
	Specifications map[string]string
	Tags           []string
	Rating         *float64
	IsActive       *bool
}

// apply merges the set fields of the draft onto p
func (d ProductDraft) apply(p *domain.Product) {
	if d.Name != nil {
		p.Name = *d.Name
	}
	if d.Description != nil {
		p.Description = *d.Description
	}
	if d.Price != nil {
		p.Price = *d.Price
	}
	if d.DiscountPrice != nil {
		dp := *d.DiscountPrice
		p.DiscountPrice = &dp
	}
	if d.Stock != nil {
		p.Stock = *d.Stock
	}
	if d.SKU != nil {
		p.SKU = *d.SKU
	}
	if d.CategoryID != nil {
		p.CategoryID = *d.CategoryID
	}
	if d.SellerID != nil {
		p.SellerID = *d.SellerID
	}
	if d.Images != nil {
		p.Images = append([]string(nil), d.Images...)
	}
	if d.Specifications != nil {
		specs := make(map[string]string, len(d.Specifications))
		for k, v := range d.Specifications {
			specs[k] = v
		}
		p.Specifications = specs
	}
	if d.Tags != nil {
		p.Tags = append([]string(nil), d.Tags...)
	}
	if d.Rating != nil {
		p.Rating = *d.Rating
	}
	if d.IsActive != nil {
		p.IsActive = *d.IsActive
	}
}
