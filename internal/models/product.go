package models

import (
	"strings"
	"time"
)

// Category is one of the fixed storefront departments.
type Category string

const (
	CategoryMens        Category = "mens"
	CategoryWomens      Category = "womens"
	CategoryChildren    Category = "children"
	CategoryAccessories Category = "accessories"
)

// Categories returns the departments in display order.
func Categories() []Category {
	return []Category{CategoryMens, CategoryWomens, CategoryChildren, CategoryAccessories}
}

// Ordering tells the catalog where a newly created product lands.
type Ordering int

const (
	OrderInsertion Ordering = iota
	OrderNewestFirst
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Category    Category  `json:"category"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// InCategory compares categories case-insensitively.
func (p *Product) InCategory(category string) bool {
	return strings.EqualFold(string(p.Category), category)
}

// for admin create
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200,nomarkup"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    Category `json:"category" validate:"required,oneof=mens womens children accessories"`
	Image       string   `json:"image" validate:"required,uri"`
	Description string   `json:"description" validate:"required,nomarkup"`
}

// for admin update; nil fields are left untouched
type UpdateProductRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=1,max=200,nomarkup"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *Category `json:"category,omitempty" validate:"omitempty,oneof=mens womens children accessories"`
	Image       *string   `json:"image,omitempty" validate:"omitempty,uri"`
	Description *string   `json:"description,omitempty" validate:"omitempty,min=1,nomarkup"`
}

// Input converts a create request into the id-less product fields.
func (r *CreateProductRequest) Input() Product {
	p := Product{
		Name:        r.Name,
		Category:    r.Category,
		Image:       r.Image,
		Description: r.Description,
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	return p
}

// Apply merges the non-nil fields into p.
func (r *UpdateProductRequest) Apply(p *Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Image != nil {
		p.Image = *r.Image
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
}
