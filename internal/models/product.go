package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a named, priced catalog item. Names are unique.
type Product struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"not null;uniqueIndex" json:"name"`
	Price float64   `gorm:"not null;check:price >= 0" json:"price"`
}

// BeforeCreate assigns an identifier to products that do not carry one yet.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CreateProductRequest is the body accepted when adding a product.
type CreateProductRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// UpdateProductRequest is a partial update; nil fields are left untouched.
type UpdateProductRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

// SearchFilter narrows a product search. Zero values disable a filter.
type SearchFilter struct {
	SearchText string
	MinPrice   *float64
	MaxPrice   *float64
}
