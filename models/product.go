package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductImage holds the display asset references for each breakpoint.
type ProductImage struct {
	Thumbnail string `json:"thumbnail"`
	Mobile    string `json:"mobile" validate:"required"`
	Tablet    string `json:"tablet"`
	Desktop   string `json:"desktop"`
}

// Product is a catalog entry. Name is the identity of a product within the
// catalog and of its line item within a cart.
type Product struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"-"`
	Name      string          `gorm:"uniqueIndex;not null" json:"name" validate:"required"`
	Category  string          `gorm:"not null" json:"category" validate:"required"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image     ProductImage    `gorm:"embedded;embeddedPrefix:image_" json:"image"`
	Position  int             `gorm:"default:0;index" json:"-"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
