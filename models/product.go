package models

import (
	"time"

	"gorm.io/gorm"
)

// Price is embedded in both Product and Variant; a variant always carries its
// own full price block rather than overriding single fields.
type Price struct {
	Currency     string  `gorm:"not null" json:"currency"`
	CurrentPrice float64 `gorm:"not null" json:"current_price"`
	Discounted   bool    `gorm:"default:false" json:"discounted"`
}

type LocalizedText struct {
	EN string `json:"en"`
	AR string `json:"ar"`
}

type Measurement struct {
	Unit   string  `json:"unit"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Depth  float64 `json:"depth,omitempty"`
	Length float64 `json:"length,omitempty"`
}

type Product struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string        `gorm:"not null;index" json:"name"`
	Color         LocalizedText `gorm:"embedded;embeddedPrefix:color_" json:"color"`
	Price         Price         `gorm:"embedded;embeddedPrefix:price_" json:"price"`
	Measurement   Measurement   `gorm:"embedded;embeddedPrefix:measurement_" json:"measurement"`
	TypeName      LocalizedText `gorm:"embedded;embeddedPrefix:type_name_" json:"type_name"`
	Description   LocalizedText `gorm:"embedded;embeddedPrefix:description_" json:"short_description"`
	Images        []string      `gorm:"serializer:json" json:"images"`
	VendorID      string        `gorm:"not null;index" json:"vendor_id"`
	CategoryID    uint          `gorm:"not null;index" json:"category_id"`
	VendorName    string        `json:"vendor_name"`   // denormalized, refreshed on save
	CategoryName  string        `json:"category_name"` // denormalized, refreshed on save
	Variants      []Variant     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	InStock       bool          `gorm:"default:true" json:"in_stock"`
	StockQuantity int           `gorm:"default:0" json:"stock_quantity"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

type Variant struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     uint          `gorm:"index" json:"product_id"`
	Name          string        `gorm:"not null" json:"name"`
	Color         LocalizedText `gorm:"embedded;embeddedPrefix:color_" json:"color"`
	Price         Price         `gorm:"embedded;embeddedPrefix:price_" json:"price"`
	Measurement   Measurement   `gorm:"embedded;embeddedPrefix:measurement_" json:"measurement"`
	Images        []string      `gorm:"serializer:json" json:"images"`
	InStock       bool          `gorm:"default:true" json:"in_stock"`
	StockQuantity int           `gorm:"default:0" json:"stock_quantity"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Variant returns the embedded variant with the given id, or nil.
// Callers must have preloaded Variants.
func (p *Product) Variant(id uint) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// UnitPrice resolves the effective price of a line referencing this product:
// the variant's price when variantID is set and resolves, else the product's.
func (p *Product) UnitPrice(variantID *uint) float64 {
	if variantID != nil {
		if v := p.Variant(*variantID); v != nil {
			return v.Price.CurrentPrice
		}
	}
	return p.Price.CurrentPrice
}
