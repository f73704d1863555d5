package models

import "time"

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"uniqueIndex;not null" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"cart_items"`
	Total     float64    `json:"total"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	CartID    uint  `gorm:"index" json:"cart_id"`
	ProductID uint  `gorm:"not null" json:"product_id"`
	VariantID *uint `json:"variant_id,omitempty"`
	Quantity  int   `gorm:"not null" json:"quantity"`
}

// Matches reports whether the item refers to the same (product, variant) pair.
// Variant absence only matches variant absence.
func (it *CartItem) Matches(productID uint, variantID *uint) bool {
	if it.ProductID != productID {
		return false
	}
	if it.VariantID == nil || variantID == nil {
		return it.VariantID == nil && variantID == nil
	}
	return *it.VariantID == *variantID
}
