package models

import "time"

// Favourite is the single per-user document holding named lists of saved
// products. Items are snapshots taken at save time, not live references.
type Favourite struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    string          `gorm:"uniqueIndex;not null" json:"user_id"`
	Lists     []FavouriteList `gorm:"foreignKey:FavouriteID;constraint:OnDelete:CASCADE" json:"lists"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type FavouriteList struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	FavouriteID uint            `gorm:"index" json:"favourite_id"`
	Name        string          `json:"name"` // duplicate names are allowed
	Items       []FavouriteItem `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"items"`
}

// FavouriteItem is a product snapshot, de-duplicated by ProductID within a list.
type FavouriteItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ListID    uint    `gorm:"index" json:"list_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Name      string  `json:"name"`
	Currency  string  `json:"currency"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}
