package models

import "time"

// Roles carried in the externally issued JWT.
const (
	RoleUser   = "user"
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

type User struct {
	ID           string  `gorm:"primaryKey" json:"id"` // external auth subject
	Email        string  `gorm:"unique;not null" json:"email"`
	Name         string  `json:"name"`
	Role         string  `gorm:"type:VARCHAR(20);default:'user'" json:"role"`
	HomeAddress  string  `json:"home_address"`
	MobileNumber string  `json:"mobile_number"`
	StoreName    string  `json:"store_name"` // vendors only
	Cart         Cart    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Orders       []Order `gorm:"foreignKey:UserID" json:"orders"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
