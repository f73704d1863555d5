package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered" // terminal
	OrderStatusCancelled  OrderStatus = "cancelled" // terminal

	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	OrderRef        string        `gorm:"uniqueIndex" json:"order_ref"`
	UserID          string        `gorm:"not null;index" json:"user_id"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
	Total           float64       `json:"total"`
	ShippingAddress string        `json:"shipping_address"`
	PaymentStatus   PaymentStatus `gorm:"type:VARCHAR(20);default:'Pending'" json:"payment_status"`
	PaymentID       string        `json:"payment_id"` // gateway payment-intent reference
	Status          OrderStatus   `gorm:"type:VARCHAR(20);default:'processing'" json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type OrderItem struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	OrderID   uint  `gorm:"index" json:"order_id"`
	ProductID uint  `gorm:"not null" json:"product_id"`
	VariantID *uint `json:"variant_id,omitempty"`
	Quantity  int   `gorm:"not null" json:"quantity"`
}

// ParseOrderStatus validates an incoming status string against the enum.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// IsTerminal reports whether no further transition is allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}
