package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ahmedabd2lkarim/IKEA-API/middleware"
	"github.com/ahmedabd2lkarim/IKEA-API/models"
	"github.com/ahmedabd2lkarim/IKEA-API/payment"
)

type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	PaymentInfo     struct {
		ID string `json:"id"`
	} `json:"payment_info"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GenerateOrderRef returns a unique, sortable order reference.
func GenerateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// GET /admin/orders
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// vendorOrderView is an order reduced to one vendor's own line items, with the
// subtotal recomputed over those items only.
type vendorOrderView struct {
	models.Order
	Items []models.OrderItem `json:"order_items"`
	Total float64            `json:"total"`
}

// GET /vendor/orders
// Lists orders containing at least one of the vendor's products. Line items of
// other vendors are filtered out and the total is replaced by the vendor's
// subtotal at current product prices.
func GetOrdersByVendor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := middleware.UserID(c)

		var vendorProducts []models.Product
		if err := db.Preload("Variants").Where("vendor_id = ?", vendorID).Find(&vendorProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vendor products"})
			return
		}

		byID := make(map[uint]*models.Product, len(vendorProducts))
		ids := make([]uint, 0, len(vendorProducts))
		for i := range vendorProducts {
			byID[vendorProducts[i].ID] = &vendorProducts[i]
			ids = append(ids, vendorProducts[i].ID)
		}
		if len(ids) == 0 {
			c.JSON(http.StatusOK, []vendorOrderView{})
			return
		}

		var orders []models.Order
		if err := db.Preload("Items").
			Joins("JOIN order_items oi ON oi.order_id = orders.id").
			Where("oi.product_id IN ?", ids).
			Group("orders.id").
			Order("orders.created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		views := make([]vendorOrderView, 0, len(orders))
		for _, order := range orders {
			var items []models.OrderItem
			var subTotal float64
			for _, item := range order.Items {
				product, ok := byID[item.ProductID]
				if !ok {
					continue
				}
				items = append(items, item)
				subTotal += product.UnitPrice(item.VariantID) * float64(item.Quantity)
			}
			views = append(views, vendorOrderView{Order: order, Items: items, Total: subTotal})
		}

		c.JSON(http.StatusOK, views)
	}
}

// GET /user/orders
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var orders []models.Order
		if err := db.Preload("Items").Where("user_id = ?", userID).
			Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /user/orders/:id
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		orderID := c.Param("id")

		var order models.Order
		if err := db.Preload("Items").
			Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// POST /user/orders
// Direct order creation from the current cart: the non-webhook variant of the
// flow, used when payment was confirmed on the client.
func CreateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil || len(cart.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		orderItems := make([]models.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
			})
		}

		order := models.Order{
			OrderRef:        GenerateOrderRef(),
			UserID:          userID,
			Items:           orderItems,
			Total:           cart.Total,
			ShippingAddress: req.ShippingAddress,
			PaymentStatus:   models.PaymentStatusPaid,
			PaymentID:       req.PaymentInfo.ID,
			Status:          models.OrderStatusProcessing,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Cart{}, cart.ID).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create order"})
			return
		}

		BroadcastNewOrder(order)
		c.JSON(http.StatusCreated, order)
	}
}

// PUT /admin/orders/:id/status
// Privileged direct overwrite: any enum value may be set at any time; only the
// user-facing cancel path enforces the transition graph.
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status, ok := models.ParseOrderStatus(req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
			return
		}

		result := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		var order models.Order
		if err := db.Preload("Items").First(&order, orderID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
			return
		}
		c.JSON(http.StatusAccepted, order)
	}
}

// POST /user/orders/:id/cancel
// Cancellation by the owning user. Terminal states reject; a set payment
// reference is refunded first and a refund failure aborts with the order
// untouched; then stock is restored per line and the status flips.
func CancelOrder(db *gorm.DB, gw payment.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		orderID := c.Param("id")

		var order models.Order
		if err := db.Preload("Items").
			Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if order.Status.IsTerminal() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot cancel this order"})
			return
		}

		if order.PaymentID != "" {
			if err := gw.CreateRefund(order.PaymentID); err != nil {
				zap.L().Error("refund failed",
					zap.Uint("order_id", order.ID), zap.String("payment_id", order.PaymentID), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Refund failed"})
				return
			}
		}

		// Symmetric to the confirmation-time decrement: one write per line,
		// variant-aware, missing products skipped.
		for _, item := range order.Items {
			if err := models.AdjustStock(db, item.ProductID, item.VariantID, item.Quantity); err != nil {
				zap.L().Error("failed to restore stock",
					zap.Uint("order_id", order.ID), zap.Uint("product_id", item.ProductID), zap.Error(err))
			}
		}

		if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", models.OrderStatusCancelled).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order cancelled and refunded successfully"})
	}
}
