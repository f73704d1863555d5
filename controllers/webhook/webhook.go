package webhookControllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	orderControllers "github.com/ahmedabd2lkarim/IKEA-API/controllers/order"
	"github.com/ahmedabd2lkarim/IKEA-API/models"
	"github.com/ahmedabd2lkarim/IKEA-API/payment"
)

// PaymentWebhookHandler consumes signed gateway events. Signature verification
// happens before any state is touched; once an event is authenticated the
// handler always acknowledges with 200 so the gateway does not retry, and every
// downstream failure is logged instead of surfaced.
//
// POST /payment/webhook
func PaymentWebhookHandler(db *gorm.DB, gw payment.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}

		event, err := gw.ConstructEvent(body, c.GetHeader(payment.SignatureHeader))
		if err != nil {
			zap.L().Warn("webhook signature verification failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook signature"})
			return
		}

		if event.Type != payment.EventCheckoutSessionCompleted {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		session := event.Data.Object
		fulfillCheckout(db, session)

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

// fulfillCheckout runs the confirmation steps best-effort, in sequence: update
// the buyer's contact details, materialize the order from the cart, drop the
// cart, decrement stock per line. Failures abort only their own step.
func fulfillCheckout(db *gorm.DB, session payment.Session) {
	log := zap.L().With(zap.String("session_id", session.ID))

	userID := session.Metadata["userId"]
	address := session.Metadata["address"]
	mobile := session.Metadata["mobile"]

	if err := db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"home_address":  address,
			"mobile_number": mobile,
		}).Error; err != nil {
		log.Error("failed to update user contact details", zap.String("user_id", userID), zap.Error(err))
	}

	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		// No cart, no order. Observed behavior: the event is still acknowledged.
		log.Warn("no cart found for paid session, skipping order creation",
			zap.String("user_id", userID), zap.Error(err))
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
		OrderRef:        orderControllers.GenerateOrderRef(),
		UserID:          userID,
		Items:           orderItems,
		Total:           cart.Total,
		ShippingAddress: address,
		PaymentStatus:   models.PaymentStatusPaid,
		PaymentID:       session.PaymentIntent,
		Status:          models.OrderStatusProcessing,
	}
	if err := db.Create(&order).Error; err != nil {
		log.Error("failed to create order after payment", zap.String("user_id", userID), zap.Error(err))
		return
	}

	if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		log.Error("failed to clear cart items", zap.Uint("cart_id", cart.ID), zap.Error(err))
	}
	if err := db.Delete(&models.Cart{}, cart.ID).Error; err != nil {
		log.Error("failed to delete cart", zap.Uint("cart_id", cart.ID), zap.Error(err))
	}

	// One stock write per line; a failing line never blocks the rest.
	for _, item := range order.Items {
		if err := models.AdjustStock(db, item.ProductID, item.VariantID, -item.Quantity); err != nil {
			log.Error("failed to decrement stock",
				zap.Uint("product_id", item.ProductID), zap.Error(err))
		}
	}

	orderControllers.BroadcastNewOrder(order)
	log.Info("order created after payment",
		zap.Uint("order_id", order.ID), zap.String("user_id", userID))
}
