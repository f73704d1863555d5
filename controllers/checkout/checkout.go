package checkoutControllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ahmedabd2lkarim/IKEA-API/middleware"
	"github.com/ahmedabd2lkarim/IKEA-API/models"
	"github.com/ahmedabd2lkarim/IKEA-API/payment"
)

type CheckoutInput struct {
	Address string `json:"address" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Mobile  string `json:"mobile" binding:"required"`
}

// CreateCheckoutSession builds gateway line items from the caller's cart and
// returns the hosted payment page URL.
//
// POST /user/checkout/session
func CreateCheckoutSession(db *gorm.DB, gw payment.Gateway, clientURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var input CheckoutInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		lineItems := BuildLineItems(db, cart.Items)
		if len(lineItems) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		session, err := gw.CreateCheckoutSession(payment.SessionParams{
			LineItems:  lineItems,
			SuccessURL: clientURL + "/profile/MyOrders",
			CancelURL:  clientURL + "/cancel",
			Metadata: map[string]string{
				"userId":  userID,
				"address": input.Address,
				"email":   input.Email,
				"mobile":  input.Mobile,
			},
		})
		if err != nil {
			zap.L().Error("checkout session creation failed", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Checkout failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"sessionURL": session.URL})
	}
}

// BuildLineItems maps cart items to gateway line items. Name, price, and
// images come from the variant when one is set and resolves, else from the
// base product. Items whose product no longer resolves are skipped.
func BuildLineItems(db *gorm.DB, items []models.CartItem) []payment.LineItem {
	var lineItems []payment.LineItem
	for _, item := range items {
		var product models.Product
		if err := db.Preload("Variants").First(&product, item.ProductID).Error; err != nil {
			zap.L().Warn("skipping cart item with missing product",
				zap.Uint("product_id", item.ProductID), zap.Error(err))
			continue
		}

		name := product.Name
		price := product.Price
		images := product.Images

		if item.VariantID != nil {
			if variant := product.Variant(*item.VariantID); variant != nil {
				price = variant.Price
				name = product.Name + " - " + variant.Name
				if len(variant.Images) > 0 {
					images = variant.Images
				}
			} else {
				zap.L().Warn("variant not found for cart item, falling back to product",
					zap.Uint("product_id", product.ID), zap.Uint("variant_id", *item.VariantID))
			}
		}

		lineItems = append(lineItems, payment.LineItem{
			Name:       name,
			Images:     images,
			Currency:   price.Currency,
			UnitAmount: int64(math.Round(price.CurrentPrice * 100)),
			Quantity:   item.Quantity,
		})
	}
	return lineItems
}
