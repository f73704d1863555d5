package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ahmedabd2lkarim/IKEA-API/middleware"
	"github.com/ahmedabd2lkarim/IKEA-API/models"
)

type CartItemInput struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" binding:"required"` // signed delta
}

// POST /user/cart
// Adds or adjusts a line item by a signed quantity delta. A line whose
// quantity drops to zero or below is removed. Two lines that differ only in
// variant id (one set, one absent) never merge.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var cart models.Cart
		err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
				return
			}
			// Lazily create the cart on first add.
			cart = models.Cart{UserID: userID}
			if err := db.Create(&cart).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cart"})
				return
			}
		}

		var existing *models.CartItem
		for i := range cart.Items {
			if cart.Items[i].Matches(input.ProductID, input.VariantID) {
				existing = &cart.Items[i]
				break
			}
		}

		switch {
		case existing != nil:
			existing.Quantity += input.Quantity
			if existing.Quantity <= 0 {
				if err := db.Delete(&models.CartItem{}, existing.ID).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
					return
				}
			} else if err := db.Save(existing).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
				return
			}
		case input.Quantity > 0:
			item := models.CartItem{
				CartID:    cart.ID,
				ProductID: input.ProductID,
				VariantID: input.VariantID,
				Quantity:  input.Quantity,
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
		}

		// Re-read items and recompute the derived total from current prices.
		if err := db.Preload("Items").First(&cart, cart.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		cart.Total = computeTotal(db, cart.Items)
		if err := db.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("total", cart.Total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart total"})
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// computeTotal sums resolved unit price × quantity over the items. Items whose
// product no longer resolves are excluded from the total but kept in storage.
func computeTotal(db *gorm.DB, items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		var product models.Product
		if err := db.Preload("Variants").First(&product, item.ProductID).Error; err != nil {
			zap.L().Warn("cart item references missing product",
				zap.Uint("product_id", item.ProductID), zap.Error(err))
			continue
		}
		total += product.UnitPrice(item.VariantID) * float64(item.Quantity)
	}
	return total
}

// GET /user/cart
func GetCurrentUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusOK, gin.H{"cart_items": []models.CartItem{}, "total": 0})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// DELETE /user/cart/:id
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		cartID := c.Param("id")

		var cart models.Cart
		if err := db.Where("id = ? AND user_id = ?", cartID, userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found or not owned by user"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&cart).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "cart deleted"})
	}
}

// GET /admin/user-cart/:user_id
func GetUserCartByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}
