package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/ahmedabd2lkarim/IKEA-API/controllers/order"
	productControllers "github.com/ahmedabd2lkarim/IKEA-API/controllers/product"
	promoControllers "github.com/ahmedabd2lkarim/IKEA-API/controllers/promo"
	webhookControllers "github.com/ahmedabd2lkarim/IKEA-API/controllers/webhook"
	"github.com/ahmedabd2lkarim/IKEA-API/payment"
)

// SetupPublicRoutes registers unauthenticated endpoints: catalog reads, promo
// content, the payment webhook (signature-gated, not token-gated), and the
// order websocket.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB, gw payment.Gateway) {
	products := r.Group("/products")
	{
		products.GET("", productControllers.GetProducts(db))
		products.GET("/:id", productControllers.GetProductByID(db))
	}

	r.GET("/categories", productControllers.GetAllCategories(db))

	promo := r.Group("/promo")
	{
		promo.GET("/category-intros", promoControllers.GetCategoryIntros(db))
		promo.GET("/teasers", promoControllers.GetTeasers(db))
		promo.GET("/categories", promoControllers.GetPromoCategories(db))
	}

	// Authenticated by the gateway signature inside the handler.
	r.POST("/payment/webhook", webhookControllers.PaymentWebhookHandler(db, gw))

	r.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
}
