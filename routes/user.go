package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ahmedabd2lkarim/IKEA-API/config"
	cartControllers "github.com/ahmedabd2lkarim/IKEA-API/controllers/cart"
	checkoutControllers "github.com/ahmedabd2lkarim/IKEA-API/controllers/checkout"
	favouriteControllers "github.com/ahmedabd2lkarim/IKEA-API/controllers/favourite"
	orderControllers "github.com/ahmedabd2lkarim/IKEA-API/controllers/order"
	userControllers "github.com/ahmedabd2lkarim/IKEA-API/controllers/user"
	"github.com/ahmedabd2lkarim/IKEA-API/middleware"
	"github.com/ahmedabd2lkarim/IKEA-API/models"
	"github.com/ahmedabd2lkarim/IKEA-API/payment"
)

// SetupUserRoutes registers all "/user/*" endpoints. JWT-protected, shopper
// role only.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, gw payment.Gateway, cfg *config.Config) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(cfg.JWTSecret), middleware.RequireRoles(models.RoleUser))
	{
		userGroup.GET("/me", userControllers.GetUser(db))
		userGroup.PUT("/me", userControllers.UpdateUser(db))

		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCurrentUserCart(db))
			cartGroup.POST("", cartControllers.AddToCart(db))
			cartGroup.DELETE("/:id", cartControllers.ClearCart(db))
		}

		userGroup.POST("/checkout/session", checkoutControllers.CreateCheckoutSession(db, gw, cfg.ClientURL))

		ordersGroup := userGroup.Group("/orders")
		{
			ordersGroup.GET("", orderControllers.GetUserOrders(db))
			ordersGroup.POST("", orderControllers.CreateOrder(db))
			ordersGroup.GET("/:id", orderControllers.GetOrderByID(db))
			ordersGroup.POST("/:id/cancel", orderControllers.CancelOrder(db, gw))
		}

		favGroup := userGroup.Group("/favourites")
		{
			favGroup.GET("", favouriteControllers.GetFavourites(db))
			favGroup.POST("/lists", favouriteControllers.AddList(db))
			favGroup.GET("/lists/:listID", favouriteControllers.GetListByID(db))
			favGroup.PUT("/lists/:listID", favouriteControllers.RenameList(db))
			favGroup.DELETE("/lists/:listID", favouriteControllers.DeleteList(db))
			favGroup.POST("/lists/:listID/items", favouriteControllers.AddProductToList(db))
			favGroup.DELETE("/lists/:listID/items/:productID", favouriteControllers.RemoveProductFromList(db))
		}
	}
}
