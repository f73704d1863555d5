package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ahmedabd2lkarim/IKEA-API/config"
	cartControllers "github.com/ahmedabd2lkarim/IKEA-API/controllers/cart"
	orderControllers "github.com/ahmedabd2lkarim/IKEA-API/controllers/order"
	productControllers "github.com/ahmedabd2lkarim/IKEA-API/controllers/product"
	promoControllers "github.com/ahmedabd2lkarim/IKEA-API/controllers/promo"
	userControllers "github.com/ahmedabd2lkarim/IKEA-API/controllers/user"
	"github.com/ahmedabd2lkarim/IKEA-API/middleware"
	"github.com/ahmedabd2lkarim/IKEA-API/models"
)

// SetupAdminRoutes registers all "/admin/*" endpoints.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken(cfg.JWTSecret), middleware.RequireRoles(models.RoleAdmin))
	{
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.GET("/user-cart/:user_id", cartControllers.GetUserCartByID(db))

		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrders(db))
			orderAdmin.PUT("/:id/status", orderControllers.UpdateOrderStatus(db))
		}

		adminGroup.GET("/products/export-excel", productControllers.ExportProductsToExcel(db))

		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productControllers.CreateCategory(db))
			categoryAdmin.DELETE("/:id", productControllers.DeleteCategory(db))
		}

		promoAdmin := adminGroup.Group("/promo")
		{
			promoAdmin.POST("/category-intros", promoControllers.CreateCategoryIntro(db))
			promoAdmin.DELETE("/category-intros/:id", promoControllers.DeleteCategoryIntro(db))
			promoAdmin.POST("/teasers", promoControllers.CreateTeaser(db))
			promoAdmin.DELETE("/teasers/:id", promoControllers.DeleteTeaser(db))
			promoAdmin.POST("/categories", promoControllers.CreatePromoCategory(db))
			promoAdmin.DELETE("/categories/:id", promoControllers.DeletePromoCategory(db))
		}
	}
}
