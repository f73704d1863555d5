package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ahmedabd2lkarim/IKEA-API/config"
	orderControllers "github.com/ahmedabd2lkarim/IKEA-API/controllers/order"
	productControllers "github.com/ahmedabd2lkarim/IKEA-API/controllers/product"
	"github.com/ahmedabd2lkarim/IKEA-API/middleware"
	"github.com/ahmedabd2lkarim/IKEA-API/models"
)

// SetupVendorRoutes registers all "/vendor/*" endpoints: a vendor's own
// catalog management and the orders touching their products. Admins may use
// the product mutation endpoints for any vendor's products.
func SetupVendorRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	vendorGroup := r.Group("/vendor")
	vendorGroup.Use(middleware.ValidateToken(cfg.JWTSecret),
		middleware.RequireRoles(models.RoleVendor, models.RoleAdmin))
	{
		vendorGroup.GET("/orders", orderControllers.GetOrdersByVendor(db))

		productGroup := vendorGroup.Group("/products")
		{
			productGroup.POST("", productControllers.CreateProduct(db))
			productGroup.PUT("/:id", productControllers.UpdateProduct(db))
			productGroup.DELETE("/:id", productControllers.DeleteProduct(db))
			productGroup.POST("/:id/variants", productControllers.AddVariant(db))
			productGroup.PUT("/:id/variants/:variantID", productControllers.UpdateVariant(db))
			productGroup.DELETE("/:id/variants/:variantID", productControllers.DeleteVariant(db))
		}
	}
}
