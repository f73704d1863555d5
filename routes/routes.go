package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ahmedabd2lkarim/IKEA-API/config"
	"github.com/ahmedabd2lkarim/IKEA-API/payment"
)

// SetupRoutes is the single entry-point that wires up the public, user,
// vendor, and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, gw payment.Gateway, cfg *config.Config) {
	SetupPublicRoutes(r, db, gw)
	SetupUserRoutes(r, db, gw, cfg)
	SetupVendorRoutes(r, db, cfg)
	SetupAdminRoutes(r, db, cfg)
}
