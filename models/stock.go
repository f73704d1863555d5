package models

import "gorm.io/gorm"

// AdjustStock applies delta to the stock of the referenced product, or of its
// variant when variantID is set, flooring the result at zero. Missing variant
// references leave the parent product untouched, mirroring the lookup-skip rule
// elsewhere. Read-modify-write; callers accept per-row atomicity only.
func AdjustStock(db *gorm.DB, productID uint, variantID *uint, delta int) error {
	var product Product
	if err := db.Preload("Variants").First(&product, productID).Error; err != nil {
		return err
	}

	if variantID != nil {
		variant := product.Variant(*variantID)
		if variant == nil {
			return gorm.ErrRecordNotFound
		}
		variant.StockQuantity = floorAtZero(variant.StockQuantity + delta)
		variant.InStock = variant.StockQuantity > 0
		return db.Save(variant).Error
	}

	product.StockQuantity = floorAtZero(product.StockQuantity + delta)
	product.InStock = product.StockQuantity > 0
	return db.Model(&Product{}).Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"stock_quantity": product.StockQuantity,
			"in_stock":       product.InStock,
		}).Error
}

func floorAtZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
