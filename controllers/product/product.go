package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ahmedabd2lkarim/IKEA-API/middleware"
	"github.com/ahmedabd2lkarim/IKEA-API/models"
)

// Request bodies are explicit schemas: required vs optional fields are
// enforced at the boundary instead of at save time.

type PriceInput struct {
	Currency     string  `json:"currency" binding:"required"`
	CurrentPrice float64 `json:"current_price" binding:"required,gt=0"`
	Discounted   bool    `json:"discounted"`
}

type VariantInput struct {
	Name          string               `json:"name" binding:"required"`
	Price         PriceInput           `json:"price" binding:"required"`
	Color         models.LocalizedText `json:"color"`
	Measurement   models.Measurement   `json:"measurement"`
	Images        []string             `json:"images"`
	StockQuantity int                  `json:"stock_quantity"`
}

type ProductInput struct {
	Name          string               `json:"name" binding:"required"`
	Price         PriceInput           `json:"price" binding:"required"`
	Color         models.LocalizedText `json:"color"`
	Measurement   models.Measurement   `json:"measurement"`
	TypeName      models.LocalizedText `json:"type_name"`
	Description   models.LocalizedText `json:"short_description"`
	Images        []string             `json:"images"`
	CategoryID    uint                 `json:"category_id" binding:"required"`
	StockQuantity int                  `json:"stock_quantity"`
	Variants      []VariantInput       `json:"variants" binding:"dive"`
}

func (in *PriceInput) toModel() models.Price {
	return models.Price{
		Currency:     in.Currency,
		CurrentPrice: in.CurrentPrice,
		Discounted:   in.Discounted,
	}
}

func (in *VariantInput) toModel() models.Variant {
	return models.Variant{
		Name:          in.Name,
		Price:         in.Price.toModel(),
		Color:         in.Color,
		Measurement:   in.Measurement,
		Images:        in.Images,
		StockQuantity: in.StockQuantity,
		InStock:       in.StockQuantity > 0,
	}
}

// refreshDenormalizedNames re-reads the referenced vendor's store name and
// category name onto the product. Called on every write that may change the
// references.
func refreshDenormalizedNames(db *gorm.DB, product *models.Product) error {
	var vendor models.User
	if err := db.Select("store_name").First(&vendor, "id = ?", product.VendorID).Error; err == nil {
		product.VendorName = vendor.StoreName
	}
	var category models.Category
	if err := db.Select("name").First(&category, product.CategoryID).Error; err == nil {
		product.CategoryName = category.Name
	}
	return nil
}

// canMutate reports whether the caller may modify the product: vendors only
// their own, admins anything.
func canMutate(c *gin.Context, product *models.Product) bool {
	role := c.GetString(middleware.CtxRole)
	return role == models.RoleAdmin || product.VendorID == middleware.UserID(c)
}

// POST /vendor/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product := models.Product{
			Name:          input.Name,
			Price:         input.Price.toModel(),
			Color:         input.Color,
			Measurement:   input.Measurement,
			TypeName:      input.TypeName,
			Description:   input.Description,
			Images:        input.Images,
			VendorID:      middleware.UserID(c),
			CategoryID:    input.CategoryID,
			StockQuantity: input.StockQuantity,
			InStock:       input.StockQuantity > 0,
		}
		for _, v := range input.Variants {
			product.Variants = append(product.Variants, v.toModel())
		}

		refreshDenormalizedNames(db, &product)

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /vendor/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Preload("Variants").First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if !canMutate(c, &product) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Vendors can update their own products only"})
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product.Name = input.Name
		product.Price = input.Price.toModel()
		product.Color = input.Color
		product.Measurement = input.Measurement
		product.TypeName = input.TypeName
		product.Description = input.Description
		product.Images = input.Images
		product.CategoryID = input.CategoryID
		product.StockQuantity = input.StockQuantity
		product.InStock = input.StockQuantity > 0

		refreshDenormalizedNames(db, &product)

		if err := db.Omit("Variants").Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /vendor/products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if !canMutate(c, &product) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Vendors can delete their own products only"})
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

// POST /vendor/products/:id/variants
func AddVariant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if !canMutate(c, &product) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Vendors can update their own products only"})
			return
		}

		var input VariantInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		variant := input.toModel()
		variant.ProductID = product.ID
		if err := db.Create(&variant).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create variant"})
			return
		}
		c.JSON(http.StatusCreated, variant)
	}
}

// PUT /vendor/products/:id/variants/:variantID
func UpdateVariant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if !canMutate(c, &product) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Vendors can update their own products only"})
			return
		}

		var variant models.Variant
		if err := db.Where("id = ? AND product_id = ?", c.Param("variantID"), product.ID).
			First(&variant).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
			return
		}

		var input VariantInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updated := input.toModel()
		updated.ID = variant.ID
		updated.ProductID = product.ID
		updated.CreatedAt = variant.CreatedAt
		if err := db.Save(&updated).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update variant"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DELETE /vendor/products/:id/variants/:variantID
func DeleteVariant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if !canMutate(c, &product) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Vendors can update their own products only"})
			return
		}

		result := db.Where("id = ? AND product_id = ?", c.Param("variantID"), product.ID).
			Delete(&models.Variant{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete variant"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Variant deleted"})
	}
}

// --- Categories (admin) ---

type CategoryInput struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
}

// POST /admin/categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		category := models.Category{Name: input.Name, Image: input.Image}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// GET /categories
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// DELETE /admin/categories/:id
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Category{}, c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}
