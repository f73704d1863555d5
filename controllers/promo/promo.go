package promoControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ahmedabd2lkarim/IKEA-API/models"
)

// Storefront promotional content: public reads, admin writes.

type CategoryIntroInput struct {
	CategoryID  uint   `json:"category_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type TeaserInput struct {
	Title    string `json:"title" binding:"required"`
	Subtitle string `json:"subtitle"`
	Image    string `json:"image"`
	Link     string `json:"link"`
}

type PromoCategoryInput struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
	Link  string `json:"link"`
}

// GET /promo/category-intros
func GetCategoryIntros(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var intros []models.CategoryIntro
		if err := db.Find(&intros).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category intros"})
			return
		}
		c.JSON(http.StatusOK, intros)
	}
}

// POST /admin/promo/category-intros
func CreateCategoryIntro(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryIntroInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		intro := models.CategoryIntro{
			CategoryID:  input.CategoryID,
			Title:       input.Title,
			Description: input.Description,
			Image:       input.Image,
		}
		if err := db.Create(&intro).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category intro"})
			return
		}
		c.JSON(http.StatusCreated, intro)
	}
}

// DELETE /admin/promo/category-intros/:id
func DeleteCategoryIntro(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.CategoryIntro{}, c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category intro"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category intro not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category intro deleted"})
	}
}

// GET /promo/teasers
func GetTeasers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var teasers []models.Teaser
		if err := db.Find(&teasers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch teasers"})
			return
		}
		c.JSON(http.StatusOK, teasers)
	}
}

// POST /admin/promo/teasers
func CreateTeaser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input TeaserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		teaser := models.Teaser{
			Title:    input.Title,
			Subtitle: input.Subtitle,
			Image:    input.Image,
			Link:     input.Link,
		}
		if err := db.Create(&teaser).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create teaser"})
			return
		}
		c.JSON(http.StatusCreated, teaser)
	}
}

// DELETE /admin/promo/teasers/:id
func DeleteTeaser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Teaser{}, c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete teaser"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Teaser not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Teaser deleted"})
	}
}

// GET /promo/categories
func GetPromoCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var promos []models.PromoCategory
		if err := db.Find(&promos).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch promo categories"})
			return
		}
		c.JSON(http.StatusOK, promos)
	}
}

// POST /admin/promo/categories
func CreatePromoCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PromoCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		promo := models.PromoCategory{Name: input.Name, Image: input.Image, Link: input.Link}
		if err := db.Create(&promo).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create promo category"})
			return
		}
		c.JSON(http.StatusCreated, promo)
	}
}

// DELETE /admin/promo/categories/:id
func DeletePromoCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.PromoCategory{}, c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete promo category"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Promo category not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Promo category deleted"})
	}
}
