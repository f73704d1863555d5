package favouriteControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ahmedabd2lkarim/IKEA-API/middleware"
	"github.com/ahmedabd2lkarim/IKEA-API/models"
)

type AddListInput struct {
	Name string `json:"name" binding:"required"`
}

type RenameListInput struct {
	NewName string `json:"new_name" binding:"required"`
}

type AddProductInput struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Name      string  `json:"name"`
	Currency  string  `json:"currency"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// loadFavourite fetches the per-user document, creating it lazily.
func loadFavourite(db *gorm.DB, userID string, create bool) (*models.Favourite, error) {
	var favourite models.Favourite
	err := db.Preload("Lists.Items").Where("user_id = ?", userID).First(&favourite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) && create {
		favourite = models.Favourite{UserID: userID}
		if err := db.Create(&favourite).Error; err != nil {
			return nil, err
		}
		return &favourite, nil
	}
	if err != nil {
		return nil, err
	}
	return &favourite, nil
}

func idEquals(id uint, param string) bool {
	n, err := strconv.ParseUint(param, 10, 64)
	return err == nil && uint(n) == id
}

func findList(favourite *models.Favourite, listID string) *models.FavouriteList {
	for i := range favourite.Lists {
		if idEquals(favourite.Lists[i].ID, listID) {
			return &favourite.Lists[i]
		}
	}
	return nil
}

// GET /user/favourites
func GetFavourites(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		favourite, err := loadFavourite(db, middleware.UserID(c), true)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favourites"})
			return
		}
		c.JSON(http.StatusOK, favourite)
	}
}

// POST /user/favourites/lists
// Appends a new empty list. Duplicate names are allowed.
func AddList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddListInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		favourite, err := loadFavourite(db, middleware.UserID(c), true)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favourites"})
			return
		}

		list := models.FavouriteList{FavouriteID: favourite.ID, Name: input.Name}
		if err := db.Create(&list).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create list"})
			return
		}
		favourite.Lists = append(favourite.Lists, list)

		c.JSON(http.StatusCreated, favourite)
	}
}

// GET /user/favourites/lists/:listID
func GetListByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		favourite, err := loadFavourite(db, middleware.UserID(c), false)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Favourite not found"})
			return
		}

		list := findList(favourite, c.Param("listID"))
		if list == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// POST /user/favourites/lists/:listID/items
// Stores a snapshot of the product; later product edits do not propagate.
func AddProductToList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		favourite, err := loadFavourite(db, middleware.UserID(c), false)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Favourite not found"})
			return
		}

		list := findList(favourite, c.Param("listID"))
		if list == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
			return
		}

		for _, item := range list.Items {
			if item.ProductID == input.ProductID {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product already in list"})
				return
			}
		}

		item := models.FavouriteItem{
			ListID:    list.ID,
			ProductID: input.ProductID,
			Name:      input.Name,
			Currency:  input.Currency,
			Price:     input.Price,
			Image:     input.Image,
		}
		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product"})
			return
		}
		list.Items = append(list.Items, item)

		c.JSON(http.StatusOK, favourite)
	}
}

// DELETE /user/favourites/lists/:listID/items/:productID
func RemoveProductFromList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		favourite, err := loadFavourite(db, middleware.UserID(c), false)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Favourite not found"})
			return
		}

		list := findList(favourite, c.Param("listID"))
		if list == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
			return
		}

		if err := db.Where("list_id = ? AND product_id = ?", list.ID, c.Param("productID")).
			Delete(&models.FavouriteItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove product"})
			return
		}

		updated, err := loadFavourite(db, middleware.UserID(c), false)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favourites"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// PUT /user/favourites/lists/:listID
func RenameList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RenameListInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		favourite, err := loadFavourite(db, middleware.UserID(c), false)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		list := findList(favourite, c.Param("listID"))
		if list == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
			return
		}

		list.Name = input.NewName
		if err := db.Model(&models.FavouriteList{}).Where("id = ?", list.ID).
			Update("name", input.NewName).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename list"})
			return
		}
		c.JSON(http.StatusOK, favourite)
	}
}

// DELETE /user/favourites/lists/:listID
func DeleteList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		favourite, err := loadFavourite(db, middleware.UserID(c), false)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		list := findList(favourite, c.Param("listID"))
		if list == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("list_id = ?", list.ID).Delete(&models.FavouriteItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.FavouriteList{}, list.ID).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete list"})
			return
		}

		updated, err := loadFavourite(db, middleware.UserID(c), false)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favourites"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
