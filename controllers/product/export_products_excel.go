package productControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/ahmedabd2lkarim/IKEA-API/models"
)

// ExportProductsToExcel streams the whole catalog, one row per product and one
// per variant, as a downloadable workbook.
//
// GET /admin/products/export-excel
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Variants").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Name", "Variant", "Currency", "CurrentPrice", "Discounted",
			"Stock", "InStock", "VendorID", "VendorName", "CategoryName", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue("") // base product row
			row.AddCell().SetValue(p.Price.Currency)
			row.AddCell().SetValue(p.Price.CurrentPrice)
			row.AddCell().SetValue(strconv.FormatBool(p.Price.Discounted))
			row.AddCell().SetValue(p.StockQuantity)
			row.AddCell().SetValue(strconv.FormatBool(p.InStock))
			row.AddCell().SetValue(p.VendorID)
			row.AddCell().SetValue(p.VendorName)
			row.AddCell().SetValue(p.CategoryName)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))

			for _, v := range p.Variants {
				vr := sheet.AddRow()
				vr.AddCell().SetValue(p.ID)
				vr.AddCell().SetValue(p.Name)
				vr.AddCell().SetValue(v.Name)
				vr.AddCell().SetValue(v.Price.Currency)
				vr.AddCell().SetValue(v.Price.CurrentPrice)
				vr.AddCell().SetValue(strconv.FormatBool(v.Price.Discounted))
				vr.AddCell().SetValue(v.StockQuantity)
				vr.AddCell().SetValue(strconv.FormatBool(v.InStock))
				vr.AddCell().SetValue(p.VendorID)
				vr.AddCell().SetValue(p.VendorName)
				vr.AddCell().SetValue(p.CategoryName)
				vr.AddCell().SetValue(v.CreatedAt.Format("2006-01-02 15:04:05"))
			}
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}
