package adminapi

import (
	"fmt"
	"net/http"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/team2shop/storefront/internal/webserver"
)

type exportRow struct {
	ID          string  `csv:"id"`
	Name        string  `csv:"name"`
	Price       float64 `csv:"price"`
	Category    string  `csv:"category"`
	Image       string  `csv:"image"`
	Description string  `csv:"description"`
}

// exportProducts streams the full catalog as CSV (default) or XLSX.
func exportProducts(c echo.Context) error {
	rows := make([]exportRow, 0)
	for _, p := range webserver.App().Catalog().All() {
		rows = append(rows, exportRow{
			ID:          string(p.ID),
			Name:        p.Name,
			Price:       p.Price,
			Category:    p.Category,
			Image:       p.Image,
			Description: p.Description,
		})
	}

	switch c.QueryParam("format") {
	case "", "csv":
		c.Response().Header().Set(echo.HeaderContentType, "text/csv")
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
		c.Response().WriteHeader(http.StatusOK)
		if err := gocsv.Marshal(&rows, c.Response()); err != nil {
			return err
		}
		return nil
	case "xlsx":
		f := excelize.NewFile()
		headers := []string{"id", "name", "price", "category", "image", "description"}
		for i, h := range headers {
			f.SetCellValue("Sheet1", fmt.Sprintf("%c1", 'A'+i), h)
		}
		for i, r := range rows {
			row := i + 2
			f.SetCellValue("Sheet1", fmt.Sprintf("A%d", row), r.ID)
			f.SetCellValue("Sheet1", fmt.Sprintf("B%d", row), r.Name)
			f.SetCellValue("Sheet1", fmt.Sprintf("C%d", row), r.Price)
			f.SetCellValue("Sheet1", fmt.Sprintf("D%d", row), r.Category)
			f.SetCellValue("Sheet1", fmt.Sprintf("E%d", row), r.Image)
			f.SetCellValue("Sheet1", fmt.Sprintf("F%d", row), r.Description)
		}
		c.Response().Header().Set(echo.HeaderContentType,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.xlsx"`)
		c.Response().WriteHeader(http.StatusOK)
		return f.Write(c.Response())
	default:
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unsupported export format", nil)
	}
}
