package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/team2shop/storefront/internal/domain"
	"github.com/team2shop/storefront/internal/webserver"
)

func listProducts(c echo.Context) error {
	page := webserver.App().Catalog().Query(domain.ProductQuery{
		Q:        c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Page:     cast.ToInt(c.QueryParam("page")),
		PageSize: cast.ToInt(c.QueryParam("pageSize")),
	})
	return webserver.OK(c, page)
}

func getProduct(c echo.Context) error {
	p := webserver.App().Catalog().GetByID(c.Param("id"))
	if p == nil {
		return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return webserver.OK(c, p)
}

func listRecommendations(c echo.Context) error {
	recs := webserver.App().Catalog().Recommend(c.Param("id"), cast.ToInt(c.QueryParam("limit")))
	return webserver.OK(c, recs)
}

func listCategories(c echo.Context) error {
	return webserver.OK(c, webserver.App().Catalog().Categories())
}
