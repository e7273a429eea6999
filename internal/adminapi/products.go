package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"

	"github.com/team2shop/storefront/internal/domain"
	"github.com/team2shop/storefront/internal/webserver"
)

func listProducts(c echo.Context) error {
	// accept both perPage (admin front-end) and pageSize
	pageSize := cast.ToInt(c.QueryParam("perPage"))
	if pageSize == 0 {
		pageSize = cast.ToInt(c.QueryParam("pageSize"))
	}
	page := webserver.App().Catalog().Query(domain.ProductQuery{
		Q:        c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Page:     cast.ToInt(c.QueryParam("page")),
		PageSize: pageSize,
	})
	return webserver.Paged(c, page.Items, page.Total, page.Page, page.PageSize)
}

func getProduct(c echo.Context) error {
	p := webserver.App().Catalog().GetByID(c.Param("id"))
	if p == nil {
		return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return webserver.OK(c, p)
}

func createProduct(c echo.Context) error {
	// decode through a weakly typed pass so form clients can send price
	// as a string; malformed numbers fall back to 0 in the store
	var raw map[string]interface{}
	if err := c.Bind(&raw); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	var payload domain.ProductInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &payload,
	})
	if err == nil {
		err = decoder.Decode(raw)
	}
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if strings.TrimSpace(payload.Name) == "" {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}

	p := webserver.App().Catalog().Add(payload)
	return webserver.OK(c, p)
}

func updateProduct(c echo.Context) error {
	var patch map[string]interface{}
	if err := c.Bind(&patch); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse patch", err.Error())
	}
	p := webserver.App().Catalog().Update(c.Param("id"), patch)
	if p == nil {
		return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return webserver.OK(c, p)
}

func deleteProduct(c echo.Context) error {
	id := c.Param("id")
	webserver.App().Catalog().Remove(id)
	return webserver.OK(c, map[string]interface{}{"id": id})
}
