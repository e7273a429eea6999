package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/team2shop/storefront/internal/domain"
	"github.com/team2shop/storefront/internal/webserver"
)

func listReviews(c echo.Context) error {
	page := webserver.App().Reviews().Fetch(domain.ReviewQuery{
		ProductID:  c.QueryParam("productId"),
		Rating:     cast.ToInt(c.QueryParam("rating")),
		WithPhotos: cast.ToBool(c.QueryParam("withPhotos")),
		Limit:      cast.ToInt(c.QueryParam("limit")),
		Cursor:     c.QueryParam("cursor"),
	})
	return webserver.OK(c, page)
}

type reviewPayload struct {
	ProductID string   `json:"productId"`
	Author    string   `json:"author"`
	Rating    int      `json:"rating"`
	Comment   string   `json:"comment"`
	Photos    []string `json:"photos"`
}

func createReview(c echo.Context) error {
	var payload reviewPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse review", err.Error())
	}
	ack := webserver.App().Reviews().Create(domain.Review{
		Author:  payload.Author,
		Rating:  payload.Rating,
		Comment: payload.Comment,
		Photos:  payload.Photos,
	})
	return webserver.OK(c, ack)
}
