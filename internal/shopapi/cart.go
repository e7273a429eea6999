package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/team2shop/storefront/internal/auth"
	"github.com/team2shop/storefront/internal/domain"
	"github.com/team2shop/storefront/internal/webserver"
)

// cartDisabled holds the admin rule: administrative identities never see
// or retain a cart.
func cartDisabled(c echo.Context) bool {
	if webserver.SessionRole(c) != auth.RoleAdmin {
		return false
	}
	webserver.App().Carts().Clear(webserver.SessionScope(c))
	return true
}

func getCart(c echo.Context) error {
	if cartDisabled(c) {
		return webserver.OK(c, []domain.CartLine{})
	}
	return webserver.OK(c, webserver.App().Carts().Get(webserver.SessionScope(c)))
}

type cartItemPayload struct {
	ID       domain.ProductID `json:"id"`
	Quantity int              `json:"quantity"`
}

func addCartItem(c echo.Context) error {
	if cartDisabled(c) {
		return webserver.OK(c, []domain.CartLine{})
	}
	var payload cartItemPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}

	// cart lines are sanitized copies of catalog rows, never trusted
	// client prices
	p := webserver.App().Catalog().GetByID(string(payload.ID))
	if p == nil {
		return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	lines := webserver.App().Carts().Add(webserver.SessionScope(c), domain.CartLine{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: payload.Quantity,
		Image:    p.Image,
	})
	return webserver.OK(c, lines)
}

func setCartQuantity(c echo.Context) error {
	if cartDisabled(c) {
		return webserver.OK(c, []domain.CartLine{})
	}
	qty := cast.ToInt(c.QueryParam("quantity"))
	if body := new(cartItemPayload); c.Bind(body) == nil && body.Quantity != 0 {
		qty = body.Quantity
	}
	lines := webserver.App().Carts().SetQuantity(webserver.SessionScope(c), c.Param("id"), qty)
	return webserver.OK(c, lines)
}

func removeCartItem(c echo.Context) error {
	if cartDisabled(c) {
		return webserver.OK(c, []domain.CartLine{})
	}
	lines := webserver.App().Carts().Remove(webserver.SessionScope(c), c.Param("id"))
	return webserver.OK(c, lines)
}

func clearCart(c echo.Context) error {
	webserver.App().Carts().Clear(webserver.SessionScope(c))
	return webserver.OK(c, []domain.CartLine{})
}
