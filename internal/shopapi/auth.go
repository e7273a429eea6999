package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/team2shop/storefront/internal/assist"
	"github.com/team2shop/storefront/internal/webserver"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login", err.Error())
	}

	user, err := webserver.App().Auth().Authenticate(payload.Email, payload.Password)
	if err != nil {
		return webserver.Fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	}

	token, err := webserver.App().Auth().IssueToken(user)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", nil)
	}

	guestScope := webserver.SessionScope(c)
	webserver.SetSessionIdentity(c, user.Email, user.Role)

	// admins never retain a catalog-derived cart
	if user.IsAdmin() {
		webserver.App().Carts().Clear(guestScope)
		webserver.App().Carts().Clear(user.Email)
	}

	return webserver.OK(c, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func logout(c echo.Context) error {
	webserver.ClearSessionIdentity(c)
	return webserver.OK(c, map[string]interface{}{"ok": true})
}

type chatPayload struct {
	Messages  []assist.Message `json:"messages"`
	ProductID string           `json:"productId"`
}

func chat(c echo.Context) error {
	var payload chatPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse chat", err.Error())
	}
	reply, err := webserver.App().Assist().Chat(payload.Messages, payload.ProductID)
	if err != nil {
		return webserver.Fail(c, http.StatusBadGateway, "ASSIST_ERROR", "Assistant unavailable", err.Error())
	}
	return webserver.OK(c, reply)
}
