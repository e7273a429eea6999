package webserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

// OK writes data as a plain 200 response.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// Fail writes a structured error response.
func Fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, apiError{Code: code, Message: message, Detail: detail})
}

// Paged writes a standard list envelope.
func Paged(c echo.Context, items interface{}, total, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":    items,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}
