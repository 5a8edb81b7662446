package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/merrbio/marketplace-api/internal/api/middleware"
)

// requesterUsername extracts the authenticated username injected by the Auth
// middleware. An empty value means the middleware never ran on this route;
// fail closed with 401 before any side-effecting logic.
func requesterUsername(c echo.Context) (string, error) {
	username, _ := c.Get(middleware.CtxUsername).(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, nil
}
