package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/traveluniverse/booking-system/internal/api/middleware"
	"github.com/traveluniverse/booking-system/internal/core/domain"
)

// ctxUsername returns the authenticated username injected by the Auth
// middleware. Its absence means the route was wired without Auth.
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get(middleware.CtxUsername).(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, nil
}

// pathID parses an integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, domain.InvalidInput("Invalid destination ID")
	}
	return id, nil
}

// bindAndValidate decodes the JSON body into req and runs the struct tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.InvalidInput("invalid payload")
	}
	return c.Validate(req)
}
