package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// getIntParam reads an integer query parameter. The default applies only
// when the parameter is absent; a malformed value is an error, never a
// silent fallback.
func getIntParam(c echo.Context, name string, defaultValue int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}
