// Package routers wires the HTTP surface to the handlers
package routers

import (
	"fmt"
	"net/http"

	"pagesmith-api/internal/ctx"

	"github.com/labstack/echo/v4"
)

func setupStreamHeaders(c *ctx.Context) {
	c.Response().Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().Header().Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)
}

func createStreamCallback(c *ctx.Context) func(fragment string) error {
	return func(fragment string) error {
		if c.Request().Context().Err() != nil {
			return c.Request().Context().Err()
		}
		_, err := fmt.Fprint(c.Response(), fragment)
		if err != nil {
			return err
		}
		c.Response().Flush()
		return nil
	}
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]any{
		"ok":    false,
		"error": message,
	})
}
