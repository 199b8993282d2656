package routers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"pagesmith-api/internal/ctx"
	"pagesmith-api/internal/handlers/publish"
	"pagesmith-api/internal/middleware"
	"pagesmith-api/internal/shared"

	"github.com/labstack/echo/v4"
)

type PublishRouter struct {
	ph *publish.Handler
}

func RegisterPublishRoutes(e *echo.Group, ph *publish.Handler) error {
	pmw, err := middleware.GetSessionMiddleware()
	if err != nil {
		return err
	}

	publishRouter := PublishRouter{ph: ph}

	api := e.Group("/api", pmw.ExtractSession, pmw.RequireSession)
	api.POST("/deploy", publishRouter.Deploy)
	return nil
}

type deployRequest struct {
	HTML  string `json:"html"`
	Title string `json:"title"`
	Path  string `json:"path,omitempty"`
}

func (pr *PublishRouter) Deploy(cc echo.Context) error {
	c := cc.(*ctx.Context)

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		c.LogValues.AddError(err)
		return errorJSON(c, shared.ErrInvalidRequest.StatusCode, shared.ErrInvalidRequest.Err.Error())
	}

	var req deployRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.LogValues.AddError(err)
		return errorJSON(c, shared.ErrInvalidRequest.StatusCode, shared.ErrInvalidRequest.Err.Error())
	}

	var target publish.Target
	if req.Path != "" {
		target = publish.Overwrite{RepoID: req.Path}
	} else {
		target = publish.Create{Title: req.Title}
	}

	path, err := pr.ph.Publish(c.Request().Context(), c.Token, req.HTML, target)
	if err != nil {
		c.LogValues.AddError(err)
		if errors.Is(err, shared.ErrUnauthorized) {
			c.SetCookie(shared.ClearSessionCookie())
		}
		var rerr *shared.RequestError
		if errors.As(err, &rerr) {
			return errorJSON(c, rerr.StatusCode, rerr.Err.Error())
		}
		return errorJSON(c, shared.ErrInternalServerError.StatusCode, shared.ErrInternalServerError.Err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"ok":   true,
		"path": path,
	})
}
