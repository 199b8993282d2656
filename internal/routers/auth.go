package routers

import (
	"errors"
	"net/http"

	"pagesmith-api/internal/ctx"
	"pagesmith-api/internal/huggingface"
	"pagesmith-api/internal/middleware"
	"pagesmith-api/internal/shared"
	"pagesmith-api/internal/users"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	hub     *huggingface.Client
	userMgr *users.Manager
}

func RegisterAuthRoutes(e *echo.Group, hub *huggingface.Client, userMgr *users.Manager) error {
	amw, err := middleware.GetSessionMiddleware()
	if err != nil {
		return err
	}

	authRouter := AuthRouter{hub: hub, userMgr: userMgr}

	api := e.Group("/api", amw.ExtractSession)
	api.GET("/login", authRouter.Login)
	api.GET("/auth/callback", authRouter.Callback)
	api.GET("/@me", authRouter.Me, amw.RequireSession)
	return nil
}

func (ar *AuthRouter) Login(cc echo.Context) error {
	c := cc.(*ctx.Context)
	state := uuid.New().String()
	return c.Redirect(http.StatusFound, ar.hub.AuthorizeURL(state))
}

// Callback completes the login: the authorization code is exchanged once and
// the resulting bearer token is handed to the editor inside the session
// cookie, unreshaped.
func (ar *AuthRouter) Callback(cc echo.Context) error {
	c := cc.(*ctx.Context)

	code := c.QueryParam("code")
	if code == "" {
		return errorJSON(c, shared.ErrInvalidRequest.StatusCode, "missing code")
	}

	token, err := ar.hub.ExchangeCode(c.Request().Context(), code)
	if err != nil {
		c.LogValues.AddError(err)
		return errorJSON(c, shared.ErrUnauthorized.StatusCode, shared.ErrUnauthorized.Err.Error())
	}

	c.SetCookie(shared.NewSessionCookie(token))
	return c.Redirect(http.StatusFound, "/")
}

func (ar *AuthRouter) Me(cc echo.Context) error {
	c := cc.(*ctx.Context)

	profile, err := ar.userMgr.GetProfileFromToken(c.Request().Context(), c.Token)
	if err != nil {
		c.LogValues.AddError(err)
		if errors.Is(err, shared.ErrUnauthorized) {
			c.SetCookie(shared.ClearSessionCookie())
		}
		return errorJSON(c, shared.ErrUnauthorized.StatusCode, shared.ErrUnauthorized.Err.Error())
	}

	return c.JSON(http.StatusOK, profile)
}
