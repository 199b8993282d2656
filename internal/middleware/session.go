package middleware

import (
	"errors"

	"pagesmith-api/internal/ctx"
	"pagesmith-api/internal/shared"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SessionGate validates that a caller presents a usable session credential
// before protected operations run. The cookie carries the platform bearer
// token verbatim; the token itself is only verified against the identity
// provider by the routes that actually consume it.
type SessionGate struct {
	log *zap.SugaredLogger
}

var sessionGate *SessionGate

func InitSessionMiddleware(log *zap.SugaredLogger) {
	sessionGate = &SessionGate{log: log}
}

func GetSessionMiddleware() (*SessionGate, error) {
	if sessionGate == nil {
		return nil, errors.New("session middleware not initialized")
	}
	return sessionGate, nil
}

func (s *SessionGate) ExtractSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(cc echo.Context) error {
		c := cc.(*ctx.Context)
		c.Token = ""

		token, err := shared.ExtractSessionToken(c)
		if err != nil {
			return next(c)
		}
		c.Token = token
		c.LogValues.Authenticated = true
		return next(c)
	}
}

func (s *SessionGate) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(cc echo.Context) error {
		c := cc.(*ctx.Context)
		if c.Token == "" {
			return c.JSON(shared.ErrMissingSession.StatusCode, map[string]any{
				"ok":    false,
				"error": shared.ErrMissingSession.Err.Error(),
			})
		}
		return next(c)
	}
}
