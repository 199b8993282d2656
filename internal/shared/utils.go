// Package shared
package shared

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ExtractAPIKey reads a bearer token from the Authorization header. Used only
// for the metrics endpoint.
func ExtractAPIKey(c echo.Context) (string, error) {
	auth := c.Request().Header.Get("Authorization")
	if auth == "" {
		return "", ErrUnauthorized
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", ErrUnauthorized
	}
	return parts[1], nil
}

// ExtractSessionToken pulls the bearer token from the session cookie. The
// cookie carries the platform token verbatim.
func ExtractSessionToken(c echo.Context) (string, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrMissingSession
	}
	return cookie.Value, nil
}

// NewSessionCookie builds the long-lived session cookie. It is deliberately
// readable by the editor frontend and usable cross-site.
func NewSessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionCookieAge.Seconds()),
		Secure:   true,
		HttpOnly: false,
		SameSite: http.SameSiteNoneMode,
	}
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}
