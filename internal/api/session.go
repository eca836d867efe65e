package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Session identifies the authenticated user for a request. Authentication
// itself is delegated to the fronting auth provider; this service trusts
// the X-User-ID header it forwards. The session travels explicitly through
// handler code instead of living in ambient state.
type Session struct {
	UserID string
}

const userIDHeader = "X-User-ID"

const sessionKey = "newshub.session"

// sessionMiddleware attaches a Session to the echo context when the user
// header is present. Requests without one stay anonymous; handlers that
// need a user reject them.
func sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if id := c.Request().Header.Get(userIDHeader); id != "" {
			c.Set(sessionKey, Session{UserID: id})
		}
		return next(c)
	}
}

func currentSession(c echo.Context) (Session, bool) {
	s, ok := c.Get(sessionKey).(Session)
	return s, ok
}

// requireSession returns the session or writes a 401.
func requireSession(c echo.Context) (Session, error) {
	s, ok := currentSession(c)
	if !ok {
		return Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing user identity")
	}
	return s, nil
}
