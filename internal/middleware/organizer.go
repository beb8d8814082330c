package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	HeaderOrganizer = "X-Organizer-Email"
	OrganizerKey    = "organizer"
)

// RequireOrganizer rejects requests without a valid organizer email header
// and stores the identity on the context. Authentication itself happens
// upstream; this only carries the identity through.
func RequireOrganizer(v *RequestValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email := strings.TrimSpace(c.Request().Header.Get(HeaderOrganizer))
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing "+HeaderOrganizer+" header")
			}
			if err := v.Var(email, "email"); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid organizer identity")
			}
			c.Set(OrganizerKey, email)
			return next(c)
		}
	}
}

// OrganizerFrom returns the identity stored by RequireOrganizer, or "".
func OrganizerFrom(c echo.Context) string {
	s, _ := c.Get(OrganizerKey).(string)
	return s
}
