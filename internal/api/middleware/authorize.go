package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/classdesk/classroom-api/internal/core/domain"
)

// Authorize gates a route on a capability predicate. Anonymous requests and
// wrong-role requests fail with the same ErrAccessDenied the services return
// for ownership failures; the central error handler renders the one generic
// 403 body for all of them.
func Authorize(can domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, _ := c.Get(IdentityKey).(domain.Identity)
			if !can(ident) {
				return domain.ErrAccessDenied
			}
			return next(c)
		}
	}
}
