package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/classdesk/classroom-api/internal/api/middleware"
	"github.com/classdesk/classroom-api/internal/core/domain"
)

// ctxIdentity extracts the identity resolved by the Identity middleware.
// Routes behind Authorize always carry a non-anonymous identity here; the
// zero value only appears on unguarded routes.
func ctxIdentity(c echo.Context) domain.Identity {
	ident, _ := c.Get(middleware.IdentityKey).(domain.Identity)
	return ident
}
