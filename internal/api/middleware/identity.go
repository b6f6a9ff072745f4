package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/classdesk/classroom-api/internal/core/domain"
	"github.com/classdesk/classroom-api/internal/core/ports"
	"github.com/classdesk/classroom-api/internal/core/token"
)

// IdentityKey is the echo context key holding the resolved domain.Identity.
const IdentityKey = "identity"

// Identity resolves the bearer token on every request into a verified
// identity, or anonymous. A missing, malformed, expired or tampered token
// simply leaves the identity anonymous and lets the route's Authorize
// middleware reject with 403; the same goes for a token whose subject no
// longer exists. A user store outage is the one failure that propagates,
// so it surfaces as a 500 instead of silently rejecting every
// authenticated user.
//
// The decoded subject is re-read from the user store on each request, so a
// user deleted or re-roled after token issuance cannot act under stale
// claims; the token's embedded role is only a hint and is never trusted.
func Identity(codec *token.Codec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, err := resolve(c, codec, users)
			if err != nil {
				return err
			}
			c.Set(IdentityKey, ident)
			return next(c)
		}
	}
}

func resolve(c echo.Context, codec *token.Codec, users ports.UserRepository) (domain.Identity, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return domain.Identity{}, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return domain.Identity{}, nil
	}

	claims, err := codec.Decode(parts[1])
	if err != nil {
		return domain.Identity{}, nil
	}

	user, err := users.FindByUsername(c.Request().Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Identity{}, nil
		}
		return domain.Identity{}, fmt.Errorf("resolve identity: %w", err)
	}

	return domain.Identity{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		ClassLevel: user.ClassLevel,
	}, nil
}
