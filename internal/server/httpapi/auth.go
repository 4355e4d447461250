package httpapi

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

const userLocalsKey = "user"

// TokenResolver maps a session token to its user, or nil when the token is
// unknown.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// RequireToken rejects requests without a valid X-Token with 401.
func RequireToken(resolver TokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolver.ResolveToken(c.UserContext(), c.Get(common.TokenHeaderName))
		if err != nil {
			return err
		}
		if user == nil {
			return common.ErrorUnauthorized
		}
		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// OptionalToken resolves X-Token when present and continues anonymously
// otherwise. A stale token is treated as no token.
func OptionalToken(resolver TokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(common.TokenHeaderName)
		if token == "" {
			return c.Next()
		}
		user, err := resolver.ResolveToken(c.UserContext(), token)
		if err != nil {
			return err
		}
		if user != nil {
			c.Locals(userLocalsKey, user)
		}
		return c.Next()
	}
}

// currentUser returns the user set by the token middlewares, or nil.
func currentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(userLocalsKey).(*models.User)
	return u
}

// basicCredentials extracts email and password from an Authorization: Basic
// header.
func basicCredentials(header string) (email, password string, ok bool) {
	payload, found := strings.CutPrefix(header, "Basic ")
	if !found {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return "", "", false
	}
	return services.ParseBasic(string(decoded))
}
