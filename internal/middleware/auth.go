// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"context"
	"strings"

	domainErrors "piclips/internal/errors"
	"piclips/internal/services/auth"
	"piclips/internal/utils"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const identityKey = "identity"

// TokenVerifier resolves a bearer token to an identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (auth.Identity, error)
}

// AuthMiddleware handles JWT token validation.
type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Handler requires a valid "Authorization: Bearer <token>" header and stores
// the resolved identity for the handlers behind it.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}

	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return utils.Unauthorized(c, "invalid authorization format")
	}

	identity, err := m.verifier.Verify(c.UserContext(), strings.TrimSpace(token))
	if err != nil {
		if domainErrors.KindOf(err) == domainErrors.KindUnauthorized {
			return utils.Unauthorized(c, err.Error())
		}
		log.WithError(err).WithField("path", c.Path()).Error("Token verification failed")
		return utils.InternalError(c, "internal server error")
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// AdminOnly rejects callers without the admin role. It must run after Handler.
func AdminOnly(c *fiber.Ctx) error {
	identity, ok := IdentityFrom(c)
	if !ok {
		return utils.Unauthorized(c, "unauthorized")
	}
	if !identity.IsAdmin() {
		log.WithFields(log.Fields{"account_id": identity.AccountID, "role": identity.Role}).Warn("Admin access denied")
		return utils.Forbidden(c, "insufficient permissions")
	}
	return c.Next()
}

// IdentityFrom returns the identity stored by Handler.
func IdentityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	identity, ok := c.Locals(identityKey).(auth.Identity)
	return identity, ok
}

// SetIdentity stores identity on the request, as Handler does.
func SetIdentity(c *fiber.Ctx, identity auth.Identity) {
	c.Locals(identityKey, identity)
}
