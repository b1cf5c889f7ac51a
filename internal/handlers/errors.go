package handlers

import (
	"errors"

	domainErrors "piclips/internal/errors"
	"piclips/internal/middleware"
	"piclips/internal/services/auth"
	"piclips/internal/utils"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

var statusByKind = map[domainErrors.Kind]int{
	domainErrors.KindValidation:   fiber.StatusBadRequest,
	domainErrors.KindBusinessRule: fiber.StatusBadRequest,
	domainErrors.KindUnauthorized: fiber.StatusUnauthorized,
	domainErrors.KindForbidden:    fiber.StatusForbidden,
	domainErrors.KindNotFound:     fiber.StatusNotFound,
	domainErrors.KindConflict:     fiber.StatusConflict,
}

// HandleError writes the response for an error returned by a service.
// Domain errors are reported to the caller as is; anything else is logged
// and answered with a generic 500.
func HandleError(c *fiber.Ctx, err error) error {
	var de *domainErrors.DomainError
	if errors.As(err, &de) {
		if status, ok := statusByKind[de.Kind]; ok {
			return utils.ErrorWithCode(c, status, de.Code, de.Message)
		}
	}

	log.WithError(err).WithFields(log.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error("Request failed")
	return utils.InternalError(c, "internal server error")
}

// identity returns the caller set by the auth middleware. Routes using it
// are always mounted behind that middleware.
func identity(c *fiber.Ctx) auth.Identity {
	id, _ := middleware.IdentityFrom(c)
	return id
}
