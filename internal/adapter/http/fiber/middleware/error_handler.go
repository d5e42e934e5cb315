package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/callguard/internal/domain"
	"github.com/seu-repo/callguard/internal/service/auth"
)

// ErrorHandler maps domain sentinels onto HTTP statuses so handlers can
// return service errors unwrapped.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
		case errors.Is(err, domain.ErrInvalidQuery), errors.Is(err, domain.ErrInvalidInput):
			code = fiber.StatusBadRequest
		case errors.Is(err, auth.ErrInvalidCredentials):
			code = fiber.StatusUnauthorized
		case errors.Is(err, domain.ErrNotFound):
			code = fiber.StatusNotFound
		case errors.Is(err, domain.ErrDuplicateReport):
			code = fiber.StatusConflict
		case errors.Is(err, domain.ErrDataUnavailable):
			code = fiber.StatusServiceUnavailable
		}

		if code == fiber.StatusInternalServerError {
			log.Error("Internal Server Error", zap.Error(err), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
