package utils

import (
	"errors"

	"movie-catalog/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperror.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleError writes err as a StandardResponse. Domain errors keep their
// message; anything else is logged and reported as fallback.
func HandleError(c *fiber.Ctx, logger *logrus.Logger, err error, fallback string) error {
	code := StatusFor(err)
	if code == fiber.StatusInternalServerError {
		logger.WithError(err).WithField("path", c.Path()).Error(fallback)
		return ErrorResponse(c, code, fallback)
	}

	var conflict *apperror.ConflictError
	if errors.As(err, &conflict) && conflict.Count > 0 {
		return ErrorWithDataResponse(c, code, err.Error(), fiber.Map{"movies": conflict.Count})
	}
	return ErrorResponse(c, code, err.Error())
}
