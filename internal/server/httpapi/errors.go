package httpapi

import (
	"errors"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/gofiber/fiber/v2"
)

const (
	msgUnauthorized    = "Unauthorized"
	msgNotFound        = "Not found"
	msgAlreadyExist    = "Already exist"
	msgTooManyRequests = "Too many requests"
)

type errorResponse struct {
	Error string `json:"error"`
}

// mapError converts a service error into a status code and client message.
// Unclassified errors become 500 with a message naming the request URL.
func mapError(c *fiber.Ctx, err error) (int, string) {
	if ve, ok := common.IsValidation(err); ok {
		return fiber.StatusBadRequest, ve.Message
	}

	var fe *fiber.Error
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return fiber.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return fiber.StatusNotFound, msgNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return fiber.StatusBadRequest, msgAlreadyExist
	case errors.As(err, &fe):
		if fe.Code == fiber.StatusNotFound {
			return fe.Code, msgNotFound
		}
		return fe.Code, fe.Message
	default:
		return fiber.StatusInternalServerError, "Failed to process " + c.OriginalURL()
	}
}

// errorHandler renders every error returned by a handler as {error: msg}.
func errorHandler(logger logging.Logger) fiber.ErrorHandler {
	log := logger.With("module", "http_errors")

	return func(c *fiber.Ctx, err error) error {
		code, msg := mapError(c, err)
		if code >= fiber.StatusInternalServerError {
			log.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err)
		}
		return c.Status(code).JSON(errorResponse{Error: msg})
	}
}
