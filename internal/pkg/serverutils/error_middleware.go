package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ref-intake-be/internal/dto"
	"ref-intake-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware converts errors returned by controllers into the
// standard JSON envelope. Domain error types carry their own status.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := "internal server error"

		var fiberErr *fiber.Error
		var notFound *dto.NotFoundError
		var unauthorized *dto.UnauthorizedError
		var schemaErr *dto.SchemaError
		var conflict *dto.ConflictError

		switch {
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		case errors.As(err, &notFound):
			status = fiber.StatusNotFound
			message = notFound.Error()
		case errors.As(err, &unauthorized):
			status = fiber.StatusUnauthorized
			message = unauthorized.Error()
		case errors.As(err, &conflict):
			status = fiber.StatusConflict
			message = conflict.Error()
		case errors.As(err, &schemaErr):
			status = fiber.StatusUnprocessableEntity
			message = schemaErr.Error()
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("http", "unhandled error", map[string]interface{}{
				"path":  c.Path(),
				"error": err.Error(),
			})
		}

		return c.Status(status).JSON(ErrorResponse(message))
	}
}
