package serverutils

import (
	"errors"

	"github.com/KhadijaXD/NoteNova/internal/pkg/apperrors"
	"github.com/KhadijaXD/NoteNova/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps service errors onto HTTP status codes and
// the standard response envelope. Unknown errors become a 500 without
// leaking internals to the client.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		code := fiber.StatusInternalServerError
		message := "Internal server error"

		switch {
		case errors.Is(err, apperrors.ErrValidation):
			code = fiber.StatusBadRequest
			message = apperrors.Message(err)
		case errors.Is(err, apperrors.ErrConflict):
			code = fiber.StatusConflict
			message = apperrors.Message(err)
		case errors.Is(err, apperrors.ErrUnauthorized):
			code = fiber.StatusUnauthorized
			message = apperrors.Message(err)
		case errors.Is(err, apperrors.ErrNotFound):
			code = fiber.StatusNotFound
			message = apperrors.Message(err)
		case errors.Is(err, apperrors.ErrUnsupportedFormat):
			code = fiber.StatusBadRequest
			message = apperrors.Message(err)
		case errors.Is(err, apperrors.ErrExtraction):
			code = fiber.StatusBadRequest
			message = apperrors.Message(err)
		case errors.Is(err, apperrors.ErrAIService):
			code = fiber.StatusBadGateway
			message = apperrors.Message(err)
		default:
			log.Error("http", "unhandled error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
