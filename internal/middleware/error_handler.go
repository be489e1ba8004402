package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"socialfeed/dto"
	"socialfeed/internal/apperr"
	"socialfeed/internal/logger"
)

const internalErrorMessage = "internal server error"

// ErrorHandler renders every error returned by a handler as
// dto.ErrorResponse. Only the static message of an AppError reaches the
// client; causes of server errors are logged.
func ErrorHandler(base zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, msg := describe(err)

		if code >= fiber.StatusInternalServerError {
			logger.FromContext(c.UserContext(), base).Error().
				Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("request failed")
		}
		return c.Status(code).JSON(dto.ErrorResponse{Error: msg})
	}
}

func describe(err error) (int, string) {
	if appErr, ok := apperr.From(err); ok {
		return appErr.HTTPCode(), appErr.Message()
	}
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return ferr.Code, ferr.Message
	}
	return fiber.StatusInternalServerError, internalErrorMessage
}

// StatusOf is the status code ErrorHandler renders for err.
func StatusOf(err error) int {
	code, _ := describe(err)
	return code
}
