package serverutils

import (
	"errors"

	"medstory-be/internal/pkg/apperror"
	"medstory-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const serverModule = "SERVER"

type LegDetail struct {
	Store     string `json:"store"`
	Succeeded bool   `json:"succeeded"`
	Error     string `json:"error,omitempty"`
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case apperror.IsPartial(err):
		return fiber.StatusMultiStatus
	case apperror.IsResolution(err):
		return fiber.StatusUnprocessableEntity
	case apperror.IsValidation(err):
		return fiber.StatusBadRequest
	case apperror.IsTransient(err):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware turns handler errors into the common error body.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := StatusFor(err)
		message := err.Error()
		if code == fiber.StatusInternalServerError {
			log.Error(serverModule, "Unhandled error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			message = "Internal server error"
		}

		var partial *apperror.PartialFailure
		if errors.As(err, &partial) {
			legs := make([]LegDetail, 0, len(partial.Legs))
			for _, leg := range partial.Legs {
				d := LegDetail{Store: leg.Store, Succeeded: leg.Succeeded()}
				if leg.Err != nil {
					d.Error = leg.Err.Error()
				}
				legs = append(legs, d)
			}
			return ctx.Status(code).JSON(&BaseResponse[[]LegDetail]{
				Success: false,
				Code:    code,
				Message: message,
				Data:    legs,
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
