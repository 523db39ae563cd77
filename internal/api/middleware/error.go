package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/praneswara/polygreen/internal/api/contract"
	"github.com/praneswara/polygreen/internal/constants"
	"github.com/praneswara/polygreen/internal/service"
)

func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(contract.ErrorResponse{
				Code:    constants.ErrCodeInternalError,
				Message: fiberErr.Message,
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(contract.ErrorResponse{
			Code:    constants.ErrCodeInternalError,
			Message: constants.GetErrorMessage(constants.ErrCodeInternalError),
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	code := err.Code

	status := constants.GetHTTPStatus(code)
	if status == 500 {
		// Internal causes stay in the logs, not in the response body.
		return c.Status(status).JSON(contract.ErrorResponse{
			Code:    constants.ErrCodeInternalError,
			Message: constants.GetErrorMessage(constants.ErrCodeInternalError),
		})
	}

	return c.Status(status).JSON(contract.ErrorResponse{
		Code:    code,
		Message: constants.GetErrorMessage(code),
		Detail:  err.Error(),
	})
}
