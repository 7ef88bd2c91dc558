package serverutils

import (
	"errors"

	"baristabox-be/internal/entity"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	var validationErr *ValidationError
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &validationErr), errors.Is(err, entity.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, entity.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, entity.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, entity.ErrConflict):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// ErrorHandlerMiddleware renders any error returned further down the chain
// as a BaseResponse.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := StatusFor(err)
		res := ErrorResponse(code, err.Error())
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			res.Message = "validation failed"
			res.Errors = validationErr.Fields
		}
		if code == fiber.StatusInternalServerError {
			res.Message = "internal server error"
		}
		return ctx.Status(code).JSON(res)
	}
}
