package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/transport-service/internal/pkg/errors"
	"github.com/transport-service/internal/pkg/form"
)

type SuccessResponse struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	RequestID string  `json:"request_id,omitempty"`
	TimeMSec  float64 `json:"time_ms,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data any, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

// SendValidationErrors - 400 с объектом ошибок по путям полей
func SendValidationErrors(c *fiber.Ctx, errs form.Errors) error {
	return c.Status(fiber.StatusBadRequest).JSON(errs)
}

// SendRaw отдаёт тело как есть с указанным кодом и типом содержимого
func SendRaw(c *fiber.Ctx, status int, contentType string, body []byte) error {
	if contentType == "" {
		contentType = fiber.MIMEApplicationJSON
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Status(status).Send(body)
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.As(err); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	// Unknown error - return 500
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}
