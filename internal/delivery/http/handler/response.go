package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/transport-service/internal/delivery/http/middleware"
	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/pkg/form"
	"github.com/transport-service/internal/pkg/metrics"
	"github.com/transport-service/internal/pkg/utils"
	"github.com/transport-service/internal/schema"
	"github.com/transport-service/internal/usecase/dto"
)

// rawRequest собирает декодированные поля и контекст запроса для use case
func rawRequest(c *fiber.Ctx, encoding schema.Encoding, fields map[string]any) dto.RawRequest {
	return dto.RawRequest{
		Meta: dto.RequestMeta{
			RequestID:  middleware.GetRequestID(c),
			RemoteAddr: c.IP(),
			Encoding:   encoding,
		},
		Fields: fields,
	}
}

// sendEngineResponse отдаёт ответ движка клиенту без изменений
func sendEngineResponse(c *fiber.Ctx, resp *domain.EngineResponse) error {
	return utils.SendRaw(c, resp.StatusCode, resp.ContentType, resp.Body)
}

// sendFailure отдаёт ошибку декодирования или валидации как объект ошибок полей,
// остальные ошибки - в формате {"error": {...}}
func sendFailure(c *fiber.Ctx, op domain.Operation, err error, logger *zap.Logger) error {
	var decodeErr *form.DecodeError
	if errors.As(err, &decodeErr) {
		metrics.RecordValidationFailure(string(op), "decode")
		return utils.SendValidationErrors(c, decodeErr.Errors())
	}

	var validationErr *form.ValidationError
	if errors.As(err, &validationErr) {
		logger.Debug("Request validation failed",
			zap.String("operation", string(op)),
			zap.Strings("fields", validationErr.Errors.Paths()))
		return utils.SendValidationErrors(c, validationErr.Errors)
	}

	logger.Warn("Request failed",
		zap.String("operation", string(op)),
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err))
	return utils.SendError(c, err)
}
