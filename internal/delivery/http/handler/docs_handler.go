package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"
	"go.uber.org/zap"

	apperrors "github.com/transport-service/internal/pkg/errors"
	"github.com/transport-service/internal/pkg/utils"
)

// DocsHandler отдаёт OpenAPI документ сервиса
type DocsHandler struct {
	logger *zap.Logger
}

func NewDocsHandler(logger *zap.Logger) *DocsHandler {
	return &DocsHandler{logger: logger}
}

// OpenAPI godoc
// @Summary OpenAPI document
// @Tags Misc
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *DocsHandler) OpenAPI(c *fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		h.logger.Error("Failed to read OpenAPI document", zap.Error(err))
		return utils.SendError(c, apperrors.ErrInternalServer)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(doc)
}
