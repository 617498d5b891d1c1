package handler

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/transport-service/internal/delivery/http/decoder"
	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/pkg/form"
	"github.com/transport-service/internal/schema"
	"github.com/transport-service/internal/usecase"
	"github.com/transport-service/internal/usecase/dto"
)

// MapMatchHandler - привязка GPS трека (JSON тело или multipart с CSV файлом)
type MapMatchHandler struct {
	mapMatchUC *usecase.MapMatchUseCase
	logger     *zap.Logger
}

func NewMapMatchHandler(mapMatchUC *usecase.MapMatchUseCase, logger *zap.Logger) *MapMatchHandler {
	return &MapMatchHandler{
		mapMatchUC: mapMatchUC,
		logger:     logger,
	}
}

// TraceRoute godoc
// @Summary Map matching with route
// @Description Сопоставляет трек с дорожной сетью и возвращает маршрут с инструкциями.
// @Description Трек передаётся в JSON (shape) или CSV файлом в multipart поле shape (колонки lat, lon, time, type).
// @Tags Map matching
// @Accept json,mpfd
// @Produce json
// @Param request body object false "Shape and options (application/json)"
// @Param shape formData file false "CSV track (multipart/form-data)"
// @Success 200 {object} map[string]interface{} "Valhalla trace_route response"
// @Failure 400 {object} map[string][]string "Field errors"
// @Failure 502 {object} utils.ErrorResponse
// @Router /map_matching/trace_route [post]
func (h *MapMatchHandler) TraceRoute(c *fiber.Ctx) error {
	return h.match(c, domain.OperationTraceRoute, h.mapMatchUC.TraceRoute)
}

// TraceAttributes godoc
// @Summary Map matching with edge attributes
// @Description Сопоставляет трек с дорожной сетью и возвращает атрибуты рёбер.
// @Description filters - массив (JSON) или строка через запятую (multipart).
// @Tags Map matching
// @Accept json,mpfd
// @Produce json
// @Param request body object false "Shape, filters and options (application/json)"
// @Param shape formData file false "CSV track (multipart/form-data)"
// @Param filters formData string false "Comma separated attribute names"
// @Success 200 {object} map[string]interface{} "Valhalla trace_attributes response"
// @Failure 400 {object} map[string][]string "Field errors"
// @Failure 502 {object} utils.ErrorResponse
// @Router /map_matching/trace_attributes [post]
func (h *MapMatchHandler) TraceAttributes(c *fiber.Ctx) error {
	return h.match(c, domain.OperationTraceAttributes, h.mapMatchUC.TraceAttributes)
}

func (h *MapMatchHandler) match(
	c *fiber.Ctx,
	op domain.Operation,
	call func(ctx context.Context, req dto.RawRequest) (*domain.EngineResponse, error),
) error {
	encoding, fields, err := h.decode(c)
	if err != nil {
		return sendFailure(c, op, err, h.logger)
	}

	resp, err := call(c.UserContext(), rawRequest(c, encoding, fields))
	if err != nil {
		return sendFailure(c, op, err, h.logger)
	}

	return sendEngineResponse(c, resp)
}

func (h *MapMatchHandler) decode(c *fiber.Ctx) (schema.Encoding, map[string]any, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fields, err := decoder.DecodeJSON(c.Body())
		return schema.EncodingJSON, fields, err
	}

	mf, err := c.MultipartForm()
	if err != nil {
		return schema.EncodingMultipart, nil, &form.DecodeError{Field: "body", Message: "Not a valid multipart form."}
	}
	fields, err := decoder.DecodeMultipart(mf)
	return schema.EncodingMultipart, fields, err
}
