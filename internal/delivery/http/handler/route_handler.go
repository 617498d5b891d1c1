package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/transport-service/internal/delivery/http/decoder"
	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/schema"
	"github.com/transport-service/internal/usecase"
)

// RouteHandler - построение маршрутов по режимам передвижения
type RouteHandler struct {
	routingUC *usecase.RoutingUseCase
	logger    *zap.Logger
}

func NewRouteHandler(routingUC *usecase.RoutingUseCase, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routingUC: routingUC,
		logger:    logger,
	}
}

// Route godoc
// @Summary Generates the route path for a travel mode
// @Description Валидирует параметры маршрута и costing options режима и передаёт запрос движку Valhalla.
// @Description Ответ движка возвращается без изменений.
// @Tags Route
// @Accept json
// @Produce json
// @Param costing path string true "Travel mode" Enums(auto, taxi, bus, truck, bicycle, bikeshare, motor_scooter, motorcycle, pedestrian, transit)
// @Param request body object true "Locations, directions and costing options"
// @Success 200 {object} map[string]interface{} "Valhalla route response"
// @Failure 400 {object} map[string][]string "Field errors"
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /route/{costing} [post]
func (h *RouteHandler) Route(c *fiber.Ctx) error {
	mode := domain.Costing(c.Params("costing"))

	fields, err := decoder.DecodeJSON(c.Body())
	if err != nil {
		return sendFailure(c, domain.OperationRoute, err, h.logger)
	}

	resp, err := h.routingUC.Route(c.UserContext(), mode, rawRequest(c, schema.EncodingJSON, fields))
	if err != nil {
		return sendFailure(c, domain.OperationRoute, err, h.logger)
	}

	return sendEngineResponse(c, resp)
}
