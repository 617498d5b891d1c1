package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/transport-service/internal/delivery/http/decoder"
	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/schema"
	"github.com/transport-service/internal/usecase"
)

// IsolineHandler - изохроны и изодистанты
type IsolineHandler struct {
	isolineUC *usecase.IsolineUseCase
	logger    *zap.Logger
}

func NewIsolineHandler(isolineUC *usecase.IsolineUseCase, logger *zap.Logger) *IsolineHandler {
	return &IsolineHandler{
		isolineUC: isolineUC,
		logger:    logger,
	}
}

// Isochrone godoc
// @Summary Isochrone contours
// @Description Области, достижимые из точки за заданное время (минуты).
// @Description Пороги передаются как range-0, range-1, ..., цвета как color-0, color-1, ...
// @Tags Isoline
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param costing query string false "Costing model" Enums(auto, bicycle, pedestrian, bikeshare, bus, multimodal) default(auto)
// @Param range-0 query number true "First contour (minutes)"
// @Param color-0 query string false "First contour color (hex without #)"
// @Param polygons query bool false "Return polygons instead of lines" default(false)
// @Param denoise query number false "Denoise factor [0, 1]" default(1)
// @Success 200 {object} map[string]interface{} "GeoJSON FeatureCollection"
// @Failure 400 {object} map[string][]string "Field errors"
// @Failure 502 {object} utils.ErrorResponse
// @Router /isoline/isochrone [get]
func (h *IsolineHandler) Isochrone(c *fiber.Ctx) error {
	return h.isoline(c, domain.OperationIsochrone)
}

// Isodistance godoc
// @Summary Isodistance contours
// @Description Области, достижимые из точки на заданное расстояние (километры).
// @Tags Isoline
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param costing query string false "Costing model" Enums(auto, bicycle, pedestrian, bikeshare, bus, multimodal) default(auto)
// @Param range-0 query number true "First contour (kilometers)"
// @Param color-0 query string false "First contour color (hex without #)"
// @Param polygons query bool false "Return polygons instead of lines" default(false)
// @Param denoise query number false "Denoise factor [0, 1]" default(1)
// @Success 200 {object} map[string]interface{} "GeoJSON FeatureCollection"
// @Failure 400 {object} map[string][]string "Field errors"
// @Failure 502 {object} utils.ErrorResponse
// @Router /isoline/isodistance [get]
func (h *IsolineHandler) Isodistance(c *fiber.Ctx) error {
	return h.isoline(c, domain.OperationIsodistance)
}

func (h *IsolineHandler) isoline(c *fiber.Ctx, op domain.Operation) error {
	fields := decoder.DecodeQuery(queryArgs(c))

	resp, err := h.isolineUC.Isoline(c.UserContext(), op, rawRequest(c, schema.EncodingQuery, fields))
	if err != nil {
		return sendFailure(c, op, err, h.logger)
	}

	return sendEngineResponse(c, resp)
}

// queryArgs собирает все значения каждого параметра query string
func queryArgs(c *fiber.Ctx) map[string][]string {
	args := map[string][]string{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		args[k] = append(args[k], string(value))
	})
	return args
}
