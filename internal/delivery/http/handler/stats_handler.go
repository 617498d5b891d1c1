package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/transport-service/internal/pkg/utils"
	"github.com/transport-service/internal/usecase"
)

// StatsHandler обрабатывает запросы статистики использования движка
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
	logger  *zap.Logger
}

// NewStatsHandler создает новый экземпляр StatsHandler
func NewStatsHandler(statsUC *usecase.StatsUseCase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetUsage godoc
// @Summary Get engine usage statistics
// @Description Счётчики обращений к движку по операциям и costing, собранные воркером учёта
// @Tags Statistics
// @Produce json
// @Param refresh query bool false "Bypass the cached snapshot"
// @Success 200 {object} utils.SuccessResponse{data=dto.UsageResponse}
// @Failure 503 {object} utils.ErrorResponse
// @Router /stats [get]
func (h *StatsHandler) GetUsage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	get := h.statsUC.GetUsage
	if c.QueryBool("refresh") {
		get = h.statsUC.RefreshUsage
	}

	stats, err := get(ctx)
	if err != nil {
		h.logger.Error("Failed to get usage statistics", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, nil)
}
