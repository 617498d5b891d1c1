package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/transport-service/internal/usecase"
)

type HealthHandler struct {
	healthUC *usecase.HealthUseCase
}

func NewHealthHandler(healthUC *usecase.HealthUseCase) *HealthHandler {
	return &HealthHandler{healthUC: healthUC}
}

// Health godoc
// @Summary Get health status
// @Description Проверяет доступность движка и Redis. Всегда 200, итог в поле status.
// @Tags Misc
// @Produce json
// @Success 200 {object} domain.HealthStatus
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.healthUC.Check(c.UserContext()))
}
