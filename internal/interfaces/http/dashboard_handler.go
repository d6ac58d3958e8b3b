package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/decora-api/internal/application/analytics"
)

// DashboardHandler painel financeiro.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumo financeiro do dia e do mês
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummary
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	summary, err := h.uc.GetSummary(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
