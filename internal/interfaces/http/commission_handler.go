package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/decora-api/internal/application/finance"
)

// CommissionHandler comissões por pedido.
type CommissionHandler struct {
	uc *finance.CommissionUseCase
}

// NewCommissionHandler constrói o handler.
func NewCommissionHandler(uc *finance.CommissionUseCase) *CommissionHandler {
	return &CommissionHandler{uc: uc}
}

// ListByOrder godoc
// @Summary      Comissões do pedido
// @Description  Uma comissão por parcela recebida, com a soma.
// @Tags         receivables
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {object}  dto.OrderCommissionsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/commissions [get]
func (h *CommissionHandler) ListByOrder(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	out, err := h.uc.ListByOrder(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
