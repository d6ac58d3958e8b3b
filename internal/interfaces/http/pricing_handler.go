package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/application/quoting"
)

// PricingHandler cálculos sem persistência usados pela tela de orçamento.
type PricingHandler struct {
	uc *quoting.PricingUseCase
}

// NewPricingHandler constrói o handler de cálculos.
func NewPricingHandler(uc *quoting.PricingUseCase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// PreviewItem godoc
// @Summary      Calcular custo e preço de um item
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PreviewItemRequest  true  "item e margem"
// @Success      200   {object}  dto.PreviewItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/pricing/items [post]
func (h *PricingHandler) PreviewItem(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	var in dto.PreviewItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.PreviewItem(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Markup godoc
// @Summary      Aplicar margem sobre um custo
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MarkupRequest  true  "custo e margem"
// @Success      200   {object}  dto.MarkupResponse
// @Router       /api/pricing/markup [post]
func (h *PricingHandler) Markup(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	var in dto.MarkupRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Markup(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Wallpaper godoc
// @Summary      Sugerir rolos de papel de parede
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WallpaperRequest  true  "parede e rolo"
// @Success      200   {object}  dto.WallpaperResponse
// @Router       /api/pricing/wallpaper [post]
func (h *PricingHandler) Wallpaper(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	var in dto.WallpaperRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Wallpaper(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
