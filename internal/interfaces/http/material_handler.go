package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/decora-api/internal/application/catalog"
	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

// MaterialHandler catálogo de materiais e serviços de costura.
type MaterialHandler struct {
	materials *catalog.MaterialUseCase
	services  *catalog.SewingServiceUseCase
}

// NewMaterialHandler constrói o handler do catálogo.
func NewMaterialHandler(materials *catalog.MaterialUseCase, services *catalog.SewingServiceUseCase) *MaterialHandler {
	return &MaterialHandler{materials: materials, services: services}
}

// Create godoc
// @Summary      Cadastrar material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "material com preço inicial"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.materials.Create(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Buscar material
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do material"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) Get(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	out, err := h.materials.Get(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar materiais
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "tecido, forro, trilho, acessorio, papel_parede"
// @Param        search    query  string  false  "nome ou código"
// @Param        inactive  query  bool    false  "incluir arquivados"
// @Param        limit     query  int     false  "limite"
// @Param        offset    query  int     false  "offset"
// @Success      200  {object}  dto.MaterialListResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	f := repository.MaterialFilter{
		Category:        c.Query("category"),
		Search:          c.Query("search"),
		IncludeInactive: c.QueryBool("inactive", false),
		Limit:           c.QueryInt("limit", 20),
		Offset:          c.QueryInt("offset", 0),
	}
	out, err := h.materials.List(c.UserContext(), companyID, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdatePrice godoc
// @Summary      Atualizar custo do material
// @Description  Arquiva o preço vigente e ativa o novo na mesma transação.
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID do material"
// @Param        body  body  dto.UpdatePriceRequest  true  "novo custo"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/price [put]
func (h *MaterialHandler) UpdatePrice(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	var in dto.UpdatePriceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.materials.UpdatePrice(c.UserContext(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PriceHistory godoc
// @Summary      Histórico de preços do material
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do material"
// @Success      200  {array}   dto.MaterialPriceResponse
// @Router       /api/materials/{id}/prices [get]
func (h *MaterialHandler) PriceHistory(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	out, err := h.materials.PriceHistory(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Arquivar material
// @Tags         materials
// @Security     Bearer
// @Param        id   path  string  true  "ID do material"
// @Success      204
// @Router       /api/materials/{id} [delete]
func (h *MaterialHandler) Archive(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	if err := h.materials.Archive(c.UserContext(), companyID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateSewingService godoc
// @Summary      Cadastrar serviço de costura
// @Tags         sewing-services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSewingServiceRequest  true  "serviço"
// @Success      201   {object}  dto.SewingServiceResponse
// @Router       /api/sewing-services [post]
func (h *MaterialHandler) CreateSewingService(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	var in dto.CreateSewingServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.services.Create(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSewingServices godoc
// @Summary      Listar serviços de costura
// @Tags         sewing-services
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SewingServiceResponse
// @Router       /api/sewing-services [get]
func (h *MaterialHandler) ListSewingServices(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	out, err := h.services.List(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LinkCurtainType godoc
// @Summary      Vincular serviço a um tipo de cortina
// @Tags         sewing-services
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                      true  "ID do serviço"
// @Param        body  body  dto.LinkCurtainTypeRequest  true  "tipo de cortina"
// @Success      204
// @Router       /api/sewing-services/{id}/curtain-types [post]
func (h *MaterialHandler) LinkCurtainType(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	var in dto.LinkCurtainTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.services.LinkCurtainType(c.UserContext(), companyID, c.Params("id"), in.CurtainType); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
