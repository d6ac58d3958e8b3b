package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/application/usecase"
)

// CompanyHandler empresa do usuário logado, parâmetros comerciais e equipe.
type CompanyHandler struct {
	company *usecase.CompanyUseCase
	users   *usecase.UserUseCase
}

// NewCompanyHandler constrói o handler injetando os casos de uso.
func NewCompanyHandler(company *usecase.CompanyUseCase, users *usecase.UserUseCase) *CompanyHandler {
	return &CompanyHandler{company: company, users: users}
}

// Get godoc
// @Summary      Dados da empresa
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	out, err := h.company.Get(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PricingSettings godoc
// @Summary      Parâmetros comerciais (configurados e efetivos)
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PricingSettingsResponse
// @Router       /api/company/pricing-settings [get]
func (h *CompanyHandler) PricingSettings(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	out, err := h.company.PricingSettings(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdatePricingSettings godoc
// @Summary      Atualizar parâmetros comerciais
// @Description  Campo nulo volta ao padrão do sistema. Novos cálculos usam os valores na hora; orçamentos salvos não mudam.
// @Tags         company
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PricingSettingsRequest  true  "margens e valor do ponto"
// @Success      200   {object}  dto.PricingSettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/company/pricing-settings [put]
func (h *CompanyHandler) UpdatePricingSettings(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	var in dto.PricingSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.company.UpdatePricingSettings(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Cadastrar usuário da equipe
// @Tags         company
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "nome, email, senha e papel"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *CompanyHandler) CreateUser(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.users.Create(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUsers godoc
// @Summary      Listar usuários da equipe
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users [get]
func (h *CompanyHandler) ListUsers(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	out, err := h.users.List(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
