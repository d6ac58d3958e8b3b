package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/domain"
)

// errorMapping erro de domínio -> status HTTP e código estável para o front.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidMargin, fiber.StatusBadRequest, "INVALID_MARGIN"},
	{domain.ErrMissingMaterial, fiber.StatusUnprocessableEntity, "MISSING_MATERIAL"},
	{domain.ErrNoSewingService, fiber.StatusUnprocessableEntity, "NO_SEWING_SERVICE"},
	{domain.ErrMaterialInactive, fiber.StatusUnprocessableEntity, "MATERIAL_INACTIVE"},
	{domain.ErrInvalidStatus, fiber.StatusConflict, "INVALID_STATUS"},
	{domain.ErrInstallmentAlreadyPaid, fiber.StatusConflict, "ALREADY_PAID"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrReceiptTooLarge, fiber.StatusRequestEntityTooLarge, "RECEIPT_TOO_LARGE"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrInvalidPassword, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
}

// respondError traduz o erro do caso de uso. Erro desconhecido vira 500 sem detalhes internos.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
}

// tenant devolve o CompanyID do token ou responde 401.
func tenant(c *fiber.Ctx) (string, bool) {
	companyID := GetCompanyID(c)
	if companyID == "" {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
		return "", false
	}
	return companyID, true
}
