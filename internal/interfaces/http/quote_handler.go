package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/application/quoting"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

// QuoteHandler orçamentos, itens e PDF.
type QuoteHandler struct {
	uc  *quoting.QuoteUseCase
	pdf *quoting.PDFUseCase
}

// NewQuoteHandler constrói o handler de orçamentos.
func NewQuoteHandler(uc *quoting.QuoteUseCase, pdf *quoting.PDFUseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc, pdf: pdf}
}

// Create godoc
// @Summary      Abrir orçamento
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQuoteRequest  true  "cliente e margem"
// @Success      201   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/quotes [post]
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	var in dto.CreateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateQuote(c.UserContext(), companyID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Buscar orçamento com itens
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do orçamento"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [get]
func (h *QuoteHandler) Get(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetQuote(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar orçamentos
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        status          query  string  false  "rascunho, finalizado, enviado, aprovado, em_producao, instalado, pago, recusado"
// @Param        salesperson_id  query  string  false  "vendedor"
// @Param        limit           query  int     false  "limite"
// @Param        offset          query  int     false  "offset"
// @Success      200  {object}  dto.QuoteListResponse
// @Router       /api/quotes [get]
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	f := repository.QuoteFilter{
		Status:        c.Query("status"),
		SalespersonID: c.Query("salesperson_id"),
		Limit:         c.QueryInt("limit", 20),
		Offset:        c.QueryInt("offset", 0),
	}
	out, err := h.uc.ListQuotes(c.UserContext(), companyID, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir orçamento em rascunho
// @Tags         quotes
// @Security     Bearer
// @Param        id   path  string  true  "ID do orçamento"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [delete]
func (h *QuoteHandler) Delete(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	if err := h.uc.DeleteQuote(c.UserContext(), companyID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeMargin godoc
// @Summary      Trocar margem e reprecificar itens
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID do orçamento"
// @Param        body  body  dto.ChangeMarginRequest  true  "margem"
// @Success      200   {object}  dto.QuoteResponse
// @Router       /api/quotes/{id}/margin [put]
func (h *QuoteHandler) ChangeMargin(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	var in dto.ChangeMarginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeMargin(c.UserContext(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Mudar status do orçamento
// @Description  Aprovar gera o pedido e a conta a receber parcelada (installments, first_due_date, discounted_total).
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID do orçamento"
// @Param        body  body  dto.ChangeStatusRequest  true  "novo status"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/status [patch]
func (h *QuoteHandler) ChangeStatus(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Adicionar item ao orçamento
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID do orçamento"
// @Param        body  body  dto.LineItemRequest  true  "item"
// @Success      201   {object}  dto.SaveLineItemResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/items [post]
func (h *QuoteHandler) AddItem(c *fiber.Ctx) error {
	return h.saveItem(c, "", fiber.StatusCreated)
}

// UpdateItem godoc
// @Summary      Editar item do orçamento
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string               true  "ID do orçamento"
// @Param        itemId  path  string               true  "ID do item"
// @Param        body    body  dto.LineItemRequest  true  "item"
// @Success      200     {object}  dto.SaveLineItemResponse
// @Router       /api/quotes/{id}/items/{itemId} [put]
func (h *QuoteHandler) UpdateItem(c *fiber.Ctx) error {
	return h.saveItem(c, c.Params("itemId"), fiber.StatusOK)
}

func (h *QuoteHandler) saveItem(c *fiber.Ctx, itemID string, status int) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	var in dto.LineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SaveLineItem(c.UserContext(), companyID, c.Params("id"), itemID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(status).JSON(out)
}

// DeleteItem godoc
// @Summary      Remover item do orçamento
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID do orçamento"
// @Param        itemId  path  string  true  "ID do item"
// @Success      200     {object}  dto.QuoteResponse
// @Router       /api/quotes/{id}/items/{itemId} [delete]
func (h *QuoteHandler) DeleteItem(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	out, err := h.uc.DeleteLineItem(c.UserContext(), companyID, c.Params("id"), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Baixar orçamento em PDF
// @Tags         quotes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID do orçamento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/pdf [get]
func (h *QuoteHandler) DownloadPDF(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	data, filename, err := h.pdf.DownloadQuotePDF(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
