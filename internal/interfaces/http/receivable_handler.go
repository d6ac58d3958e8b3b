package http

import (
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/application/finance"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

// NotificationResponse alerta exibido no painel.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}

// ReceivableHandler contas a receber, baixa de parcelas e comprovantes.
type ReceivableHandler struct {
	receivables *finance.ReceivableUseCase
	receipts    *finance.RegisterReceiptUseCase
	maxBytes    int
}

// NewReceivableHandler constrói o handler financeiro. maxBytes limita o comprovante lido do multipart.
func NewReceivableHandler(receivables *finance.ReceivableUseCase, receipts *finance.RegisterReceiptUseCase, maxBytes int) *ReceivableHandler {
	return &ReceivableHandler{receivables: receivables, receipts: receipts, maxBytes: maxBytes}
}

// List godoc
// @Summary      Listar contas a receber
// @Tags         receivables
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pendente, parcial, pago, atrasado"
// @Param        limit   query  int     false  "limite"
// @Param        offset  query  int     false  "offset"
// @Success      200  {object}  dto.ReceivableListResponse
// @Router       /api/receivables [get]
func (h *ReceivableHandler) List(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	f := repository.ReceivableFilter{
		Status: c.Query("status"),
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.receivables.List(c.UserContext(), companyID, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Buscar conta a receber com parcelas
// @Tags         receivables
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da conta"
// @Success      200  {object}  dto.ReceivableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receivables/{id} [get]
func (h *ReceivableHandler) Get(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	out, err := h.receivables.Get(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar parcelas em planilha
// @Tags         receivables
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "ID da conta"
// @Success      200  {file}  binary
// @Router       /api/receivables/{id}/export [get]
func (h *ReceivableHandler) Export(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	data, filename, err := h.receivables.ExportInstallments(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// RegisterReceipt godoc
// @Summary      Registrar recebimento de parcela
// @Description  Baixa, saldo e status são atômicos; marcos, lançamento, comissão e comprovante falham sem desfazer a baixa.
// @Tags         receivables
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id                 path      string  true   "ID da parcela"
// @Param        paid_at            formData  string  false  "data do pagamento (RFC3339 ou AAAA-MM-DD)"
// @Param        payment_method_id  formData  string  true   "forma de pagamento"
// @Param        file               formData  file    false  "comprovante"
// @Success      200  {object}  dto.RegisterReceiptResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Router       /api/installments/{id}/receipt [post]
func (h *ReceivableHandler) RegisterReceipt(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	paidAt, err := parsePaidAt(c.FormValue("paid_at"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paid_at inválido"})
	}
	in := dto.RegisterReceiptRequest{
		InstallmentID:   c.Params("id"),
		PaidAt:          paidAt,
		PaymentMethodID: c.FormValue("payment_method_id"),
	}
	if fh, ferr := c.FormFile("file"); ferr == nil {
		rc, oerr := fh.Open()
		if oerr != nil {
			return badBody(c)
		}
		upload, uerr := h.readUpload(rc, fh.Filename, fh.Header.Get(fiber.HeaderContentType))
		rc.Close()
		if uerr != nil {
			return badBody(c)
		}
		in.Receipt = upload
	}
	out, err := h.receipts.RegisterReceipt(c.UserContext(), companyID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetReceipt godoc
// @Summary      Baixar comprovante
// @Tags         receivables
// @Security     Bearer
// @Param        key  path  string  true  "chave do comprovante"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{key} [get]
func (h *ReceivableHandler) GetReceipt(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	f, err := h.receivables.GetReceipt(c.UserContext(), companyID, c.Params("key"))
	if err != nil {
		return respondError(c, err)
	}
	ct := f.ContentType
	if ct == "" {
		ct = fiber.MIMEOctetStream
	}
	c.Set(fiber.HeaderContentType, ct)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, f.FileName))
	return c.Send(f.Data)
}

// Notifications godoc
// @Summary      Últimas notificações da empresa
// @Tags         receivables
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "limite"
// @Success      200  {array}  NotificationResponse
// @Router       /api/notifications [get]
func (h *ReceivableHandler) Notifications(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	list, err := h.receivables.Notifications(c.UserContext(), companyID, c.QueryInt("limit", 20))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, NotificationResponse{
			ID:        n.ID,
			Kind:      n.Kind,
			Title:     n.Title,
			Message:   n.Message,
			Reference: n.Reference,
			CreatedAt: n.CreatedAt,
		})
	}
	return c.JSON(out)
}

// readUpload lê no máximo maxBytes+1 bytes; o caso de uso recusa o excedente com ErrReceiptTooLarge.
func (h *ReceivableHandler) readUpload(r io.Reader, name, contentType string) (*dto.ReceiptUpload, error) {
	limit := int64(h.maxBytes)
	if limit <= 0 {
		limit = 10 << 20
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	return &dto.ReceiptUpload{FileName: name, ContentType: contentType, Data: data}, nil
}

// parsePaidAt aceita RFC3339 ou AAAA-MM-DD. Vazio devolve zero e o caso de uso usa o horário atual.
func parsePaidAt(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
