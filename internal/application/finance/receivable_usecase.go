package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/receivable"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

// ReceivableUseCase consultas de contas a receber, exportação e comprovantes.
type ReceivableUseCase struct {
	repo          repository.ReceivableRepository
	notifications repository.NotificationRepository
	receipts      repository.ReceiptStorage
	sheet         InstallmentSheetWriter
	now           func() time.Time
}

// NewReceivableUseCase constrói o caso de uso.
func NewReceivableUseCase(
	repo repository.ReceivableRepository,
	notifications repository.NotificationRepository,
	receipts repository.ReceiptStorage,
	sheet InstallmentSheetWriter,
) *ReceivableUseCase {
	return &ReceivableUseCase{repo: repo, notifications: notifications, receipts: receipts, sheet: sheet, now: time.Now}
}

// Get conta com parcelas; o status já considera parcelas vencidas.
func (uc *ReceivableUseCase) Get(ctx context.Context, companyID, id string) (*dto.ReceivableResponse, error) {
	acc, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toReceivableResponse(acc, receivable.DeriveStatus(acc, uc.now()), true), nil
}

// List contas da empresa. O filtro usa o status derivado e é aplicado pelo repositório
// antes da paginação.
func (uc *ReceivableUseCase) List(ctx context.Context, companyID string, f repository.ReceivableFilter) (*dto.ReceivableListResponse, error) {
	page := dto.PageRequest{Limit: f.Limit, Offset: f.Offset}
	page.DefaultPage()
	f.Limit, f.Offset = page.Limit, page.Offset

	now := uc.now()
	f.Today = now
	list, err := uc.repo.List(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	out := &dto.ReceivableListResponse{
		Items: make([]dto.ReceivableResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}
	for _, acc := range list {
		out.Items = append(out.Items, *toReceivableResponse(acc, receivable.DeriveStatus(acc, now), false))
	}
	return out, nil
}

// ExportInstallments planilha XLSX com as parcelas da conta.
func (uc *ReceivableUseCase) ExportInstallments(ctx context.Context, companyID, id string) ([]byte, string, error) {
	acc, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.sheet.WriteInstallments(acc, receivable.DeriveStatus(acc, uc.now()))
	if err != nil {
		return nil, "", fmt.Errorf("exportar parcelas: %w", err)
	}
	return data, fmt.Sprintf("parcelas-%s.xlsx", acc.ID), nil
}

// GetReceipt comprovante armazenado, restrito à empresa dona.
func (uc *ReceivableUseCase) GetReceipt(ctx context.Context, companyID, key string) (*entity.ReceiptFile, error) {
	if key == "" {
		return nil, domain.ErrInvalidInput
	}
	f, err := uc.receipts.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	if f.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return f, nil
}

// Notifications últimas notificações da empresa (marcos de pagamento).
func (uc *ReceivableUseCase) Notifications(ctx context.Context, companyID string, limit int) ([]*entity.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.notifications.ListByCompany(ctx, companyID, limit)
}

func (uc *ReceivableUseCase) load(ctx context.Context, companyID, id string) (*entity.AccountReceivable, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	acc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.ErrNotFound
	}
	if acc.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return acc, nil
}

func toReceivableResponse(acc *entity.AccountReceivable, status string, withInstallments bool) *dto.ReceivableResponse {
	out := &dto.ReceivableResponse{
		ID:          acc.ID,
		OrderID:     acc.OrderID,
		ClientName:  acc.ClientName,
		Description: acc.Description,
		Total:       acc.Total,
		PaidAmount:  acc.PaidAmount,
		Status:      status,
		CreatedAt:   acc.CreatedAt,
	}
	if !withInstallments {
		return out
	}
	out.Installments = make([]dto.InstallmentResponse, 0, len(acc.Installments))
	for _, in := range acc.Installments {
		out.Installments = append(out.Installments, dto.InstallmentResponse{
			ID:              in.ID,
			Number:          in.Number,
			DueDate:         in.DueDate,
			Amount:          in.Amount,
			Status:          in.Status,
			PaidAt:          in.PaidAt,
			PaymentMethodID: in.PaymentMethodID,
		})
	}
	return out
}
