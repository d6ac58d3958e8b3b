package finance

import (
	"context"

	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

// CommissionUseCase consulta das comissões geradas pelos recebimentos de um pedido.
type CommissionUseCase struct {
	orders      repository.OrderRepository
	commissions repository.CommissionRepository
}

// NewCommissionUseCase constrói o caso de uso.
func NewCommissionUseCase(orders repository.OrderRepository, commissions repository.CommissionRepository) *CommissionUseCase {
	return &CommissionUseCase{orders: orders, commissions: commissions}
}

// ListByOrder comissões do pedido por parcela, com o total.
func (uc *CommissionUseCase) ListByOrder(ctx context.Context, companyID, orderID string) (*dto.OrderCommissionsResponse, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	list, err := uc.commissions.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderCommissionsResponse{
		OrderID:       order.ID,
		OrderNumber:   order.Number,
		SalespersonID: order.SalespersonID,
		Items:         make([]dto.CommissionResponse, 0, len(list)),
	}
	for _, c := range list {
		out.Items = append(out.Items, dto.CommissionResponse{
			ID:                c.ID,
			InstallmentNumber: c.InstallmentNumber,
			Percent:           c.Percent,
			BaseValue:         c.BaseValue,
			Value:             c.Value,
			Status:            c.Status,
			CreatedAt:         c.CreatedAt,
		})
		out.Total = out.Total.Add(c.Value)
	}
	return out, nil
}
