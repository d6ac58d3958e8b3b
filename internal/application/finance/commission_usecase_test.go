package finance_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/decora-api/internal/application/finance"
	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
)

func TestCommissionUseCase_ListByOrder(t *testing.T) {
	orders := memOrders{
		"ped1": {ID: "ped1", CompanyID: "e1", Number: "PED-00001", SalespersonID: "v1"},
		"ped2": {ID: "ped2", CompanyID: "outra", Number: "PED-00001"},
	}
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	commissions := &memCommissions{rows: []*entity.Commission{
		{ID: "c1", CompanyID: "e1", OrderID: "ped1", SalespersonID: "v1", InstallmentNumber: 1,
			Percent: decimal.RequireFromString("5"), BaseValue: decimal.RequireFromString("400"), Value: decimal.RequireFromString("20"),
			Status: entity.CommissionPending, CreatedAt: at},
		{ID: "c2", CompanyID: "e1", OrderID: "ped1", SalespersonID: "v1", InstallmentNumber: 2,
			Percent: decimal.RequireFromString("5"), BaseValue: decimal.RequireFromString("300.50"), Value: decimal.RequireFromString("15.03"),
			Status: entity.CommissionPending, CreatedAt: at},
	}}
	uc := finance.NewCommissionUseCase(orders, commissions)
	ctx := context.Background()

	out, err := uc.ListByOrder(ctx, "e1", "ped1")
	require.NoError(t, err)
	assert.Equal(t, "PED-00001", out.OrderNumber)
	assert.Equal(t, "v1", out.SalespersonID)
	require.Len(t, out.Items, 2)
	assert.Equal(t, 1, out.Items[0].InstallmentNumber)
	assert.True(t, decimal.RequireFromString("35.03").Equal(out.Total))

	_, err = uc.ListByOrder(ctx, "e1", "ped2")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ListByOrder(ctx, "e1", "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCommissionUseCase_PedidoSemComissao(t *testing.T) {
	uc := finance.NewCommissionUseCase(memOrders{"ped1": {ID: "ped1", CompanyID: "e1"}}, &memCommissions{})

	out, err := uc.ListByOrder(context.Background(), "e1", "ped1")
	require.NoError(t, err)
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
	assert.True(t, out.Total.IsZero())
}
