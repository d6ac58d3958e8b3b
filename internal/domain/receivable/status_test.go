package receivable_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/receivable"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func installments(paid ...bool) []*entity.Installment {
	out := make([]*entity.Installment, len(paid))
	for i, p := range paid {
		st := entity.InstallmentPending
		if p {
			st = entity.InstallmentPaid
		}
		out[i] = &entity.Installment{Number: i + 1, Amount: d("250"), Status: st}
	}
	return out
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, receivable.WithinTolerance(d("1000"), d("995")))
	assert.False(t, receivable.WithinTolerance(d("1000"), d("994")))
	assert.True(t, receivable.WithinTolerance(d("1000"), d("1000")))
	assert.True(t, receivable.WithinTolerance(d("1000"), d("1010")))
	// 0,5% de 10.000 = 50
	assert.True(t, receivable.WithinTolerance(d("10000"), d("9950")))
	assert.False(t, receivable.WithinTolerance(d("10000"), d("9949.99")))
}

func TestAccountStatus(t *testing.T) {
	pending := installments(true, true, true, false)

	assert.Equal(t, entity.AccountPaid, receivable.AccountStatus(d("1000"), d("995"), pending))
	assert.Equal(t, entity.AccountPartial, receivable.AccountStatus(d("1000"), d("994"), pending))
	assert.Equal(t, entity.AccountPaid, receivable.AccountStatus(d("1000"), d("1000"), installments(true, true, true, true)))
	assert.Equal(t, entity.AccountPending, receivable.AccountStatus(d("1000"), decimal.Zero, installments(false, false)))
	assert.Equal(t, entity.AccountPartial, receivable.AccountStatus(d("1000"), d("250"), installments(true, false)))
}

func TestAccountStatus_TodasPagasMesmoComDiferenca(t *testing.T) {
	all := installments(true, true)
	assert.Equal(t, entity.AccountPaid, receivable.AccountStatus(d("1000"), d("500"), all))
}

func TestPaidAmount(t *testing.T) {
	assert.True(t, d("500").Equal(receivable.PaidAmount(installments(true, false, true))))
	assert.True(t, decimal.Zero.Equal(receivable.PaidAmount(nil)))
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	acc := &entity.AccountReceivable{
		Status: entity.AccountPartial,
		Installments: []*entity.Installment{
			{Number: 1, Status: entity.InstallmentPaid, DueDate: now.AddDate(0, -1, 0)},
			{Number: 2, Status: entity.InstallmentPending, DueDate: now.AddDate(0, 0, -1)},
		},
	}
	assert.Equal(t, entity.AccountOverdue, receivable.DeriveStatus(acc, now))

	acc.Installments[1].DueDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, entity.AccountPartial, receivable.DeriveStatus(acc, now), "vence hoje não está atrasada")

	acc.Installments[1].DueDate = now.AddDate(0, 0, -5)
	acc.Status = entity.AccountPaid
	assert.Equal(t, entity.AccountPaid, receivable.DeriveStatus(acc, now))
}

func TestMatchesStatus_AtrasadaSaiDoFiltroDoStatusGravado(t *testing.T) {
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	overdue := &entity.AccountReceivable{
		Status:       entity.AccountPending,
		Installments: []*entity.Installment{{Number: 1, Status: entity.InstallmentPending, DueDate: today.AddDate(0, 0, -1)}},
	}
	onTime := &entity.AccountReceivable{
		Status:       entity.AccountPending,
		Installments: []*entity.Installment{{Number: 1, Status: entity.InstallmentPending, DueDate: today.AddDate(0, 1, 0)}},
	}

	assert.True(t, receivable.MatchesStatus(overdue, entity.AccountOverdue, today))
	assert.False(t, receivable.MatchesStatus(overdue, entity.AccountPending, today))
	assert.True(t, receivable.MatchesStatus(onTime, entity.AccountPending, today))
	assert.False(t, receivable.MatchesStatus(onTime, entity.AccountOverdue, today))
	assert.True(t, receivable.MatchesStatus(overdue, "", today))
}
