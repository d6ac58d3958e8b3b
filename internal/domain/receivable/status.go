// Package receivable regras de status das contas a receber e marcos de pagamento.
package receivable

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/domain/entity"
)

// Tolerância para considerar uma conta quitada.
var (
	ToleranceAmount  = decimal.NewFromInt(5)
	TolerancePercent = decimal.RequireFromString("0.5")
)

var hundred = decimal.NewFromInt(100)

// WithinTolerance indica se o valor pago está a no máximo R$5 ou 0,5% do total.
// Pagamento acima do total também conta como quitado.
func WithinTolerance(total, paid decimal.Decimal) bool {
	gap := total.Sub(paid)
	if !gap.IsPositive() {
		return true
	}
	if gap.LessThanOrEqual(ToleranceAmount) {
		return true
	}
	return gap.LessThanOrEqual(total.Mul(TolerancePercent).Div(hundred))
}

// PaidAmount soma das parcelas pagas.
func PaidAmount(installments []*entity.Installment) decimal.Decimal {
	sum := decimal.Zero
	for _, in := range installments {
		if in.IsPaid() {
			sum = sum.Add(in.Amount)
		}
	}
	return sum
}

// AccountStatus pago quando todas as parcelas estão pagas ou o valor pago está dentro da tolerância;
// pendente quando nada foi pago; parcial nos demais casos.
func AccountStatus(total, paid decimal.Decimal, installments []*entity.Installment) string {
	paidCount := 0
	for _, in := range installments {
		if in.IsPaid() {
			paidCount++
		}
	}
	if len(installments) > 0 && paidCount == len(installments) {
		return entity.AccountPaid
	}
	if paid.IsPositive() && WithinTolerance(total, paid) {
		return entity.AccountPaid
	}
	if paidCount == 0 && !paid.IsPositive() {
		return entity.AccountPending
	}
	return entity.AccountPartial
}

// DeriveStatus status exibido nas consultas: conta não quitada com parcela pendente vencida
// antes do dia de now aparece como atrasada. O status gravado não muda.
func DeriveStatus(acc *entity.AccountReceivable, now time.Time) string {
	if acc.Status == entity.AccountPaid {
		return entity.AccountPaid
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, in := range acc.Installments {
		if !in.IsPaid() && in.DueDate.Before(today) {
			return entity.AccountOverdue
		}
	}
	return acc.Status
}

// MatchesStatus indica se a conta entra no filtro status pelo status derivado em today.
// Filtro vazio aceita tudo. Contas com parcela vencida só aparecem em atrasado.
func MatchesStatus(acc *entity.AccountReceivable, status string, today time.Time) bool {
	return status == "" || DeriveStatus(acc, today) == status
}
