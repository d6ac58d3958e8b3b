package receivable

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
)

// MaxInstallments limite de parcelas de uma conta.
const MaxInstallments = 24

// Schedule divide total em count parcelas mensais a partir de firstDue.
// Cada parcela é o total dividido truncado em centavos; a sobra vai para a primeira,
// de modo que a soma é exatamente total. Vencimentos em dia 29–31 caem no último dia
// dos meses mais curtos. IDs e AccountID ficam para quem grava.
func Schedule(total decimal.Decimal, count int, firstDue time.Time) ([]*entity.Installment, error) {
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: total da conta deve ser positivo", domain.ErrInvalidInput)
	}
	if count < 1 || count > MaxInstallments {
		return nil, fmt.Errorf("%w: parcelas entre 1 e %d", domain.ErrInvalidInput, MaxInstallments)
	}

	total = total.Round(2)
	part := total.Div(decimal.NewFromInt(int64(count))).Truncate(2)
	first := total.Sub(part.Mul(decimal.NewFromInt(int64(count - 1))))

	out := make([]*entity.Installment, count)
	for i := range out {
		amount := part
		if i == 0 {
			amount = first
		}
		out[i] = &entity.Installment{
			Number:  i + 1,
			DueDate: addMonths(firstDue, i),
			Amount:  amount,
			Status:  entity.InstallmentPending,
		}
	}
	return out, nil
}

func addMonths(t time.Time, n int) time.Time {
	y, m, day := t.Date()
	firstOfMonth := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	last := firstOfMonth.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(firstOfMonth.Year(), firstOfMonth.Month(), day, 0, 0, 0, 0, t.Location())
}
