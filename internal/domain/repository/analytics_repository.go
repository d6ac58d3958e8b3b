package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OpenBalance saldo em aberto das parcelas pendentes; Overdue é a parte vencida.
type OpenBalance struct {
	Open    decimal.Decimal
	Overdue decimal.Decimal
}

// QuoteTotals orçamentos aprovados no período.
type QuoteTotals struct {
	Approved      int
	ApprovedTotal decimal.Decimal
}

// AnalyticsRepository consultas de leitura do painel financeiro.
type AnalyticsRepository interface {
	// ReceivedBetween soma as receitas lançadas no livro caixa em [from, to].
	ReceivedBetween(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error)
	// OpenBalance parcelas pendentes; vencidas são as com vencimento antes de today.
	OpenBalance(ctx context.Context, companyID string, today time.Time) (OpenBalance, error)
	// ApprovedQuotes orçamentos aprovados com última alteração em [from, to].
	ApprovedQuotes(ctx context.Context, companyID string, from, to time.Time) (QuoteTotals, error)
}
