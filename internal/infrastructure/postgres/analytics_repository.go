package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas read-only para o painel.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository constrói o repositório de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// ReceivedBetween soma das receitas do livro caixa no intervalo.
func (r *AnalyticsRepo) ReceivedBetween(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE company_id = $1 AND kind = $2 AND entry_date BETWEEN $3 AND $4`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, companyID, entity.LedgerIncome, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics received: %w", err)
	}
	return total, nil
}

// OpenBalance saldo pendente e vencido das parcelas da empresa.
func (r *AnalyticsRepo) OpenBalance(ctx context.Context, companyID string, today time.Time) (repository.OpenBalance, error) {
	query := `
		SELECT
			COALESCE(SUM(i.amount), 0),
			COALESCE(SUM(i.amount) FILTER (WHERE i.due_date < $3::date), 0)
		FROM installments i
		JOIN accounts_receivable a ON a.id = i.account_id
		WHERE a.company_id = $1 AND i.status = $2`
	var out repository.OpenBalance
	err := r.q.QueryRow(ctx, query, companyID, entity.InstallmentPending, today).Scan(&out.Open, &out.Overdue)
	if err != nil {
		return repository.OpenBalance{}, fmt.Errorf("analytics open balance: %w", err)
	}
	return out, nil
}

// ApprovedQuotes contagem e valor dos orçamentos aprovados no intervalo.
func (r *AnalyticsRepo) ApprovedQuotes(ctx context.Context, companyID string, from, to time.Time) (repository.QuoteTotals, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(grand_total), 0)
		FROM quotes
		WHERE company_id = $1 AND status = $2 AND updated_at BETWEEN $3 AND $4`
	var out repository.QuoteTotals
	err := r.q.QueryRow(ctx, query, companyID, entity.QuoteApproved, from, to).Scan(&out.Approved, &out.ApprovedTotal)
	if err != nil {
		return repository.QuoteTotals{}, fmt.Errorf("analytics approved quotes: %w", err)
	}
	return out, nil
}
