// Package analytics contém o painel financeiro da empresa.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

// DashboardUseCase resumo do dia e do mês corrente.
// Só lê; todas as consultas passam pelo AnalyticsRepository.
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
	now  func() time.Time
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: time.Now}
}

// GetSummary monta o resumo da empresa com quatro consultas em paralelo:
//  1. receitas de hoje
//  2. receitas do mês
//  3. saldo em aberto e vencido
//  4. orçamentos aprovados no mês
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummary, error) {
	now := uc.now()

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type amountResult struct {
		v   decimal.Decimal
		err error
	}
	type balanceResult struct {
		v   repository.OpenBalance
		err error
	}
	type quotesResult struct {
		v   repository.QuoteTotals
		err error
	}

	todayCh := make(chan amountResult, 1)
	monthCh := make(chan amountResult, 1)
	balanceCh := make(chan balanceResult, 1)
	quotesCh := make(chan quotesResult, 1)

	go func() {
		v, err := uc.repo.ReceivedBetween(ctx, companyID, todayStart, todayEnd)
		todayCh <- amountResult{v, err}
	}()
	go func() {
		v, err := uc.repo.ReceivedBetween(ctx, companyID, monthStart, todayEnd)
		monthCh <- amountResult{v, err}
	}()
	go func() {
		v, err := uc.repo.OpenBalance(ctx, companyID, todayStart)
		balanceCh <- balanceResult{v, err}
	}()
	go func() {
		v, err := uc.repo.ApprovedQuotes(ctx, companyID, monthStart, todayEnd)
		quotesCh <- quotesResult{v, err}
	}()

	today, month, balance, quotes := <-todayCh, <-monthCh, <-balanceCh, <-quotesCh

	if today.err != nil {
		return nil, fmt.Errorf("painel: recebido hoje: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("painel: recebido no mês: %w", month.err)
	}
	if balance.err != nil {
		return nil, fmt.Errorf("painel: saldo em aberto: %w", balance.err)
	}
	if quotes.err != nil {
		return nil, fmt.Errorf("painel: orçamentos aprovados: %w", quotes.err)
	}

	return &dto.DashboardSummary{
		ReceivedToday:       today.v.Round(2),
		ReceivedMonth:       month.v.Round(2),
		OpenBalance:         balance.v.Open.Round(2),
		OverdueBalance:      balance.v.Overdue.Round(2),
		ApprovedQuotesMonth: quotes.v.Approved,
		ApprovedQuotesTotal: quotes.v.ApprovedTotal.Round(2),
		DateLabel:           monthLabel(now),
	}, nil
}

// monthLabel ex.: "Março 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
