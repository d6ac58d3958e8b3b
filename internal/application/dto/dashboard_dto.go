package dto

import "github.com/shopspring/decimal"

// DashboardSummary resumo financeiro do dia e do mês corrente.
type DashboardSummary struct {
	ReceivedToday       decimal.Decimal `json:"received_today"`
	ReceivedMonth       decimal.Decimal `json:"received_month"`
	OpenBalance         decimal.Decimal `json:"open_balance"`
	OverdueBalance      decimal.Decimal `json:"overdue_balance"`
	ApprovedQuotesMonth int             `json:"approved_quotes_month"`
	ApprovedQuotesTotal decimal.Decimal `json:"approved_quotes_total"`
	DateLabel           string          `json:"date_label"`
}
