package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do orçamento.
const (
	QuoteDraft        = "rascunho"
	QuoteFinalized    = "finalizado"
	QuoteSent         = "enviado"
	QuoteApproved     = "aprovado"
	QuoteInProduction = "em_producao"
	QuoteInstalled    = "instalado"
	QuotePaid         = "pago"
	QuoteRefused      = "recusado"
)

// Tipos de margem.
const (
	MarginLow      = "baixa"
	MarginStandard = "padrao"
	MarginPremium  = "premium"
	MarginCustom   = "personalizada"
)

var quoteTransitions = map[string][]string{
	QuoteDraft:        {QuoteFinalized},
	QuoteFinalized:    {QuoteDraft, QuoteSent, QuoteRefused},
	QuoteSent:         {QuoteApproved, QuoteRefused, QuoteDraft},
	QuoteApproved:     {QuoteInProduction},
	QuoteInProduction: {QuoteInstalled},
	QuoteInstalled:    {QuotePaid},
}

// CanTransition indica se o orçamento pode ir de from para to.
func CanTransition(from, to string) bool {
	for _, s := range quoteTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Quote orçamento com totais agregados dos itens.
type Quote struct {
	ID                   string
	CompanyID            string
	Number               string
	ClientName           string
	ClientPhone          string
	ClientEmail          string
	Address              string
	SalespersonID        string
	MarginType           string
	MarginPercent        decimal.Decimal
	Status               string
	SubtotalMaterials    decimal.Decimal
	SubtotalSewing       decimal.Decimal
	SubtotalInstallation decimal.Decimal
	CostTotal            decimal.Decimal
	GrandTotal           decimal.Decimal
	Items                []*LineItem
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Editable itens só mudam em rascunho.
func (q *Quote) Editable() bool {
	return q.Status == QuoteDraft
}
