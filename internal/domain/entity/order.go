package entity

import "github.com/shopspring/decimal"

// Order pedido gerado a partir de um orçamento aprovado.
type Order struct {
	ID              string
	CompanyID       string
	QuoteID         string
	Number          string
	Total           decimal.Decimal
	DiscountedTotal decimal.Decimal // zero quando não há desconto
	SalespersonID   string
}

// Salesperson vendedor; ID é o do usuário com role vendedor. CommissionPercent nil usa o padrão.
type Salesperson struct {
	ID                string
	CompanyID         string
	Name              string
	CommissionPercent *decimal.Decimal
}
