package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company representa um tenant (loja de decoração).
type Company struct {
	ID        string
	Name      string
	CNPJ      string
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PricingSettings parâmetros comerciais da empresa. Campos nil usam o padrão da configuração.
type PricingSettings struct {
	CompanyID              string
	InstallationPointPrice *decimal.Decimal
	MarginLow              *decimal.Decimal
	MarginStandard         *decimal.Decimal
	MarginPremium          *decimal.Decimal
}
