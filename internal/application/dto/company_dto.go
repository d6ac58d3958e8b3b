package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyResponse dados da empresa do usuário logado.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PricingSettingsRequest parâmetros comerciais. Campo nulo volta ao padrão do sistema.
type PricingSettingsRequest struct {
	InstallationPointPrice *decimal.Decimal `json:"installation_point_price"`
	MarginLow              *decimal.Decimal `json:"margin_low"`
	MarginStandard         *decimal.Decimal `json:"margin_standard"`
	MarginPremium          *decimal.Decimal `json:"margin_premium"`
}

// PricingSettingsResponse valores configurados pela empresa e os efetivamente usados nos cálculos.
type PricingSettingsResponse struct {
	Configured PricingSettingsRequest `json:"configured"`
	Effective  EffectivePricing       `json:"effective"`
}

// EffectivePricing valores em uso depois de aplicar os padrões.
type EffectivePricing struct {
	InstallationPointPrice decimal.Decimal `json:"installation_point_price"`
	MarginLow              decimal.Decimal `json:"margin_low"`
	MarginStandard         decimal.Decimal `json:"margin_standard"`
	MarginPremium          decimal.Decimal `json:"margin_premium"`
}
