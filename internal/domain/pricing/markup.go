package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
)

var (
	hundred   = decimal.NewFromInt(100)
	maxMargin = decimal.NewFromInt(200)
)

// MarginPresets percentuais das margens pré-definidas da empresa.
type MarginPresets struct {
	Low      decimal.Decimal
	Standard decimal.Decimal
	Premium  decimal.Decimal
}

// SalePrice preço de venda = custo × (1 + margem/100), em centavos.
func SalePrice(cost, marginPercent decimal.Decimal) decimal.Decimal {
	return cost.Mul(decimal.NewFromInt(1).Add(marginPercent.Div(hundred))).Round(2)
}

// ResolveMargin devolve o percentual do tipo de margem escolhido.
// custom só é usado para entity.MarginCustom e precisa estar em [0, 200].
func ResolveMargin(kind string, custom decimal.Decimal, presets MarginPresets) (decimal.Decimal, error) {
	switch kind {
	case entity.MarginLow:
		return presets.Low, nil
	case entity.MarginStandard, "":
		return presets.Standard, nil
	case entity.MarginPremium:
		return presets.Premium, nil
	case entity.MarginCustom:
		if !ValidMargin(custom) {
			return decimal.Zero, domain.ErrInvalidMargin
		}
		return custom, nil
	}
	return decimal.Zero, domain.ErrInvalidInput
}

// ValidMargin margem percentual dentro de [0, 200].
func ValidMargin(p decimal.Decimal) bool {
	return !p.IsNegative() && !p.GreaterThan(maxMargin)
}
