package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// WallpaperRolls rolos necessários = ceil(área × (1 + perda/100) / cobertura).
// Sempre arredonda para cima. Área ou cobertura ≤ 0 devolve 0; perda negativa conta como 0.
func WallpaperRolls(width, height, coveragePerRoll, wastePercent decimal.Decimal) int64 {
	area := width.Mul(height)
	if !area.GreaterThan(decimal.Zero) || !coveragePerRoll.GreaterThan(decimal.Zero) {
		return 0
	}
	if wastePercent.IsNegative() {
		wastePercent = decimal.Zero
	}
	adjusted := area.Mul(decimal.NewFromInt(1).Add(wastePercent.Div(hundred)))
	return adjusted.Div(coveragePerRoll).Ceil().IntPart()
}

// QuantityWarning aviso não bloqueante de quantidade abaixo da sugerida.
type QuantityWarning struct {
	Entered   decimal.Decimal
	Suggested int64
	Message   string
}

// CheckWallpaperQuantity devolve nil quando a quantidade digitada cobre a sugestão.
func CheckWallpaperQuantity(entered decimal.Decimal, suggested int64) *QuantityWarning {
	if !entered.LessThan(decimal.NewFromInt(suggested)) {
		return nil
	}
	return &QuantityWarning{
		Entered:   entered,
		Suggested: suggested,
		Message:   fmt.Sprintf("quantidade informada (%s) menor que a sugerida (%d rolos)", entered.String(), suggested),
	}
}
