package receivable

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Milestone marco de pagamento. Trigger é o percentual a partir do qual o marco conta como atingido.
type Milestone struct {
	Percent int
	Trigger decimal.Decimal
}

// Milestones 40%, 60% e 100% (este a partir de 99,5% para absorver arredondamentos).
var Milestones = []Milestone{
	{Percent: 40, Trigger: decimal.NewFromInt(40)},
	{Percent: 60, Trigger: decimal.NewFromInt(60)},
	{Percent: 100, Trigger: decimal.RequireFromString("99.5")},
}

// PaidPercent percentual de paid sobre base. Base ≤ 0 devolve zero.
func PaidPercent(paid, base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return paid.Mul(hundred).Div(base)
}

// CrossedMilestones marcos atingidos entre before e after (percentuais).
// Um marco já atingido em before nunca volta a aparecer.
func CrossedMilestones(before, after decimal.Decimal) []Milestone {
	var out []Milestone
	for _, m := range Milestones {
		if before.LessThan(m.Trigger) && after.GreaterThanOrEqual(m.Trigger) {
			out = append(out, m)
		}
	}
	return out
}

// Title texto curto da notificação do marco.
func (m Milestone) Title() string {
	if m.Percent == 100 {
		return "Pagamento concluído"
	}
	return fmt.Sprintf("%d%% do pedido recebido", m.Percent)
}
