package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/domain/entity"
)

// QuoteTotals subtotais e total geral do orçamento. SalePrices segue a ordem dos custos recebidos.
type QuoteTotals struct {
	SubtotalMaterials    decimal.Decimal
	SubtotalSewing       decimal.Decimal
	SubtotalInstallation decimal.Decimal
	CostTotal            decimal.Decimal
	GrandTotal           decimal.Decimal
	SalePrices           []decimal.Decimal
}

// AggregateQuote soma os custos dos itens e aplica a margem item a item.
// GrandTotal é a soma dos preços de venda já arredondados.
func AggregateQuote(costs []entity.CostBreakdown, marginPercent decimal.Decimal) QuoteTotals {
	t := QuoteTotals{SalePrices: make([]decimal.Decimal, len(costs))}
	for i, c := range costs {
		t.SubtotalMaterials = t.SubtotalMaterials.Add(c.Materials())
		t.SubtotalSewing = t.SubtotalSewing.Add(c.Sewing)
		t.SubtotalInstallation = t.SubtotalInstallation.Add(c.Installation)
		t.CostTotal = t.CostTotal.Add(c.Total)

		price := SalePrice(c.Total, marginPercent)
		t.SalePrices[i] = price
		t.GrandTotal = t.GrandTotal.Add(price)
	}
	return t
}

// Reconciles confere que o custo total com margem bate com o total geral,
// tolerando um centavo de arredondamento por item.
func (t QuoteTotals) Reconciles(marginPercent decimal.Decimal) bool {
	expected := t.CostTotal.Mul(decimal.NewFromInt(1).Add(marginPercent.Div(hundred)))
	slack := decimal.RequireFromString("0.01").Mul(decimal.NewFromInt(int64(len(t.SalePrices))))
	if slack.IsZero() {
		slack = decimal.RequireFromString("0.005")
	}
	return expected.Sub(t.GrandTotal).Abs().LessThanOrEqual(slack)
}
