// Package pdf gera o orçamento em PDF para envio ao cliente.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CABEÇALHO: Empresa + CNPJ   │  N° Orçamento + Data         │
//	│  EMPRESA: Endereço / Tel / Email                             │
//	│  CLIENTE: Nome + contato + endereço da obra                  │
//	│  TABELA: # | Descrição | Medidas | Qtd | Valor               │
//	│  TOTAL DO ORÇAMENTO                                          │
//	│  RODAPÉ: validade e condições                                │
//	└─────────────────────────────────────────────────────────────┘
//
// Custos internos e margem nunca aparecem no documento.
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/decora-api/internal/application/quoting"
	"github.com/jhoicas/decora-api/internal/domain/entity"
)

var _ quoting.QuotePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 94, Green: 60, Blue: 40}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa quoting.QuotePDFGenerator com Maroto v2.
type MarotoPDFGenerator struct {
	// ValidityDays prazo de validade impresso no rodapé.
	ValidityDays int
}

// NewMarotoPDFGenerator constrói o gerador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{ValidityDays: 15} }

// GenerateQuotePDF gera o PDF e devolve os bytes.
func (g *MarotoPDFGenerator) GenerateQuotePDF(_ context.Context, quote *entity.Quote, company *entity.Company) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orçamento "+quote.Number, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(quote, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(companyRow(company))
	m.AddRows(clientRow(quote))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(quote.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(quote))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(g.ValidityDays))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

func headerRow(quote *entity.Quote, company *entity.Company) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ: "+nonEmpty(company.CNPJ, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORÇAMENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(quote.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+quote.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func companyRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("EMPRESA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Endereço: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func clientRow(quote *entity.Quote) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(quote.ClientName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s",
				nonEmpty(quote.ClientPhone, "—"),
				nonEmpty(quote.ClientEmail, "—"),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
			text.New("Endereço da obra: "+nonEmpty(quote.Address, "—"), props.Text{
				Size: 8, Top: 15, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("#", 1, align.Center),
		h("Descrição", 5, align.Left),
		h("Medidas", 2, align.Center),
		h("Qtd.", 1, align.Center),
		h("Valor", 3, align.Right),
	)
}

func itemRows(items []*entity.LineItem) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Position), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(describe(it), props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(measures(it), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(formatQuantity(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(formatBRL(it.SalePrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func totalRow(quote *entity.Quote) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatBRL(quote.GrandTotal), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func footerRow(validityDays int) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New(fmt.Sprintf(
			"Orçamento válido por %d dias. Medidas sujeitas a conferência técnica no local. "+
				"Prazo de produção contado a partir da aprovação e do pagamento da entrada.", validityDays),
			props.Text{Size: 7, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

var productLabels = map[string]string{
	entity.ProductCurtain:   "Cortina",
	entity.ProductBlind:     "Persiana",
	entity.ProductWallpaper: "Papel de parede",
	entity.ProductAccessory: "Acessório",
	entity.ProductMotorized: "Motorizado",
	entity.ProductOther:     "Item",
}

func describe(it *entity.LineItem) string {
	if it.Description != "" {
		return it.Description
	}
	label := nonEmpty(productLabels[it.ProductType], "Item")
	if it.CurtainType != "" {
		label += " " + strings.ReplaceAll(it.CurtainType, "_", " ")
	}
	return label
}

func measures(it *entity.LineItem) string {
	if it.Width.IsZero() {
		return "—"
	}
	if it.Height.IsZero() {
		return brl.Sprintf("%v m", number.Decimal(it.Width.InexactFloat64(), number.Scale(2)))
	}
	return brl.Sprintf("%v × %v m",
		number.Decimal(it.Width.InexactFloat64(), number.Scale(2)),
		number.Decimal(it.Height.InexactFloat64(), number.Scale(2)))
}

func formatQuantity(q decimal.Decimal) string {
	if q.Equal(q.Truncate(0)) {
		return q.StringFixed(0)
	}
	return brl.Sprintf("%v", number.Decimal(q.InexactFloat64(), number.MaxFractionDigits(3)))
}

// formatBRL formata em reais com separador de milhar: 1234.5 → "R$ 1.234,50".
func formatBRL(v decimal.Decimal) string {
	return "R$ " + brl.Sprintf("%v", number.Decimal(v.Round(2).InexactFloat64(), number.Scale(2)))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
