package quoting_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/application/quoting"
	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/pricing"
	"github.com/jhoicas/decora-api/pkg/logger"
)

const (
	companyID  = "empresa-1"
	vendedorID = "6f1c2a7e-5b3d-4c1e-9a20-000000000001"
	gerenteID  = "6f1c2a7e-5b3d-4c1e-9a20-000000000002"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	materials memMaterials
	services  *memServices
	companies *memCompanies
	quotes    *memQuotes
	items     memItems
	sellers   memSalespeople
	orders    memOrders
	accounts  memAccounts
	uc        *quoting.QuoteUseCase
	pricingUC *quoting.PricingUseCase
}

var defaults = quoting.Defaults{
	InstallationPointPrice: d("35"),
	Presets:                pricing.MarginPresets{Low: d("40"), Standard: d("61.5"), Premium: d("80")},
}

func newFixture() *fixture {
	mat := func(id, cat, cost string) *entity.Material {
		return &entity.Material{ID: id, CompanyID: companyID, Name: id, Category: cat, UnitCost: d(cost), Active: true}
	}
	f := &fixture{
		materials: memMaterials{
			"tecido":  mat("tecido", entity.MaterialFabric, "50"),
			"forro":   mat("forro", entity.MaterialLining, "20"),
			"trilho":  mat("trilho", entity.MaterialRail, "30"),
			"papel":   mat("papel", entity.MaterialWallpaper, "89.90"),
			"alheio":  {ID: "alheio", CompanyID: "outra", Category: entity.MaterialFabric, UnitCost: d("1"), Active: true},
			"inativo": {ID: "inativo", CompanyID: companyID, Category: entity.MaterialFabric, UnitCost: d("1")},
		},
		services: &memServices{
			byID: map[string]*entity.SewingService{
				"wave":     {ID: "wave", CompanyID: companyID, Name: "Wave", UnitCost: d("15"), Active: true},
				"acab":     {ID: "acab", CompanyID: companyID, Name: "Acabamento forro", UnitCost: d("5"), Active: true, LiningFinish: true},
				"ilhos":    {ID: "ilhos", CompanyID: companyID, Name: "Ilhós", UnitCost: d("12"), Active: true},
				"blecaute": {ID: "blecaute", CompanyID: companyID, Name: "Blecaute", UnitCost: d("10"), Active: true},
			},
			curtainTypes: map[string][]string{"wave": {"wave"}, "ilhos": {"ilhos"}},
		},
		companies: &memCompanies{},
		quotes:    &memQuotes{rows: map[string]*entity.Quote{}},
		items:     memItems{},
		sellers: memSalespeople{
			vendedorID: {ID: vendedorID, CompanyID: companyID, Name: "Carla"},
		},
		orders:   memOrders{},
		accounts: memAccounts{},
	}
	f.materials["papel"].RollWidth = d("0.53")
	f.materials["papel"].RollLength = d("10")

	f.uc = quoting.NewQuoteUseCase(f.quotes, f.items, f.materials, f.services, f.companies, f.sellers,
		memTx{quotes: f.quotes, items: f.items, orders: f.orders, accounts: f.accounts}, defaults, logger.Nop())
	f.pricingUC = quoting.NewPricingUseCase(f.materials, f.services, f.companies, defaults)
	return f
}

func curtain() dto.LineItemRequest {
	return dto.LineItemRequest{
		ProductType:        entity.ProductCurtain,
		CurtainType:        "Wave",
		Width:              d("2"),
		Height:             d("2.6"),
		Quantity:           d("1"),
		FabricID:           "tecido",
		LiningID:           "forro",
		RailID:             "trilho",
		NeedsInstallation:  true,
		InstallationPoints: 2,
	}
}

func (f *fixture) draft(t *testing.T) *dto.QuoteResponse {
	t.Helper()
	q, err := f.uc.CreateQuote(context.Background(), companyID, vendedorID, dto.CreateQuoteRequest{ClientName: "Ana Lima"})
	require.NoError(t, err)
	return q
}

func TestCreateQuote_MargemPadrao(t *testing.T) {
	f := newFixture()
	q := f.draft(t)

	assert.Equal(t, "ORC-00001", q.Number)
	assert.Equal(t, entity.QuoteDraft, q.Status)
	assert.Equal(t, entity.MarginStandard, q.MarginType)
	assert.True(t, d("61.5").Equal(q.MarginPercent))
	assert.Equal(t, vendedorID, q.SalespersonID)
}

func TestCreateQuote_MargemDaEmpresa(t *testing.T) {
	f := newFixture()
	std := d("50")
	f.companies.settings = &entity.PricingSettings{CompanyID: companyID, MarginStandard: &std}

	q := f.draft(t)
	assert.True(t, d("50").Equal(q.MarginPercent))
}

func TestCreateQuote_MargemPersonalizadaForaDoLimite(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CreateQuote(context.Background(), companyID, "u", dto.CreateQuoteRequest{
		ClientName: "Ana", MarginType: entity.MarginCustom, MarginPercent: d("250"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMargin)
}

func TestSaveLineItem_CalculaEAgrega(t *testing.T) {
	f := newFixture()
	q := f.draft(t)

	out, err := f.uc.SaveLineItem(context.Background(), companyID, q.ID, "", curtain())
	require.NoError(t, err)

	assert.Equal(t, "wave", out.Item.CurtainType)
	assert.Equal(t, 1, out.Item.Position)
	assert.True(t, d("319").Equal(out.Item.Costs.Total), "custo %s", out.Item.Costs.Total)
	assert.True(t, d("42").Equal(out.Item.Costs.Sewing))
	assert.True(t, d("515.19").Equal(out.Item.SalePrice), "319 × 1,615")

	assert.True(t, d("207").Equal(out.Quote.SubtotalMaterials))
	assert.True(t, d("42").Equal(out.Quote.SubtotalSewing))
	assert.True(t, d("70").Equal(out.Quote.SubtotalInstallation))
	assert.True(t, d("515.19").Equal(out.Quote.GrandTotal))
	assert.Len(t, out.Quote.Items, 1)

	stored := f.quotes.rows[q.ID]
	assert.True(t, d("319").Equal(stored.CostTotal))
}

func TestSaveLineItem_EdicaoMantemPosicao(t *testing.T) {
	f := newFixture()
	q := f.draft(t)
	ctx := context.Background()

	first, err := f.uc.SaveLineItem(ctx, companyID, q.ID, "", curtain())
	require.NoError(t, err)
	_, err = f.uc.SaveLineItem(ctx, companyID, q.ID, "", curtain())
	require.NoError(t, err)

	in := curtain()
	in.RailID = ""
	edited, err := f.uc.SaveLineItem(ctx, companyID, q.ID, first.Item.ID, in)
	require.NoError(t, err)

	assert.Equal(t, 1, edited.Item.Position)
	assert.True(t, d("257").Equal(edited.Item.Costs.Total), "sem trilho a costura usa a largura exata")
	assert.Len(t, edited.Quote.Items, 2)
	assert.True(t, d("576").Equal(edited.Quote.CostTotal), "257 + 319")
}

func TestSaveLineItem_ErroDeValidacaoNaoGrava(t *testing.T) {
	f := newFixture()
	q := f.draft(t)
	ctx := context.Background()

	in := curtain()
	in.FabricID, in.LiningID = "", ""
	_, err := f.uc.SaveLineItem(ctx, companyID, q.ID, "", in)
	assert.ErrorIs(t, err, domain.ErrMissingMaterial)

	in = curtain()
	in.CurtainType = "prega_americana"
	_, err = f.uc.SaveLineItem(ctx, companyID, q.ID, "", in)
	assert.ErrorIs(t, err, domain.ErrNoSewingService)

	in = curtain()
	in.FabricID = "alheio"
	_, err = f.uc.SaveLineItem(ctx, companyID, q.ID, "", in)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	in = curtain()
	in.FabricID = "inativo"
	_, err = f.uc.SaveLineItem(ctx, companyID, q.ID, "", in)
	assert.ErrorIs(t, err, domain.ErrMaterialInactive)

	assert.Empty(t, f.items)
	assert.True(t, f.quotes.rows[q.ID].GrandTotal.IsZero())
}

func TestSaveLineItem_AvisoDePapelDeParede(t *testing.T) {
	f := newFixture()
	q := f.draft(t)

	out, err := f.uc.SaveLineItem(context.Background(), companyID, q.ID, "", dto.LineItemRequest{
		ProductType:  entity.ProductWallpaper,
		Width:        d("4"),
		Height:       d("2.6"),
		Quantity:     d("1"),
		FabricID:     "papel",
		WastePercent: d("10"),
	})
	require.NoError(t, err)
	// 10,4 m² × 1,1 / 5,3 m² = 2,16 → 3 rolos
	require.NotNil(t, out.Warning)
	assert.Equal(t, int64(3), out.Warning.Suggested)
	assert.True(t, d("89.90").Equal(out.Item.Costs.Total), "o item é gravado com a quantidade digitada")
}

func TestChangeMargin_RecalculaTodosOsItens(t *testing.T) {
	f := newFixture()
	q := f.draft(t)
	ctx := context.Background()
	_, err := f.uc.SaveLineItem(ctx, companyID, q.ID, "", curtain())
	require.NoError(t, err)

	// preço do tecido muda depois do item salvo: a troca de margem não relê o catálogo
	f.materials["tecido"].UnitCost = d("999")

	out, err := f.uc.ChangeMargin(ctx, companyID, q.ID, dto.ChangeMarginRequest{MarginType: entity.MarginPremium})
	require.NoError(t, err)

	assert.True(t, d("80").Equal(out.MarginPercent))
	assert.True(t, d("319").Equal(out.CostTotal))
	assert.True(t, d("574.2").Equal(out.GrandTotal), "319 × 1,8")
	require.Len(t, out.Items, 1)
	assert.True(t, d("574.2").Equal(f.items[out.Items[0].ID].SalePrice), "preço gravado no item")
}

func TestChangeStatus(t *testing.T) {
	f := newFixture()
	q := f.draft(t)
	ctx := context.Background()

	_, err := f.uc.ChangeStatus(ctx, companyID, q.ID, dto.ChangeStatusRequest{Status: entity.QuoteFinalized})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sem itens")

	_, err = f.uc.SaveLineItem(ctx, companyID, q.ID, "", curtain())
	require.NoError(t, err)

	_, err = f.uc.ChangeStatus(ctx, companyID, q.ID, dto.ChangeStatusRequest{Status: entity.QuoteApproved})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus, "rascunho não vai direto para aprovado")

	out, err := f.uc.ChangeStatus(ctx, companyID, q.ID, dto.ChangeStatusRequest{Status: entity.QuoteFinalized})
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteFinalized, out.Status)

	_, err = f.uc.SaveLineItem(ctx, companyID, q.ID, "", curtain())
	assert.ErrorIs(t, err, domain.ErrInvalidStatus, "finalizado não aceita itens")

	err = f.uc.DeleteQuote(ctx, companyID, q.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestDeleteLineItem_Reagrega(t *testing.T) {
	f := newFixture()
	q := f.draft(t)
	ctx := context.Background()

	a, err := f.uc.SaveLineItem(ctx, companyID, q.ID, "", curtain())
	require.NoError(t, err)
	_, err = f.uc.SaveLineItem(ctx, companyID, q.ID, "", curtain())
	require.NoError(t, err)

	out, err := f.uc.DeleteLineItem(ctx, companyID, q.ID, a.Item.ID)
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.True(t, d("515.19").Equal(out.GrandTotal))

	_, err = f.uc.DeleteLineItem(ctx, companyID, q.ID, a.Item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetQuote_OutraEmpresa(t *testing.T) {
	f := newFixture()
	q := f.draft(t)

	_, err := f.uc.GetQuote(context.Background(), "outra", q.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.GetQuote(context.Background(), companyID, "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateQuote_Vendedor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	q, err := f.uc.CreateQuote(ctx, companyID, gerenteID, dto.CreateQuoteRequest{ClientName: "Ana", SalespersonID: vendedorID})
	require.NoError(t, err)
	assert.Equal(t, vendedorID, q.SalespersonID, "gerente abre orçamento em nome do vendedor")

	q, err = f.uc.CreateQuote(ctx, companyID, gerenteID, dto.CreateQuoteRequest{ClientName: "Ana"})
	require.NoError(t, err)
	assert.Empty(t, q.SalespersonID, "usuário que não é vendedor não vira vendedor do orçamento")

	_, err = f.uc.CreateQuote(ctx, companyID, gerenteID, dto.CreateQuoteRequest{ClientName: "Ana", SalespersonID: gerenteID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CreateQuote(ctx, companyID, gerenteID, dto.CreateQuoteRequest{ClientName: "Ana", SalespersonID: "carla"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f.sellers[gerenteID] = &entity.Salesperson{ID: gerenteID, CompanyID: "outra"}
	_, err = f.uc.CreateQuote(ctx, companyID, vendedorID, dto.CreateQuoteRequest{ClientName: "Ana", SalespersonID: gerenteID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "vendedor de outra empresa")
}

// sent orçamento com uma cortina (515,19) já enviado ao cliente.
func (f *fixture) sent(t *testing.T) *dto.QuoteResponse {
	t.Helper()
	ctx := context.Background()
	q := f.draft(t)
	_, err := f.uc.SaveLineItem(ctx, companyID, q.ID, "", curtain())
	require.NoError(t, err)
	for _, st := range []string{entity.QuoteFinalized, entity.QuoteSent} {
		q, err = f.uc.ChangeStatus(ctx, companyID, q.ID, dto.ChangeStatusRequest{Status: st})
		require.NoError(t, err)
	}
	return q
}

func TestChangeStatus_AprovacaoGeraPedidoEContaParcelada(t *testing.T) {
	f := newFixture()
	q := f.sent(t)
	desconto := d("500")

	out, err := f.uc.ChangeStatus(context.Background(), companyID, q.ID, dto.ChangeStatusRequest{
		Status:          entity.QuoteApproved,
		Installments:    3,
		FirstDueDate:    "2026-01-31",
		DiscountedTotal: &desconto,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteApproved, out.Status)
	assert.Equal(t, entity.QuoteApproved, f.quotes.rows[q.ID].Status)

	order := f.orders[out.OrderID]
	require.NotNil(t, order)
	assert.Equal(t, "PED-00001", order.Number)
	assert.Equal(t, q.ID, order.QuoteID)
	assert.Equal(t, vendedorID, order.SalespersonID)
	assert.True(t, d("515.19").Equal(order.Total))
	assert.True(t, d("500").Equal(order.DiscountedTotal))

	acc := f.accounts[out.AccountID]
	require.NotNil(t, acc)
	assert.Equal(t, order.ID, acc.OrderID)
	assert.Equal(t, "Ana Lima", acc.ClientName)
	assert.Equal(t, entity.AccountPending, acc.Status)
	assert.True(t, d("500").Equal(acc.Total), "conta usa o total com desconto")
	require.Len(t, acc.Installments, 3)
	wantAmounts := []string{"166.68", "166.66", "166.66"}
	wantDue := []string{"2026-01-31", "2026-02-28", "2026-03-31"}
	for i, in := range acc.Installments {
		assert.Equal(t, i+1, in.Number)
		assert.Equal(t, acc.ID, in.AccountID)
		assert.NotEmpty(t, in.ID)
		assert.True(t, d(wantAmounts[i]).Equal(in.Amount), "parcela %d: %s", in.Number, in.Amount)
		assert.Equal(t, wantDue[i], in.DueDate.Format("2006-01-02"))
	}

	_, err = f.uc.ChangeStatus(context.Background(), companyID, q.ID, dto.ChangeStatusRequest{Status: entity.QuoteApproved})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus, "aprovado não é aprovado de novo")
	assert.Len(t, f.orders, 1)
}

func TestChangeStatus_AprovacaoPadraoParcelaUnicaComVencimentoHoje(t *testing.T) {
	f := newFixture()
	q := f.sent(t)

	out, err := f.uc.ChangeStatus(context.Background(), companyID, q.ID, dto.ChangeStatusRequest{Status: entity.QuoteApproved})
	require.NoError(t, err)

	assert.True(t, f.orders[out.OrderID].DiscountedTotal.IsZero(), "sem desconto")
	acc := f.accounts[out.AccountID]
	require.Len(t, acc.Installments, 1)
	assert.True(t, d("515.19").Equal(acc.Installments[0].Amount))
	assert.Equal(t, time.Now().Format("2006-01-02"), acc.Installments[0].DueDate.Format("2006-01-02"))
}

func TestChangeStatus_AprovacaoInvalidaNaoGravaNada(t *testing.T) {
	f := newFixture()
	q := f.sent(t)
	acima, zero := d("515.20"), d("0")

	cases := map[string]dto.ChangeStatusRequest{
		"desconto acima do total": {Status: entity.QuoteApproved, DiscountedTotal: &acima},
		"desconto zero":           {Status: entity.QuoteApproved, DiscountedTotal: &zero},
		"parcelas demais":         {Status: entity.QuoteApproved, Installments: 25},
		"parcelas negativas":      {Status: entity.QuoteApproved, Installments: -1},
		"data inválida":           {Status: entity.QuoteApproved, FirstDueDate: "31/01/2026"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.ChangeStatus(context.Background(), companyID, q.ID, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, f.orders)
	assert.Empty(t, f.accounts)
	assert.Equal(t, entity.QuoteSent, f.quotes.rows[q.ID].Status)
}
