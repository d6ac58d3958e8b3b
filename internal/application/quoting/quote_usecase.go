package quoting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/pricing"
	"github.com/jhoicas/decora-api/internal/domain/receivable"
	"github.com/jhoicas/decora-api/internal/domain/repository"
	"github.com/jhoicas/decora-api/pkg/logger"
)

// QuoteUseCase ciclo de vida do orçamento: itens, margem, totais e status.
// Toda escrita que altera itens reagrega o orçamento na mesma transação.
// A aprovação gera o pedido e a conta a receber parcelada.
type QuoteUseCase struct {
	quotes      repository.QuoteRepository
	items       repository.LineItemRepository
	salespeople repository.SalespersonRepository
	tx          TxRunner
	resolver *costResolver
	log      *logger.Logger
	now      func() time.Time
}

// NewQuoteUseCase constrói o caso de uso.
func NewQuoteUseCase(
	quotes repository.QuoteRepository,
	items repository.LineItemRepository,
	materials repository.MaterialRepository,
	services repository.SewingServiceRepository,
	companies repository.CompanyRepository,
	salespeople repository.SalespersonRepository,
	tx TxRunner,
	defaults Defaults,
	log *logger.Logger,
) *QuoteUseCase {
	return &QuoteUseCase{
		quotes:      quotes,
		items:       items,
		salespeople: salespeople,
		tx:          tx,
		resolver: &costResolver{
			materials: materials,
			services:  services,
			companies: companies,
			defaults:  defaults,
		},
		log: log.Component("quoting"),
		now: time.Now,
	}
}

// CreateQuote abre um orçamento em rascunho com a margem escolhida.
func (uc *QuoteUseCase) CreateQuote(ctx context.Context, companyID, userID string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	in.ClientName = strings.TrimSpace(in.ClientName)
	if in.ClientName == "" {
		return nil, domain.ErrInvalidInput
	}
	cp, err := uc.resolver.settings(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if in.MarginType == "" {
		in.MarginType = entity.MarginStandard
	}
	margin, err := pricing.ResolveMargin(in.MarginType, in.MarginPercent, cp.presets)
	if err != nil {
		return nil, err
	}
	salesperson, err := uc.resolveSalesperson(ctx, companyID, userID, in.SalespersonID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	q := &entity.Quote{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		ClientName:    in.ClientName,
		ClientPhone:   in.ClientPhone,
		ClientEmail:   in.ClientEmail,
		Address:       in.Address,
		SalespersonID: salesperson,
		MarginType:    in.MarginType,
		MarginPercent: margin,
		Status:        entity.QuoteDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = uc.tx.RunQuote(ctx, func(quotes repository.QuoteRepository, _ repository.LineItemRepository) error {
		n, err := quotes.NextNumber(ctx, companyID)
		if err != nil {
			return err
		}
		q.Number = fmt.Sprintf("ORC-%05d", n)
		return quotes.Create(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(q), nil
}

// GetQuote devolve o orçamento com os itens.
func (uc *QuoteUseCase) GetQuote(ctx context.Context, companyID, id string) (*dto.QuoteResponse, error) {
	q, err := uc.loadWithItems(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(q), nil
}

// ListQuotes lista os orçamentos da empresa (sem itens).
func (uc *QuoteUseCase) ListQuotes(ctx context.Context, companyID string, f repository.QuoteFilter) (*dto.QuoteListResponse, error) {
	page := dto.PageRequest{Limit: f.Limit, Offset: f.Offset}
	page.DefaultPage()
	f.Limit, f.Offset = page.Limit, page.Offset

	list, err := uc.quotes.List(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	out := &dto.QuoteListResponse{
		Items: make([]dto.QuoteResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}
	for _, q := range list {
		out.Items = append(out.Items, *toQuoteResponse(q))
	}
	return out, nil
}

// SaveLineItem calcula o custo do item com os preços ativos, aplica a margem do orçamento,
// persiste o item e reagrega os totais. Erro de validação não grava nada.
// itemID vazio cria um item novo.
func (uc *QuoteUseCase) SaveLineItem(ctx context.Context, companyID, quoteID, itemID string, in dto.LineItemRequest) (*dto.SaveLineItemResponse, error) {
	q, err := uc.loadEditable(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}

	item := toLineItem(in)
	now := uc.now()
	if itemID != "" {
		existing, err := uc.items.GetByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if existing == nil || existing.QuoteID != q.ID {
			return nil, domain.ErrNotFound
		}
		item.ID = existing.ID
		item.Position = existing.Position
		item.CreatedAt = existing.CreatedAt
	} else {
		item.ID = uuid.New().String()
		item.CreatedAt = now
	}
	item.QuoteID = q.ID
	item.UpdatedAt = now

	cp, err := uc.resolver.settings(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resolved, err := uc.resolver.resolve(ctx, companyID, item, in.WastePercent, cp)
	if err != nil {
		return nil, err
	}
	item.Costs = resolved.costs
	item.SalePrice = pricing.SalePrice(item.Costs.Total, q.MarginPercent)

	err = uc.tx.RunQuote(ctx, func(quotes repository.QuoteRepository, items repository.LineItemRepository) error {
		if itemID == "" {
			existing, err := items.ListByQuote(ctx, q.ID)
			if err != nil {
				return err
			}
			item.Position = len(existing) + 1
		}
		if err := items.Save(ctx, item); err != nil {
			return err
		}
		return uc.reaggregate(ctx, q, quotes, items, false)
	})
	if err != nil {
		return nil, err
	}

	return &dto.SaveLineItemResponse{
		Item:    toLineItemResponse(item),
		Quote:   *toQuoteResponse(q),
		Warning: toWarningResponse(resolved.warning),
	}, nil
}

// DeleteLineItem remove o item e reagrega o orçamento.
func (uc *QuoteUseCase) DeleteLineItem(ctx context.Context, companyID, quoteID, itemID string) (*dto.QuoteResponse, error) {
	q, err := uc.loadEditable(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	existing, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.QuoteID != q.ID {
		return nil, domain.ErrNotFound
	}
	err = uc.tx.RunQuote(ctx, func(quotes repository.QuoteRepository, items repository.LineItemRepository) error {
		if err := items.Delete(ctx, itemID); err != nil {
			return err
		}
		return uc.reaggregate(ctx, q, quotes, items, false)
	})
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(q), nil
}

// ChangeMargin troca a margem e recalcula o preço de venda de todos os itens a partir dos custos
// gravados, sem reler o catálogo.
func (uc *QuoteUseCase) ChangeMargin(ctx context.Context, companyID, quoteID string, in dto.ChangeMarginRequest) (*dto.QuoteResponse, error) {
	q, err := uc.loadEditable(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	if in.MarginType == "" {
		in.MarginType = entity.MarginStandard
	}
	cp, err := uc.resolver.settings(ctx, companyID)
	if err != nil {
		return nil, err
	}
	margin, err := pricing.ResolveMargin(in.MarginType, in.MarginPercent, cp.presets)
	if err != nil {
		return nil, err
	}
	q.MarginType = in.MarginType
	q.MarginPercent = margin

	err = uc.tx.RunQuote(ctx, func(quotes repository.QuoteRepository, items repository.LineItemRepository) error {
		return uc.reaggregate(ctx, q, quotes, items, true)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("quote_id", q.ID).Str("margin_type", q.MarginType).
		Str("margin_percent", margin.String()).Msg("margem do orçamento alterada")
	return toQuoteResponse(q), nil
}

// ChangeStatus aplica uma transição de status válida. Finalizar exige ao menos um item;
// aprovar gera pedido e conta a receber (ver approve).
func (uc *QuoteUseCase) ChangeStatus(ctx context.Context, companyID, quoteID string, in dto.ChangeStatusRequest) (*dto.QuoteResponse, error) {
	q, err := uc.loadWithItems(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(q.Status, in.Status) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidStatus, q.Status, in.Status)
	}
	if in.Status == entity.QuoteFinalized && len(q.Items) == 0 {
		return nil, fmt.Errorf("%w: orçamento sem itens", domain.ErrInvalidInput)
	}
	if in.Status == entity.QuoteApproved {
		return uc.approve(ctx, q, in)
	}
	now := uc.now()
	if err := uc.quotes.UpdateStatus(ctx, q.ID, in.Status, now); err != nil {
		return nil, err
	}
	q.Status = in.Status
	q.UpdatedAt = now
	return toQuoteResponse(q), nil
}

// approve grava o status aprovado, o pedido e a conta a receber com as parcelas numa só
// transação. O valor da conta é o total com desconto quando informado, senão o total do
// orçamento; o pedido herda o vendedor do orçamento.
func (uc *QuoteUseCase) approve(ctx context.Context, q *entity.Quote, in dto.ChangeStatusRequest) (*dto.QuoteResponse, error) {
	now := uc.now()
	total := q.GrandTotal
	var discounted decimal.Decimal
	if in.DiscountedTotal != nil {
		d := in.DiscountedTotal.Round(2)
		if !d.IsPositive() || d.GreaterThan(q.GrandTotal) {
			return nil, fmt.Errorf("%w: total com desconto deve ficar entre zero e o total do orçamento", domain.ErrInvalidInput)
		}
		if d.LessThan(q.GrandTotal) {
			discounted, total = d, d
		}
	}
	count := in.Installments
	if count == 0 {
		count = 1
	}
	firstDue := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if in.FirstDueDate != "" {
		d, err := time.Parse(time.DateOnly, in.FirstDueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: first_due_date no formato AAAA-MM-DD", domain.ErrInvalidInput)
		}
		firstDue = d
	}
	installments, err := receivable.Schedule(total, count, firstDue)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		ID:              uuid.New().String(),
		CompanyID:       q.CompanyID,
		QuoteID:         q.ID,
		Number:          orderNumber(q.Number),
		Total:           q.GrandTotal,
		DiscountedTotal: discounted,
		SalespersonID:   q.SalespersonID,
	}
	account := &entity.AccountReceivable{
		ID:           uuid.New().String(),
		CompanyID:    q.CompanyID,
		OrderID:      order.ID,
		ClientName:   q.ClientName,
		Description:  "Pedido " + order.Number,
		Total:        total,
		PaidAmount:   decimal.Zero,
		Status:       entity.AccountPending,
		Installments: installments,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, it := range installments {
		it.ID = uuid.New().String()
		it.AccountID = account.ID
	}

	err = uc.tx.RunApproval(ctx, func(quotes repository.QuoteRepository, orders OrderWriter, accounts AccountWriter) error {
		if err := quotes.UpdateStatus(ctx, q.ID, entity.QuoteApproved, now); err != nil {
			return err
		}
		if err := orders.Create(ctx, order); err != nil {
			return err
		}
		return accounts.CreateAccount(ctx, account)
	})
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, fmt.Errorf("%w: orçamento já tem pedido", domain.ErrInvalidStatus)
	}
	if err != nil {
		return nil, err
	}

	q.Status = entity.QuoteApproved
	q.UpdatedAt = now
	uc.log.Info().Str("quote_id", q.ID).Str("order_id", order.ID).Str("account_id", account.ID).
		Int("installments", count).Str("total", total.String()).Msg("orçamento aprovado")
	out := toQuoteResponse(q)
	out.OrderID, out.AccountID = order.ID, account.ID
	return out, nil
}

// orderNumber ORC-00012 vira PED-00012.
func orderNumber(quoteNumber string) string {
	return "PED-" + strings.TrimPrefix(quoteNumber, "ORC-")
}

// resolveSalesperson vendedor informado precisa existir na empresa. Sem vendedor, usa o
// próprio usuário quando ele é vendedor; senão o orçamento fica sem vendedor.
func (uc *QuoteUseCase) resolveSalesperson(ctx context.Context, companyID, userID, id string) (string, error) {
	explicit := id != ""
	if !explicit {
		id = userID
	}
	if _, err := uuid.Parse(id); err != nil {
		if explicit {
			return "", fmt.Errorf("%w: salesperson_id inválido", domain.ErrInvalidInput)
		}
		return "", nil
	}
	sp, err := uc.salespeople.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if sp == nil || sp.CompanyID != companyID {
		if explicit {
			return "", fmt.Errorf("%w: vendedor não encontrado", domain.ErrInvalidInput)
		}
		return "", nil
	}
	return sp.ID, nil
}

// DeleteQuote remove um orçamento em rascunho.
func (uc *QuoteUseCase) DeleteQuote(ctx context.Context, companyID, quoteID string) error {
	q, err := uc.loadEditable(ctx, companyID, quoteID)
	if err != nil {
		return err
	}
	return uc.quotes.Delete(ctx, q.ID)
}

// reaggregate relê os itens na transação, soma os custos e grava os totais.
// Com repricing, grava também o preço de venda de cada item com a margem atual.
func (uc *QuoteUseCase) reaggregate(ctx context.Context, q *entity.Quote, quotes repository.QuoteRepository, items repository.LineItemRepository, repricing bool) error {
	list, err := items.ListByQuote(ctx, q.ID)
	if err != nil {
		return err
	}
	costs := make([]entity.CostBreakdown, len(list))
	for i, it := range list {
		costs[i] = it.Costs
	}
	totals := pricing.AggregateQuote(costs, q.MarginPercent)
	for i, it := range list {
		if repricing && !it.SalePrice.Equal(totals.SalePrices[i]) {
			if err := items.UpdateSalePrice(ctx, it.ID, totals.SalePrices[i]); err != nil {
				return err
			}
		}
		it.SalePrice = totals.SalePrices[i]
	}
	if !totals.Reconciles(q.MarginPercent) {
		uc.log.Warn().Str("quote_id", q.ID).Str("cost_total", totals.CostTotal.String()).
			Str("grand_total", totals.GrandTotal.String()).Msg("total do orçamento fora da tolerância de arredondamento")
	}

	q.Items = list
	q.SubtotalMaterials = totals.SubtotalMaterials
	q.SubtotalSewing = totals.SubtotalSewing
	q.SubtotalInstallation = totals.SubtotalInstallation
	q.CostTotal = totals.CostTotal
	q.GrandTotal = totals.GrandTotal
	q.UpdatedAt = uc.now()
	return quotes.UpdatePricing(ctx, q)
}

func (uc *QuoteUseCase) load(ctx context.Context, companyID, id string) (*entity.Quote, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	q, err := uc.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	if q.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return q, nil
}

func (uc *QuoteUseCase) loadWithItems(ctx context.Context, companyID, id string) (*entity.Quote, error) {
	q, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if q.Items, err = uc.items.ListByQuote(ctx, q.ID); err != nil {
		return nil, err
	}
	return q, nil
}

func (uc *QuoteUseCase) loadEditable(ctx context.Context, companyID, id string) (*entity.Quote, error) {
	q, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if !q.Editable() {
		return nil, fmt.Errorf("%w: orçamento em %s não pode ser editado", domain.ErrInvalidStatus, q.Status)
	}
	return q, nil
}
