package quoting_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/application/quoting"
	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

type memMaterials map[string]*entity.Material

func (m memMaterials) Create(_ context.Context, mat *entity.Material) error {
	m[mat.ID] = mat
	return nil
}

func (m memMaterials) GetByID(_ context.Context, id string) (*entity.Material, error) {
	return m[id], nil
}

func (m memMaterials) List(_ context.Context, companyID string, _ repository.MaterialFilter) ([]*entity.Material, error) {
	var out []*entity.Material
	for _, mat := range m {
		if mat.CompanyID == companyID {
			out = append(out, mat)
		}
	}
	return out, nil
}

func (m memMaterials) SetActive(_ context.Context, id string, active bool, _ time.Time) error {
	m[id].Active = active
	return nil
}

func (m memMaterials) ArchiveActivePrice(context.Context, string, time.Time) error { return nil }

func (m memMaterials) InsertPrice(_ context.Context, id string, cost decimal.Decimal, at time.Time) (*entity.MaterialPrice, error) {
	m[id].UnitCost = cost
	return &entity.MaterialPrice{ID: id + "-price", MaterialID: id, UnitCost: cost, ValidFrom: at}, nil
}

func (m memMaterials) PriceHistory(context.Context, string) ([]*entity.MaterialPrice, error) {
	return nil, nil
}

type memServices struct {
	byID         map[string]*entity.SewingService
	curtainTypes map[string][]string
}

func (m *memServices) Create(_ context.Context, s *entity.SewingService) error {
	m.byID[s.ID] = s
	return nil
}

func (m *memServices) List(_ context.Context, companyID string) ([]*entity.SewingService, error) {
	var out []*entity.SewingService
	for _, s := range m.byID {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memServices) GetByIDs(_ context.Context, ids []string) ([]*entity.SewingService, error) {
	var out []*entity.SewingService
	for _, id := range ids {
		if s, ok := m.byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memServices) ListForCurtainType(_ context.Context, _ string, curtainType string) ([]*entity.SewingService, error) {
	return m.GetByIDs(context.Background(), m.curtainTypes[curtainType])
}

func (m *memServices) GetLiningFinish(_ context.Context, companyID string) (*entity.SewingService, error) {
	for _, s := range m.byID {
		if s.CompanyID == companyID && s.LiningFinish && s.Active {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memServices) LinkCurtainType(_ context.Context, _ string, curtainType, serviceID string) error {
	m.curtainTypes[curtainType] = append(m.curtainTypes[curtainType], serviceID)
	return nil
}

type memCompanies struct {
	settings *entity.PricingSettings
}

func (m *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return &entity.Company{ID: id, Name: "Decora Interiores", CNPJ: "12.345.678/0001-90"}, nil
}

func (m *memCompanies) GetPricingSettings(context.Context, string) (*entity.PricingSettings, error) {
	return m.settings, nil
}

func (m *memCompanies) SavePricingSettings(_ context.Context, s *entity.PricingSettings) error {
	m.settings = s
	return nil
}

type memQuotes struct {
	rows map[string]*entity.Quote
	seq  int64
}

func (m *memQuotes) Create(_ context.Context, q *entity.Quote) error {
	cp := *q
	m.rows[q.ID] = &cp
	return nil
}

func (m *memQuotes) GetByID(_ context.Context, id string) (*entity.Quote, error) {
	q, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	cp.Items = nil
	return &cp, nil
}

func (m *memQuotes) List(_ context.Context, companyID string, f repository.QuoteFilter) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, q := range m.rows {
		if q.CompanyID == companyID && (f.Status == "" || q.Status == f.Status) {
			cp := *q
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memQuotes) UpdatePricing(_ context.Context, q *entity.Quote) error {
	cp := *q
	cp.Items = nil
	m.rows[q.ID] = &cp
	return nil
}

func (m *memQuotes) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	m.rows[id].Status = status
	m.rows[id].UpdatedAt = at
	return nil
}

func (m *memQuotes) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func (m *memQuotes) NextNumber(context.Context, string) (int64, error) {
	m.seq++
	return m.seq, nil
}

type memItems map[string]*entity.LineItem

func (m memItems) Save(_ context.Context, it *entity.LineItem) error {
	cp := *it
	m[it.ID] = &cp
	return nil
}

func (m memItems) GetByID(_ context.Context, id string) (*entity.LineItem, error) {
	it, ok := m[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (m memItems) ListByQuote(_ context.Context, quoteID string) ([]*entity.LineItem, error) {
	var out []*entity.LineItem
	for _, it := range m {
		if it.QuoteID == quoteID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m memItems) UpdateSalePrice(_ context.Context, id string, price decimal.Decimal) error {
	m[id].SalePrice = price
	return nil
}

func (m memItems) Delete(_ context.Context, id string) error {
	delete(m, id)
	return nil
}

type memSalespeople map[string]*entity.Salesperson

func (m memSalespeople) GetByID(_ context.Context, id string) (*entity.Salesperson, error) {
	return m[id], nil
}

func (m memSalespeople) Save(_ context.Context, s *entity.Salesperson) error {
	m[s.ID] = s
	return nil
}

type memOrders map[string]*entity.Order

func (m memOrders) Create(_ context.Context, o *entity.Order) error {
	for _, existing := range m {
		if existing.QuoteID == o.QuoteID {
			return domain.ErrDuplicate
		}
	}
	m[o.ID] = o
	return nil
}

type memAccounts map[string]*entity.AccountReceivable

func (m memAccounts) CreateAccount(_ context.Context, a *entity.AccountReceivable) error {
	m[a.ID] = a
	return nil
}

type memTx struct {
	quotes   *memQuotes
	items    memItems
	orders   memOrders
	accounts memAccounts
}

func (t memTx) RunQuote(ctx context.Context, fn func(repository.QuoteRepository, repository.LineItemRepository) error) error {
	return fn(t.quotes, t.items)
}

func (t memTx) RunApproval(ctx context.Context, fn func(repository.QuoteRepository, quoting.OrderWriter, quoting.AccountWriter) error) error {
	return fn(t.quotes, t.orders, t.accounts)
}
