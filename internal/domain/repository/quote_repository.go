package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/domain/entity"
)

// QuoteFilter filtros da listagem de orçamentos.
type QuoteFilter struct {
	Status        string
	SalespersonID string
	Limit         int
	Offset        int
}

// QuoteRepository porta de persistência de orçamentos (cabeçalho e totais).
type QuoteRepository interface {
	Create(ctx context.Context, q *entity.Quote) error
	// GetByID devolve o orçamento sem itens.
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	List(ctx context.Context, companyID string, f QuoteFilter) ([]*entity.Quote, error)
	// UpdatePricing grava margem e totais agregados.
	UpdatePricing(ctx context.Context, q *entity.Quote) error
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
	Delete(ctx context.Context, id string) error
	// NextNumber próximo número sequencial do orçamento na empresa.
	NextNumber(ctx context.Context, companyID string) (int64, error)
}

// LineItemRepository porta dos itens do orçamento.
type LineItemRepository interface {
	// Save insere ou atualiza o item (upsert por ID).
	Save(ctx context.Context, item *entity.LineItem) error
	GetByID(ctx context.Context, id string) (*entity.LineItem, error)
	ListByQuote(ctx context.Context, quoteID string) ([]*entity.LineItem, error)
	UpdateSalePrice(ctx context.Context, id string, salePrice decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}
